package domain

import "github.com/tdex-network/tdex-custody/pkg/address"

const (
	EscrowSeedPrefix      = "escrow"
	MarketplaceSeedPrefix = "marketplace"
	RewardsSeedPrefix     = "rewards"
	TreasurySeedPrefix    = "treasury"

	// AccountStorageOverhead is the number of bytes charged on top of the data
	// of every record.
	AccountStorageOverhead = 128
	// LamportsPerByte is the storage deposit charged for every byte of a
	// record, refunded when the record is closed.
	LamportsPerByte = 6960

	TokenAccountSpace = 165
	MintSpace         = 82
	// discriminator + seed + maker + mint_a + mint_b + receive_amount + bump
	EscrowSpace = 8 + 8 + 32 + 32 + 32 + 8 + 1
	// discriminator + admin + fee + 3 bumps + name (length prefixed)
	MarketplaceSpace = 8 + 32 + 2 + 3 + 4 + MaxMarketplaceNameLen

	MaxMarketplaceNameLen = 32
	MaxFeeBasisPoints     = 10000
	RewardsMintDecimals   = 6
)

var (
	SystemProgramID          = address.Zero
	TokenProgramID           = address.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	AssociatedTokenProgramID = address.MustParseAddress("ATokenGPvbdGVxr1b2hvZbsiqW5xWbuhpT5y7t3j9s3")

	DefaultEscrowProgramID      = address.NewFromName("tdex-custody/escrow")
	DefaultMarketplaceProgramID = address.NewFromName("tdex-custody/marketplace")
)

// RentExemptMinimum returns the storage deposit required for a record of the
// given data size.
func RentExemptMinimum(space int) uint64 {
	return uint64(AccountStorageOverhead+space) * LamportsPerByte
}
