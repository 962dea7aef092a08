package domain

import (
	"time"

	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/tdex-network/tdex-custody/pkg/mathutil"
)

// Marketplace is the namespace-scoped configuration anchoring the fee rate,
// the treasury and the rewards mint of a named marketplace.
type Marketplace struct {
	// Address derived from ("marketplace", Name). Two marketplaces with the
	// same name cannot coexist.
	Address address.Address
	Admin   address.Address
	Name    string
	// Fee expressed in basis points.
	Fee  uint16
	Bump uint8
	// Holding location for collected fees, derived from ("treasury", Address).
	Treasury     address.Address
	TreasuryBump uint8
	// Reward asset whose mint authority is Address itself.
	RewardsMint address.Address
	RewardsBump uint8
	// Storage deposit paid by the admin.
	Lamports  uint64
	CreatedAt int64
}

// MarketplaceSeeds returns the seeds the marketplace address is derived from,
// bump excluded.
func MarketplaceSeeds(name string) [][]byte {
	return [][]byte{[]byte(MarketplaceSeedPrefix), []byte(name)}
}

// DeriveMarketplaceAddress returns the address and bump of the marketplace
// with the given name.
func DeriveMarketplaceAddress(
	programID address.Address, name string,
) (address.Address, uint8, error) {
	if !isValidMarketplaceName(name) {
		return address.Address{}, 0, ErrMarketplaceInvalidName
	}
	addr, bump, err := address.FindProgramAddress(
		MarketplaceSeeds(name), programID,
	)
	if err != nil {
		return address.Address{}, 0, derivationError(err)
	}
	return addr, bump, nil
}

// NewMarketplace validates the arguments and returns a marketplace with all
// its derived addresses.
func NewMarketplace(
	programID, admin address.Address, name string, fee uint16,
) (*Marketplace, error) {
	if !isValidFee(fee) {
		return nil, ErrMarketplaceInvalidFee
	}

	addr, bump, err := DeriveMarketplaceAddress(programID, name)
	if err != nil {
		return nil, err
	}

	treasury, treasuryBump, err := address.FindProgramAddress(
		[][]byte{[]byte(TreasurySeedPrefix), addr.Bytes()}, programID,
	)
	if err != nil {
		return nil, derivationError(err)
	}
	rewards, rewardsBump, err := address.FindProgramAddress(
		[][]byte{[]byte(RewardsSeedPrefix), addr.Bytes()}, programID,
	)
	if err != nil {
		return nil, derivationError(err)
	}

	return &Marketplace{
		Address:      addr,
		Admin:        admin,
		Name:         name,
		Fee:          fee,
		Bump:         bump,
		Treasury:     treasury,
		TreasuryBump: treasuryBump,
		RewardsMint:  rewards,
		RewardsBump:  rewardsBump,
		CreatedAt:    time.Now().Unix(),
	}, nil
}

// IsAdmin returns whether the given address is the admin of the marketplace.
func (m *Marketplace) IsAdmin(addr address.Address) bool {
	return m.Admin == addr
}

// Signer returns the signer acting as the marketplace address, the mint
// authority of the rewards mint.
func (m *Marketplace) Signer(programID address.Address) (ProgramSigner, error) {
	signer, err := NewProgramSigner(programID, MarketplaceSeeds(m.Name), m.Bump)
	if err != nil {
		return ProgramSigner{}, err
	}
	if signer.Address() != m.Address {
		return ProgramSigner{}, ErrAuthorityMismatch
	}
	return signer, nil
}

// SplitFee splits the given amount into the part due to the counterparty and
// the fee collected by the treasury. The fee is rounded down.
func (m *Marketplace) SplitFee(amount uint64) (net, fee uint64) {
	return mathutil.LessFee(amount, uint64(m.Fee))
}

func isValidMarketplaceName(name string) bool {
	return len(name) > 0 && len(name) <= MaxMarketplaceNameLen
}

func isValidFee(fee uint16) bool {
	return fee <= MaxFeeBasisPoints
}
