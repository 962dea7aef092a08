package application

import (
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// MakeEscrowRequest holds the terms of a new escrow. The maker deposits
// DepositAmount of MintA and asks for ReceiveAmount of MintB.
type MakeEscrowRequest struct {
	Maker         address.Address
	Seed          uint64
	MintA         address.Address
	MintB         address.Address
	DepositAmount uint64
	ReceiveAmount uint64
}

// TakeEscrowRequest identifies the escrow a taker wants to settle. An optional
// Marketplace name makes the marketplace treasury collect its fee out of the
// amount paid to the maker.
type TakeEscrowRequest struct {
	Taker       address.Address
	Escrow      address.Address
	Marketplace string
}

// RefundEscrowRequest identifies the escrow a maker wants to close.
type RefundEscrowRequest struct {
	Maker  address.Address
	Escrow address.Address
}

// EscrowInfo is an active escrow along with the balance held by its vault.
type EscrowInfo struct {
	domain.Escrow
	VaultAmount uint64
}

// InitMarketplaceRequest ...
type InitMarketplaceRequest struct {
	Admin address.Address
	Name  string
	Fee   uint16
}

// MintRewardsRequest asks to issue Amount units of the rewards mint of the
// named marketplace to Recipient.
type MintRewardsRequest struct {
	Admin     address.Address
	Name      string
	Recipient address.Address
	Amount    uint64
}

// CreateMintRequest ...
type CreateMintRequest struct {
	Payer     address.Address
	Decimals  uint8
	Authority address.Address
}

// MintToRequest asks to issue Amount units of Mint to the associated account
// of Owner.
type MintToRequest struct {
	Authority address.Address
	Mint      address.Address
	Owner     address.Address
	Amount    uint64
}

// AddWebhookRequest subscribes Endpoint to Event. An empty Secret disables
// request signing.
type AddWebhookRequest struct {
	Event    string
	Endpoint string
	Secret   string
}
