package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// Settlement is the receipt of an escrow closed either by a take or a refund.
type Settlement struct {
	ID          string
	Escrow      address.Address
	Maker       address.Address
	Taker       address.Address
	Marketplace address.Address
	MintA       address.Address
	MintB       address.Address
	Seed        uint64
	// Amount of MintA released from the vault.
	AmountA uint64
	// Amount of MintB paid by the taker, fee included.
	AmountB uint64
	// Part of AmountB collected by the marketplace treasury.
	Fee       uint64
	Status    EscrowStatus
	Timestamp int64
}

// NewSettlement returns a receipt for the given escrow. Taker and amounts are
// filled by the caller.
func NewSettlement(escrow *Escrow, status EscrowStatus) *Settlement {
	return &Settlement{
		ID:        uuid.New().String(),
		Escrow:    escrow.Address,
		Maker:     escrow.Maker,
		MintA:     escrow.MintA,
		MintB:     escrow.MintB,
		Seed:      escrow.Seed,
		Status:    status,
		Timestamp: time.Now().UnixNano(),
	}
}

// SettlementRepository is the abstraction for any kind of database intended
// to persist Settlements.
type SettlementRepository interface {
	// AddSettlement stores a new settlement.
	AddSettlement(ctx context.Context, settlement *Settlement) error
	// GetSettlementsByEscrow returns the settlements of the given escrow
	// address, oldest first.
	GetSettlementsByEscrow(
		ctx context.Context, escrow address.Address,
	) ([]Settlement, error)
	// GetAllSettlements returns all settlements, oldest first.
	GetAllSettlements(ctx context.Context) ([]Settlement, error)
}
