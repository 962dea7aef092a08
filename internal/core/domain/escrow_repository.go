package domain

import (
	"context"

	"github.com/tdex-network/tdex-custody/pkg/address"
)

// EscrowRepository is the abstraction for any kind of database intended to
// persist Escrows. Records are physically removed once taken or refunded.
type EscrowRepository interface {
	// AddEscrow stores a new escrow, failing with ErrEscrowAlreadyExists if
	// one is already stored at the same address.
	AddEscrow(ctx context.Context, escrow *Escrow) error
	// GetEscrow returns the escrow stored at the given address.
	GetEscrow(ctx context.Context, addr address.Address) (*Escrow, error)
	// GetEscrowsByMaker returns all the active escrows of the given maker.
	GetEscrowsByMaker(
		ctx context.Context, maker address.Address,
	) ([]Escrow, error)
	// GetAllEscrows returns all the active escrows.
	GetAllEscrows(ctx context.Context) ([]Escrow, error)
	// DeleteEscrow removes the escrow, failing with ErrEscrowNotFound if
	// there is none at the given address.
	DeleteEscrow(ctx context.Context, addr address.Address) error
}
