package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

type escrowRepositoryImpl struct {
	db *db
}

// newEscrowRepositoryImpl returns a new empty EscrowRepository.
func newEscrowRepositoryImpl(d *db) domain.EscrowRepository {
	return &escrowRepositoryImpl{d}
}

func (r *escrowRepositoryImpl) AddEscrow(
	ctx context.Context, escrow *domain.Escrow,
) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.escrows.get(escrow.Address); ok {
			return domain.ErrEscrowAlreadyExists
		}
		r.db.escrows.put(escrow.Address, *escrow)
		return nil
	})
}

func (r *escrowRepositoryImpl) GetEscrow(
	ctx context.Context, addr address.Address,
) (*domain.Escrow, error) {
	var escrow domain.Escrow
	var found bool
	r.db.read(ctx, func() {
		escrow, found = r.db.escrows.get(addr)
	})
	if !found {
		return nil, domain.ErrEscrowNotFound
	}
	return &escrow, nil
}

func (r *escrowRepositoryImpl) GetEscrowsByMaker(
	ctx context.Context, maker address.Address,
) ([]domain.Escrow, error) {
	escrows := make([]domain.Escrow, 0)
	r.db.read(ctx, func() {
		for _, e := range r.db.escrows.values() {
			if e.Maker == maker {
				escrows = append(escrows, e)
			}
		}
	})
	sortEscrows(escrows)
	return escrows, nil
}

func (r *escrowRepositoryImpl) GetAllEscrows(
	ctx context.Context,
) ([]domain.Escrow, error) {
	var escrows []domain.Escrow
	r.db.read(ctx, func() {
		escrows = r.db.escrows.values()
	})
	sortEscrows(escrows)
	return escrows, nil
}

func (r *escrowRepositoryImpl) DeleteEscrow(
	ctx context.Context, addr address.Address,
) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.escrows.get(addr); !ok {
			return domain.ErrEscrowNotFound
		}
		r.db.escrows.delete(addr)
		return nil
	})
}

func sortEscrows(escrows []domain.Escrow) {
	sort.SliceStable(escrows, func(i, j int) bool {
		if escrows[i].CreatedAt == escrows[j].CreatedAt {
			return escrows[i].Address.String() < escrows[j].Address.String()
		}
		return escrows[i].CreatedAt < escrows[j].CreatedAt
	})
}
