package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type escrowRepositoryImpl struct {
	store *badgerhold.Store
}

// NewEscrowRepositoryImpl returns a new EscrowRepository backed by the given
// badgerhold store.
func NewEscrowRepositoryImpl(store *badgerhold.Store) domain.EscrowRepository {
	return &escrowRepositoryImpl{store}
}

func (r *escrowRepositoryImpl) AddEscrow(
	ctx context.Context, escrow *domain.Escrow,
) error {
	key := escrow.Address.String()
	if err := insert(ctx, r.store, key, newEscrowRecord(*escrow)); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrEscrowAlreadyExists
		}
		return err
	}
	return nil
}

func (r *escrowRepositoryImpl) GetEscrow(
	ctx context.Context, addr address.Address,
) (*domain.Escrow, error) {
	var record escrowRecord
	if err := get(ctx, r.store, addr.String(), &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrEscrowNotFound
		}
		return nil, err
	}
	escrow := record.toDomain()
	return &escrow, nil
}

func (r *escrowRepositoryImpl) GetEscrowsByMaker(
	ctx context.Context, maker address.Address,
) ([]domain.Escrow, error) {
	return r.findEscrows(ctx, badgerhold.Where("Maker").Eq(maker.String()))
}

func (r *escrowRepositoryImpl) GetAllEscrows(
	ctx context.Context,
) ([]domain.Escrow, error) {
	return r.findEscrows(ctx, nil)
}

func (r *escrowRepositoryImpl) DeleteEscrow(
	ctx context.Context, addr address.Address,
) error {
	if _, err := r.GetEscrow(ctx, addr); err != nil {
		return err
	}
	return remove(ctx, r.store, addr.String(), escrowRecord{})
}

func (r *escrowRepositoryImpl) findEscrows(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Escrow, error) {
	var records []escrowRecord
	if err := find(ctx, r.store, &records, query); err != nil {
		return nil, err
	}

	escrows := make([]domain.Escrow, 0, len(records))
	for _, rec := range records {
		escrows = append(escrows, rec.toDomain())
	}
	sort.SliceStable(escrows, func(i, j int) bool {
		if escrows[i].CreatedAt == escrows[j].CreatedAt {
			return escrows[i].Address.String() < escrows[j].Address.String()
		}
		return escrows[i].CreatedAt < escrows[j].CreatedAt
	})
	return escrows, nil
}
