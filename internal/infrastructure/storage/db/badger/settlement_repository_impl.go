package dbbadger

import (
	"context"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type settlementRepositoryImpl struct {
	store *badgerhold.Store
}

// NewSettlementRepositoryImpl returns a new SettlementRepository backed by
// the given badgerhold store.
func NewSettlementRepositoryImpl(
	store *badgerhold.Store,
) domain.SettlementRepository {
	return &settlementRepositoryImpl{store}
}

func (r *settlementRepositoryImpl) AddSettlement(
	ctx context.Context, settlement *domain.Settlement,
) error {
	return insert(ctx, r.store, settlement.ID, newSettlementRecord(*settlement))
}

func (r *settlementRepositoryImpl) GetSettlementsByEscrow(
	ctx context.Context, escrow address.Address,
) ([]domain.Settlement, error) {
	return r.findSettlements(
		ctx, badgerhold.Where("Escrow").Eq(escrow.String()),
	)
}

func (r *settlementRepositoryImpl) GetAllSettlements(
	ctx context.Context,
) ([]domain.Settlement, error) {
	return r.findSettlements(ctx, nil)
}

func (r *settlementRepositoryImpl) findSettlements(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Settlement, error) {
	var records []settlementRecord
	if err := find(ctx, r.store, &records, query); err != nil {
		return nil, err
	}

	settlements := make([]domain.Settlement, 0, len(records))
	for _, rec := range records {
		settlements = append(settlements, rec.toDomain())
	}
	sort.SliceStable(settlements, func(i, j int) bool {
		if settlements[i].Timestamp == settlements[j].Timestamp {
			return settlements[i].ID < settlements[j].ID
		}
		return settlements[i].Timestamp < settlements[j].Timestamp
	})
	return settlements, nil
}
