package inmemory

import (
	"context"
	"fmt"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

type settlementRepositoryImpl struct {
	db *db
}

// newSettlementRepositoryImpl returns a new empty SettlementRepository.
func newSettlementRepositoryImpl(d *db) domain.SettlementRepository {
	return &settlementRepositoryImpl{d}
}

func (r *settlementRepositoryImpl) AddSettlement(
	ctx context.Context, settlement *domain.Settlement,
) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.settlements.get(settlement.ID); ok {
			return fmt.Errorf("settlement %s already exists", settlement.ID)
		}
		r.db.settlements.put(settlement.ID, *settlement)
		return nil
	})
}

func (r *settlementRepositoryImpl) GetSettlementsByEscrow(
	ctx context.Context, escrow address.Address,
) ([]domain.Settlement, error) {
	settlements := make([]domain.Settlement, 0)
	r.db.read(ctx, func() {
		for _, s := range r.db.settlements.values() {
			if s.Escrow == escrow {
				settlements = append(settlements, s)
			}
		}
	})
	sortSettlements(settlements)
	return settlements, nil
}

func (r *settlementRepositoryImpl) GetAllSettlements(
	ctx context.Context,
) ([]domain.Settlement, error) {
	var settlements []domain.Settlement
	r.db.read(ctx, func() {
		settlements = r.db.settlements.values()
	})
	sortSettlements(settlements)
	return settlements, nil
}

func sortSettlements(settlements []domain.Settlement) {
	sort.SliceStable(settlements, func(i, j int) bool {
		if settlements[i].Timestamp == settlements[j].Timestamp {
			return settlements[i].ID < settlements[j].ID
		}
		return settlements[i].Timestamp < settlements[j].Timestamp
	})
}
