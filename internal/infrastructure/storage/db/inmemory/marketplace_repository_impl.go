package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

type marketplaceRepositoryImpl struct {
	db *db
}

// newMarketplaceRepositoryImpl returns a new empty MarketplaceRepository.
func newMarketplaceRepositoryImpl(d *db) domain.MarketplaceRepository {
	return &marketplaceRepositoryImpl{d}
}

func (r *marketplaceRepositoryImpl) AddMarketplace(
	ctx context.Context, marketplace *domain.Marketplace,
) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.marketplaces.get(marketplace.Address); ok {
			return domain.ErrMarketplaceAlreadyExists
		}
		r.db.marketplaces.put(marketplace.Address, *marketplace)
		return nil
	})
}

func (r *marketplaceRepositoryImpl) GetMarketplace(
	ctx context.Context, addr address.Address,
) (*domain.Marketplace, error) {
	var marketplace domain.Marketplace
	var found bool
	r.db.read(ctx, func() {
		marketplace, found = r.db.marketplaces.get(addr)
	})
	if !found {
		return nil, domain.ErrMarketplaceNotFound
	}
	return &marketplace, nil
}

func (r *marketplaceRepositoryImpl) GetAllMarketplaces(
	ctx context.Context,
) ([]domain.Marketplace, error) {
	var marketplaces []domain.Marketplace
	r.db.read(ctx, func() {
		marketplaces = r.db.marketplaces.values()
	})
	sort.Slice(marketplaces, func(i, j int) bool {
		return marketplaces[i].Name < marketplaces[j].Name
	})
	return marketplaces, nil
}
