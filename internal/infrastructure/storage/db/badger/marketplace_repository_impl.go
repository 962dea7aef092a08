package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type marketplaceRepositoryImpl struct {
	store *badgerhold.Store
}

// NewMarketplaceRepositoryImpl returns a new MarketplaceRepository backed by
// the given badgerhold store.
func NewMarketplaceRepositoryImpl(
	store *badgerhold.Store,
) domain.MarketplaceRepository {
	return &marketplaceRepositoryImpl{store}
}

func (r *marketplaceRepositoryImpl) AddMarketplace(
	ctx context.Context, marketplace *domain.Marketplace,
) error {
	key := marketplace.Address.String()
	if err := insert(
		ctx, r.store, key, newMarketplaceRecord(*marketplace),
	); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrMarketplaceAlreadyExists
		}
		return err
	}
	return nil
}

func (r *marketplaceRepositoryImpl) GetMarketplace(
	ctx context.Context, addr address.Address,
) (*domain.Marketplace, error) {
	var record marketplaceRecord
	if err := get(ctx, r.store, addr.String(), &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrMarketplaceNotFound
		}
		return nil, err
	}
	marketplace := record.toDomain()
	return &marketplace, nil
}

func (r *marketplaceRepositoryImpl) GetAllMarketplaces(
	ctx context.Context,
) ([]domain.Marketplace, error) {
	var records []marketplaceRecord
	if err := find(ctx, r.store, &records, nil); err != nil {
		return nil, err
	}

	marketplaces := make([]domain.Marketplace, 0, len(records))
	for _, rec := range records {
		marketplaces = append(marketplaces, rec.toDomain())
	}
	sort.Slice(marketplaces, func(i, j int) bool {
		return marketplaces[i].Name < marketplaces[j].Name
	})
	return marketplaces, nil
}
