package domain

import (
	"context"

	"github.com/tdex-network/tdex-custody/pkg/address"
)

// MarketplaceRepository is the abstraction for any kind of database intended
// to persist Marketplaces.
type MarketplaceRepository interface {
	// AddMarketplace stores a new marketplace, failing with
	// ErrMarketplaceAlreadyExists if its address is taken.
	AddMarketplace(ctx context.Context, marketplace *Marketplace) error
	// GetMarketplace returns the marketplace stored at the given address.
	GetMarketplace(
		ctx context.Context, addr address.Address,
	) (*Marketplace, error)
	// GetAllMarketplaces returns all the marketplaces.
	GetAllMarketplaces(ctx context.Context) ([]Marketplace, error)
}
