package ports

import (
	"context"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
)

// RepoManager interface defines the methods to access every repository and to
// run a set of read/write operations over them as a single all-or-nothing
// transaction.
type RepoManager interface {
	EscrowRepository() domain.EscrowRepository
	MarketplaceRepository() domain.MarketplaceRepository
	SettlementRepository() domain.SettlementRepository
	AccountRepository() domain.AccountRepository
	MintRepository() domain.MintRepository
	TokenAccountRepository() domain.TokenAccountRepository
	WebhookRepository() domain.WebhookRepository

	// RunTransaction invokes the handler with a context bound to a new
	// transaction. Every repository call made with that context is either
	// committed if the handler succeeds, or discarded otherwise. Concurrent
	// transactions writing the same records are serialized, so the handler
	// may be invoked more than once and must not have side effects outside
	// of the repositories.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
