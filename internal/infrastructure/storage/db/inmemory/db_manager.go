package inmemory

import (
	"context"
	"errors"
	"sync"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/internal/storageutil/uow"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// ErrReadOnlyTx is returned when writing within a read-only transaction.
var ErrReadOnlyTx = errors.New("write operation in read-only transaction")

type txKey struct{}

type txInfo struct {
	readOnly bool
}

// db is the state shared by all the repositories of a RepoManager. Every
// transaction holds the lock for its whole duration, so that transactions
// never interleave.
type db struct {
	lock *sync.RWMutex

	escrows       *table[address.Address, domain.Escrow]
	marketplaces  *table[address.Address, domain.Marketplace]
	settlements   *table[string, domain.Settlement]
	accounts      *table[address.Address, domain.Account]
	mints         *table[address.Address, domain.Mint]
	tokenAccounts *table[address.Address, domain.TokenAccount]
	webhooks      *table[string, domain.Webhook]
}

func (d *db) read(ctx context.Context, fn func()) {
	if _, ok := ctx.Value(txKey{}).(txInfo); ok {
		fn()
		return
	}
	d.lock.RLock()
	defer d.lock.RUnlock()
	fn()
}

func (d *db) write(ctx context.Context, fn func() error) error {
	if info, ok := ctx.Value(txKey{}).(txInfo); ok {
		if info.readOnly {
			return ErrReadOnlyTx
		}
		return fn()
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	return fn()
}

type repoManager struct {
	db   *db
	unit *uow.UnitOfWork

	escrowRepository       domain.EscrowRepository
	marketplaceRepository  domain.MarketplaceRepository
	settlementRepository   domain.SettlementRepository
	accountRepository      domain.AccountRepository
	mintRepository         domain.MintRepository
	tokenAccountRepository domain.TokenAccountRepository
	webhookRepository      domain.WebhookRepository
}

// NewRepoManager returns a RepoManager whose records are kept in memory and
// lost on Close.
func NewRepoManager() ports.RepoManager {
	d := &db{
		lock:          &sync.RWMutex{},
		escrows:       newTable[address.Address, domain.Escrow](),
		marketplaces:  newTable[address.Address, domain.Marketplace](),
		settlements:   newTable[string, domain.Settlement](),
		accounts:      newTable[address.Address, domain.Account](),
		mints:         newTable[address.Address, domain.Mint](),
		tokenAccounts: newTable[address.Address, domain.TokenAccount](),
		webhooks:      newTable[string, domain.Webhook](),
	}

	return &repoManager{
		db: d,
		unit: uow.NewUnitOfWork(
			d.escrows, d.marketplaces, d.settlements,
			d.accounts, d.mints, d.tokenAccounts, d.webhooks,
		),
		escrowRepository:       newEscrowRepositoryImpl(d),
		marketplaceRepository:  newMarketplaceRepositoryImpl(d),
		settlementRepository:   newSettlementRepositoryImpl(d),
		accountRepository:      newAccountRepositoryImpl(d),
		mintRepository:         newMintRepositoryImpl(d),
		tokenAccountRepository: newTokenAccountRepositoryImpl(d),
		webhookRepository:      newWebhookRepositoryImpl(d),
	}
}

func (r *repoManager) EscrowRepository() domain.EscrowRepository {
	return r.escrowRepository
}

func (r *repoManager) MarketplaceRepository() domain.MarketplaceRepository {
	return r.marketplaceRepository
}

func (r *repoManager) SettlementRepository() domain.SettlementRepository {
	return r.settlementRepository
}

func (r *repoManager) AccountRepository() domain.AccountRepository {
	return r.accountRepository
}

func (r *repoManager) MintRepository() domain.MintRepository {
	return r.mintRepository
}

func (r *repoManager) TokenAccountRepository() domain.TokenAccountRepository {
	return r.tokenAccountRepository
}

func (r *repoManager) WebhookRepository() domain.WebhookRepository {
	return r.webhookRepository
}

func (r *repoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	// Nested transactions join the outer one.
	if _, ok := ctx.Value(txKey{}).(txInfo); ok {
		return handler(ctx)
	}

	if readOnly {
		r.db.lock.RLock()
		defer r.db.lock.RUnlock()

		return handler(context.WithValue(ctx, txKey{}, txInfo{readOnly: true}))
	}

	r.db.lock.Lock()
	defer r.db.lock.Unlock()

	var res interface{}
	err := r.unit.Run(
		context.WithValue(ctx, txKey{}, txInfo{}),
		func(ctx context.Context) error {
			var err error
			res, err = handler(ctx)
			return err
		},
	)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *repoManager) Close() {}
