package dbbadger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/timshannon/badgerhold/v4"
)

const (
	defaultMaxRetries = 10

	retryInitialInterval = 5 * time.Millisecond
	retryMaxInterval     = 250 * time.Millisecond
)

type txKey struct{}

type repoManager struct {
	store      *badgerhold.Store
	maxRetries int

	escrowRepository       domain.EscrowRepository
	marketplaceRepository  domain.MarketplaceRepository
	settlementRepository   domain.SettlementRepository
	accountRepository      domain.AccountRepository
	mintRepository         domain.MintRepository
	tokenAccountRepository domain.TokenAccountRepository
	webhookRepository      domain.WebhookRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// All records share the same store so that a transaction can span every
// repository. An empty dir opens a volatile in-memory store. A transaction
// failing to commit because of a concurrent write is retried at most
// maxRetries times, with jittered exponential backoff between attempts.
func NewRepoManager(
	baseDbDir string, logger badger.Logger, maxRetries int,
) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &repoManager{
		store:                  store,
		maxRetries:             maxRetries,
		escrowRepository:       NewEscrowRepositoryImpl(store),
		marketplaceRepository:  NewMarketplaceRepositoryImpl(store),
		settlementRepository:   NewSettlementRepositoryImpl(store),
		accountRepository:      NewAccountRepositoryImpl(store),
		mintRepository:         NewMintRepositoryImpl(store),
		tokenAccountRepository: NewTokenAccountRepositoryImpl(store),
		webhookRepository:      NewWebhookRepositoryImpl(store),
	}, nil
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
	if _, ok := txFromContext(ctx); ok {
		return handler(ctx)
	}

	var (
		res     interface{}
		attempt int
	)
	op := func() error {
		var err error
		res, err = r.runTransaction(ctx, readOnly, handler)
		if err != nil && !errors.Is(err, badger.ErrConflict) {
			return backoff.Permanent(err)
		}
		return err
	}
	notify := func(_ error, wait time.Duration) {
		attempt++
		log.WithFields(log.Fields{
			"attempt": attempt,
			"wait":    wait.String(),
		}).Debug("db: transaction conflict, retrying")
	}

	if err := backoff.RetryNotify(op, r.newBackOff(ctx), notify); err != nil {
		if errors.Is(err, badger.ErrConflict) {
			return nil, fmt.Errorf("%w: %w", domain.ErrTxConflict, err)
		}
		return nil, err
	}
	return res, nil
}

func (r *repoManager) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = retryInitialInterval
	b.MaxInterval = retryMaxInterval
	b.MaxElapsedTime = 0
	return backoff.WithContext(
		backoff.WithMaxRetries(b, uint64(r.maxRetries)), ctx,
	)
}

func (r *repoManager) runTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := r.store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		return nil, err
	}
	if readOnly {
		return res, nil
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *repoManager) Close() {
	if err := r.store.Close(); err != nil {
		log.WithError(err).Warn("db: failed to close store")
	}
}

func txFromContext(ctx context.Context) (*badger.Txn, bool) {
	tx, ok := ctx.Value(txKey{}).(*badger.Txn)
	return tx, ok
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	var opts badger.Options
	if dbDir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dbDir)
		opts.Compression = options.ZSTD
	}
	opts.Logger = logger

	return badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
}

// The helpers below run the operation within the transaction found in the
// context, if any, otherwise within a new one.

func insert(ctx context.Context, store *badgerhold.Store, key, data interface{}) error {
	if tx, ok := txFromContext(ctx); ok {
		return store.TxInsert(tx, key, data)
	}
	return store.Insert(key, data)
}

func upsert(ctx context.Context, store *badgerhold.Store, key, data interface{}) error {
	if tx, ok := txFromContext(ctx); ok {
		return store.TxUpsert(tx, key, data)
	}
	return store.Upsert(key, data)
}

func get(ctx context.Context, store *badgerhold.Store, key, result interface{}) error {
	if tx, ok := txFromContext(ctx); ok {
		return store.TxGet(tx, key, result)
	}
	return store.Get(key, result)
}

func remove(ctx context.Context, store *badgerhold.Store, key, dataType interface{}) error {
	if tx, ok := txFromContext(ctx); ok {
		return store.TxDelete(tx, key, dataType)
	}
	return store.Delete(key, dataType)
}

func find(
	ctx context.Context, store *badgerhold.Store,
	result interface{}, query *badgerhold.Query,
) error {
	if tx, ok := txFromContext(ctx); ok {
		return store.TxFind(tx, result, query)
	}
	return store.Find(result, query)
}
