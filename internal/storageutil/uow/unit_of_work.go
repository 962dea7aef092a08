package uow

import (
	"context"
	"fmt"
)

// Transactional is a store able to open a transaction over its records.
type Transactional interface {
	Begin() (Tx, error)
}

// Tx represents an all-or-nothing transaction, by committing or rolling back
// a set of read/write operations. Rollback must be a no-op once the
// transaction has been committed.
type Tx interface {
	Commit() error
	Rollback() error
}

// ContextProvider lets different Transactional share the same transaction
// by returning the same key.
type ContextProvider interface {
	ContextKey() interface{}
}

// UnitOfWork allows to run the transactions of multiple stores as one.
type UnitOfWork struct {
	stores []Transactional
}

// NewUnitOfWork returns a new UnitOfWork with the given Transactional stores.
func NewUnitOfWork(stores ...Transactional) *UnitOfWork {
	return &UnitOfWork{stores}
}

// TxFromContext returns the transaction opened by a UnitOfWork for the given
// store, if any.
func TxFromContext(ctx context.Context, store interface{}) (Tx, bool) {
	tx, ok := ctx.Value(contextKey(store)).(Tx)
	return tx, ok
}

// Run begins a transaction for every store and invokes fn with a context
// carrying all of them. The transactions are committed if fn succeeds, or
// rolled back in reverse order if fn returns an error or panics.
func (u *UnitOfWork) Run(
	ctx context.Context, fn func(ctx context.Context) error,
) (err error) {
	txs := make([]Tx, 0, len(u.stores))

	defer func() {
		if err == nil {
			for _, tx := range txs {
				if err = tx.Commit(); err != nil {
					break
				}
			}
		}
		if err == nil {
			return
		}
		for i := len(txs) - 1; i >= 0; i-- {
			if rerr := txs[i].Rollback(); rerr != nil {
				err = fmt.Errorf("%s (rollback: %s)", err, rerr)
			}
		}
	}()

	defer func() {
		// panicking returns an error that causes txs rollback
		if rec := recover(); rec != nil {
			err = fmt.Errorf("recovered: %v", rec)
		}
	}()

	seen := make(map[interface{}]struct{})
	for _, s := range u.stores {
		key := contextKey(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		tx, err := s.Begin()
		if err != nil {
			return err
		}
		txs = append(txs, tx)
		ctx = context.WithValue(ctx, key, tx)
	}

	return fn(ctx)
}

type txKey struct {
	store interface{}
}

func contextKey(store interface{}) interface{} {
	if cp, ok := store.(ContextProvider); ok {
		return txKey{cp.ContextKey()}
	}
	return txKey{store}
}
