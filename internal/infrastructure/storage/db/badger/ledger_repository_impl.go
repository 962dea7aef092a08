package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/timshannon/badgerhold/v4"
)

type accountRepositoryImpl struct {
	store *badgerhold.Store
}

// NewAccountRepositoryImpl returns a new AccountRepository backed by the
// given badgerhold store.
func NewAccountRepositoryImpl(store *badgerhold.Store) domain.AccountRepository {
	return &accountRepositoryImpl{store}
}

func (r *accountRepositoryImpl) GetAccount(
	ctx context.Context, addr address.Address,
) (*domain.Account, error) {
	var record accountRecord
	if err := get(ctx, r.store, addr.String(), &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return &domain.Account{Address: addr}, nil
		}
		return nil, err
	}
	return &domain.Account{Address: addr, Lamports: record.Lamports}, nil
}

func (r *accountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	addr address.Address,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	account, err := r.GetAccount(ctx, addr)
	if err != nil {
		return err
	}
	updated, err := updateFn(account)
	if err != nil {
		return err
	}
	record := accountRecord{addr.String(), updated.Lamports}
	return upsert(ctx, r.store, record.Address, record)
}

type mintRepositoryImpl struct {
	store *badgerhold.Store
}

// NewMintRepositoryImpl returns a new MintRepository backed by the given
// badgerhold store.
func NewMintRepositoryImpl(store *badgerhold.Store) domain.MintRepository {
	return &mintRepositoryImpl{store}
}

func (r *mintRepositoryImpl) AddMint(ctx context.Context, mint *domain.Mint) error {
	if err := insert(
		ctx, r.store, mint.Address.String(), newMintRecord(*mint),
	); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrMintAlreadyExists
		}
		return err
	}
	return nil
}

func (r *mintRepositoryImpl) GetMint(
	ctx context.Context, addr address.Address,
) (*domain.Mint, error) {
	var record mintRecord
	if err := get(ctx, r.store, addr.String(), &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrMintNotFound
		}
		return nil, err
	}
	mint := record.toDomain()
	return &mint, nil
}

func (r *mintRepositoryImpl) UpdateMint(
	ctx context.Context,
	addr address.Address,
	updateFn func(m *domain.Mint) (*domain.Mint, error),
) error {
	mint, err := r.GetMint(ctx, addr)
	if err != nil {
		return err
	}
	updated, err := updateFn(mint)
	if err != nil {
		return err
	}
	return upsert(ctx, r.store, addr.String(), newMintRecord(*updated))
}

type tokenAccountRepositoryImpl struct {
	store *badgerhold.Store
}

// NewTokenAccountRepositoryImpl returns a new TokenAccountRepository backed
// by the given badgerhold store.
func NewTokenAccountRepositoryImpl(
	store *badgerhold.Store,
) domain.TokenAccountRepository {
	return &tokenAccountRepositoryImpl{store}
}

func (r *tokenAccountRepositoryImpl) AddTokenAccount(
	ctx context.Context, account *domain.TokenAccount,
) error {
	if err := insert(
		ctx, r.store, account.Address.String(), newTokenAccountRecord(*account),
	); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrAccountAlreadyExists
		}
		return err
	}
	return nil
}

func (r *tokenAccountRepositoryImpl) GetTokenAccount(
	ctx context.Context, addr address.Address,
) (*domain.TokenAccount, error) {
	var record tokenAccountRecord
	if err := get(ctx, r.store, addr.String(), &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	account := record.toDomain()
	return &account, nil
}

func (r *tokenAccountRepositoryImpl) GetTokenAccountsByOwner(
	ctx context.Context, owner address.Address,
) ([]domain.TokenAccount, error) {
	var records []tokenAccountRecord
	query := badgerhold.Where("Owner").Eq(owner.String())
	if err := find(ctx, r.store, &records, query); err != nil {
		return nil, err
	}

	accounts := make([]domain.TokenAccount, 0, len(records))
	for _, rec := range records {
		accounts = append(accounts, rec.toDomain())
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Address.String() < accounts[j].Address.String()
	})
	return accounts, nil
}

func (r *tokenAccountRepositoryImpl) UpdateTokenAccount(
	ctx context.Context,
	addr address.Address,
	updateFn func(a *domain.TokenAccount) (*domain.TokenAccount, error),
) error {
	account, err := r.GetTokenAccount(ctx, addr)
	if err != nil {
		return err
	}
	updated, err := updateFn(account)
	if err != nil {
		return err
	}
	return upsert(ctx, r.store, addr.String(), newTokenAccountRecord(*updated))
}

func (r *tokenAccountRepositoryImpl) DeleteTokenAccount(
	ctx context.Context, addr address.Address,
) error {
	if _, err := r.GetTokenAccount(ctx, addr); err != nil {
		return err
	}
	return remove(ctx, r.store, addr.String(), tokenAccountRecord{})
}
