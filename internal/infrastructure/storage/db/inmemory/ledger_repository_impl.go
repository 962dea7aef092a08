package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

type accountRepositoryImpl struct {
	db *db
}

// newAccountRepositoryImpl returns a new empty AccountRepository.
func newAccountRepositoryImpl(d *db) domain.AccountRepository {
	return &accountRepositoryImpl{d}
}

func (r *accountRepositoryImpl) GetAccount(
	ctx context.Context, addr address.Address,
) (*domain.Account, error) {
	var account domain.Account
	r.db.read(ctx, func() {
		account = r.getOrZero(addr)
	})
	return &account, nil
}

func (r *accountRepositoryImpl) UpdateAccount(
	ctx context.Context,
	addr address.Address,
	updateFn func(a *domain.Account) (*domain.Account, error),
) error {
	return r.db.write(ctx, func() error {
		account := r.getOrZero(addr)
		updated, err := updateFn(&account)
		if err != nil {
			return err
		}
		r.db.accounts.put(addr, *updated)
		return nil
	})
}

func (r *accountRepositoryImpl) getOrZero(addr address.Address) domain.Account {
	account, ok := r.db.accounts.get(addr)
	if !ok {
		return domain.Account{Address: addr}
	}
	return account
}

type mintRepositoryImpl struct {
	db *db
}

// newMintRepositoryImpl returns a new empty MintRepository.
func newMintRepositoryImpl(d *db) domain.MintRepository {
	return &mintRepositoryImpl{d}
}

func (r *mintRepositoryImpl) AddMint(ctx context.Context, mint *domain.Mint) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.mints.get(mint.Address); ok {
			return domain.ErrMintAlreadyExists
		}
		r.db.mints.put(mint.Address, *mint)
		return nil
	})
}

func (r *mintRepositoryImpl) GetMint(
	ctx context.Context, addr address.Address,
) (*domain.Mint, error) {
	var mint domain.Mint
	var found bool
	r.db.read(ctx, func() {
		mint, found = r.db.mints.get(addr)
	})
	if !found {
		return nil, domain.ErrMintNotFound
	}
	return &mint, nil
}

func (r *mintRepositoryImpl) UpdateMint(
	ctx context.Context,
	addr address.Address,
	updateFn func(m *domain.Mint) (*domain.Mint, error),
) error {
	return r.db.write(ctx, func() error {
		mint, ok := r.db.mints.get(addr)
		if !ok {
			return domain.ErrMintNotFound
		}
		updated, err := updateFn(&mint)
		if err != nil {
			return err
		}
		r.db.mints.put(addr, *updated)
		return nil
	})
}

type tokenAccountRepositoryImpl struct {
	db *db
}

// newTokenAccountRepositoryImpl returns a new empty TokenAccountRepository.
func newTokenAccountRepositoryImpl(d *db) domain.TokenAccountRepository {
	return &tokenAccountRepositoryImpl{d}
}

func (r *tokenAccountRepositoryImpl) AddTokenAccount(
	ctx context.Context, account *domain.TokenAccount,
) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.tokenAccounts.get(account.Address); ok {
			return domain.ErrAccountAlreadyExists
		}
		r.db.tokenAccounts.put(account.Address, *account)
		return nil
	})
}

func (r *tokenAccountRepositoryImpl) GetTokenAccount(
	ctx context.Context, addr address.Address,
) (*domain.TokenAccount, error) {
	var account domain.TokenAccount
	var found bool
	r.db.read(ctx, func() {
		account, found = r.db.tokenAccounts.get(addr)
	})
	if !found {
		return nil, domain.ErrAccountNotFound
	}
	return &account, nil
}

func (r *tokenAccountRepositoryImpl) GetTokenAccountsByOwner(
	ctx context.Context, owner address.Address,
) ([]domain.TokenAccount, error) {
	accounts := make([]domain.TokenAccount, 0)
	r.db.read(ctx, func() {
		for _, a := range r.db.tokenAccounts.values() {
			if a.Owner == owner {
				accounts = append(accounts, a)
			}
		}
	})
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
	return r.db.write(ctx, func() error {
		account, ok := r.db.tokenAccounts.get(addr)
		if !ok {
			return domain.ErrAccountNotFound
		}
		updated, err := updateFn(&account)
		if err != nil {
			return err
		}
		r.db.tokenAccounts.put(addr, *updated)
		return nil
	})
}

func (r *tokenAccountRepositoryImpl) DeleteTokenAccount(
	ctx context.Context, addr address.Address,
) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.tokenAccounts.get(addr); !ok {
			return domain.ErrAccountNotFound
		}
		r.db.tokenAccounts.delete(addr)
		return nil
	})
}
