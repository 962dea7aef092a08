package domain

import (
	"context"

	"github.com/tdex-network/tdex-custody/pkg/address"
)

// AccountRepository is the abstraction for any kind of database intended to
// persist native balances.
type AccountRepository interface {
	// GetAccount returns the native account of the given address. Addresses
	// never funded have a zero balance, so this never fails with not found.
	GetAccount(ctx context.Context, addr address.Address) (*Account, error)
	// UpdateAccount commits multiple changes to the same account in a
	// transactional way, creating it if missing.
	UpdateAccount(
		ctx context.Context,
		addr address.Address,
		updateFn func(a *Account) (*Account, error),
	) error
}

// MintRepository is the abstraction for any kind of database intended to
// persist Mints.
type MintRepository interface {
	// AddMint stores a new mint, failing with ErrMintAlreadyExists if the
	// address is taken.
	AddMint(ctx context.Context, mint *Mint) error
	// GetMint returns the mint with the given address.
	GetMint(ctx context.Context, addr address.Address) (*Mint, error)
	// UpdateMint commits multiple changes to the same mint in a
	// transactional way.
	UpdateMint(
		ctx context.Context,
		addr address.Address,
		updateFn func(m *Mint) (*Mint, error),
	) error
}

// TokenAccountRepository is the abstraction for any kind of database intended
// to persist TokenAccounts.
type TokenAccountRepository interface {
	// AddTokenAccount stores a new token account, failing with
	// ErrAccountAlreadyExists if the address is taken.
	AddTokenAccount(ctx context.Context, account *TokenAccount) error
	// GetTokenAccount returns the token account with the given address.
	GetTokenAccount(
		ctx context.Context, addr address.Address,
	) (*TokenAccount, error)
	// GetTokenAccountsByOwner returns all token accounts of the given owner.
	GetTokenAccountsByOwner(
		ctx context.Context, owner address.Address,
	) ([]TokenAccount, error)
	// UpdateTokenAccount commits multiple changes to the same token account
	// in a transactional way.
	UpdateTokenAccount(
		ctx context.Context,
		addr address.Address,
		updateFn func(a *TokenAccount) (*TokenAccount, error),
	) error
	// DeleteTokenAccount removes the token account from the repository.
	DeleteTokenAccount(ctx context.Context, addr address.Address) error
}
