package ports

import (
	"context"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// TokenLedger is the asset-transfer collaborator of the custody system. Every
// method must be called with a context obtained from
// RepoManager.RunTransaction so that a sequence of calls is applied
// atomically.
type TokenLedger interface {
	// Airdrop credits native lamports to the given address.
	Airdrop(ctx context.Context, addr address.Address, lamports uint64) error
	// GetLamports returns the native balance of the given address.
	GetLamports(ctx context.Context, addr address.Address) (uint64, error)
	// Allocate debits the storage deposit for a record of the given space from
	// the payer and returns the deposited amount.
	Allocate(ctx context.Context, payer domain.Signer, space int) (uint64, error)
	// Release returns a storage deposit to the given destination.
	Release(ctx context.Context, destination address.Address, lamports uint64) error

	// CreateMint provisions a new mint at the given address.
	CreateMint(
		ctx context.Context, payer domain.Signer,
		mint address.Address, decimals uint8, authority address.Address,
	) (*domain.Mint, error)
	// CreateAccount provisions a new token account at the given address.
	CreateAccount(
		ctx context.Context, payer domain.Signer,
		account, mint, owner address.Address,
	) (*domain.TokenAccount, error)
	// CreateAssociatedAccount provisions the associated token account of owner
	// for the given mint.
	CreateAssociatedAccount(
		ctx context.Context, payer domain.Signer, mint, owner address.Address,
	) (*domain.TokenAccount, error)
	// GetOrCreateAssociatedAccount is like CreateAssociatedAccount but returns
	// the existing account if any.
	GetOrCreateAssociatedAccount(
		ctx context.Context, payer domain.Signer, mint, owner address.Address,
	) (*domain.TokenAccount, error)
	GetMint(ctx context.Context, mint address.Address) (*domain.Mint, error)
	GetAccount(
		ctx context.Context, account address.Address,
	) (*domain.TokenAccount, error)

	// TransferChecked moves amount units from one token account to another.
	// It fails unless the authority is the owner of the source account, both
	// accounts hold the given mint and decimals match the mint.
	TransferChecked(
		ctx context.Context, from, to, mint address.Address,
		amount uint64, decimals uint8, authority domain.Signer,
	) error
	// MintTo issues new units of the mint to the given token account. It
	// fails unless the authority is the mint authority.
	MintTo(
		ctx context.Context, mint, to address.Address,
		amount uint64, authority domain.Signer,
	) error
	// CloseAccount deletes an empty token account and returns its storage
	// deposit to the destination. It fails unless the authority is the owner.
	CloseAccount(
		ctx context.Context, account, destination address.Address,
		authority domain.Signer,
	) error
}
