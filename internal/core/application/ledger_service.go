package application

import (
	"context"
	"crypto/ed25519"
	"errors"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// LedgerService exposes the provisioning primitives of the token ledger:
// funding identities, creating mints and accounts, issuing tokens.
type LedgerService interface {
	// Airdrop credits lamports to the given address and returns the new
	// balance.
	Airdrop(ctx context.Context, addr address.Address, lamports uint64) (uint64, error)
	// CreateMint creates a mint at a fresh address.
	CreateMint(ctx context.Context, req CreateMintRequest) (*domain.Mint, error)
	// CreateTokenAccount creates the associated account of owner for the
	// given mint.
	CreateTokenAccount(
		ctx context.Context, payer, mint, owner address.Address,
	) (*domain.TokenAccount, error)
	// MintTo issues new tokens to the associated account of owner, creating
	// it if needed at the authority's expense.
	MintTo(ctx context.Context, req MintToRequest) (*domain.TokenAccount, error)
	// GetBalance returns the amount held by the associated account of owner,
	// zero if it does not exist.
	GetBalance(ctx context.Context, owner, mint address.Address) (uint64, error)
	GetLamports(ctx context.Context, addr address.Address) (uint64, error)
	GetTokenAccount(
		ctx context.Context, addr address.Address,
	) (*domain.TokenAccount, error)
	GetMint(ctx context.Context, addr address.Address) (*domain.Mint, error)
}

type ledgerService struct {
	repoManager ports.RepoManager
	ledger      ports.TokenLedger
}

// NewLedgerService is a constructor function for LedgerService.
func NewLedgerService(
	repoManager ports.RepoManager, ledger ports.TokenLedger,
) LedgerService {
	return &ledgerService{repoManager, ledger}
}

func (s *ledgerService) Airdrop(
	ctx context.Context, addr address.Address, lamports uint64,
) (uint64, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if err := s.ledger.Airdrop(ctx, addr, lamports); err != nil {
				return nil, err
			}
			return s.ledger.GetLamports(ctx, addr)
		},
	)
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (s *ledgerService) CreateMint(
	ctx context.Context, req CreateMintRequest,
) (*domain.Mint, error) {
	payer, err := domain.NewUserSigner(req.Payer)
	if err != nil {
		return nil, err
	}
	mintAddr, err := newMintAddress()
	if err != nil {
		return nil, err
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return s.ledger.CreateMint(
				ctx, payer, mintAddr, req.Decimals, req.Authority,
			)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Mint), nil
}

func (s *ledgerService) CreateTokenAccount(
	ctx context.Context, payer, mint, owner address.Address,
) (*domain.TokenAccount, error) {
	signer, err := domain.NewUserSigner(payer)
	if err != nil {
		return nil, err
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return s.ledger.CreateAssociatedAccount(ctx, signer, mint, owner)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.TokenAccount), nil
}

func (s *ledgerService) MintTo(
	ctx context.Context, req MintToRequest,
) (*domain.TokenAccount, error) {
	authority, err := domain.NewUserSigner(req.Authority)
	if err != nil {
		return nil, err
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			account, err := s.ledger.GetOrCreateAssociatedAccount(
				ctx, authority, req.Mint, req.Owner,
			)
			if err != nil {
				return nil, err
			}
			if err := s.ledger.MintTo(
				ctx, req.Mint, account.Address, req.Amount, authority,
			); err != nil {
				return nil, err
			}
			return s.ledger.GetAccount(ctx, account.Address)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.TokenAccount), nil
}

func (s *ledgerService) GetBalance(
	ctx context.Context, owner, mint address.Address,
) (uint64, error) {
	addr, err := domain.AssociatedTokenAddress(owner, mint)
	if err != nil {
		return 0, err
	}
	account, err := s.GetTokenAccount(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return account.Amount, nil
}

func (s *ledgerService) GetLamports(
	ctx context.Context, addr address.Address,
) (uint64, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.ledger.GetLamports(ctx, addr)
		},
	)
	if err != nil {
		return 0, err
	}
	return res.(uint64), nil
}

func (s *ledgerService) GetTokenAccount(
	ctx context.Context, addr address.Address,
) (*domain.TokenAccount, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.ledger.GetAccount(ctx, addr)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.TokenAccount), nil
}

func (s *ledgerService) GetMint(
	ctx context.Context, addr address.Address,
) (*domain.Mint, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.ledger.GetMint(ctx, addr)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Mint), nil
}

// newMintAddress returns the public key of a throwaway keypair, so that mints
// never collide with derived addresses.
func newMintAddress() (address.Address, error) {
	pubkey, _, err := ed25519.GenerateKey(nil)
	if err != nil {
		return address.Address{}, err
	}
	return address.NewFromPublicKey(pubkey)
}
