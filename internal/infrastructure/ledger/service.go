package ledger

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

type service struct {
	repoManager ports.RepoManager
}

// NewService returns a TokenLedger that keeps balances, mints and token
// accounts in the repositories of the given manager.
func NewService(repoManager ports.RepoManager) ports.TokenLedger {
	return &service{repoManager}
}

func (s *service) Airdrop(
	ctx context.Context, addr address.Address, lamports uint64,
) error {
	if lamports == 0 {
		return domain.ErrInvalidAmount
	}
	return s.credit(ctx, addr, lamports)
}

func (s *service) GetLamports(
	ctx context.Context, addr address.Address,
) (uint64, error) {
	account, err := s.repoManager.AccountRepository().GetAccount(ctx, addr)
	if err != nil {
		return 0, err
	}
	return account.Lamports, nil
}

func (s *service) Allocate(
	ctx context.Context, payer domain.Signer, space int,
) (uint64, error) {
	rent := domain.RentExemptMinimum(space)
	if err := s.repoManager.AccountRepository().UpdateAccount(
		ctx, payer.Address(),
		func(a *domain.Account) (*domain.Account, error) {
			if err := a.Debit(rent); err != nil {
				return nil, err
			}
			return a, nil
		},
	); err != nil {
		return 0, err
	}
	return rent, nil
}

func (s *service) Release(
	ctx context.Context, destination address.Address, lamports uint64,
) error {
	if lamports == 0 {
		return nil
	}
	return s.credit(ctx, destination, lamports)
}

func (s *service) CreateMint(
	ctx context.Context, payer domain.Signer,
	addr address.Address, decimals uint8, authority address.Address,
) (*domain.Mint, error) {
	if _, err := s.repoManager.MintRepository().GetMint(ctx, addr); err == nil {
		return nil, domain.ErrMintAlreadyExists
	} else if !errors.Is(err, domain.ErrMintNotFound) {
		return nil, err
	}

	rent, err := s.Allocate(ctx, payer, domain.MintSpace)
	if err != nil {
		return nil, err
	}

	mint := domain.NewMint(addr, decimals, authority)
	mint.Lamports = rent
	if err := s.repoManager.MintRepository().AddMint(ctx, mint); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"mint":      addr.String(),
		"authority": authority.String(),
		"decimals":  decimals,
	}).Debug("ledger: created mint")
	return mint, nil
}

func (s *service) CreateAccount(
	ctx context.Context, payer domain.Signer,
	addr, mint, owner address.Address,
) (*domain.TokenAccount, error) {
	if _, err := s.repoManager.MintRepository().GetMint(ctx, mint); err != nil {
		return nil, err
	}
	if _, err := s.repoManager.TokenAccountRepository().GetTokenAccount(
		ctx, addr,
	); err == nil {
		return nil, domain.ErrAccountAlreadyExists
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	rent, err := s.Allocate(ctx, payer, domain.TokenAccountSpace)
	if err != nil {
		return nil, err
	}

	account := domain.NewTokenAccount(addr, mint, owner)
	account.Lamports = rent
	if err := s.repoManager.TokenAccountRepository().AddTokenAccount(
		ctx, account,
	); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"account": addr.String(),
		"mint":    mint.String(),
		"owner":   owner.String(),
	}).Debug("ledger: created token account")
	return account, nil
}

func (s *service) CreateAssociatedAccount(
	ctx context.Context, payer domain.Signer, mint, owner address.Address,
) (*domain.TokenAccount, error) {
	addr, err := domain.AssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}
	return s.CreateAccount(ctx, payer, addr, mint, owner)
}

func (s *service) GetOrCreateAssociatedAccount(
	ctx context.Context, payer domain.Signer, mint, owner address.Address,
) (*domain.TokenAccount, error) {
	addr, err := domain.AssociatedTokenAddress(owner, mint)
	if err != nil {
		return nil, err
	}

	account, err := s.repoManager.TokenAccountRepository().GetTokenAccount(
		ctx, addr,
	)
	if err == nil {
		if account.Mint != mint || account.Owner != owner {
			return nil, domain.ErrMintMismatch
		}
		return account, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	return s.CreateAccount(ctx, payer, addr, mint, owner)
}

func (s *service) GetMint(
	ctx context.Context, mint address.Address,
) (*domain.Mint, error) {
	return s.repoManager.MintRepository().GetMint(ctx, mint)
}

func (s *service) GetAccount(
	ctx context.Context, addr address.Address,
) (*domain.TokenAccount, error) {
	return s.repoManager.TokenAccountRepository().GetTokenAccount(ctx, addr)
}

func (s *service) TransferChecked(
	ctx context.Context, from, to, mint address.Address,
	amount uint64, decimals uint8, authority domain.Signer,
) error {
	repo := s.repoManager.TokenAccountRepository()

	source, err := repo.GetTokenAccount(ctx, from)
	if err != nil {
		return err
	}
	destination, err := repo.GetTokenAccount(ctx, to)
	if err != nil {
		return err
	}
	if source.Mint != mint || destination.Mint != mint {
		return domain.ErrMintMismatch
	}
	m, err := s.repoManager.MintRepository().GetMint(ctx, mint)
	if err != nil {
		return err
	}
	if m.Decimals != decimals {
		return domain.ErrDecimalsMismatch
	}
	if err := domain.Authorize(source.Owner, authority); err != nil {
		return err
	}

	if err := repo.UpdateTokenAccount(
		ctx, from, func(a *domain.TokenAccount) (*domain.TokenAccount, error) {
			if err := a.Debit(amount); err != nil {
				return nil, err
			}
			return a, nil
		},
	); err != nil {
		return err
	}
	return repo.UpdateTokenAccount(
		ctx, to, func(a *domain.TokenAccount) (*domain.TokenAccount, error) {
			if err := a.Credit(amount); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
}

func (s *service) MintTo(
	ctx context.Context, mint, to address.Address,
	amount uint64, authority domain.Signer,
) error {
	m, err := s.repoManager.MintRepository().GetMint(ctx, mint)
	if err != nil {
		return err
	}
	if err := domain.Authorize(m.MintAuthority, authority); err != nil {
		return err
	}
	destination, err := s.repoManager.TokenAccountRepository().GetTokenAccount(
		ctx, to,
	)
	if err != nil {
		return err
	}
	if destination.Mint != mint {
		return domain.ErrMintMismatch
	}

	if err := s.repoManager.MintRepository().UpdateMint(
		ctx, mint, func(m *domain.Mint) (*domain.Mint, error) {
			if err := m.Issue(amount); err != nil {
				return nil, err
			}
			return m, nil
		},
	); err != nil {
		return err
	}
	return s.repoManager.TokenAccountRepository().UpdateTokenAccount(
		ctx, to, func(a *domain.TokenAccount) (*domain.TokenAccount, error) {
			if err := a.Credit(amount); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
}

func (s *service) CloseAccount(
	ctx context.Context, addr, destination address.Address,
	authority domain.Signer,
) error {
	account, err := s.repoManager.TokenAccountRepository().GetTokenAccount(
		ctx, addr,
	)
	if err != nil {
		return err
	}
	if err := domain.Authorize(account.Owner, authority); err != nil {
		return err
	}
	if err := account.CanClose(); err != nil {
		return err
	}
	if err := s.repoManager.TokenAccountRepository().DeleteTokenAccount(
		ctx, addr,
	); err != nil {
		return err
	}
	return s.Release(ctx, destination, account.Lamports)
}

func (s *service) credit(
	ctx context.Context, addr address.Address, lamports uint64,
) error {
	return s.repoManager.AccountRepository().UpdateAccount(
		ctx, addr, func(a *domain.Account) (*domain.Account, error) {
			if err := a.Credit(lamports); err != nil {
				return nil, err
			}
			return a, nil
		},
	)
}
