package ledger_test

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/internal/infrastructure/ledger"
	"github.com/tdex-network/tdex-custody/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

var (
	tokenAccountRent = domain.RentExemptMinimum(domain.TokenAccountSpace)
	mintRent         = domain.RentExemptMinimum(domain.MintSpace)
)

type fixture struct {
	repoManager ports.RepoManager
	ledger      ports.TokenLedger
}

func newFixture() fixture {
	repoManager := inmemory.NewRepoManager()
	return fixture{repoManager, ledger.NewService(repoManager)}
}

func (f fixture) run(
	t *testing.T, fn func(ctx context.Context) error,
) error {
	t.Helper()
	_, err := f.repoManager.RunTransaction(
		context.Background(), false,
		func(ctx context.Context) (interface{}, error) {
			return nil, fn(ctx)
		},
	)
	return err
}

func newUser(t *testing.T) domain.UserSigner {
	pubkey, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	addr, err := address.NewFromPublicKey(pubkey)
	require.NoError(t, err)
	signer, err := domain.NewUserSigner(addr)
	require.NoError(t, err)
	return signer
}

func newFundedUser(t *testing.T, f fixture) domain.UserSigner {
	user := newUser(t)
	err := f.run(t, func(ctx context.Context) error {
		return f.ledger.Airdrop(ctx, user.Address(), 1_000_000_000)
	})
	require.NoError(t, err)
	return user
}

// setupMint creates a mint with the given authority and a funded associated
// account for holder.
func setupMint(
	t *testing.T, f fixture, authority, holder domain.Signer, amount uint64,
) (*domain.Mint, *domain.TokenAccount) {
	mintAddr := newUser(t).Address()
	var mint *domain.Mint
	var account *domain.TokenAccount
	err := f.run(t, func(ctx context.Context) error {
		var err error
		if mint, err = f.ledger.CreateMint(
			ctx, authority, mintAddr, 6, authority.Address(),
		); err != nil {
			return err
		}
		if account, err = f.ledger.CreateAssociatedAccount(
			ctx, authority, mintAddr, holder.Address(),
		); err != nil {
			return err
		}
		return f.ledger.MintTo(ctx, mintAddr, account.Address, amount, authority)
	})
	require.NoError(t, err)
	account.Amount = amount
	return mint, account
}

func TestAllocate(t *testing.T) {
	t.Parallel()

	f := newFixture()
	user := newUser(t)

	err := f.run(t, func(ctx context.Context) error {
		return f.ledger.Airdrop(ctx, user.Address(), 0)
	})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	err = f.run(t, func(ctx context.Context) error {
		if err := f.ledger.Airdrop(ctx, user.Address(), mintRent-1); err != nil {
			return err
		}
		_, err := f.ledger.CreateMint(ctx, user, newUser(t).Address(), 6, user.Address())
		return err
	})
	require.ErrorIs(t, err, domain.ErrInsufficientLamports)

	// The airdrop has been rolled back along with the failed allocation.
	err = f.run(t, func(ctx context.Context) error {
		lamports, err := f.ledger.GetLamports(ctx, user.Address())
		require.Zero(t, lamports)
		return err
	})
	require.NoError(t, err)
}

func TestCreateMintAndAccounts(t *testing.T) {
	t.Parallel()

	f := newFixture()
	authority := newFundedUser(t, f)
	holder := newUser(t)
	mint, account := setupMint(t, f, authority, holder, 500)

	err := f.run(t, func(ctx context.Context) error {
		_, err := f.ledger.CreateMint(ctx, authority, mint.Address, 9, authority.Address())
		require.ErrorIs(t, err, domain.ErrMintAlreadyExists)

		_, err = f.ledger.CreateAssociatedAccount(ctx, authority, mint.Address, holder.Address())
		require.ErrorIs(t, err, domain.ErrAccountAlreadyExists)

		_, err = f.ledger.CreateAssociatedAccount(ctx, authority, newUser(t).Address(), holder.Address())
		require.ErrorIs(t, err, domain.ErrMintNotFound)

		existing, err := f.ledger.GetOrCreateAssociatedAccount(
			ctx, authority, mint.Address, holder.Address(),
		)
		require.NoError(t, err)
		require.Equal(t, account.Address, existing.Address)
		require.Equal(t, uint64(500), existing.Amount)

		lamports, err := f.ledger.GetLamports(ctx, authority.Address())
		require.NoError(t, err)
		require.Equal(t, 1_000_000_000-mintRent-tokenAccountRent, lamports)

		m, err := f.ledger.GetMint(ctx, mint.Address)
		require.NoError(t, err)
		require.Equal(t, uint64(500), m.Supply)
		require.Equal(t, mintRent, m.Lamports)
		return nil
	})
	require.NoError(t, err)
}

func TestTransferChecked(t *testing.T) {
	t.Parallel()

	f := newFixture()
	authority := newFundedUser(t, f)
	alice := newUser(t)
	bob := newUser(t)
	mint, aliceAccount := setupMint(t, f, authority, alice, 100)
	otherMint, _ := setupMint(t, f, authority, bob, 100)

	var bobAccount, bobOtherAccount *domain.TokenAccount
	err := f.run(t, func(ctx context.Context) error {
		var err error
		if bobAccount, err = f.ledger.CreateAssociatedAccount(
			ctx, authority, mint.Address, bob.Address(),
		); err != nil {
			return err
		}
		bobOtherAccount, err = f.ledger.GetOrCreateAssociatedAccount(
			ctx, authority, otherMint.Address, bob.Address(),
		)
		return err
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		to          address.Address
		amount      uint64
		decimals    uint8
		authority   domain.Signer
		expectedErr error
	}{
		{"not owner", bobAccount.Address, 10, 6, bob, domain.ErrAuthorityMismatch},
		{"decimals mismatch", bobAccount.Address, 10, 9, alice, domain.ErrDecimalsMismatch},
		{"mint mismatch", bobOtherAccount.Address, 10, 6, alice, domain.ErrMintMismatch},
		{"insufficient funds", bobAccount.Address, 101, 6, alice, domain.ErrInsufficientFunds},
	}
	for _, tt := range tests {
		err := f.run(t, func(ctx context.Context) error {
			return f.ledger.TransferChecked(
				ctx, aliceAccount.Address, tt.to, mint.Address,
				tt.amount, tt.decimals, tt.authority,
			)
		})
		require.ErrorIs(t, err, tt.expectedErr, tt.name)
	}

	err = f.run(t, func(ctx context.Context) error {
		return f.ledger.TransferChecked(
			ctx, aliceAccount.Address, bobAccount.Address, mint.Address,
			40, 6, alice,
		)
	})
	require.NoError(t, err)

	err = f.run(t, func(ctx context.Context) error {
		a, err := f.ledger.GetAccount(ctx, aliceAccount.Address)
		require.NoError(t, err)
		require.Equal(t, uint64(60), a.Amount)
		b, err := f.ledger.GetAccount(ctx, bobAccount.Address)
		require.NoError(t, err)
		require.Equal(t, uint64(40), b.Amount)
		return nil
	})
	require.NoError(t, err)
}

func TestProgramOwnedAccount(t *testing.T) {
	t.Parallel()

	f := newFixture()
	authority := newFundedUser(t, f)
	maker := newUser(t)
	programID := domain.DefaultEscrowProgramID

	seeds := domain.EscrowSeeds(maker.Address(), 1)
	pda, bump, err := address.FindProgramAddress(seeds, programID)
	require.NoError(t, err)
	signer, err := domain.NewProgramSigner(programID, seeds, bump)
	require.NoError(t, err)
	require.Equal(t, pda, signer.Address())

	// An identity without private key can own accounts but never sign as a
	// user.
	_, err = domain.NewUserSigner(pda)
	require.ErrorIs(t, err, domain.ErrInvalidUserSigner)

	mint, makerAccount := setupMint(t, f, authority, maker, 100)
	var vault *domain.TokenAccount
	err = f.run(t, func(ctx context.Context) error {
		var err error
		if vault, err = f.ledger.CreateAssociatedAccount(
			ctx, authority, mint.Address, pda,
		); err != nil {
			return err
		}
		return f.ledger.TransferChecked(
			ctx, makerAccount.Address, vault.Address, mint.Address, 100, 6, maker,
		)
	})
	require.NoError(t, err)

	for _, s := range []domain.Signer{maker, authority} {
		err := f.run(t, func(ctx context.Context) error {
			return f.ledger.TransferChecked(
				ctx, vault.Address, makerAccount.Address, mint.Address, 100, 6, s,
			)
		})
		require.ErrorIs(t, err, domain.ErrAuthorityMismatch)

		err = f.run(t, func(ctx context.Context) error {
			return f.ledger.CloseAccount(ctx, vault.Address, s.Address(), s)
		})
		require.ErrorIs(t, err, domain.ErrAuthorityMismatch)
	}

	err = f.run(t, func(ctx context.Context) error {
		return f.ledger.CloseAccount(ctx, vault.Address, maker.Address(), signer)
	})
	require.ErrorIs(t, err, domain.ErrAccountNotEmpty)

	err = f.run(t, func(ctx context.Context) error {
		if err := f.ledger.TransferChecked(
			ctx, vault.Address, makerAccount.Address, mint.Address, 100, 6, signer,
		); err != nil {
			return err
		}
		return f.ledger.CloseAccount(ctx, vault.Address, maker.Address(), signer)
	})
	require.NoError(t, err)

	err = f.run(t, func(ctx context.Context) error {
		_, err := f.ledger.GetAccount(ctx, vault.Address)
		require.ErrorIs(t, err, domain.ErrAccountNotFound)

		lamports, err := f.ledger.GetLamports(ctx, maker.Address())
		require.NoError(t, err)
		require.Equal(t, tokenAccountRent, lamports)
		return nil
	})
	require.NoError(t, err)
}

func TestMintTo(t *testing.T) {
	t.Parallel()

	f := newFixture()
	authority := newFundedUser(t, f)
	holder := newUser(t)
	mint, account := setupMint(t, f, authority, holder, 0)

	err := f.run(t, func(ctx context.Context) error {
		return f.ledger.MintTo(ctx, mint.Address, account.Address, 10, holder)
	})
	require.ErrorIs(t, err, domain.ErrAuthorityMismatch)

	err = f.run(t, func(ctx context.Context) error {
		return f.ledger.MintTo(ctx, mint.Address, account.Address, 10, authority)
	})
	require.NoError(t, err)
}
