package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
)

func TestRentExemptMinimum(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint64(2039280), domain.RentExemptMinimum(domain.TokenAccountSpace))
	require.Equal(t, uint64(1461600), domain.RentExemptMinimum(domain.MintSpace))
	require.Equal(t, 121, domain.EscrowSpace)
	require.Equal(t, 81, domain.MarketplaceSpace)
}

func TestAccount(t *testing.T) {
	t.Parallel()

	a := &domain.Account{Address: randomUser(t)}
	require.NoError(t, a.Credit(100))
	require.NoError(t, a.Debit(40))
	require.Equal(t, uint64(60), a.Lamports)
	require.ErrorIs(t, a.Debit(61), domain.ErrInsufficientLamports)
	require.Equal(t, uint64(60), a.Lamports)
	require.ErrorIs(t, a.Credit(math.MaxUint64), domain.ErrAmountOverflow)
}

func TestTokenAccount(t *testing.T) {
	t.Parallel()

	owner := randomUser(t)
	mint := sequentialAddress(33)
	addr, err := domain.AssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	a := domain.NewTokenAccount(addr, mint, owner)
	require.NoError(t, a.CanClose())
	require.NoError(t, a.Credit(1000))
	require.ErrorIs(t, a.CanClose(), domain.ErrAccountNotEmpty)
	require.ErrorIs(t, a.Debit(1001), domain.ErrInsufficientFunds)
	require.NoError(t, a.Debit(1000))
	require.Zero(t, a.Amount)
	require.NoError(t, a.CanClose())

	require.NoError(t, a.Credit(1))
	require.ErrorIs(t, a.Credit(math.MaxUint64), domain.ErrAmountOverflow)
}

func TestMintIssue(t *testing.T) {
	t.Parallel()

	m := domain.NewMint(sequentialAddress(33), 6, randomUser(t))
	require.NoError(t, m.Issue(10))
	require.Equal(t, uint64(10), m.Supply)
	require.ErrorIs(t, m.Issue(math.MaxUint64), domain.ErrAmountOverflow)
}

func TestAssociatedTokenAddress(t *testing.T) {
	t.Parallel()

	owner := randomUser(t)
	mintA := sequentialAddress(33)
	mintB := sequentialAddress(65)

	a1, err := domain.AssociatedTokenAddress(owner, mintA)
	require.NoError(t, err)
	a2, err := domain.AssociatedTokenAddress(owner, mintA)
	require.NoError(t, err)
	b, err := domain.AssociatedTokenAddress(owner, mintB)
	require.NoError(t, err)

	require.Equal(t, a1, a2)
	require.NotEqual(t, a1, b)
	require.False(t, a1.IsOnCurve())
}
