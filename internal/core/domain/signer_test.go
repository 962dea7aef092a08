package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

func TestUserSigner(t *testing.T) {
	t.Parallel()

	user := randomUser(t)
	signer, err := domain.NewUserSigner(user)
	require.NoError(t, err)
	require.Equal(t, user, signer.Address())
	require.NoError(t, domain.Authorize(user, signer))
	require.ErrorIs(t, domain.Authorize(randomUser(t), signer), domain.ErrAuthorityMismatch)
	require.ErrorIs(t, domain.Authorize(user, nil), domain.ErrAuthorityMismatch)
}

func TestUserSignerForDerivedAddress(t *testing.T) {
	t.Parallel()

	escrow, _, err := domain.DeriveEscrowAddress(
		domain.DefaultEscrowProgramID, randomUser(t), 1,
	)
	require.NoError(t, err)

	_, err = domain.NewUserSigner(escrow)
	require.ErrorIs(t, err, domain.ErrInvalidUserSigner)
	require.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestProgramSigner(t *testing.T) {
	t.Parallel()

	maker := randomUser(t)
	addr, bump, err := domain.DeriveEscrowAddress(
		domain.DefaultEscrowProgramID, maker, 3,
	)
	require.NoError(t, err)

	signer, err := domain.NewProgramSigner(
		domain.DefaultEscrowProgramID, domain.EscrowSeeds(maker, 3), bump,
	)
	require.NoError(t, err)
	require.Equal(t, addr, signer.Address())
	require.Equal(t, domain.DefaultEscrowProgramID, signer.ProgramID())
	require.Equal(t, bump, signer.Bump())

	other, err := domain.NewProgramSigner(
		domain.DefaultEscrowProgramID, domain.EscrowSeeds(maker, 4), bump,
	)
	if err == nil {
		require.ErrorIs(t, domain.Authorize(addr, other), domain.ErrAuthorityMismatch)
	} else {
		require.ErrorIs(t, err, domain.ErrInvalidProgramSigner)
	}

	_, err = domain.NewProgramSigner(
		domain.DefaultEscrowProgramID, [][]byte{make([]byte, address.MaxSeedLen+1)}, 0,
	)
	require.ErrorIs(t, err, domain.ErrInvalidProgramSigner)
}
