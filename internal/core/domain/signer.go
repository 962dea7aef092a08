package domain

import (
	"fmt"

	"github.com/tdex-network/tdex-custody/pkg/address"
)

// Signer is the identity authorizing a ledger operation.
type Signer interface {
	Address() address.Address
}

// UserSigner is a signer backed by a keypair. Verifying the signature is up
// to the transport, the custody system only makes sure that the address can
// have a private key at all.
type UserSigner struct {
	addr address.Address
}

// NewUserSigner returns a signer for the given public key.
func NewUserSigner(addr address.Address) (UserSigner, error) {
	if !addr.IsOnCurve() {
		return UserSigner{}, ErrInvalidUserSigner
	}
	return UserSigner{addr}, nil
}

func (s UserSigner) Address() address.Address {
	return s.addr
}

// ProgramSigner is a signer without private key. It proves the right to act
// as a derived address by reconstructing it from the program id, the seeds
// and the bump.
type ProgramSigner struct {
	programID address.Address
	seeds     [][]byte
	bump      uint8
	addr      address.Address
}

// NewProgramSigner returns a signer for the address derived from the given
// tuple.
func NewProgramSigner(
	programID address.Address, seeds [][]byte, bump uint8,
) (ProgramSigner, error) {
	addr, err := address.CreateProgramAddress(
		address.SeedsWithBump(seeds, bump), programID,
	)
	if err != nil {
		return ProgramSigner{}, fmt.Errorf("%w: %s", ErrInvalidProgramSigner, err)
	}
	return ProgramSigner{programID, seeds, bump, addr}, nil
}

func (s ProgramSigner) Address() address.Address {
	return s.addr
}

func (s ProgramSigner) ProgramID() address.Address {
	return s.programID
}

func (s ProgramSigner) Bump() uint8 {
	return s.bump
}

// Authorize returns an error if the signer does not act on behalf of the given
// authority.
func Authorize(authority address.Address, signer Signer) error {
	if signer == nil || signer.Address() != authority {
		return ErrAuthorityMismatch
	}
	return nil
}
