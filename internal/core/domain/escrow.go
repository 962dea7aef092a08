package domain

import (
	"encoding/binary"
	"time"

	"github.com/tdex-network/tdex-custody/pkg/address"
)

// EscrowStatus is the lifecycle phase of an escrow. Only Active is backed by
// a stored record, the terminal phases are known from settlements.
type EscrowStatus int

const (
	EscrowStatusActive EscrowStatus = iota
	EscrowStatusSettled
	EscrowStatusRefunded
)

func (s EscrowStatus) String() string {
	switch s {
	case EscrowStatusActive:
		return "active"
	case EscrowStatusSettled:
		return "settled"
	case EscrowStatusRefunded:
		return "refunded"
	default:
		return "unknown"
	}
}

// Escrow records the terms of a deal between a maker, who deposited MintA
// funds into the vault, and any taker willing to pay ReceiveAmount of MintB.
type Escrow struct {
	// Address derived from ("escrow", Maker, Seed). It is also the authority
	// of the vault.
	Address       address.Address
	Maker         address.Address
	MintA         address.Address
	MintB         address.Address
	Seed          uint64
	ReceiveAmount uint64
	Bump          uint8
	// Associated token account of (Address, MintA).
	Vault address.Address
	// Storage deposit paid by the maker, returned to the maker on close.
	Lamports  uint64
	CreatedAt int64
}

// EscrowSeeds returns the seeds the escrow address is derived from, bump
// excluded. The seed is encoded as 8 bytes little endian.
func EscrowSeeds(maker address.Address, seed uint64) [][]byte {
	seedBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(seedBytes, seed)
	return [][]byte{[]byte(EscrowSeedPrefix), maker.Bytes(), seedBytes}
}

// DeriveEscrowAddress returns the address and bump of the escrow of the given
// maker and seed.
func DeriveEscrowAddress(
	programID, maker address.Address, seed uint64,
) (address.Address, uint8, error) {
	addr, bump, err := address.FindProgramAddress(
		EscrowSeeds(maker, seed), programID,
	)
	if err != nil {
		return address.Address{}, 0, derivationError(err)
	}
	return addr, bump, nil
}

// NewEscrow returns a new escrow with its derived address and vault.
func NewEscrow(
	programID, maker, mintA, mintB address.Address,
	seed, receiveAmount uint64,
) (*Escrow, error) {
	if receiveAmount == 0 {
		return nil, ErrInvalidAmount
	}

	addr, bump, err := DeriveEscrowAddress(programID, maker, seed)
	if err != nil {
		return nil, err
	}
	vault, err := AssociatedTokenAddress(addr, mintA)
	if err != nil {
		return nil, err
	}

	return &Escrow{
		Address:       addr,
		Maker:         maker,
		MintA:         mintA,
		MintB:         mintB,
		Seed:          seed,
		ReceiveAmount: receiveAmount,
		Bump:          bump,
		Vault:         vault,
		CreatedAt:     time.Now().Unix(),
	}, nil
}

// IsMaker returns whether the given address is the maker of the escrow.
func (e *Escrow) IsMaker(addr address.Address) bool {
	return e.Maker == addr
}

// Signer returns the signer acting as the escrow address, the only authority
// of the vault.
func (e *Escrow) Signer(programID address.Address) (ProgramSigner, error) {
	signer, err := NewProgramSigner(
		programID, EscrowSeeds(e.Maker, e.Seed), e.Bump,
	)
	if err != nil {
		return ProgramSigner{}, err
	}
	if signer.Address() != e.Address {
		return ProgramSigner{}, ErrEscrowInvalidAddress
	}
	return signer, nil
}

// ValidateVault makes sure the given account is the vault of the escrow.
func (e *Escrow) ValidateVault(vault *TokenAccount) error {
	if vault == nil ||
		vault.Address != e.Vault ||
		vault.Owner != e.Address ||
		vault.Mint != e.MintA {
		return ErrEscrowInvalidVault
	}
	return nil
}
