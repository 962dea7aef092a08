package domain

import (
	"errors"
	"fmt"
	"math"

	"github.com/tdex-network/tdex-custody/pkg/address"
)

// Account holds the native balance of an address, used to pay the storage
// deposit of new records.
type Account struct {
	Address  address.Address
	Lamports uint64
}

// Debit subtracts the given amount from the native balance.
func (a *Account) Debit(lamports uint64) error {
	if a.Lamports < lamports {
		return ErrInsufficientLamports
	}
	a.Lamports -= lamports
	return nil
}

// Credit adds the given amount to the native balance.
func (a *Account) Credit(lamports uint64) error {
	if a.Lamports > math.MaxUint64-lamports {
		return ErrAmountOverflow
	}
	a.Lamports += lamports
	return nil
}

// Mint defines an asset type of the token ledger.
type Mint struct {
	Address address.Address
	// Number of decimals used for display, checked by every transfer.
	Decimals uint8
	// The only identity allowed to issue new units.
	MintAuthority address.Address
	Supply        uint64
	// Storage deposit paid at creation.
	Lamports uint64
}

// NewMint returns a mint with zero supply.
func NewMint(addr address.Address, decimals uint8, authority address.Address) *Mint {
	return &Mint{
		Address:       addr,
		Decimals:      decimals,
		MintAuthority: authority,
	}
}

// Issue increases the supply of the mint.
func (m *Mint) Issue(amount uint64) error {
	if m.Supply > math.MaxUint64-amount {
		return ErrAmountOverflow
	}
	m.Supply += amount
	return nil
}

// TokenAccount holds a balance of a single mint on behalf of its owner.
type TokenAccount struct {
	Address address.Address
	Mint    address.Address
	// The authority allowed to move funds out of the account or to close it.
	// For vaults this is a derived address.
	Owner  address.Address
	Amount uint64
	// Storage deposit paid at creation, returned on close.
	Lamports uint64
}

// NewTokenAccount returns an empty token account.
func NewTokenAccount(addr, mint, owner address.Address) *TokenAccount {
	return &TokenAccount{
		Address: addr,
		Mint:    mint,
		Owner:   owner,
	}
}

// Debit subtracts the given amount from the balance.
func (a *TokenAccount) Debit(amount uint64) error {
	if a.Amount < amount {
		return ErrInsufficientFunds
	}
	a.Amount -= amount
	return nil
}

// Credit adds the given amount to the balance.
func (a *TokenAccount) Credit(amount uint64) error {
	if a.Amount > math.MaxUint64-amount {
		return ErrAmountOverflow
	}
	a.Amount += amount
	return nil
}

// CanClose returns an error if the account still holds funds.
func (a *TokenAccount) CanClose() error {
	if a.Amount > 0 {
		return ErrAccountNotEmpty
	}
	return nil
}

// AssociatedTokenAddress returns the address of the canonical token account
// of owner for the given mint. The owner may be a derived address.
func AssociatedTokenAddress(owner, mint address.Address) (address.Address, error) {
	addr, _, err := address.FindProgramAddress(
		[][]byte{owner.Bytes(), TokenProgramID.Bytes(), mint.Bytes()},
		AssociatedTokenProgramID,
	)
	if err != nil {
		return address.Address{}, derivationError(err)
	}
	return addr, nil
}

func derivationError(err error) error {
	if errors.Is(err, address.ErrBumpSeedNotFound) {
		return ErrDerivationExhausted
	}
	return fmt.Errorf("%w: %s", ErrPreconditionFailed, err)
}
