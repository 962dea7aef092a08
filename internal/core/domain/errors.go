package domain

import (
	"errors"
	"fmt"
)

// Every error returned by the custody system wraps exactly one of the
// following kinds. Use errors.Is to classify them.
var (
	// ErrPreconditionFailed is the kind of errors caused by invalid inputs or
	// insufficient funds. Nothing has been mutated and the request can be
	// retried with corrected inputs.
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrNotFound is the kind of errors returned when operating on a record
	// that does not exist, either never created or already closed.
	ErrNotFound = errors.New("not found")
	// ErrCollision is the kind of errors returned when the derived location of
	// a new record is already taken or cannot be derived at all.
	ErrCollision = errors.New("collision")
	// ErrInvariantViolation is the kind of errors returned for forged or
	// malformed inputs, like a signer that is not the authority of an account.
	ErrInvariantViolation = errors.New("invariant violation")
)

var (
	// ErrInvalidAmount ...
	ErrInvalidAmount = fmt.Errorf("%w: amount must be greater than zero", ErrPreconditionFailed)
	// ErrAmountOverflow ...
	ErrAmountOverflow = fmt.Errorf("%w: amount overflows balance", ErrPreconditionFailed)
	// ErrTxConflict is returned when a transaction keeps conflicting with
	// concurrent writes after every retry. Nothing has been mutated.
	ErrTxConflict = fmt.Errorf("%w: too many concurrent updates, retry later", ErrPreconditionFailed)
	// ErrDerivationExhausted is returned when no bump makes the seeds derive
	// an off-curve address.
	ErrDerivationExhausted = fmt.Errorf("%w: no viable bump for derived address", ErrCollision)

	// ErrEscrowNotFound ...
	ErrEscrowNotFound = fmt.Errorf("%w: escrow does not exist or has been closed", ErrNotFound)
	// ErrEscrowAlreadyExists is returned when making an escrow with a seed
	// already in use by the maker.
	ErrEscrowAlreadyExists = fmt.Errorf("%w: escrow already exists for maker and seed", ErrCollision)
	// ErrEscrowNotMaker is returned when someone other than the maker tries
	// to refund an escrow.
	ErrEscrowNotMaker = fmt.Errorf("%w: only the maker can refund the escrow", ErrPreconditionFailed)
	// ErrEscrowInvalidVault is returned if the vault is not the associated
	// account of the escrow for mint_a.
	ErrEscrowInvalidVault = fmt.Errorf("%w: vault is not controlled by the escrow", ErrInvariantViolation)
	// ErrEscrowInvalidAddress is returned if the escrow record is not stored
	// at the address derived from its maker and seed.
	ErrEscrowInvalidAddress = fmt.Errorf("%w: escrow does not match its derived address", ErrInvariantViolation)

	// ErrMarketplaceNotFound ...
	ErrMarketplaceNotFound = fmt.Errorf("%w: marketplace does not exist", ErrNotFound)
	// ErrMarketplaceAlreadyExists ...
	ErrMarketplaceAlreadyExists = fmt.Errorf("%w: marketplace name already taken", ErrCollision)
	// ErrMarketplaceInvalidName ...
	ErrMarketplaceInvalidName = fmt.Errorf(
		"%w: marketplace name must be between 1 and %d bytes", ErrPreconditionFailed, MaxMarketplaceNameLen,
	)
	// ErrMarketplaceInvalidFee ...
	ErrMarketplaceInvalidFee = fmt.Errorf(
		"%w: fee must be in range [0, %d] basis points", ErrPreconditionFailed, MaxFeeBasisPoints,
	)
	// ErrMarketplaceNotAdmin ...
	ErrMarketplaceNotAdmin = fmt.Errorf("%w: only the marketplace admin can perform this operation", ErrPreconditionFailed)

	// ErrInvalidUserSigner is returned for user signers whose address cannot
	// have a private key.
	ErrInvalidUserSigner = fmt.Errorf("%w: signer address is not a public key", ErrInvariantViolation)
	// ErrInvalidProgramSigner ...
	ErrInvalidProgramSigner = fmt.Errorf("%w: signer seeds do not derive a valid address", ErrInvariantViolation)
	// ErrAuthorityMismatch is returned when the signer of a ledger operation
	// is not the authority of the involved account or mint.
	ErrAuthorityMismatch = fmt.Errorf("%w: signer is not the authority", ErrInvariantViolation)

	// ErrAccountNotFound ...
	ErrAccountNotFound = fmt.Errorf("%w: token account does not exist", ErrNotFound)
	// ErrAccountAlreadyExists ...
	ErrAccountAlreadyExists = fmt.Errorf("%w: token account already exists", ErrCollision)
	// ErrAccountNotEmpty ...
	ErrAccountNotEmpty = fmt.Errorf("%w: token account balance must be zero to be closed", ErrPreconditionFailed)
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", ErrPreconditionFailed)
	// ErrInsufficientLamports is returned when the payer cannot cover the
	// storage deposit of a new record.
	ErrInsufficientLamports = fmt.Errorf("%w: insufficient lamports for storage deposit", ErrPreconditionFailed)
	// ErrMintNotFound ...
	ErrMintNotFound = fmt.Errorf("%w: mint does not exist", ErrNotFound)
	// ErrMintAlreadyExists ...
	ErrMintAlreadyExists = fmt.Errorf("%w: mint already exists", ErrCollision)
	// ErrMintMismatch ...
	ErrMintMismatch = fmt.Errorf("%w: account mint mismatch", ErrPreconditionFailed)
	// ErrDecimalsMismatch ...
	ErrDecimalsMismatch = fmt.Errorf("%w: decimals do not match the mint", ErrPreconditionFailed)
)
