package address

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"errors"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// Size is the length in bytes of an Address.
const Size = 32

var (
	// ErrInvalidAddress is returned when a string or a byte slice does not
	// decode to a 32-byte address.
	ErrInvalidAddress = errors.New("invalid address")
)

// Address identifies an account, a mint, a program or a signer of the custody
// system. User addresses are ed25519 public keys, while derived addresses are
// guaranteed not to lie on the curve.
type Address [Size]byte

// Zero is the all-zero address, also used as the system program id.
var Zero Address

// NewFromBytes returns the Address represented by the given buffer.
func NewFromBytes(buf []byte) (Address, error) {
	var a Address
	if len(buf) != Size {
		return a, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidAddress, Size, len(buf))
	}
	copy(a[:], buf)
	return a, nil
}

// NewFromPublicKey returns the Address of an ed25519 public key.
func NewFromPublicKey(pubkey ed25519.PublicKey) (Address, error) {
	return NewFromBytes(pubkey)
}

// NewFromName returns an address obtained by hashing the given name. It is
// meant for well-known program ids that do not need a keypair.
func NewFromName(name string) Address {
	return Address(sha256.Sum256([]byte(name)))
}

// ParseAddress decodes a base58 string.
func ParseAddress(str string) (Address, error) {
	buf, err := base58.Decode(str)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	return NewFromBytes(buf)
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(str string) Address {
	a, err := ParseAddress(str)
	if err != nil {
		panic(err)
	}
	return a
}

// String returns the base58 encoding of the address.
func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes returns a copy of the underlying bytes.
func (a Address) Bytes() []byte {
	buf := make([]byte, Size)
	copy(buf, a[:])
	return buf
}

// IsZero returns whether the address is the all-zero one.
func (a Address) IsZero() bool {
	return a == Zero
}

// IsOnCurve returns whether the address is the valid encoding of an
// ed25519 point, ie. whether a private key may exist for it.
func (a Address) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err == nil
}

// Compare makes Address usable in badgerhold queries.
func (a Address) Compare(other interface{}) (int, error) {
	switch o := other.(type) {
	case Address:
		return bytes.Compare(a[:], o[:]), nil
	case *Address:
		return bytes.Compare(a[:], o[:]), nil
	default:
		return 0, fmt.Errorf("cannot compare address with %T", other)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
