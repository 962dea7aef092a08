package address

import (
	"crypto/sha256"
	"errors"
	"fmt"
)

const (
	// MaxSeeds is the max number of seeds accepted by the deriver, bump
	// included.
	MaxSeeds = 16
	// MaxSeedLen is the max length in bytes of a single seed.
	MaxSeedLen = 32

	derivedAddressMarker = "ProgramDerivedAddress"
)

var (
	// ErrMaxSeedLengthExceeded is returned if a seed is longer than MaxSeedLen
	// or if too many seeds are given.
	ErrMaxSeedLengthExceeded = errors.New("length of the seed is too long for address derivation")
	// ErrInvalidSeeds is returned when the given seeds hash to an on-curve
	// point and thus cannot be used as derived address.
	ErrInvalidSeeds = errors.New("provided seeds do not result in a valid address")
	// ErrBumpSeedNotFound is returned when no bump in [0, 255] makes the seeds
	// derive an off-curve address.
	ErrBumpSeedNotFound = errors.New("unable to find a viable bump seed")
)

// CreateProgramAddress hashes the seeds together with the program id and
// returns the resulting address. The seeds must already include the bump, and
// the result must not lie on the ed25519 curve.
//
// The preimage is the concatenation of the seeds in order, the program id and
// the "ProgramDerivedAddress" marker. Any reimplementation must keep this exact
// layout for derived addresses to match.
func CreateProgramAddress(seeds [][]byte, programID Address) (Address, error) {
	if len(seeds) > MaxSeeds {
		return Address{}, ErrMaxSeedLengthExceeded
	}
	for _, seed := range seeds {
		if len(seed) > MaxSeedLen {
			return Address{}, ErrMaxSeedLengthExceeded
		}
	}

	h := sha256.New()
	for _, seed := range seeds {
		h.Write(seed)
	}
	h.Write(programID[:])
	h.Write([]byte(derivedAddressMarker))

	var derived Address
	copy(derived[:], h.Sum(nil))

	if derived.IsOnCurve() {
		return Address{}, ErrInvalidSeeds
	}
	return derived, nil
}

// FindProgramAddress looks for the highest bump that, appended to the given
// seeds, derives a valid off-curve address for the program id.
func FindProgramAddress(seeds [][]byte, programID Address) (Address, uint8, error) {
	if len(seeds) >= MaxSeeds {
		return Address{}, 0, ErrMaxSeedLengthExceeded
	}

	seedsWithBump := make([][]byte, len(seeds)+1)
	copy(seedsWithBump, seeds)

	for bump := 255; bump >= 0; bump-- {
		seedsWithBump[len(seeds)] = []byte{uint8(bump)}
		derived, err := CreateProgramAddress(seedsWithBump, programID)
		if err == nil {
			return derived, uint8(bump), nil
		}
		if !errors.Is(err, ErrInvalidSeeds) {
			return Address{}, 0, err
		}
	}
	return Address{}, 0, fmt.Errorf("%w for program %s", ErrBumpSeedNotFound, programID)
}

// SeedsWithBump returns a copy of seeds with the bump appended, ready to be
// passed to CreateProgramAddress.
func SeedsWithBump(seeds [][]byte, bump uint8) [][]byte {
	out := make([][]byte, 0, len(seeds)+1)
	out = append(out, seeds...)
	return append(out, []byte{bump})
}
