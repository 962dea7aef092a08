package address_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

var (
	tokenProgramID           = address.MustParseAddress("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	associatedTokenProgramID = address.MustParseAddress("ATokenGPvbdGVxr1b2hvZbsiqW5xWbuhpT5y7t3j9s3")
)

func sequentialAddress(start byte) address.Address {
	var a address.Address
	for i := range a {
		a[i] = start + byte(i)
	}
	return a
}

func TestParseAddress(t *testing.T) {
	t.Parallel()

	a := sequentialAddress(1)
	require.Equal(t, "4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw", a.String())

	parsed, err := address.ParseAddress(a.String())
	require.NoError(t, err)
	require.Equal(t, a, parsed)

	require.Equal(t, "11111111111111111111111111111111", address.Zero.String())
	require.True(t, address.Zero.IsZero())
}

func TestFailingParseAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		str  string
	}{
		{"empty", ""},
		{"invalid_char", "0OIl"},
		{"too_short", "4wBqpZM9xaSheZzJSMaw"},
		{"too_long", "4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw4wBqpZM9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := address.ParseAddress(tt.str)
			require.ErrorIs(t, err, address.ErrInvalidAddress)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	t.Parallel()

	type wrapper struct {
		Owner address.Address `json:"owner"`
	}
	w := wrapper{sequentialAddress(1)}

	buf, err := json.Marshal(w)
	require.NoError(t, err)
	require.JSONEq(t, `{"owner":"4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw"}`, string(buf))

	var decoded wrapper
	require.NoError(t, json.Unmarshal(buf, &decoded))
	require.Equal(t, w, decoded)
}

func TestIsOnCurve(t *testing.T) {
	t.Parallel()

	pubkey, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	user, err := address.NewFromPublicKey(pubkey)
	require.NoError(t, err)
	require.True(t, user.IsOnCurve())

	require.False(t, sequentialAddress(1).IsOnCurve())
}

func TestFindProgramAddress(t *testing.T) {
	t.Parallel()

	escrowProgram := address.NewFromName("tdex-custody/escrow")
	marketplaceProgram := address.NewFromName("tdex-custody/marketplace")
	require.Equal(t, "4iuH55nSTmwM83xdHkmZUnEKFLV4pddpAvUSrmBfPPNA", escrowProgram.String())
	require.Equal(t, "C2s3uN7S5Lx5f2rnPHoxowDTqSvKudingRLXVnqaHhTe", marketplaceProgram.String())

	maker := sequentialAddress(1)
	mint := sequentialAddress(33)
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, 7)

	escrow, bump, err := address.FindProgramAddress(
		[][]byte{[]byte("escrow"), maker[:], seed}, escrowProgram,
	)
	require.NoError(t, err)
	require.Equal(t, "AjMd1QPdZSdk8LqNTanoiQTe3hzaA4XJUW9JVE2pKN56", escrow.String())
	require.Equal(t, uint8(252), bump)
	require.False(t, escrow.IsOnCurve())

	vault, bump, err := address.FindProgramAddress(
		[][]byte{escrow[:], tokenProgramID[:], mint[:]}, associatedTokenProgramID,
	)
	require.NoError(t, err)
	require.Equal(t, "9jgo52ivY8h9bFuT5z7aSMjESQD7y9NmDaPu7vunKpQZ", vault.String())
	require.Equal(t, uint8(255), bump)

	marketplace, bump, err := address.FindProgramAddress(
		[][]byte{[]byte("marketplace"), []byte("tensor")}, marketplaceProgram,
	)
	require.NoError(t, err)
	require.Equal(t, "4gAbuz2RFRW68UHGQdKxK1PbNRf4MQSnWwxn2NhFz7An", marketplace.String())
	require.Equal(t, uint8(253), bump)

	rewards, _, err := address.FindProgramAddress(
		[][]byte{[]byte("rewards"), marketplace[:]}, marketplaceProgram,
	)
	require.NoError(t, err)
	require.Equal(t, "7efo1cAoqJm9mFdMqyLEeLa1zcLMsgnpc5GFRRUrfMPZ", rewards.String())

	treasury, _, err := address.FindProgramAddress(
		[][]byte{[]byte("treasury"), marketplace[:]}, marketplaceProgram,
	)
	require.NoError(t, err)
	require.Equal(t, "9R6wzYfc8yoQWbL6c8Muu7zzW6gL9wZGX6GYhNZiFULe", treasury.String())
}

func TestCreateProgramAddress(t *testing.T) {
	t.Parallel()

	program := address.NewFromName("tdex-custody/escrow")
	maker := sequentialAddress(1)
	seed := make([]byte, 8)
	binary.LittleEndian.PutUint64(seed, 7)
	seeds := [][]byte{[]byte("escrow"), maker[:], seed}

	expected, bump, err := address.FindProgramAddress(seeds, program)
	require.NoError(t, err)

	derived, err := address.CreateProgramAddress(address.SeedsWithBump(seeds, bump), program)
	require.NoError(t, err)
	require.Equal(t, expected, derived)

	// bump 255 hashes to an on-curve point for these seeds.
	_, err = address.CreateProgramAddress(address.SeedsWithBump(seeds, 255), program)
	require.ErrorIs(t, err, address.ErrInvalidSeeds)

	// same seeds under another program derive another address.
	other, _, err := address.FindProgramAddress(seeds, address.NewFromName("other"))
	require.NoError(t, err)
	require.NotEqual(t, expected, other)
}

func TestFailingFindProgramAddress(t *testing.T) {
	t.Parallel()

	program := address.NewFromName("tdex-custody/escrow")

	_, _, err := address.FindProgramAddress([][]byte{make([]byte, 33)}, program)
	require.ErrorIs(t, err, address.ErrMaxSeedLengthExceeded)

	_, _, err = address.FindProgramAddress(make([][]byte, address.MaxSeeds), program)
	require.ErrorIs(t, err, address.ErrMaxSeedLengthExceeded)
}
