package application_test

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

var (
	ctx = context.Background()

	initialLamports  = uint64(1_000_000_000)
	tokenAccountRent = domain.RentExemptMinimum(domain.TokenAccountSpace)
	escrowRent       = domain.RentExemptMinimum(domain.EscrowSpace)
)

type testEnv struct {
	name        string
	escrow      application.EscrowService
	marketplace application.MarketplaceService
	ledger      application.LedgerService
	webhook     application.WebhookService
}

func newTestEnvs(t *testing.T) []testEnv {
	badgerCfg := &application.Config{
		DBType:       application.DBBadger,
		DBDir:        t.TempDir(),
		TxMaxRetries: 10,
	}
	inmemoryCfg := &application.Config{
		DBType: application.DBInMemory,
	}

	envs := make([]testEnv, 0, 2)
	for name, cfg := range map[string]*application.Config{
		"badger":   badgerCfg,
		"inmemory": inmemoryCfg,
	} {
		require.NoError(t, cfg.Validate())
		t.Cleanup(cfg.RepoManager().Close)
		envs = append(envs, testEnv{
			name:        name,
			escrow:      cfg.EscrowService(),
			marketplace: cfg.MarketplaceService(),
			ledger:      cfg.LedgerService(),
			webhook:     cfg.WebhookService(),
		})
	}
	return envs
}

func newUser(t *testing.T) address.Address {
	pubkey, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	addr, err := address.NewFromPublicKey(pubkey)
	require.NoError(t, err)
	return addr
}

func newFundedUser(t *testing.T, env testEnv) address.Address {
	user := newUser(t)
	_, err := env.ledger.Airdrop(ctx, user, initialLamports)
	require.NoError(t, err)
	return user
}

// newMint creates a mint with a dedicated funded authority.
func newMint(t *testing.T, env testEnv) (mint, authority address.Address) {
	authority = newFundedUser(t, env)
	m, err := env.ledger.CreateMint(ctx, application.CreateMintRequest{
		Payer:     authority,
		Decimals:  6,
		Authority: authority,
	})
	require.NoError(t, err)
	return m.Address, authority
}

func mintTo(
	t *testing.T, env testEnv, mint, authority, owner address.Address, amount uint64,
) {
	_, err := env.ledger.MintTo(ctx, application.MintToRequest{
		Authority: authority,
		Mint:      mint,
		Owner:     owner,
		Amount:    amount,
	})
	require.NoError(t, err)
}

func balance(t *testing.T, env testEnv, owner, mint address.Address) uint64 {
	amount, err := env.ledger.GetBalance(ctx, owner, mint)
	require.NoError(t, err)
	return amount
}

func lamports(t *testing.T, env testEnv, addr address.Address) uint64 {
	amount, err := env.ledger.GetLamports(ctx, addr)
	require.NoError(t, err)
	return amount
}

// deal is the setup shared by escrow tests: a maker holding 1000 units of
// mintA and a taker holding takerAmount units of mintB.
type deal struct {
	maker, taker           address.Address
	mintA, mintB           address.Address
	authorityA, authorityB address.Address
}

func newDeal(t *testing.T, env testEnv, takerAmount uint64) deal {
	mintA, authorityA := newMint(t, env)
	mintB, authorityB := newMint(t, env)
	maker := newFundedUser(t, env)
	taker := newFundedUser(t, env)

	mintTo(t, env, mintA, authorityA, maker, 1000)
	if takerAmount > 0 {
		mintTo(t, env, mintB, authorityB, taker, takerAmount)
	}
	return deal{maker, taker, mintA, mintB, authorityA, authorityB}
}

func (d deal) make(t *testing.T, env testEnv, seed uint64) *domain.Escrow {
	escrow, err := env.escrow.Make(ctx, application.MakeEscrowRequest{
		Maker:         d.maker,
		Seed:          seed,
		MintA:         d.mintA,
		MintB:         d.mintB,
		DepositAmount: 1000,
		ReceiveAmount: 500,
	})
	require.NoError(t, err)
	return escrow
}
