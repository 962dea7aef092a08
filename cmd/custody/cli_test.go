package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	httpinterface "github.com/tdex-network/tdex-custody/internal/interfaces/http"
	"github.com/tdex-network/tdex-custody/pkg/api"
)

func setupDaemon(t *testing.T) {
	appConfig := &application.Config{DBType: application.DBInMemory}
	require.NoError(t, appConfig.Validate())

	srv := httptest.NewServer(httpinterface.NewRouter(httpinterface.ServiceOpts{
		Port:           9945,
		EnableFaucet:   true,
		EscrowSvc:      appConfig.EscrowService(),
		MarketplaceSvc: appConfig.MarketplaceService(),
		LedgerSvc:      appConfig.LedgerService(),
		WebhookSvc:     appConfig.WebhookService(),
	}))
	t.Cleanup(srv.Close)

	prevPath := statePath
	statePath = filepath.Join(t.TempDir(), "state.json")
	t.Cleanup(func() { statePath = prevPath })

	runCLICommand(t, "config", "init", "--url", srv.URL)
}

func runCLICommand(t *testing.T, args ...string) string {
	out, err := tryCLICommand(args...)
	require.NoError(t, err, strings.Join(args, " "))
	return out
}

func tryCLICommand(args ...string) (string, error) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"custody"}, args...))
	return buf.String(), err
}

func decodeOutput(t *testing.T, out string, v interface{}) {
	require.NoError(t, json.Unmarshal([]byte(out), v), out)
}

func TestState(t *testing.T) {
	prevPath := statePath
	statePath = filepath.Join(t.TempDir(), "nested", "state.json")
	defer func() { statePath = prevPath }()

	state, err := getState()
	require.NoError(t, err)
	require.Empty(t, state)

	require.NoError(t, setState(map[string]string{urlKey: "http://a"}))
	require.NoError(t, setState(map[string]string{identityKey: "me"}))
	require.NoError(t, setState(map[string]string{urlKey: "http://b"}))

	state, err = getState()
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		urlKey:      "http://b",
		identityKey: "me",
	}, state)

	out, err := tryCLICommand("config")
	require.NoError(t, err)
	require.Equal(t, "identity: me\nurl: http://b\n", out)

	_, err = tryCLICommand("config", "set", identityPrvKey, "deadbeef")
	require.Error(t, err)
}

func TestMissingIdentity(t *testing.T) {
	setupDaemon(t)

	_, err := tryCLICommand("airdrop")
	require.Error(t, err)
	require.Contains(t, err.Error(), "custody keygen")
}

func TestEscrowFlow(t *testing.T) {
	setupDaemon(t)

	maker := strings.TrimSpace(runCLICommand(t, "keygen"))
	taker := strings.TrimSpace(runCLICommand(t, "keygen", "--print-only"))
	runCLICommand(t, "airdrop")
	runCLICommand(t, "airdrop", "--address", taker)

	var mintA, mintB api.Mint
	decodeOutput(t, runCLICommand(t, "mint", "create"), &mintA)
	decodeOutput(t, runCLICommand(t, "mint", "create", "--decimals", "2"), &mintB)
	require.Equal(t, maker, mintA.MintAuthority)

	runCLICommand(t, "mint", "to", "--mint", mintA.Address, "--amount", "2000")
	runCLICommand(
		t, "mint", "to", "--mint", mintB.Address,
		"--owner", taker, "--amount", "500",
	)

	var refunded, taken api.Escrow
	decodeOutput(t, runCLICommand(
		t, "escrow", "make", "--seed", "0",
		"--mint_a", mintA.Address, "--mint_b", mintB.Address,
		"--deposit", "1000", "--receive", "500",
	), &refunded)
	decodeOutput(t, runCLICommand(
		t, "escrow", "make", "--seed", "1",
		"--mint_a", mintA.Address, "--mint_b", mintB.Address,
		"--deposit", "1000", "--receive", "500",
	), &taken)
	require.NotEqual(t, refunded.Address, taken.Address)

	var list api.ListEscrowsResponse
	decodeOutput(t, runCLICommand(t, "escrow", "list", "--maker", maker), &list)
	require.Len(t, list.Escrows, 2)

	var status api.EscrowStatus
	decodeOutput(t, runCLICommand(t, "escrow", "status", refunded.Address), &status)
	require.Equal(t, "active", status.Status)

	var settlement api.Settlement
	decodeOutput(t, runCLICommand(
		t, "escrow", "refund", "--escrow", refunded.Address,
	), &settlement)
	require.Equal(t, "refunded", settlement.Status)

	decodeOutput(t, runCLICommand(
		t, "escrow", "take", "--escrow", taken.Address, "--taker", taker,
	), &settlement)
	require.Equal(t, "settled", settlement.Status)
	require.Equal(t, uint64(1000), settlement.AmountA)

	// closed escrows cannot be taken twice
	_, err := tryCLICommand(
		"escrow", "take", "--escrow", taken.Address, "--taker", taker,
	)
	require.Error(t, err)

	var bal api.Balance
	decodeOutput(t, runCLICommand(t, "balance", "--mint", mintA.Address), &bal)
	require.Equal(t, uint64(1000), bal.Amount)
	decodeOutput(t, runCLICommand(t, "balance", "--mint", mintB.Address), &bal)
	require.Equal(t, uint64(500), bal.Amount)
	decodeOutput(t, runCLICommand(
		t, "balance", "--mint", mintA.Address, "--owner", taker,
	), &bal)
	require.Equal(t, uint64(1000), bal.Amount)

	var settlements api.ListSettlementsResponse
	decodeOutput(t, runCLICommand(t, "settlements"), &settlements)
	require.Len(t, settlements.Settlements, 2)
}

func TestMarketplaceFlow(t *testing.T) {
	setupDaemon(t)

	admin := strings.TrimSpace(runCLICommand(t, "keygen"))
	runCLICommand(t, "airdrop")

	var m api.Marketplace
	decodeOutput(t, runCLICommand(
		t, "marketplace", "init", "--name", "bazaar", "--fee", "250",
	), &m)
	require.Equal(t, admin, m.Admin)
	require.Equal(t, uint16(250), m.Fee)

	_, err := tryCLICommand("marketplace", "init", "--name", "bazaar")
	require.Error(t, err)

	var account api.TokenAccount
	decodeOutput(t, runCLICommand(
		t, "marketplace", "rewards", "--name", "bazaar",
		"--recipient", admin, "--amount", "42",
	), &account)
	require.Equal(t, uint64(42), account.Amount)
	require.Equal(t, m.RewardsMint, account.Mint)

	var list api.ListMarketplacesResponse
	decodeOutput(t, runCLICommand(t, "marketplace", "list"), &list)
	require.Len(t, list.Marketplaces, 1)
}

func TestWebhookFlow(t *testing.T) {
	setupDaemon(t)

	_, err := tryCLICommand("webhook", "add", "--endpoint", "http://localhost:8000/hook")
	require.Error(t, err)
	_, err = tryCLICommand(
		"webhook", "add", "--endpoint", "http://localhost:8000/hook",
		"--escrow_made_event", "--any_event",
	)
	require.Error(t, err)

	var hook api.Webhook
	decodeOutput(t, runCLICommand(
		t, "webhook", "add", "--endpoint", "http://localhost:8000/hook",
		"--escrow_settled_event", "--secret", "s3cr3t",
	), &hook)
	require.Equal(t, "ESCROW_SETTLED", hook.Event)
	require.True(t, hook.IsSecured)

	var list api.ListWebhooksResponse
	decodeOutput(t, runCLICommand(t, "webhook", "list"), &list)
	require.Len(t, list.Webhooks, 1)
	decodeOutput(t, runCLICommand(t, "webhook", "list", "--escrow_made_event"), &list)
	require.Empty(t, list.Webhooks)

	out := runCLICommand(t, "webhook", "remove", hook.ID)
	require.Contains(t, out, hook.ID)
	_, err = tryCLICommand("webhook", "remove", hook.ID)
	require.Error(t, err)
}
