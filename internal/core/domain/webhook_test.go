package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
)

func TestNewWebhook(t *testing.T) {
	hook, err := domain.NewWebhook(
		domain.EventEscrowSettled, "https://example.com/hook", "",
	)
	require.NoError(t, err)
	require.NotEmpty(t, hook.ID)
	require.False(t, hook.IsSecured())
	require.True(t, hook.Matches(domain.EventEscrowSettled))
	require.False(t, hook.Matches(domain.EventEscrowMade))

	other, err := domain.NewWebhook(domain.AnyEvent, "http://localhost:8000", "s3cr3t")
	require.NoError(t, err)
	require.NotEqual(t, hook.ID, other.ID)
	require.True(t, other.IsSecured())
	require.True(t, other.Matches(domain.EventMarketplaceCreated))
}

func TestFailingNewWebhook(t *testing.T) {
	tests := []struct {
		name     string
		event    string
		endpoint string
		err      error
	}{
		{"empty event", "", "http://localhost", domain.ErrWebhookInvalidEvent},
		{"unknown event", "TRADE_SETTLED", "http://localhost", domain.ErrWebhookInvalidEvent},
		{"relative endpoint", domain.AnyEvent, "hook", domain.ErrWebhookInvalidEndpoint},
		{"bad scheme", domain.AnyEvent, "ftp://localhost/hook", domain.ErrWebhookInvalidEndpoint},
		{"missing host", domain.AnyEvent, "http:///hook", domain.ErrWebhookInvalidEndpoint},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewWebhook(tt.event, tt.endpoint, "")
			require.ErrorIs(t, err, tt.err)
			require.ErrorIs(t, err, domain.ErrPreconditionFailed)
		})
	}
}
