package httpinterface

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/api"
)

func TestWebhooks(t *testing.T) {
	s := newTestServer(false)
	hook := &domain.Webhook{
		ID:       "hook-1",
		Event:    domain.EventEscrowSettled,
		Endpoint: "http://localhost/hook",
		Secret:   "secret",
	}

	s.webhook.On("AddWebhook", mock.Anything, application.AddWebhookRequest{
		Event:    hook.Event,
		Endpoint: hook.Endpoint,
		Secret:   hook.Secret,
	}).Return(hook, nil)
	s.webhook.On("AddWebhook", mock.Anything, application.AddWebhookRequest{
		Event:    "TRADE_SETTLED",
		Endpoint: hook.Endpoint,
	}).Return(nil, domain.ErrWebhookInvalidEvent)
	s.webhook.On("ListWebhooks", mock.Anything, domain.EventEscrowMade).
		Return([]domain.Webhook{}, nil)
	s.webhook.On("ListWebhooks", mock.Anything, "").
		Return([]domain.Webhook{*hook}, nil)
	s.webhook.On("RemoveWebhook", mock.Anything, "hook-1").Return(nil)
	s.webhook.On("RemoveWebhook", mock.Anything, "hook-2").
		Return(domain.ErrWebhookNotFound)

	rec := s.do(t, http.MethodPost, "/v1/webhooks", api.AddWebhookRequest{
		Event:    hook.Event,
		Endpoint: hook.Endpoint,
		Secret:   hook.Secret,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotContains(t, rec.Body.String(), "secret\"")
	var created api.Webhook
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	require.Equal(t, api.Webhook{
		ID:        "hook-1",
		Event:     hook.Event,
		Endpoint:  hook.Endpoint,
		IsSecured: true,
	}, created)

	rec = s.do(t, http.MethodPost, "/v1/webhooks", api.AddWebhookRequest{
		Event:    "TRADE_SETTLED",
		Endpoint: hook.Endpoint,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, api.CodePreconditionFailed, decodeError(t, rec).Error.Code)

	rec = s.do(t, http.MethodGet, "/v1/webhooks", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list api.ListWebhooksResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&list))
	require.Len(t, list.Webhooks, 1)

	rec = s.do(t, http.MethodGet, "/v1/webhooks?event=ESCROW_MADE", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"webhooks":[]}`, rec.Body.String())

	rec = s.do(t, http.MethodDelete, "/v1/webhooks/hook-1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = s.do(t, http.MethodDelete, "/v1/webhooks/hook-2", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	s.webhook.AssertExpectations(t)
}
