package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/pkg/api"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorBody{
		Error:     api.ErrorDetail{Code: code, Message: "boom"},
		RequestID: "req_test",
	})
}

func TestNew(t *testing.T) {
	_, err := New("localhost:9945")
	require.Error(t, err)

	c, err := New("http://localhost:9945/")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9945", c.baseURL)
}

func TestMakeEscrow(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/escrows", r.URL.Path)

		var req api.MakeEscrowRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.Escrow{
			Address:       "escrow",
			Maker:         req.Maker,
			ReceiveAmount: req.ReceiveAmount,
		})
	})

	escrow, err := c.MakeEscrow(context.Background(), api.MakeEscrowRequest{
		Maker: "maker", ReceiveAmount: 500,
	})
	require.NoError(t, err)
	require.Equal(t, "escrow", escrow.Address)
	require.Equal(t, "maker", escrow.Maker)
	require.Equal(t, uint64(500), escrow.ReceiveAmount)
}

func TestListEscrowsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "maker", r.URL.Query().Get("maker"))
		_ = json.NewEncoder(w).Encode(api.ListEscrowsResponse{
			Escrows: []api.Escrow{{Address: "a"}, {Address: "b"}},
		})
	})

	escrows, err := c.ListEscrows(context.Background(), "maker")
	require.NoError(t, err)
	require.Len(t, escrows, 2)
}

func TestClientErrorsDoNotTrip(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, api.CodeNotFound)
	})

	for i := 0; i < 20; i++ {
		_, err := c.GetEscrow(context.Background(), "escrow")
		require.Error(t, err)
		require.True(t, IsCode(err, api.CodeNotFound))

		var apiErr *Error
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, http.StatusNotFound, apiErr.Status)
		require.Equal(t, "req_test", apiErr.RequestID)
	}
	require.Equal(t, gobreaker.StateClosed, c.cb.State())
}

func TestServerErrorsTrip(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeError(w, http.StatusInternalServerError, api.CodeInternal)
	})

	for i := 0; i < 11; i++ {
		_, err := c.ListMarketplaces(context.Background())
		require.True(t, IsCode(err, api.CodeInternal))
	}

	_, err := c.ListMarketplaces(context.Background())
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	require.Equal(t, int32(11), atomic.LoadInt32(&calls))
}

func TestWebhooks(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			require.Equal(t, "ESCROW_MADE", r.URL.Query().Get("event"))
			_ = json.NewEncoder(w).Encode(api.ListWebhooksResponse{
				Webhooks: []api.Webhook{{ID: "hook", Event: "ESCROW_MADE"}},
			})
		case http.MethodDelete:
			if r.URL.Path != "/v1/webhooks/hook" {
				writeError(w, http.StatusNotFound, api.CodeNotFound)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	})

	hooks, err := c.ListWebhooks(context.Background(), "ESCROW_MADE")
	require.NoError(t, err)
	require.Len(t, hooks, 1)

	require.NoError(t, c.RemoveWebhook(context.Background(), "hook"))
	err = c.RemoveWebhook(context.Background(), "other")
	require.True(t, IsCode(err, api.CodeNotFound))
}
