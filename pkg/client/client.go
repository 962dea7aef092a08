// Package client implements a client of the custody daemon REST interface.
// Requests go through a circuit breaker that opens when the daemon keeps
// failing with transport or server errors.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tdex-network/tdex-custody/pkg/api"
	"github.com/tdex-network/tdex-custody/pkg/circuitbreaker"
)

const defaultTimeout = 15 * time.Second

// Error is returned for every non 2xx response of the daemon.
type Error struct {
	Status    int
	Code      string
	Message   string
	RequestID string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// IsCode returns whether err is an *Error with the given code.
func IsCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
}

// New returns a client for the daemon reachable at baseURL.
func New(baseURL string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid daemon url: unsupported scheme %q", u.Scheme)
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		cb:      circuitbreaker.NewCircuitBreaker("custody-client"),
	}, nil
}

type response struct {
	status int
	body   []byte
}

func (c *Client) do(
	ctx context.Context, method, path string, in, out interface{},
) error {
	var payload []byte
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = buf
	}

	// Client errors are not failures of the daemon and must not trip the
	// breaker, so they are returned as responses.
	res, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(
			ctx, method, c.baseURL+path, bytes.NewReader(payload),
		)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		r := &response{resp.StatusCode, body}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, parseError(r)
		}
		return r, nil
	})
	if err != nil {
		return err
	}

	resp := res.(*response)
	if resp.status >= http.StatusBadRequest {
		return parseError(resp)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.body, out)
}

func parseError(r *response) error {
	var body api.ErrorBody
	if err := json.Unmarshal(r.body, &body); err != nil || body.Error.Code == "" {
		return &Error{
			Status:  r.status,
			Code:    http.StatusText(r.status),
			Message: strings.TrimSpace(string(r.body)),
		}
	}
	return &Error{
		Status:    r.status,
		Code:      body.Error.Code,
		Message:   body.Error.Message,
		RequestID: body.RequestID,
	}
}

func (c *Client) MakeEscrow(
	ctx context.Context, req api.MakeEscrowRequest,
) (*api.Escrow, error) {
	var res api.Escrow
	if err := c.do(ctx, http.MethodPost, "/v1/escrows", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) TakeEscrow(
	ctx context.Context, escrow string, req api.TakeEscrowRequest,
) (*api.Settlement, error) {
	var res api.Settlement
	path := fmt.Sprintf("/v1/escrows/%s/take", url.PathEscape(escrow))
	if err := c.do(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) RefundEscrow(
	ctx context.Context, escrow string, req api.RefundEscrowRequest,
) (*api.Settlement, error) {
	var res api.Settlement
	path := fmt.Sprintf("/v1/escrows/%s/refund", url.PathEscape(escrow))
	if err := c.do(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetEscrow(ctx context.Context, escrow string) (*api.Escrow, error) {
	var res api.Escrow
	path := "/v1/escrows/" + url.PathEscape(escrow)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListEscrows returns the active escrows, those of maker only if not empty.
func (c *Client) ListEscrows(ctx context.Context, maker string) ([]api.Escrow, error) {
	path := "/v1/escrows"
	if maker != "" {
		path += "?maker=" + url.QueryEscape(maker)
	}
	var res api.ListEscrowsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Escrows, nil
}

func (c *Client) GetEscrowStatus(ctx context.Context, escrow string) (string, error) {
	var res api.EscrowStatus
	path := fmt.Sprintf("/v1/escrows/%s/status", url.PathEscape(escrow))
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return "", err
	}
	return res.Status, nil
}

// ListSettlements returns the settlements, those of escrow only if not empty.
func (c *Client) ListSettlements(
	ctx context.Context, escrow string,
) ([]api.Settlement, error) {
	path := "/v1/settlements"
	if escrow != "" {
		path += "?escrow=" + url.QueryEscape(escrow)
	}
	var res api.ListSettlementsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Settlements, nil
}

func (c *Client) InitMarketplace(
	ctx context.Context, req api.InitMarketplaceRequest,
) (*api.Marketplace, error) {
	var res api.Marketplace
	if err := c.do(ctx, http.MethodPost, "/v1/marketplaces", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetMarketplace(
	ctx context.Context, name string,
) (*api.Marketplace, error) {
	var res api.Marketplace
	path := "/v1/marketplaces/" + url.PathEscape(name)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) ListMarketplaces(ctx context.Context) ([]api.Marketplace, error) {
	var res api.ListMarketplacesResponse
	if err := c.do(ctx, http.MethodGet, "/v1/marketplaces", nil, &res); err != nil {
		return nil, err
	}
	return res.Marketplaces, nil
}

func (c *Client) MintRewards(
	ctx context.Context, name string, req api.MintRewardsRequest,
) (*api.TokenAccount, error) {
	var res api.TokenAccount
	path := fmt.Sprintf("/v1/marketplaces/%s/rewards", url.PathEscape(name))
	if err := c.do(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Airdrop(
	ctx context.Context, addr string, lamports uint64,
) (*api.Account, error) {
	var res api.Account
	req := api.AirdropRequest{Address: addr, Lamports: lamports}
	if err := c.do(ctx, http.MethodPost, "/v1/airdrop", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetAccount(ctx context.Context, addr string) (*api.Account, error) {
	var res api.Account
	path := "/v1/accounts/" + url.PathEscape(addr)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetTokenAccount(
	ctx context.Context, addr string,
) (*api.TokenAccount, error) {
	var res api.TokenAccount
	path := "/v1/token-accounts/" + url.PathEscape(addr)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateMint(
	ctx context.Context, req api.CreateMintRequest,
) (*api.Mint, error) {
	var res api.Mint
	if err := c.do(ctx, http.MethodPost, "/v1/mints", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetMint(ctx context.Context, mint string) (*api.Mint, error) {
	var res api.Mint
	path := "/v1/mints/" + url.PathEscape(mint)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateTokenAccount(
	ctx context.Context, mint string, req api.CreateTokenAccountRequest,
) (*api.TokenAccount, error) {
	var res api.TokenAccount
	path := fmt.Sprintf("/v1/mints/%s/accounts", url.PathEscape(mint))
	if err := c.do(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) MintTo(
	ctx context.Context, mint string, req api.MintToRequest,
) (*api.TokenAccount, error) {
	var res api.TokenAccount
	path := fmt.Sprintf("/v1/mints/%s/mint-to", url.PathEscape(mint))
	if err := c.do(ctx, http.MethodPost, path, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetBalance(
	ctx context.Context, owner, mint string,
) (*api.Balance, error) {
	var res api.Balance
	path := fmt.Sprintf(
		"/v1/mints/%s/balances/%s", url.PathEscape(mint), url.PathEscape(owner),
	)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) AddWebhook(
	ctx context.Context, req api.AddWebhookRequest,
) (*api.Webhook, error) {
	var res api.Webhook
	if err := c.do(ctx, http.MethodPost, "/v1/webhooks", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ListWebhooks returns the webhooks, those notified of event only if not
// empty.
func (c *Client) ListWebhooks(ctx context.Context, event string) ([]api.Webhook, error) {
	path := "/v1/webhooks"
	if event != "" {
		path += "?event=" + url.QueryEscape(event)
	}
	var res api.ListWebhooksResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res.Webhooks, nil
}

func (c *Client) RemoveWebhook(ctx context.Context, id string) error {
	path := "/v1/webhooks/" + url.PathEscape(id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}
