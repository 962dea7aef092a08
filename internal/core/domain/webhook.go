package domain

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

// Events notified to webhooks. AnyEvent subscribes to all of them.
const (
	EventEscrowMade         = "ESCROW_MADE"
	EventEscrowSettled      = "ESCROW_SETTLED"
	EventEscrowRefunded     = "ESCROW_REFUNDED"
	EventMarketplaceCreated = "MARKETPLACE_CREATED"
	AnyEvent                = "*"
)

var webhookEvents = map[string]struct{}{
	EventEscrowMade:         {},
	EventEscrowSettled:      {},
	EventEscrowRefunded:     {},
	EventMarketplaceCreated: {},
	AnyEvent:                {},
}

var (
	// ErrWebhookInvalidEvent ...
	ErrWebhookInvalidEvent = fmt.Errorf("%w: unknown webhook event", ErrPreconditionFailed)
	// ErrWebhookInvalidEndpoint ...
	ErrWebhookInvalidEndpoint = fmt.Errorf("%w: webhook endpoint must be an absolute http(s) url", ErrPreconditionFailed)
	// ErrWebhookNotFound ...
	ErrWebhookNotFound = fmt.Errorf("%w: webhook does not exist", ErrNotFound)
)

// Webhook is an endpoint notified with a POST request every time the event it
// subscribed to occurs. If Secret is set, requests carry a bearer token signed
// with it.
type Webhook struct {
	ID       string
	Event    string
	Endpoint string
	Secret   string
}

// NewWebhook returns a webhook with a fresh random ID.
func NewWebhook(event, endpoint, secret string) (*Webhook, error) {
	if _, ok := webhookEvents[event]; !ok {
		return nil, ErrWebhookInvalidEvent
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrWebhookInvalidEndpoint
	}
	return &Webhook{uuid.New().String(), event, endpoint, secret}, nil
}

func (w Webhook) IsSecured() bool {
	return len(w.Secret) > 0
}

// Matches returns whether the webhook must be notified of event.
func (w Webhook) Matches(event string) bool {
	return w.Event == AnyEvent || w.Event == event
}

// WebhookRepository is the abstraction for any kind of database intended to
// persist Webhooks.
type WebhookRepository interface {
	AddWebhook(ctx context.Context, hook *Webhook) error
	GetWebhook(ctx context.Context, id string) (*Webhook, error)
	// GetWebhooksForEvent returns the hooks subscribed either to event or to
	// any event.
	GetWebhooksForEvent(ctx context.Context, event string) ([]Webhook, error)
	GetAllWebhooks(ctx context.Context) ([]Webhook, error)
	DeleteWebhook(ctx context.Context, id string) error
}
