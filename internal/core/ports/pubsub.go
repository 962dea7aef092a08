package ports

import (
	"context"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
)

// WebhookNotifier delivers event messages to webhook endpoints.
type WebhookNotifier interface {
	// Notify posts message to every hook concurrently. It returns the first
	// delivery error, if any, once all the requests are done.
	Notify(ctx context.Context, hooks []domain.Webhook, message []byte) error
}
