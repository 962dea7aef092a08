package application

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
)

const notifyTimeout = 30 * time.Second

// WebhookService manages the endpoints notified of escrow and marketplace
// events.
type WebhookService interface {
	AddWebhook(ctx context.Context, req AddWebhookRequest) (*domain.Webhook, error)
	RemoveWebhook(ctx context.Context, id string) error
	// ListWebhooks returns the hooks notified of event, or all of them if
	// event is empty.
	ListWebhooks(ctx context.Context, event string) ([]domain.Webhook, error)
}

type webhookService struct {
	repoManager ports.RepoManager
}

// NewWebhookService is a constructor function for WebhookService.
func NewWebhookService(repoManager ports.RepoManager) WebhookService {
	return &webhookService{repoManager}
}

func (s *webhookService) AddWebhook(
	ctx context.Context, req AddWebhookRequest,
) (*domain.Webhook, error) {
	hook, err := domain.NewWebhook(req.Event, req.Endpoint, req.Secret)
	if err != nil {
		return nil, err
	}
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.WebhookRepository().AddWebhook(ctx, hook)
		},
	); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"id":    hook.ID,
		"event": hook.Event,
	}).Info("webhook: added")
	return hook, nil
}

func (s *webhookService) RemoveWebhook(ctx context.Context, id string) error {
	if _, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			return nil, s.repoManager.WebhookRepository().DeleteWebhook(ctx, id)
		},
	); err != nil {
		return err
	}

	log.WithField("id", id).Info("webhook: removed")
	return nil
}

func (s *webhookService) ListWebhooks(
	ctx context.Context, event string,
) ([]domain.Webhook, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			if event == "" {
				return s.repoManager.WebhookRepository().GetAllWebhooks(ctx)
			}
			return s.repoManager.WebhookRepository().GetWebhooksForEvent(ctx, event)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]domain.Webhook), nil
}

// eventPublisher notifies the webhooks subscribed to an event. Delivery
// happens in background once the operation that produced the event has been
// committed, and its failures are only logged. A nil notifier disables it.
type eventPublisher struct {
	repoManager ports.RepoManager
	notifier    ports.WebhookNotifier
}

func (p eventPublisher) publish(event string, payload map[string]interface{}) {
	if p.notifier == nil {
		return
	}

	payload["event"] = event
	message, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).WithField("event", event).
			Warn("webhook: failed to encode event")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		res, err := p.repoManager.RunTransaction(
			ctx, true, func(ctx context.Context) (interface{}, error) {
				return p.repoManager.WebhookRepository().GetWebhooksForEvent(ctx, event)
			},
		)
		if err != nil {
			log.WithError(err).WithField("event", event).
				Warn("webhook: failed to load hooks")
			return
		}
		hooks := res.([]domain.Webhook)
		if len(hooks) == 0 {
			return
		}

		if err := p.notifier.Notify(ctx, hooks, message); err != nil {
			log.WithError(err).WithField("event", event).
				Warn("webhook: failed to notify event")
			return
		}
		log.WithFields(log.Fields{
			"event": event,
			"hooks": len(hooks),
		}).Debug("webhook: event notified")
	}()
}

func escrowMadePayload(escrow *domain.Escrow, deposit uint64) map[string]interface{} {
	return map[string]interface{}{
		"escrow":         escrow.Address.String(),
		"maker":          escrow.Maker.String(),
		"mint_a":         escrow.MintA.String(),
		"mint_b":         escrow.MintB.String(),
		"seed":           escrow.Seed,
		"vault":          escrow.Vault.String(),
		"deposit_amount": deposit,
		"receive_amount": escrow.ReceiveAmount,
		"created_at":     escrow.CreatedAt,
	}
}

func settlementPayload(s *domain.Settlement) map[string]interface{} {
	payload := map[string]interface{}{
		"id":        s.ID,
		"escrow":    s.Escrow.String(),
		"maker":     s.Maker.String(),
		"mint_a":    s.MintA.String(),
		"mint_b":    s.MintB.String(),
		"seed":      s.Seed,
		"amount_a":  s.AmountA,
		"amount_b":  s.AmountB,
		"status":    s.Status.String(),
		"timestamp": s.Timestamp,
		"date":      time.Unix(0, s.Timestamp).UTC().Format(time.RFC3339),
	}
	if !s.Taker.IsZero() {
		payload["taker"] = s.Taker.String()
	}
	if !s.Marketplace.IsZero() {
		payload["marketplace"] = s.Marketplace.String()
		payload["fee"] = s.Fee
	}
	return payload
}

func marketplacePayload(m *domain.Marketplace) map[string]interface{} {
	return map[string]interface{}{
		"marketplace":  m.Address.String(),
		"name":         m.Name,
		"admin":        m.Admin.String(),
		"fee":          m.Fee,
		"treasury":     m.Treasury.String(),
		"rewards_mint": m.RewardsMint.String(),
		"created_at":   m.CreatedAt,
	}
}
