package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
)

type webhookRepositoryImpl struct {
	db *db
}

func newWebhookRepositoryImpl(d *db) domain.WebhookRepository {
	return &webhookRepositoryImpl{d}
}

func (r *webhookRepositoryImpl) AddWebhook(
	ctx context.Context, hook *domain.Webhook,
) error {
	return r.db.write(ctx, func() error {
		r.db.webhooks.put(hook.ID, *hook)
		return nil
	})
}

func (r *webhookRepositoryImpl) GetWebhook(
	ctx context.Context, id string,
) (*domain.Webhook, error) {
	var hook domain.Webhook
	var found bool
	r.db.read(ctx, func() {
		hook, found = r.db.webhooks.get(id)
	})
	if !found {
		return nil, domain.ErrWebhookNotFound
	}
	return &hook, nil
}

func (r *webhookRepositoryImpl) GetWebhooksForEvent(
	ctx context.Context, event string,
) ([]domain.Webhook, error) {
	hooks := make([]domain.Webhook, 0)
	r.db.read(ctx, func() {
		for _, h := range r.db.webhooks.values() {
			if h.Matches(event) {
				hooks = append(hooks, h)
			}
		}
	})
	sortWebhooks(hooks)
	return hooks, nil
}

func (r *webhookRepositoryImpl) GetAllWebhooks(
	ctx context.Context,
) ([]domain.Webhook, error) {
	var hooks []domain.Webhook
	r.db.read(ctx, func() {
		hooks = r.db.webhooks.values()
	})
	sortWebhooks(hooks)
	return hooks, nil
}

func (r *webhookRepositoryImpl) DeleteWebhook(
	ctx context.Context, id string,
) error {
	return r.db.write(ctx, func() error {
		if _, ok := r.db.webhooks.get(id); !ok {
			return domain.ErrWebhookNotFound
		}
		r.db.webhooks.delete(id)
		return nil
	})
}

func sortWebhooks(hooks []domain.Webhook) {
	sort.SliceStable(hooks, func(i, j int) bool {
		return hooks[i].ID < hooks[j].ID
	})
}
