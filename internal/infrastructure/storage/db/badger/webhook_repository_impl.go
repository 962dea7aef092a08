package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type webhookRepositoryImpl struct {
	store *badgerhold.Store
}

// NewWebhookRepositoryImpl returns a new WebhookRepository backed by the given
// badgerhold store.
func NewWebhookRepositoryImpl(store *badgerhold.Store) domain.WebhookRepository {
	return &webhookRepositoryImpl{store}
}

func (r *webhookRepositoryImpl) AddWebhook(
	ctx context.Context, hook *domain.Webhook,
) error {
	return upsert(ctx, r.store, hook.ID, webhookRecord(*hook))
}

func (r *webhookRepositoryImpl) GetWebhook(
	ctx context.Context, id string,
) (*domain.Webhook, error) {
	var record webhookRecord
	if err := get(ctx, r.store, id, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrWebhookNotFound
		}
		return nil, err
	}
	hook := domain.Webhook(record)
	return &hook, nil
}

func (r *webhookRepositoryImpl) GetWebhooksForEvent(
	ctx context.Context, event string,
) ([]domain.Webhook, error) {
	query := badgerhold.Where("Event").In(event, domain.AnyEvent)
	return r.findWebhooks(ctx, query)
}

func (r *webhookRepositoryImpl) GetAllWebhooks(
	ctx context.Context,
) ([]domain.Webhook, error) {
	return r.findWebhooks(ctx, nil)
}

func (r *webhookRepositoryImpl) DeleteWebhook(
	ctx context.Context, id string,
) error {
	if _, err := r.GetWebhook(ctx, id); err != nil {
		return err
	}
	return remove(ctx, r.store, id, webhookRecord{})
}

func (r *webhookRepositoryImpl) findWebhooks(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Webhook, error) {
	var records []webhookRecord
	if err := find(ctx, r.store, &records, query); err != nil {
		return nil, err
	}

	hooks := make([]domain.Webhook, 0, len(records))
	for _, rec := range records {
		hooks = append(hooks, domain.Webhook(rec))
	}
	sort.SliceStable(hooks, func(i, j int) bool {
		return hooks[i].ID < hooks[j].ID
	})
	return hooks, nil
}
