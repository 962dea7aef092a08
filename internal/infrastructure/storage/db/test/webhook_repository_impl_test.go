package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
)

func TestWebhookRepositoryImplementations(t *testing.T) {
	for _, repo := range createRepoManagers(t) {
		repo := repo

		t.Run(repo.Name, func(t *testing.T) {
			t.Parallel()

			settled, err := domain.NewWebhook(
				domain.EventEscrowSettled, "http://localhost/settled", "secret",
			)
			require.NoError(t, err)
			made, err := domain.NewWebhook(
				domain.EventEscrowMade, "http://localhost/made", "",
			)
			require.NoError(t, err)
			all, err := domain.NewWebhook(
				domain.AnyEvent, "http://localhost/all", "",
			)
			require.NoError(t, err)

			_, err = repo.read(func(ctx context.Context) (interface{}, error) {
				return repo.WebhookRepository().GetWebhook(ctx, settled.ID)
			})
			require.ErrorIs(t, err, domain.ErrWebhookNotFound)

			_, err = repo.write(func(ctx context.Context) (interface{}, error) {
				for _, h := range []*domain.Webhook{settled, made, all} {
					if err := repo.WebhookRepository().AddWebhook(ctx, h); err != nil {
						return nil, err
					}
				}
				return nil, nil
			})
			require.NoError(t, err)

			res, err := repo.read(func(ctx context.Context) (interface{}, error) {
				return repo.WebhookRepository().GetWebhook(ctx, settled.ID)
			})
			require.NoError(t, err)
			require.Equal(t, *settled, *res.(*domain.Webhook))

			res, err = repo.read(func(ctx context.Context) (interface{}, error) {
				return repo.WebhookRepository().GetWebhooksForEvent(
					ctx, domain.EventEscrowSettled,
				)
			})
			require.NoError(t, err)
			hooks := res.([]domain.Webhook)
			require.Len(t, hooks, 2)
			for _, h := range hooks {
				require.NotEqual(t, made.ID, h.ID)
			}

			res, err = repo.read(func(ctx context.Context) (interface{}, error) {
				return repo.WebhookRepository().GetWebhooksForEvent(
					ctx, domain.EventMarketplaceCreated,
				)
			})
			require.NoError(t, err)
			hooks = res.([]domain.Webhook)
			require.Len(t, hooks, 1)
			require.Equal(t, all.ID, hooks[0].ID)

			_, err = repo.write(func(ctx context.Context) (interface{}, error) {
				return nil, repo.WebhookRepository().DeleteWebhook(ctx, settled.ID)
			})
			require.NoError(t, err)

			_, err = repo.write(func(ctx context.Context) (interface{}, error) {
				return nil, repo.WebhookRepository().DeleteWebhook(ctx, settled.ID)
			})
			require.ErrorIs(t, err, domain.ErrWebhookNotFound)

			res, err = repo.read(func(ctx context.Context) (interface{}, error) {
				return repo.WebhookRepository().GetAllWebhooks(ctx)
			})
			require.NoError(t, err)
			require.Len(t, res.([]domain.Webhook), 2)
		})
	}
}
