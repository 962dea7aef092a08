package application

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// MarketplaceService defines the methods of the application layer for the
// marketplace registry.
type MarketplaceService interface {
	// Init creates the marketplace with the given name along with its rewards
	// mint, whose issuance authority is the marketplace itself.
	Init(
		ctx context.Context, req InitMarketplaceRequest,
	) (*domain.Marketplace, error)
	GetMarketplace(ctx context.Context, name string) (*domain.Marketplace, error)
	ListMarketplaces(ctx context.Context) ([]domain.Marketplace, error)
	// MintRewards issues reward tokens to the recipient's associated account.
	// Only the admin can request it.
	MintRewards(
		ctx context.Context, req MintRewardsRequest,
	) (*domain.TokenAccount, error)
}

type marketplaceService struct {
	repoManager ports.RepoManager
	ledger      ports.TokenLedger
	programID   address.Address
	events      eventPublisher
}

// NewMarketplaceService is a constructor function for MarketplaceService.
func NewMarketplaceService(
	repoManager ports.RepoManager,
	ledger ports.TokenLedger,
	notifier ports.WebhookNotifier,
	programID address.Address,
) MarketplaceService {
	return &marketplaceService{
		repoManager, ledger, programID, eventPublisher{repoManager, notifier},
	}
}

func (s *marketplaceService) Init(
	ctx context.Context, req InitMarketplaceRequest,
) (*domain.Marketplace, error) {
	admin, err := domain.NewUserSigner(req.Admin)
	if err != nil {
		return nil, err
	}
	marketplace, err := domain.NewMarketplace(
		s.programID, req.Admin, req.Name, req.Fee,
	)
	if err != nil {
		return nil, err
	}

	_, err = s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			if _, err := s.repoManager.MarketplaceRepository().GetMarketplace(
				ctx, marketplace.Address,
			); err == nil {
				return nil, domain.ErrMarketplaceAlreadyExists
			} else if !errors.Is(err, domain.ErrMarketplaceNotFound) {
				return nil, err
			}

			rent, err := s.ledger.Allocate(ctx, admin, domain.MarketplaceSpace)
			if err != nil {
				return nil, err
			}
			marketplace.Lamports = rent
			if err := s.repoManager.MarketplaceRepository().AddMarketplace(
				ctx, marketplace,
			); err != nil {
				return nil, err
			}

			_, err = s.ledger.CreateMint(
				ctx, admin, marketplace.RewardsMint,
				domain.RewardsMintDecimals, marketplace.Address,
			)
			return nil, err
		},
	)
	observe("init_marketplace", err)
	if err != nil {
		log.WithError(err).WithField("name", req.Name).
			Debug("marketplace: init failed")
		return nil, err
	}

	log.WithFields(log.Fields{
		"marketplace": marketplace.Address.String(),
		"name":        marketplace.Name,
		"fee":         marketplace.Fee,
	}).Info("marketplace: initialized")
	s.events.publish(
		domain.EventMarketplaceCreated, marketplacePayload(marketplace),
	)
	return marketplace, nil
}

func (s *marketplaceService) GetMarketplace(
	ctx context.Context, name string,
) (*domain.Marketplace, error) {
	addr, _, err := domain.DeriveMarketplaceAddress(s.programID, name)
	if err != nil {
		return nil, err
	}
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.MarketplaceRepository().GetMarketplace(ctx, addr)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.(*domain.Marketplace), nil
}

func (s *marketplaceService) ListMarketplaces(
	ctx context.Context,
) ([]domain.Marketplace, error) {
	res, err := s.repoManager.RunTransaction(
		ctx, true, func(ctx context.Context) (interface{}, error) {
			return s.repoManager.MarketplaceRepository().GetAllMarketplaces(ctx)
		},
	)
	if err != nil {
		return nil, err
	}
	return res.([]domain.Marketplace), nil
}

func (s *marketplaceService) MintRewards(
	ctx context.Context, req MintRewardsRequest,
) (*domain.TokenAccount, error) {
	admin, err := domain.NewUserSigner(req.Admin)
	if err != nil {
		return nil, err
	}
	if req.Amount == 0 {
		return nil, domain.ErrInvalidAmount
	}
	addr, _, err := domain.DeriveMarketplaceAddress(s.programID, req.Name)
	if err != nil {
		return nil, err
	}

	res, err := s.repoManager.RunTransaction(
		ctx, false, func(ctx context.Context) (interface{}, error) {
			marketplace, err := s.repoManager.MarketplaceRepository().
				GetMarketplace(ctx, addr)
			if err != nil {
				return nil, err
			}
			if !marketplace.IsAdmin(req.Admin) {
				return nil, domain.ErrMarketplaceNotAdmin
			}
			signer, err := marketplace.Signer(s.programID)
			if err != nil {
				return nil, err
			}

			account, err := s.ledger.GetOrCreateAssociatedAccount(
				ctx, admin, marketplace.RewardsMint, req.Recipient,
			)
			if err != nil {
				return nil, err
			}
			if err := s.ledger.MintTo(
				ctx, marketplace.RewardsMint, account.Address, req.Amount, signer,
			); err != nil {
				return nil, err
			}
			return s.ledger.GetAccount(ctx, account.Address)
		},
	)
	observe("mint_rewards", err)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"marketplace": req.Name,
		"recipient":   req.Recipient.String(),
		"amount":      req.Amount,
	}).Info("marketplace: rewards minted")
	return res.(*domain.TokenAccount), nil
}
