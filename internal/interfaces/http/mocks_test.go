package httpinterface

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

type mockEscrowService struct {
	mock.Mock
}

func (m *mockEscrowService) Make(
	ctx context.Context, req application.MakeEscrowRequest,
) (*domain.Escrow, error) {
	args := m.Called(ctx, req)
	var res *domain.Escrow
	if a := args.Get(0); a != nil {
		res = a.(*domain.Escrow)
	}
	return res, args.Error(1)
}

func (m *mockEscrowService) Take(
	ctx context.Context, req application.TakeEscrowRequest,
) (*domain.Settlement, error) {
	args := m.Called(ctx, req)
	var res *domain.Settlement
	if a := args.Get(0); a != nil {
		res = a.(*domain.Settlement)
	}
	return res, args.Error(1)
}

func (m *mockEscrowService) Refund(
	ctx context.Context, req application.RefundEscrowRequest,
) (*domain.Settlement, error) {
	args := m.Called(ctx, req)
	var res *domain.Settlement
	if a := args.Get(0); a != nil {
		res = a.(*domain.Settlement)
	}
	return res, args.Error(1)
}

func (m *mockEscrowService) GetEscrow(
	ctx context.Context, addr address.Address,
) (*application.EscrowInfo, error) {
	args := m.Called(ctx, addr)
	var res *application.EscrowInfo
	if a := args.Get(0); a != nil {
		res = a.(*application.EscrowInfo)
	}
	return res, args.Error(1)
}

func (m *mockEscrowService) ListEscrows(
	ctx context.Context, maker *address.Address,
) ([]domain.Escrow, error) {
	args := m.Called(ctx, maker)
	var res []domain.Escrow
	if a := args.Get(0); a != nil {
		res = a.([]domain.Escrow)
	}
	return res, args.Error(1)
}

func (m *mockEscrowService) GetEscrowStatus(
	ctx context.Context, addr address.Address,
) (domain.EscrowStatus, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(domain.EscrowStatus), args.Error(1)
}

func (m *mockEscrowService) ListSettlements(
	ctx context.Context, escrow *address.Address,
) ([]domain.Settlement, error) {
	args := m.Called(ctx, escrow)
	var res []domain.Settlement
	if a := args.Get(0); a != nil {
		res = a.([]domain.Settlement)
	}
	return res, args.Error(1)
}

type mockMarketplaceService struct {
	mock.Mock
}

func (m *mockMarketplaceService) Init(
	ctx context.Context, req application.InitMarketplaceRequest,
) (*domain.Marketplace, error) {
	args := m.Called(ctx, req)
	var res *domain.Marketplace
	if a := args.Get(0); a != nil {
		res = a.(*domain.Marketplace)
	}
	return res, args.Error(1)
}

func (m *mockMarketplaceService) GetMarketplace(
	ctx context.Context, name string,
) (*domain.Marketplace, error) {
	args := m.Called(ctx, name)
	var res *domain.Marketplace
	if a := args.Get(0); a != nil {
		res = a.(*domain.Marketplace)
	}
	return res, args.Error(1)
}

func (m *mockMarketplaceService) ListMarketplaces(
	ctx context.Context,
) ([]domain.Marketplace, error) {
	args := m.Called(ctx)
	var res []domain.Marketplace
	if a := args.Get(0); a != nil {
		res = a.([]domain.Marketplace)
	}
	return res, args.Error(1)
}

func (m *mockMarketplaceService) MintRewards(
	ctx context.Context, req application.MintRewardsRequest,
) (*domain.TokenAccount, error) {
	args := m.Called(ctx, req)
	var res *domain.TokenAccount
	if a := args.Get(0); a != nil {
		res = a.(*domain.TokenAccount)
	}
	return res, args.Error(1)
}

type mockLedgerService struct {
	mock.Mock
}

func (m *mockLedgerService) Airdrop(
	ctx context.Context, addr address.Address, lamports uint64,
) (uint64, error) {
	args := m.Called(ctx, addr, lamports)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockLedgerService) CreateMint(
	ctx context.Context, req application.CreateMintRequest,
) (*domain.Mint, error) {
	args := m.Called(ctx, req)
	var res *domain.Mint
	if a := args.Get(0); a != nil {
		res = a.(*domain.Mint)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) CreateTokenAccount(
	ctx context.Context, payer, mint, owner address.Address,
) (*domain.TokenAccount, error) {
	args := m.Called(ctx, payer, mint, owner)
	var res *domain.TokenAccount
	if a := args.Get(0); a != nil {
		res = a.(*domain.TokenAccount)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) MintTo(
	ctx context.Context, req application.MintToRequest,
) (*domain.TokenAccount, error) {
	args := m.Called(ctx, req)
	var res *domain.TokenAccount
	if a := args.Get(0); a != nil {
		res = a.(*domain.TokenAccount)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) GetBalance(
	ctx context.Context, owner, mint address.Address,
) (uint64, error) {
	args := m.Called(ctx, owner, mint)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockLedgerService) GetLamports(
	ctx context.Context, addr address.Address,
) (uint64, error) {
	args := m.Called(ctx, addr)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *mockLedgerService) GetTokenAccount(
	ctx context.Context, addr address.Address,
) (*domain.TokenAccount, error) {
	args := m.Called(ctx, addr)
	var res *domain.TokenAccount
	if a := args.Get(0); a != nil {
		res = a.(*domain.TokenAccount)
	}
	return res, args.Error(1)
}

func (m *mockLedgerService) GetMint(
	ctx context.Context, addr address.Address,
) (*domain.Mint, error) {
	args := m.Called(ctx, addr)
	var res *domain.Mint
	if a := args.Get(0); a != nil {
		res = a.(*domain.Mint)
	}
	return res, args.Error(1)
}

type mockWebhookService struct {
	mock.Mock
}

func (m *mockWebhookService) AddWebhook(
	ctx context.Context, req application.AddWebhookRequest,
) (*domain.Webhook, error) {
	args := m.Called(ctx, req)
	var res *domain.Webhook
	if a := args.Get(0); a != nil {
		res = a.(*domain.Webhook)
	}
	return res, args.Error(1)
}

func (m *mockWebhookService) RemoveWebhook(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockWebhookService) ListWebhooks(
	ctx context.Context, event string,
) ([]domain.Webhook, error) {
	args := m.Called(ctx, event)
	var res []domain.Webhook
	if a := args.Get(0); a != nil {
		res = a.([]domain.Webhook)
	}
	return res, args.Error(1)
}
