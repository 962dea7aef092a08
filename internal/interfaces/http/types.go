package httpinterface

import (
	"github.com/tdex-network/tdex-custody/internal/core/application"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
	"github.com/tdex-network/tdex-custody/pkg/api"
)

func optionalAddress(addr address.Address) string {
	if addr.IsZero() {
		return ""
	}
	return addr.String()
}

func toEscrow(e domain.Escrow) api.Escrow {
	return api.Escrow{
		Address:       e.Address.String(),
		Maker:         e.Maker.String(),
		MintA:         e.MintA.String(),
		MintB:         e.MintB.String(),
		Seed:          e.Seed,
		ReceiveAmount: e.ReceiveAmount,
		Bump:          e.Bump,
		Vault:         e.Vault.String(),
		Lamports:      e.Lamports,
		CreatedAt:     e.CreatedAt,
	}
}

func toEscrowInfo(info *application.EscrowInfo) api.Escrow {
	e := toEscrow(info.Escrow)
	e.VaultAmount = info.VaultAmount
	return e
}

func toEscrowList(escrows []domain.Escrow) api.ListEscrowsResponse {
	list := make([]api.Escrow, 0, len(escrows))
	for _, e := range escrows {
		list = append(list, toEscrow(e))
	}
	return api.ListEscrowsResponse{Escrows: list}
}

func toSettlement(s domain.Settlement) api.Settlement {
	return api.Settlement{
		ID:          s.ID,
		Escrow:      s.Escrow.String(),
		Maker:       s.Maker.String(),
		Taker:       optionalAddress(s.Taker),
		Marketplace: optionalAddress(s.Marketplace),
		MintA:       s.MintA.String(),
		MintB:       s.MintB.String(),
		Seed:        s.Seed,
		AmountA:     s.AmountA,
		AmountB:     s.AmountB,
		Fee:         s.Fee,
		Status:      s.Status.String(),
		Timestamp:   s.Timestamp,
	}
}

func toSettlementList(settlements []domain.Settlement) api.ListSettlementsResponse {
	list := make([]api.Settlement, 0, len(settlements))
	for _, s := range settlements {
		list = append(list, toSettlement(s))
	}
	return api.ListSettlementsResponse{Settlements: list}
}

func toMarketplace(m domain.Marketplace) api.Marketplace {
	return api.Marketplace{
		Address:      m.Address.String(),
		Admin:        m.Admin.String(),
		Name:         m.Name,
		Fee:          m.Fee,
		Bump:         m.Bump,
		Treasury:     m.Treasury.String(),
		TreasuryBump: m.TreasuryBump,
		RewardsMint:  m.RewardsMint.String(),
		RewardsBump:  m.RewardsBump,
		Lamports:     m.Lamports,
		CreatedAt:    m.CreatedAt,
	}
}

func toMarketplaceList(marketplaces []domain.Marketplace) api.ListMarketplacesResponse {
	list := make([]api.Marketplace, 0, len(marketplaces))
	for _, m := range marketplaces {
		list = append(list, toMarketplace(m))
	}
	return api.ListMarketplacesResponse{Marketplaces: list}
}

func toMint(m *domain.Mint) api.Mint {
	return api.Mint{
		Address:       m.Address.String(),
		Decimals:      m.Decimals,
		MintAuthority: m.MintAuthority.String(),
		Supply:        m.Supply,
		Lamports:      m.Lamports,
	}
}

func toTokenAccount(a *domain.TokenAccount) api.TokenAccount {
	return api.TokenAccount{
		Address:  a.Address.String(),
		Mint:     a.Mint.String(),
		Owner:    a.Owner.String(),
		Amount:   a.Amount,
		Lamports: a.Lamports,
	}
}

func toWebhook(w domain.Webhook) api.Webhook {
	return api.Webhook{
		ID:        w.ID,
		Event:     w.Event,
		Endpoint:  w.Endpoint,
		IsSecured: w.IsSecured(),
	}
}

func toWebhookList(hooks []domain.Webhook) api.ListWebhooksResponse {
	list := make([]api.Webhook, 0, len(hooks))
	for _, h := range hooks {
		list = append(list, toWebhook(h))
	}
	return api.ListWebhooksResponse{Webhooks: list}
}
