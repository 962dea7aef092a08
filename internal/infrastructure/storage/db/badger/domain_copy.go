package dbbadger

import (
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

// Stored copies of the domain entities. Addresses are kept in their text
// form so that they can be matched by badgerhold queries.

type escrowRecord struct {
	Address       string
	Maker         string
	MintA         string
	MintB         string
	Seed          uint64
	ReceiveAmount uint64
	Bump          uint8
	Vault         string
	Lamports      uint64
	CreatedAt     int64
}

func newEscrowRecord(e domain.Escrow) escrowRecord {
	return escrowRecord{
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

func (r escrowRecord) toDomain() domain.Escrow {
	return domain.Escrow{
		Address:       mustParse(r.Address),
		Maker:         mustParse(r.Maker),
		MintA:         mustParse(r.MintA),
		MintB:         mustParse(r.MintB),
		Seed:          r.Seed,
		ReceiveAmount: r.ReceiveAmount,
		Bump:          r.Bump,
		Vault:         mustParse(r.Vault),
		Lamports:      r.Lamports,
		CreatedAt:     r.CreatedAt,
	}
}

type marketplaceRecord struct {
	Address      string
	Admin        string
	Name         string
	Fee          uint16
	Bump         uint8
	Treasury     string
	TreasuryBump uint8
	RewardsMint  string
	RewardsBump  uint8
	Lamports     uint64
	CreatedAt    int64
}

func newMarketplaceRecord(m domain.Marketplace) marketplaceRecord {
	return marketplaceRecord{
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

func (r marketplaceRecord) toDomain() domain.Marketplace {
	return domain.Marketplace{
		Address:      mustParse(r.Address),
		Admin:        mustParse(r.Admin),
		Name:         r.Name,
		Fee:          r.Fee,
		Bump:         r.Bump,
		Treasury:     mustParse(r.Treasury),
		TreasuryBump: r.TreasuryBump,
		RewardsMint:  mustParse(r.RewardsMint),
		RewardsBump:  r.RewardsBump,
		Lamports:     r.Lamports,
		CreatedAt:    r.CreatedAt,
	}
}

type settlementRecord struct {
	ID          string
	Escrow      string
	Maker       string
	Taker       string
	Marketplace string
	MintA       string
	MintB       string
	Seed        uint64
	AmountA     uint64
	AmountB     uint64
	Fee         uint64
	Status      int
	Timestamp   int64
}

func newSettlementRecord(s domain.Settlement) settlementRecord {
	return settlementRecord{
		ID:          s.ID,
		Escrow:      s.Escrow.String(),
		Maker:       s.Maker.String(),
		Taker:       s.Taker.String(),
		Marketplace: s.Marketplace.String(),
		MintA:       s.MintA.String(),
		MintB:       s.MintB.String(),
		Seed:        s.Seed,
		AmountA:     s.AmountA,
		AmountB:     s.AmountB,
		Fee:         s.Fee,
		Status:      int(s.Status),
		Timestamp:   s.Timestamp,
	}
}

func (r settlementRecord) toDomain() domain.Settlement {
	return domain.Settlement{
		ID:          r.ID,
		Escrow:      mustParse(r.Escrow),
		Maker:       mustParse(r.Maker),
		Taker:       mustParse(r.Taker),
		Marketplace: mustParse(r.Marketplace),
		MintA:       mustParse(r.MintA),
		MintB:       mustParse(r.MintB),
		Seed:        r.Seed,
		AmountA:     r.AmountA,
		AmountB:     r.AmountB,
		Fee:         r.Fee,
		Status:      domain.EscrowStatus(r.Status),
		Timestamp:   r.Timestamp,
	}
}

type accountRecord struct {
	Address  string
	Lamports uint64
}

type mintRecord struct {
	Address       string
	Decimals      uint8
	MintAuthority string
	Supply        uint64
	Lamports      uint64
}

func newMintRecord(m domain.Mint) mintRecord {
	return mintRecord{
		Address:       m.Address.String(),
		Decimals:      m.Decimals,
		MintAuthority: m.MintAuthority.String(),
		Supply:        m.Supply,
		Lamports:      m.Lamports,
	}
}

func (r mintRecord) toDomain() domain.Mint {
	return domain.Mint{
		Address:       mustParse(r.Address),
		Decimals:      r.Decimals,
		MintAuthority: mustParse(r.MintAuthority),
		Supply:        r.Supply,
		Lamports:      r.Lamports,
	}
}

type tokenAccountRecord struct {
	Address  string
	Mint     string
	Owner    string
	Amount   uint64
	Lamports uint64
}

func newTokenAccountRecord(a domain.TokenAccount) tokenAccountRecord {
	return tokenAccountRecord{
		Address:  a.Address.String(),
		Mint:     a.Mint.String(),
		Owner:    a.Owner.String(),
		Amount:   a.Amount,
		Lamports: a.Lamports,
	}
}

func (r tokenAccountRecord) toDomain() domain.TokenAccount {
	return domain.TokenAccount{
		Address:  mustParse(r.Address),
		Mint:     mustParse(r.Mint),
		Owner:    mustParse(r.Owner),
		Amount:   r.Amount,
		Lamports: r.Lamports,
	}
}

// Stored addresses are always produced by Address.String.
func mustParse(s string) address.Address {
	return address.MustParseAddress(s)
}

// webhookRecord has the same layout of domain.Webhook but its own type name,
// which badgerhold uses as key prefix.
type webhookRecord struct {
	ID       string
	Event    string
	Endpoint string
	Secret   string
}
