package httpinterface

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	"github.com/tdex-network/tdex-custody/pkg/api"
)

var errFaucetDisabled = errors.New("faucet is disabled")

type handler struct {
	escrowSvc      application.EscrowService
	marketplaceSvc application.MarketplaceService
	ledgerSvc      application.LedgerService
	webhookSvc     application.WebhookService
	withFaucet     bool
}

func (h *handler) makeEscrow(w http.ResponseWriter, r *http.Request) {
	var body api.MakeEscrowRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	maker, err := parseAddress("maker", body.Maker)
	if err != nil {
		writeError(w, r, err)
		return
	}
	mintA, err := parseAddress("mint_a", body.MintA)
	if err != nil {
		writeError(w, r, err)
		return
	}
	mintB, err := parseAddress("mint_b", body.MintB)
	if err != nil {
		writeError(w, r, err)
		return
	}

	escrow, err := h.escrowSvc.Make(r.Context(), application.MakeEscrowRequest{
		Maker:         maker,
		Seed:          body.Seed,
		MintA:         mintA,
		MintB:         mintB,
		DepositAmount: body.DepositAmount,
		ReceiveAmount: body.ReceiveAmount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEscrow(*escrow))
}

func (h *handler) listEscrows(w http.ResponseWriter, r *http.Request) {
	maker, err := queryAddress(r, "maker")
	if err != nil {
		writeError(w, r, err)
		return
	}
	escrows, err := h.escrowSvc.ListEscrows(r.Context(), maker)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEscrowList(escrows))
}

func (h *handler) getEscrow(w http.ResponseWriter, r *http.Request) {
	addr, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	info, err := h.escrowSvc.GetEscrow(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEscrowInfo(info))
}

func (h *handler) getEscrowStatus(w http.ResponseWriter, r *http.Request) {
	addr, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	status, err := h.escrowSvc.GetEscrowStatus(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.EscrowStatus{
		Escrow: addr.String(),
		Status: status.String(),
	})
}

func (h *handler) takeEscrow(w http.ResponseWriter, r *http.Request) {
	escrow, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body api.TakeEscrowRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	taker, err := parseAddress("taker", body.Taker)
	if err != nil {
		writeError(w, r, err)
		return
	}

	settlement, err := h.escrowSvc.Take(r.Context(), application.TakeEscrowRequest{
		Taker:       taker,
		Escrow:      escrow,
		Marketplace: body.Marketplace,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettlement(*settlement))
}

func (h *handler) refundEscrow(w http.ResponseWriter, r *http.Request) {
	escrow, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body api.RefundEscrowRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	maker, err := parseAddress("maker", body.Maker)
	if err != nil {
		writeError(w, r, err)
		return
	}

	settlement, err := h.escrowSvc.Refund(r.Context(), application.RefundEscrowRequest{
		Maker:  maker,
		Escrow: escrow,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettlement(*settlement))
}

func (h *handler) listSettlements(w http.ResponseWriter, r *http.Request) {
	escrow, err := queryAddress(r, "escrow")
	if err != nil {
		writeError(w, r, err)
		return
	}
	settlements, err := h.escrowSvc.ListSettlements(r.Context(), escrow)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettlementList(settlements))
}

func (h *handler) initMarketplace(w http.ResponseWriter, r *http.Request) {
	var body api.InitMarketplaceRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	admin, err := parseAddress("admin", body.Admin)
	if err != nil {
		writeError(w, r, err)
		return
	}

	marketplace, err := h.marketplaceSvc.Init(
		r.Context(), application.InitMarketplaceRequest{
			Admin: admin,
			Name:  body.Name,
			Fee:   body.Fee,
		},
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMarketplace(*marketplace))
}

func (h *handler) listMarketplaces(w http.ResponseWriter, r *http.Request) {
	marketplaces, err := h.marketplaceSvc.ListMarketplaces(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMarketplaceList(marketplaces))
}

func (h *handler) getMarketplace(w http.ResponseWriter, r *http.Request) {
	marketplace, err := h.marketplaceSvc.GetMarketplace(
		r.Context(), chi.URLParam(r, "name"),
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMarketplace(*marketplace))
}

func (h *handler) mintRewards(w http.ResponseWriter, r *http.Request) {
	var body api.MintRewardsRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	admin, err := parseAddress("admin", body.Admin)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recipient, err := parseAddress("recipient", body.Recipient)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.marketplaceSvc.MintRewards(
		r.Context(), application.MintRewardsRequest{
			Admin:     admin,
			Name:      chi.URLParam(r, "name"),
			Recipient: recipient,
			Amount:    body.Amount,
		},
	)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTokenAccount(account))
}

func (h *handler) airdrop(w http.ResponseWriter, r *http.Request) {
	if !h.withFaucet {
		writeError(w, r, errFaucetDisabled)
		return
	}
	var body api.AirdropRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	addr, err := parseAddress("address", body.Address)
	if err != nil {
		writeError(w, r, err)
		return
	}

	lamports, err := h.ledgerSvc.Airdrop(r.Context(), addr, body.Lamports)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Account{
		Address: addr.String(), Lamports: lamports,
	})
}

func (h *handler) getAccount(w http.ResponseWriter, r *http.Request) {
	addr, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	lamports, err := h.ledgerSvc.GetLamports(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Account{
		Address: addr.String(), Lamports: lamports,
	})
}

func (h *handler) getTokenAccount(w http.ResponseWriter, r *http.Request) {
	addr, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	account, err := h.ledgerSvc.GetTokenAccount(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTokenAccount(account))
}

func (h *handler) createMint(w http.ResponseWriter, r *http.Request) {
	var body api.CreateMintRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	payer, err := parseAddress("payer", body.Payer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	authority, err := parseAddress("authority", body.Authority)
	if err != nil {
		writeError(w, r, err)
		return
	}

	mint, err := h.ledgerSvc.CreateMint(r.Context(), application.CreateMintRequest{
		Payer:     payer,
		Decimals:  body.Decimals,
		Authority: authority,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMint(mint))
}

func (h *handler) getMint(w http.ResponseWriter, r *http.Request) {
	addr, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	mint, err := h.ledgerSvc.GetMint(r.Context(), addr)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toMint(mint))
}

func (h *handler) createTokenAccount(w http.ResponseWriter, r *http.Request) {
	mint, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body api.CreateTokenAccountRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	payer, err := parseAddress("payer", body.Payer)
	if err != nil {
		writeError(w, r, err)
		return
	}
	owner, err := parseAddress("owner", body.Owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.ledgerSvc.CreateTokenAccount(r.Context(), payer, mint, owner)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTokenAccount(account))
}

func (h *handler) mintTo(w http.ResponseWriter, r *http.Request) {
	mint, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var body api.MintToRequest
	if err := readJSON(r, &body); err != nil {
		writeError(w, r, err)
		return
	}
	authority, err := parseAddress("authority", body.Authority)
	if err != nil {
		writeError(w, r, err)
		return
	}
	owner, err := parseAddress("owner", body.Owner)
	if err != nil {
		writeError(w, r, err)
		return
	}

	account, err := h.ledgerSvc.MintTo(r.Context(), application.MintToRequest{
		Authority: authority,
		Mint:      mint,
		Owner:     owner,
		Amount:    body.Amount,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTokenAccount(account))
}

func (h *handler) getBalance(w http.ResponseWriter, r *http.Request) {
	mint, err := urlAddress(r, "address")
	if err != nil {
		writeError(w, r, err)
		return
	}
	owner, err := urlAddress(r, "owner")
	if err != nil {
		writeError(w, r, err)
		return
	}
	amount, err := h.ledgerSvc.GetBalance(r.Context(), owner, mint)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Balance{
		Owner: owner.String(), Mint: mint.String(), Amount: amount,
	})
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
