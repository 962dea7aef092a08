// Package api defines the JSON messages exchanged with the custody daemon over
// its REST interface. Addresses are always base58 encoded.
package api

const (
	CodeBadRequest         = "BAD_REQUEST"
	CodePreconditionFailed = "PRECONDITION_FAILED"
	CodeNotFound           = "NOT_FOUND"
	CodeCollision          = "COLLISION"
	CodeInvariantViolation = "INVARIANT_VIOLATION"
	CodeFaucetDisabled     = "FAUCET_DISABLED"
	CodeInternal           = "INTERNAL"
)

// ErrorBody is the payload of every non 2xx response.
type ErrorBody struct {
	Error     ErrorDetail `json:"error"`
	RequestID string      `json:"request_id"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type MakeEscrowRequest struct {
	Maker         string `json:"maker"`
	Seed          uint64 `json:"seed"`
	MintA         string `json:"mint_a"`
	MintB         string `json:"mint_b"`
	DepositAmount uint64 `json:"deposit_amount"`
	ReceiveAmount uint64 `json:"receive_amount"`
}

type TakeEscrowRequest struct {
	Taker string `json:"taker"`
	// Optional name of the marketplace collecting a fee.
	Marketplace string `json:"marketplace,omitempty"`
}

type RefundEscrowRequest struct {
	Maker string `json:"maker"`
}

type Escrow struct {
	Address       string `json:"address"`
	Maker         string `json:"maker"`
	MintA         string `json:"mint_a"`
	MintB         string `json:"mint_b"`
	Seed          uint64 `json:"seed"`
	ReceiveAmount uint64 `json:"receive_amount"`
	Bump          uint8  `json:"bump"`
	Vault         string `json:"vault"`
	VaultAmount   uint64 `json:"vault_amount,omitempty"`
	Lamports      uint64 `json:"lamports"`
	CreatedAt     int64  `json:"created_at"`
}

type ListEscrowsResponse struct {
	Escrows []Escrow `json:"escrows"`
}

type EscrowStatus struct {
	Escrow string `json:"escrow"`
	Status string `json:"status"`
}

type Settlement struct {
	ID          string `json:"id"`
	Escrow      string `json:"escrow"`
	Maker       string `json:"maker"`
	Taker       string `json:"taker,omitempty"`
	Marketplace string `json:"marketplace,omitempty"`
	MintA       string `json:"mint_a"`
	MintB       string `json:"mint_b"`
	Seed        uint64 `json:"seed"`
	AmountA     uint64 `json:"amount_a"`
	AmountB     uint64 `json:"amount_b"`
	Fee         uint64 `json:"fee"`
	Status      string `json:"status"`
	Timestamp   int64  `json:"timestamp"`
}

type ListSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}

type InitMarketplaceRequest struct {
	Admin string `json:"admin"`
	Name  string `json:"name"`
	// Fee in basis points.
	Fee uint16 `json:"fee"`
}

type Marketplace struct {
	Address      string `json:"address"`
	Admin        string `json:"admin"`
	Name         string `json:"name"`
	Fee          uint16 `json:"fee"`
	Bump         uint8  `json:"bump"`
	Treasury     string `json:"treasury"`
	TreasuryBump uint8  `json:"treasury_bump"`
	RewardsMint  string `json:"rewards_mint"`
	RewardsBump  uint8  `json:"rewards_bump"`
	Lamports     uint64 `json:"lamports"`
	CreatedAt    int64  `json:"created_at"`
}

type ListMarketplacesResponse struct {
	Marketplaces []Marketplace `json:"marketplaces"`
}

type MintRewardsRequest struct {
	Admin     string `json:"admin"`
	Recipient string `json:"recipient"`
	Amount    uint64 `json:"amount"`
}

type AirdropRequest struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

// Account is the native balance of an address.
type Account struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

type CreateMintRequest struct {
	Payer     string `json:"payer"`
	Decimals  uint8  `json:"decimals"`
	Authority string `json:"authority"`
}

type Mint struct {
	Address       string `json:"address"`
	Decimals      uint8  `json:"decimals"`
	MintAuthority string `json:"mint_authority"`
	Supply        uint64 `json:"supply"`
	Lamports      uint64 `json:"lamports"`
}

type CreateTokenAccountRequest struct {
	Payer string `json:"payer"`
	Owner string `json:"owner"`
}

type MintToRequest struct {
	Authority string `json:"authority"`
	Owner     string `json:"owner"`
	Amount    uint64 `json:"amount"`
}

type TokenAccount struct {
	Address  string `json:"address"`
	Mint     string `json:"mint"`
	Owner    string `json:"owner"`
	Amount   uint64 `json:"amount"`
	Lamports uint64 `json:"lamports"`
}

type Balance struct {
	Owner  string `json:"owner"`
	Mint   string `json:"mint"`
	Amount uint64 `json:"amount"`
}

type AddWebhookRequest struct {
	Event    string `json:"event"`
	Endpoint string `json:"endpoint"`
	Secret   string `json:"secret,omitempty"`
}

// Webhook never carries the secret back, only whether requests are signed.
type Webhook struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

type ListWebhooksResponse struct {
	Webhooks []Webhook `json:"webhooks"`
}
