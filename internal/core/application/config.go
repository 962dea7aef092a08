package application

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/internal/core/domain"
	"github.com/tdex-network/tdex-custody/internal/core/ports"
	"github.com/tdex-network/tdex-custody/internal/infrastructure/ledger"
	dbbadger "github.com/tdex-network/tdex-custody/internal/infrastructure/storage/db/badger"
	"github.com/tdex-network/tdex-custody/internal/infrastructure/storage/db/inmemory"
	"github.com/tdex-network/tdex-custody/pkg/address"
)

const (
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger:   {},
		DBInMemory: {},
	}
)

// Config wires the application services together. Services are built lazily
// and share the same repo manager and token ledger.
type Config struct {
	DBType string
	// Datadir of the badger store, ignored for the inmemory type.
	DBDir        string
	TxMaxRetries int

	EscrowProgramID      address.Address
	MarketplaceProgramID address.Address
	// Notifier delivers events to webhooks. Leave nil to disable them.
	Notifier ports.WebhookNotifier

	repo        ports.RepoManager
	ledger      ports.TokenLedger
	escrow      EscrowService
	marketplace MarketplaceService
	ledgerSvc   LedgerService
	webhook     WebhookService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
	}
	if c.EscrowProgramID.IsZero() {
		c.EscrowProgramID = domain.DefaultEscrowProgramID
	}
	if c.MarketplaceProgramID.IsZero() {
		c.MarketplaceProgramID = domain.DefaultMarketplaceProgramID
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	svc, _ := c.repoManager()
	return svc
}

func (c *Config) EscrowService() EscrowService {
	if c.escrow == nil {
		c.escrow = NewEscrowService(
			c.RepoManager(), c.tokenLedger(), c.Notifier,
			c.EscrowProgramID, c.MarketplaceProgramID,
		)
	}
	return c.escrow
}

func (c *Config) MarketplaceService() MarketplaceService {
	if c.marketplace == nil {
		c.marketplace = NewMarketplaceService(
			c.RepoManager(), c.tokenLedger(), c.Notifier,
			c.MarketplaceProgramID,
		)
	}
	return c.marketplace
}

func (c *Config) LedgerService() LedgerService {
	if c.ledgerSvc == nil {
		c.ledgerSvc = NewLedgerService(c.RepoManager(), c.tokenLedger())
	}
	return c.ledgerSvc
}

func (c *Config) WebhookService() WebhookService {
	if c.webhook == nil {
		c.webhook = NewWebhookService(c.RepoManager())
	}
	return c.webhook
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		switch c.DBType {
		case DBBadger:
			repoManager, err := dbbadger.NewRepoManager(
				c.DBDir, log.StandardLogger(), c.TxMaxRetries,
			)
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		case DBInMemory:
			c.repo = inmemory.NewRepoManager()
		default:
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedDBType, c.DBType)
		}
	}
	return c.repo, nil
}

func (c *Config) tokenLedger() ports.TokenLedger {
	if c.ledger == nil {
		c.ledger = ledger.NewService(c.RepoManager())
	}
	return c.ledger
}
