package httpinterface

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	interfaces "github.com/tdex-network/tdex-custody/internal/interfaces"
)

const shutdownTimeout = 10 * time.Second

type ServiceOpts struct {
	Port int
	// Max number of requests per second, 0 disables the throttle.
	RateLimit    int
	EnableFaucet bool

	EscrowSvc      application.EscrowService
	MarketplaceSvc application.MarketplaceService
	LedgerSvc      application.LedgerService
	WebhookSvc     application.WebhookService
}

func (o ServiceOpts) validate() error {
	if o.Port <= 0 || o.Port > 65535 {
		return fmt.Errorf("invalid listening port %d", o.Port)
	}
	if o.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	if o.EscrowSvc == nil {
		return fmt.Errorf("missing escrow service")
	}
	if o.MarketplaceSvc == nil {
		return fmt.Errorf("missing marketplace service")
	}
	if o.LedgerSvc == nil {
		return fmt.Errorf("missing ledger service")
	}
	if o.WebhookSvc == nil {
		return fmt.Errorf("missing webhook service")
	}
	return nil
}

type service struct {
	opts   ServiceOpts
	server *http.Server
}

// NewService returns the REST interface of the daemon.
func NewService(opts ServiceOpts) (interfaces.Service, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("invalid opts: %w", err)
	}
	return &service{
		opts: opts,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(lis); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Warn("http: server stopped unexpectedly")
		}
	}()
	log.Infof("http interface listening on %s", lis.Addr())
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("http: failed to gracefully stop interface")
		return
	}
	log.Debug("disabled http interface")
}

// NewRouter returns the handler serving every route of the REST interface.
func NewRouter(opts ServiceOpts) http.Handler {
	h := &handler{
		escrowSvc:      opts.EscrowSvc,
		marketplaceSvc: opts.MarketplaceSvc,
		ledgerSvc:      opts.LedgerSvc,
		webhookSvc:     opts.WebhookSvc,
		withFaucet:     opts.EnableFaucet,
	}

	r := chi.NewRouter()
	r.Use(withRequestID)
	r.Use(withLogAndMetrics)
	if opts.RateLimit > 0 {
		r.Use(withRateLimit(opts.RateLimit))
	}

	r.Get("/health", health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(api chi.Router) {
		api.Route("/escrows", func(r chi.Router) {
			r.Post("/", h.makeEscrow)
			r.Get("/", h.listEscrows)
			r.Get("/{address}", h.getEscrow)
			r.Get("/{address}/status", h.getEscrowStatus)
			r.Post("/{address}/take", h.takeEscrow)
			r.Post("/{address}/refund", h.refundEscrow)
		})
		api.Get("/settlements", h.listSettlements)

		api.Route("/marketplaces", func(r chi.Router) {
			r.Post("/", h.initMarketplace)
			r.Get("/", h.listMarketplaces)
			r.Get("/{name}", h.getMarketplace)
			r.Post("/{name}/rewards", h.mintRewards)
		})

		api.Post("/airdrop", h.airdrop)
		api.Get("/accounts/{address}", h.getAccount)
		api.Get("/token-accounts/{address}", h.getTokenAccount)
		api.Route("/mints", func(r chi.Router) {
			r.Post("/", h.createMint)
			r.Get("/{address}", h.getMint)
			r.Post("/{address}/accounts", h.createTokenAccount)
			r.Post("/{address}/mint-to", h.mintTo)
			r.Get("/{address}/balances/{owner}", h.getBalance)
		})

		api.Route("/webhooks", func(r chi.Router) {
			r.Post("/", h.addWebhook)
			r.Get("/", h.listWebhooks)
			r.Delete("/{id}", h.removeWebhook)
		})
	})

	return r
}
