package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/tdex-custody/config"
	"github.com/tdex-network/tdex-custody/internal/core/application"
	"github.com/tdex-network/tdex-custody/internal/infrastructure/pubsub"
	httpinterface "github.com/tdex-network/tdex-custody/internal/interfaces/http"
	"github.com/tdex-network/tdex-custody/pkg/stats"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	appConfig := &application.Config{
		DBType:               config.GetString(config.DBTypeKey),
		DBDir:                config.GetDBDir(),
		TxMaxRetries:         config.GetInt(config.TxMaxRetriesKey),
		EscrowProgramID:      config.GetEscrowProgramID(),
		MarketplaceProgramID: config.GetMarketplaceProgramID(),
	}
	if config.GetBool(config.EnableWebhooksKey) {
		appConfig.Notifier = pubsub.NewService(config.GetWebhookTimeout())
	}
	if err := appConfig.Validate(); err != nil {
		log.WithError(err).Fatal("invalid application config")
	}
	repoManager := appConfig.RepoManager()
	defer repoManager.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if config.GetBool(config.EnableProfilerKey) {
		stats.EnableMemoryStatistics(
			ctx, config.GetStatsInterval(),
			filepath.Join(config.GetDatadir(), config.ProfilerLocation),
		)
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:           config.GetInt(config.HTTPListeningPortKey),
		RateLimit:      config.GetInt(config.RateLimitKey),
		EnableFaucet:   config.GetBool(config.EnableFaucetKey),
		EscrowSvc:      appConfig.EscrowService(),
		MarketplaceSvc: appConfig.MarketplaceService(),
		LedgerSvc:      appConfig.LedgerService(),
		WebhookSvc:     appConfig.WebhookService(),
	})
	if err != nil {
		log.WithError(err).Fatal("error while setting up http interface")
	}

	log.RegisterExitHandler(svc.Stop)
	log.RegisterExitHandler(repoManager.Close)

	log.WithFields(log.Fields{
		"db":       appConfig.DBType,
		"escrow":   appConfig.EscrowProgramID.String(),
		"faucet":   config.GetBool(config.EnableFaucetKey),
		"webhooks": config.GetBool(config.EnableWebhooksKey),
		"datadir":  config.GetDatadir(),
	}).Info("starting daemon")

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("error while starting daemon")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	<-sigChan

	log.Info("shutting down daemon")
	svc.Stop()
	cancel()
	log.Info("exiting")
}
