package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/blind-mentorship/mentorship-wallet/internal/config"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/engine"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/indexer"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/node"
	dbbadger "github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/storage/db/badger"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/storage/db/inmemory"
	httpinterface "github.com/blind-mentorship/mentorship-wallet/internal/interfaces/http"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	logLevel := log.Level(config.GetInt(config.LogLevelKey))
	log.SetLevel(logLevel)
	if logLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Fatal("failed to open storage")
	}
	defer repoManager.Close()

	walletEngine, err := newWalletEngine()
	if err != nil {
		log.WithError(err).Fatal("failed to init wallet engine")
	}

	seed, err := hex.DecodeString(config.GetString(config.WalletSeedKey))
	if err != nil {
		log.WithError(err).Fatalf("%s must be in hex format", config.WalletSeedKey)
	}
	session, err := application.NewSession(
		seed, config.GetString(config.NetworkIDKey), walletEngine,
	)
	if err != nil {
		log.WithError(err).Fatal("failed to create wallet session")
	}

	log.Info("starting wallet session, waiting for wallet to sync...")
	if err := session.Start(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to start wallet session")
	}
	defer session.Stop()
	log.Info("wallet synced")

	walletSvc, err := application.NewWalletService(
		session, repoManager.TransferRepository(),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to init wallet service")
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Port:      config.GetInt(config.ListeningPortKey),
		WalletSvc: walletSvc,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to init connector interface")
	}

	log.Debug("starting daemon")

	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start connector interface")
	}
	defer svc.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("shutting down daemon")
}

func newRepoManager() (ports.RepoManager, error) {
	switch dbType := config.GetString(config.DBTypeKey); dbType {
	case config.DBInMemory:
		return inmemory.NewRepoManager(), nil
	case config.DBBadger:
		logger := log.New()
		logger.SetLevel(log.WarnLevel)
		return dbbadger.NewRepoManager(config.GetDbDir(), logger)
	default:
		return nil, fmt.Errorf("unknown db type %s", dbType)
	}
}

func newWalletEngine() (ports.WalletEngine, error) {
	indexerSvc, err := indexer.NewService(
		config.GetString(config.IndexerUrlKey),
		config.GetInt(config.IndexerRateLimitKey),
	)
	if err != nil {
		return nil, err
	}
	nodeSvc, err := node.NewService(config.GetString(config.NodeUrlKey))
	if err != nil {
		return nil, err
	}

	return engine.NewService(engine.Config{
		Indexer:      indexerSvc,
		Node:         nodeSvc,
		NetworkID:    config.GetString(config.NetworkIDKey),
		Fee:          config.GetUint64(config.FeeKey),
		PollInterval: config.GetIndexerPollInterval(),
		LockExpiry:   config.GetCoinLockExpiry(),
	})
}
