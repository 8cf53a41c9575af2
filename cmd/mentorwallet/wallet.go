package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/engine"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/indexer"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/node"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/blind-mentorship/mentorship-wallet/pkg/hdwallet"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	indexerRateLimit = 10
	pollInterval     = 2 * time.Second
	coinLockExpiry   = 120 * time.Second
)

func getSeed(ctx *cli.Context) ([]byte, error) {
	seedHex := ctx.String(seedFlag.Name)
	mnemonic := ctx.String(mnemonicFlag.Name)

	switch {
	case len(seedHex) > 0 && len(mnemonic) > 0:
		return nil, errors.New("--seed and --mnemonic are mutually exclusive")
	case len(seedHex) > 0:
		seed, err := hex.DecodeString(seedHex)
		if err != nil {
			return nil, fmt.Errorf("seed must be in hex format: %w", err)
		}
		return seed, nil
	case len(mnemonic) > 0:
		return hdwallet.SeedFromMnemonic(strings.Fields(mnemonic), "")
	default:
		return nil, errors.New("one of --seed or --mnemonic is required")
	}
}

// getWalletService starts a wallet session for the given seed and returns
// a wallet service operating on it. The session is synced before returning
// and must be stopped with the returned cleanup func.
func getWalletService(ctx *cli.Context) (application.WalletService, func(), error) {
	seed, err := getSeed(ctx)
	if err != nil {
		return nil, nil, err
	}

	indexerSvc, err := indexer.NewService(
		ctx.String(indexerUrlFlag.Name), indexerRateLimit,
	)
	if err != nil {
		hdwallet.Wipe(seed)
		return nil, nil, err
	}
	nodeSvc, err := node.NewService(ctx.String(nodeUrlFlag.Name))
	if err != nil {
		hdwallet.Wipe(seed)
		return nil, nil, err
	}
	walletEngine, err := engine.NewService(engine.Config{
		Indexer:      indexerSvc,
		Node:         nodeSvc,
		NetworkID:    ctx.String(networkFlag.Name),
		Fee:          ctx.Uint64(feeFlag.Name),
		PollInterval: pollInterval,
		LockExpiry:   coinLockExpiry,
	})
	if err != nil {
		hdwallet.Wipe(seed)
		return nil, nil, err
	}

	session, err := application.NewSession(
		seed, ctx.String(networkFlag.Name), walletEngine,
	)
	if err != nil {
		return nil, nil, err
	}

	log.SetLevel(log.WarnLevel)
	if err := startSession(ctx.Context, session); err != nil {
		return nil, nil, err
	}

	walletSvc, err := application.NewWalletService(
		session, inmemory.NewTransferRepositoryImpl(),
	)
	if err != nil {
		session.Stop()
		return nil, nil, err
	}
	return walletSvc, session.Stop, nil
}

// startSession starts the given session and waits for it to be synced. The
// session is stopped, and its keys wiped, if that's not possible.
func startSession(ctx context.Context, session *application.Session) error {
	if err := session.Start(ctx); err != nil {
		session.Stop()
		return err
	}
	return nil
}
