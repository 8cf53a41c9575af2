package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

const (
	transferDir = "transfers"
	gcInterval  = 30 * time.Minute
)

type repoManager struct {
	store              *badgerhold.Store
	transferRepository domain.TransferRepository
	quit               chan struct{}
}

// NewRepoManager opens (or creates if not exists) the badger store in the
// given base directory. An empty directory makes the store live in memory.
func NewRepoManager(
	baseDbDir string, logger badger.Logger,
) (ports.RepoManager, error) {
	var dbDir string
	if len(baseDbDir) > 0 {
		dbDir = filepath.Join(baseDbDir, transferDir)
	}

	quit := make(chan struct{})
	store, err := createDb(dbDir, logger, quit)
	if err != nil {
		return nil, fmt.Errorf("opening transfer db: %w", err)
	}

	return &repoManager{
		store:              store,
		transferRepository: NewTransferRepositoryImpl(store),
		quit:               quit,
	}, nil
}

func (d *repoManager) TransferRepository() domain.TransferRepository {
	return d.transferRepository
}

func (d *repoManager) Close() {
	close(d.quit)
	if err := d.store.Close(); err != nil {
		log.WithError(err).Warn("failed to close transfer db")
	}
}

func createDb(
	dbDir string, logger badger.Logger, quit chan struct{},
) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(gcInterval)

		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-quit:
					return
				case <-ticker.C:
					if err := db.Badger().RunValueLogGC(0.5); err != nil &&
						err != badger.ErrNoRewrite {
						log.Error(err)
					}
				}
			}
		}()
	}

	return db, nil
}
