package application

import (
	"context"
	"encoding/hex"
	"sync"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/hdwallet"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

const syncCheckInterval = 500 * time.Millisecond

var sessionRoles = []hdwallet.Role{
	hdwallet.RoleZswap, hdwallet.RoleNightExternal,
}

// Session holds the key material of one wallet for the lifetime of a
// process. It must be started before use and stopped when done, stopping
// wipes all the keys it holds.
type Session struct {
	networkID string
	keystore  *keystore.Keystore
	shielded  *keystore.ShieldedKeys
	engine    ports.WalletEngine

	lock    *sync.RWMutex
	started bool
	stopped bool

	// recipeLock makes recipe fetching a single outstanding call per wallet.
	recipeLock *sync.Mutex
}

// NewSession derives the session keys from the seed for the given network.
// The seed is zeroed before returning, whatever the outcome.
func NewSession(
	seed []byte, networkID string, engine ports.WalletEngine,
) (*Session, error) {
	defer hdwallet.Wipe(seed)

	if engine == nil {
		return nil, ErrNullWalletEngine
	}

	keys, err := hdwallet.DeriveKeys(seed, 0, sessionRoles...)
	if err != nil {
		return nil, err
	}
	defer keys.Wipe()

	ks, err := keystore.New(keys[hdwallet.RoleNightExternal], networkID)
	if err != nil {
		return nil, err
	}
	shielded, err := keystore.NewShieldedKeys(keys[hdwallet.RoleZswap])
	if err != nil {
		ks.Clear()
		return nil, err
	}

	return &Session{
		networkID:  networkID,
		keystore:   ks,
		shielded:   shielded,
		engine:     engine,
		lock:       &sync.RWMutex{},
		recipeLock: &sync.Mutex{},
	}, nil
}

// Start starts the wallet engine on the session's unshielded address and
// waits for it to be synced.
func (s *Session) Start(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return ErrSessionStopped
	}
	if s.started {
		return nil
	}

	if err := s.engine.Start(ctx, ports.WalletKeys{
		Address:   s.keystore.Address(),
		PublicKey: s.keystore.PublicKey(),
	}); err != nil {
		return err
	}

	if err := s.waitForSync(ctx); err != nil {
		s.engine.Stop()
		s.wipe()
		return err
	}

	s.started = true
	log.WithField("address", s.keystore.Address()).Info("wallet session started")
	return nil
}

// Stop stops the wallet engine and wipes the session keys.
func (s *Session) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return
	}
	if s.started {
		s.engine.Stop()
	}
	s.wipe()
	log.Info("wallet session stopped")
}

// IsStarted ...
func (s *Session) IsStarted() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.started
}

// Address returns the unshielded address of the session.
func (s *Session) Address() string {
	return s.keystore.Address()
}

// PublicKey returns the hex encoded x-only public key of the session.
func (s *Session) PublicKey() string {
	return hex.EncodeToString(s.keystore.PublicKey())
}

// ShieldedKeys returns the hex encoded shielded coin and encryption public
// keys of the session.
func (s *Session) ShieldedKeys() (string, string) {
	return hex.EncodeToString(s.shielded.CoinPublicKey),
		hex.EncodeToString(s.shielded.EncryptionPublicKey)
}

// NetworkID ...
func (s *Session) NetworkID() string {
	return s.networkID
}

// Engine ...
func (s *Session) Engine() ports.WalletEngine {
	return s.engine
}

func (s *Session) sign(payload []byte) (ledger.Signature, error) {
	return s.keystore.Sign(payload)
}

func (s *Session) fetchRecipe(
	fetch func() (*ledger.Recipe, error),
) (*ledger.Recipe, error) {
	s.recipeLock.Lock()
	defer s.recipeLock.Unlock()

	recipe, err := fetch()
	if err != nil {
		return nil, err
	}
	if recipe == nil || recipe.Primary == nil {
		return nil, ErrMissingRecipe
	}
	return recipe, nil
}

func (s *Session) waitForSync(ctx context.Context) error {
	if s.engine.IsSynced() {
		return nil
	}

	ticker := time.NewTicker(syncCheckInterval)
	defer ticker.Stop()

	log.Debug("waiting for wallet engine to sync")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if s.engine.IsSynced() {
				return nil
			}
		}
	}
}

func (s *Session) wipe() {
	s.keystore.Clear()
	s.started = false
	s.stopped = true
}
