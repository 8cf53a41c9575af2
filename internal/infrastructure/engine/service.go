// Package engine implements ports.WalletEngine for the unshielded side of a
// wallet: it tracks the wallet's coins through an indexer, computes
// balancing recipes and submits finalized transactions to a node.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

const (
	primarySegment = 1
	refreshTimeout = 30 * time.Second
)

// Config holds the dependencies and the parameters of the wallet engine.
type Config struct {
	Indexer   ports.Indexer
	Node      ports.Node
	NetworkID string
	// Fee is the flat fee, in native token units, paid by every recipe.
	Fee          uint64
	PollInterval time.Duration
	// LockExpiry is how long coins selected for a recipe stay reserved.
	LockExpiry time.Duration
}

func (c Config) validate() error {
	if c.Indexer == nil {
		return ErrNullIndexer
	}
	if c.Node == nil {
		return ErrNullNode
	}
	if len(c.NetworkID) <= 0 {
		return keystore.ErrNullNetworkID
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	if c.LockExpiry <= 0 {
		return ErrInvalidLockExpiry
	}
	return nil
}

type service struct {
	cfg Config

	lock    *sync.RWMutex
	started bool
	synced  bool
	height  uint64

	address string
	pubkey  []byte
	// changeOwner is the address payload change outputs are sent to.
	changeOwner []byte

	coins    map[string]coin
	reserved map[string]time.Time

	cancel context.CancelFunc
	wg     *sync.WaitGroup
}

// NewService returns a wallet engine. It must be started with the keys of a
// wallet before use.
func NewService(cfg Config) (ports.WalletEngine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &service{
		cfg:      cfg,
		lock:     &sync.RWMutex{},
		coins:    make(map[string]coin),
		reserved: make(map[string]time.Time),
		wg:       &sync.WaitGroup{},
	}, nil
}

func (s *service) Start(_ context.Context, keys ports.WalletKeys) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	if len(keys.Address) <= 0 || len(keys.PublicKey) != 32 {
		return ErrInvalidKeys
	}
	changeOwner, err := keystore.ParseAddress(keys.Address, s.cfg.NetworkID)
	if err != nil {
		return err
	}

	s.address = keys.Address
	s.pubkey = append([]byte{}, keys.PublicKey...)
	s.changeOwner = changeOwner
	s.coins = make(map[string]coin)
	s.reserved = make(map[string]time.Time)
	s.synced = false
	s.started = true
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go s.listen(ctx)

	log.WithField("address", keys.Address).Debug("wallet engine started")
	return nil
}

func (s *service) Stop() {
	s.lock.Lock()
	if !s.started {
		s.lock.Unlock()
		return
	}
	s.started = false
	s.cancel()
	s.lock.Unlock()

	s.wg.Wait()

	s.lock.Lock()
	defer s.lock.Unlock()

	s.synced = false
	s.coins = make(map[string]coin)
	s.reserved = make(map[string]time.Time)

	log.Debug("wallet engine stopped")
}

func (s *service) IsSynced() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.started && s.synced
}

func (s *service) Balances(_ context.Context) (map[string]uint64, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	now := time.Now()
	balances := make(map[string]uint64)
	for key, c := range s.coins {
		if s.isReserved(key, now) {
			continue
		}
		token := c.tokenType.String()
		balance, err := ledger.AddAmounts(balances[token], c.value)
		if err != nil {
			return nil, fmt.Errorf("token %s: %w", token, err)
		}
		balances[token] = balance
	}
	return balances, nil
}

// TransferRecipe builds a transaction paying the given outputs in a single
// intent. If only the native token is transferred the fee is paid by the
// same intent, otherwise by a separate balancing transaction.
func (s *service) TransferRecipe(
	_ context.Context, outs []ports.TxOutput,
) (*ledger.Recipe, error) {
	if len(outs) <= 0 {
		return nil, ErrNullOutputs
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}

	amounts := make(map[ledger.TokenType]uint64)
	receivers := make([]ledger.UtxoOutput, 0, len(outs))
	for i, out := range outs {
		owner, err := keystore.ParseAddress(out.GetAddress(), s.cfg.NetworkID)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		token, err := parseTokenType(out.GetTokenType())
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		if out.GetAmount() == 0 {
			return nil, fmt.Errorf("output %d: %w", i, ErrInvalidAmount)
		}
		amount, err := ledger.AddAmounts(amounts[token], out.GetAmount())
		if err != nil {
			return nil, fmt.Errorf("output %d: token %s: %w", i, token, err)
		}
		amounts[token] = amount
		receivers = append(receivers, ledger.UtxoOutput{
			Value: out.GetAmount(),
			Owner: owner,
			Type:  token,
		})
	}
	_, hasNative := amounts[ledger.NativeToken()]
	onlyNative := hasNative && len(amounts) == 1

	picked := make(map[string]struct{})
	ttl := time.Now().Add(s.cfg.LockExpiry).Unix()

	offer := &ledger.UnshieldedOffer{Outputs: receivers}
	for _, token := range sortedTokens(amounts) {
		target := amounts[token]
		if onlyNative {
			withFee, err := ledger.AddAmounts(target, s.cfg.Fee)
			if err != nil {
				return nil, fmt.Errorf("token %s: fee: %w", token, err)
			}
			target = withFee
		}
		if err := s.fund(offer, token, target, picked); err != nil {
			return nil, err
		}
	}

	primary := ledger.NewTransaction(s.cfg.NetworkID)
	primary.Intents[primarySegment] = newIntent(ttl, offer)
	recipe := &ledger.Recipe{Primary: primary}

	if !onlyNative && s.cfg.Fee > 0 {
		feeOffer := &ledger.UnshieldedOffer{}
		if err := s.fund(feeOffer, ledger.NativeToken(), s.cfg.Fee, picked); err != nil {
			return nil, err
		}
		balancing := ledger.NewTransaction(s.cfg.NetworkID)
		balancing.Intents[primary.NextSegment()] = newIntent(ttl, feeOffer)
		recipe.Balancing = balancing
	}

	s.reserve(picked)

	log.WithField("coins", len(picked)).Debug("transfer recipe built")
	return recipe, nil
}

// BalanceRecipe leaves the given transaction untouched as the primary one
// and covers its imbalances, fee included, with a balancing transaction
// placed at the first free segment. Surpluses are sent back to the wallet.
func (s *service) BalanceRecipe(
	_ context.Context, tx *ledger.Transaction,
) (*ledger.Recipe, error) {
	if tx == nil {
		return nil, ErrNullTransaction
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.started {
		return nil, ErrNotStarted
	}
	if tx.NetworkID != s.cfg.NetworkID {
		return nil, fmt.Errorf(
			"%w: got %s, expected %s",
			ledger.ErrNetworkMismatch, tx.NetworkID, s.cfg.NetworkID,
		)
	}

	ins, outs, err := tx.Totals()
	if err != nil {
		return nil, err
	}
	tokens := map[ledger.TokenType]uint64{ledger.NativeToken(): 0}
	for token := range ins {
		tokens[token] = 0
	}
	for token := range outs {
		tokens[token] = 0
	}

	picked := make(map[string]struct{})
	offer := &ledger.UnshieldedOffer{}
	for _, token := range sortedTokens(tokens) {
		required := outs[token]
		if token.IsNative() {
			withFee, err := ledger.AddAmounts(required, s.cfg.Fee)
			if err != nil {
				return nil, fmt.Errorf("token %s: fee: %w", token, err)
			}
			required = withFee
		}

		if required > ins[token] {
			if err := s.fund(offer, token, required-ins[token], picked); err != nil {
				return nil, err
			}
			continue
		}
		if surplus := ins[token] - required; surplus > 0 {
			offer.Outputs = append(offer.Outputs, ledger.UtxoOutput{
				Value: surplus,
				Owner: append([]byte{}, s.changeOwner...),
				Type:  token,
			})
		}
	}

	if len(offer.Inputs) <= 0 && len(offer.Outputs) <= 0 {
		return &ledger.Recipe{Primary: tx}, nil
	}

	ttl := time.Now().Add(s.cfg.LockExpiry).Unix()
	balancing := ledger.NewTransaction(s.cfg.NetworkID)
	balancing.Intents[tx.NextSegment()] = newIntent(ttl, offer)

	s.reserve(picked)

	log.WithField("coins", len(picked)).Debug("balancing recipe built")
	return &ledger.Recipe{Primary: tx, Balancing: balancing}, nil
}

// FinalizeRecipe combines the signed recipe into a finalized transaction.
// Coins selected for the recipe are released if that's not possible.
func (s *service) FinalizeRecipe(
	_ context.Context, recipe *ledger.Recipe,
) (*ledger.FinalizedTransaction, error) {
	finalized, err := ledger.Finalize(recipe)
	if err != nil {
		if recipe != nil {
			s.releaseInputs(recipe.Primary, recipe.Balancing)
		}
		return nil, err
	}
	return finalized, nil
}

// SubmitTransaction submits the transaction to the node. The wallet coins
// spent by a rejected transaction are released, those spent by an accepted
// one stay reserved until the indexer stops reporting them.
func (s *service) SubmitTransaction(
	ctx context.Context, tx *ledger.FinalizedTransaction,
) (string, error) {
	if tx == nil {
		return "", ErrNullTransaction
	}

	s.lock.RLock()
	started := s.started
	s.lock.RUnlock()
	if !started {
		return "", ErrNotStarted
	}

	buf, err := tx.Serialize()
	if err != nil {
		return "", err
	}
	txHash, err := s.cfg.Node.SubmitTransaction(ctx, buf)
	if err != nil {
		if errors.Is(err, ports.ErrSubmissionRejected) {
			s.releaseInputs(tx.Transaction())
		}
		return "", err
	}

	s.reserveInputs(tx.Transaction())
	return txHash, nil
}

func (s *service) listen(ctx context.Context) {
	defer s.wg.Done()

	s.refresh(ctx)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh replaces the wallet coins with those reported by the indexer.
// Reservations of coins not reported anymore are dropped together with the
// expired ones.
func (s *service) refresh(ctx context.Context) {
	s.lock.RLock()
	address := s.address
	s.lock.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	height, err := s.cfg.Indexer.GetBlockHeight(ctx)
	if err != nil {
		log.WithError(err).Warn("failed to fetch block height")
		return
	}
	utxos, err := s.cfg.Indexer.GetUnshieldedUtxos(ctx, address)
	if err != nil {
		log.WithError(err).Warn("failed to fetch unspents")
		return
	}

	coins := make(map[string]coin, len(utxos))
	for _, u := range utxos {
		c, err := newCoin(u)
		if err != nil {
			log.WithError(err).Warn("skipping malformed unspent")
			continue
		}
		coins[c.key()] = c
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.started {
		return
	}

	now := time.Now()
	s.coins = coins
	for key, expiry := range s.reserved {
		if _, ok := coins[key]; !ok || !now.Before(expiry) {
			delete(s.reserved, key)
		}
	}
	s.height = height
	if !s.synced {
		s.synced = true
		log.WithFields(log.Fields{
			"height": height,
			"coins":  len(coins),
		}).Info("wallet engine synced")
	}
}

// fund adds to the offer the inputs covering the target amount of the given
// token and the change output, if any.
func (s *service) fund(
	offer *ledger.UnshieldedOffer, token ledger.TokenType, target uint64,
	picked map[string]struct{},
) error {
	coins, change, err := selectCoins(s.availableCoins(token, picked), target)
	if err != nil {
		return fmt.Errorf("token %s: %w", token, err)
	}

	for _, c := range coins {
		picked[c.key()] = struct{}{}
		offer.Inputs = append(offer.Inputs, c.toSpend(s.pubkey))
	}
	if change > 0 {
		offer.Outputs = append(offer.Outputs, ledger.UtxoOutput{
			Value: change,
			Owner: append([]byte{}, s.changeOwner...),
			Type:  token,
		})
	}
	return nil
}

func (s *service) availableCoins(
	token ledger.TokenType, picked map[string]struct{},
) []coin {
	now := time.Now()
	coins := make([]coin, 0)
	for key, c := range s.coins {
		if c.tokenType != token || s.isReserved(key, now) {
			continue
		}
		if _, ok := picked[key]; ok {
			continue
		}
		coins = append(coins, c)
	}
	sort.Slice(coins, func(i, j int) bool { return coins[i].key() < coins[j].key() })
	return coins
}

func (s *service) isReserved(key string, now time.Time) bool {
	expiry, ok := s.reserved[key]
	return ok && now.Before(expiry)
}

func (s *service) reserve(keys map[string]struct{}) {
	expiry := time.Now().Add(s.cfg.LockExpiry)
	for key := range keys {
		s.reserved[key] = expiry
	}
}

func (s *service) reserveInputs(txs ...*ledger.Transaction) {
	s.lock.Lock()
	defer s.lock.Unlock()

	keys := make(map[string]struct{})
	for _, key := range spentCoinKeys(s.pubkey, txs...) {
		keys[key] = struct{}{}
	}
	s.reserve(keys)
}

func (s *service) releaseInputs(txs ...*ledger.Transaction) {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, key := range spentCoinKeys(s.pubkey, txs...) {
		delete(s.reserved, key)
	}
}

func newIntent(ttl int64, offer *ledger.UnshieldedOffer) *ledger.Intent {
	intent := ledger.NewIntent(ttl)
	intent.GuaranteedUnshieldedOffer = offer
	return intent
}

func parseTokenType(tokenType string) (ledger.TokenType, error) {
	if len(tokenType) <= 0 {
		return ledger.NativeToken(), nil
	}
	token := ledger.TokenType(tokenType)
	if err := token.Validate(); err != nil {
		return "", err
	}
	return ledger.TokenType(token.String()), nil
}
