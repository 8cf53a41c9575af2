package hdwallet

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

// SeedLen is the length of seeds produced by GenerateRandomSeed.
const SeedLen = 32

// Wallet is the root of a BIP32 derivation tree. It must be cleared as soon
// as the needed keys have been derived.
type Wallet struct {
	master *hdkeychain.ExtendedKey
}

// NewWalletFromSeed initializes the derivation tree from the given seed. The
// seed is not retained by the wallet.
func NewWalletFromSeed(seed []byte) (*Wallet, error) {
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		if errors.Is(err, hdkeychain.ErrInvalidSeedLen) ||
			errors.Is(err, hdkeychain.ErrUnusableSeed) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSeed, err)
		}
		return nil, err
	}
	return &Wallet{master}, nil
}

// DeriveKeysOpts is the struct given to DeriveKeys method
type DeriveKeysOpts struct {
	Account uint32
	Roles   []Role
	Index   uint32
}

func (o DeriveKeysOpts) validate() error {
	if len(o.Roles) <= 0 {
		return ErrNullRoles
	}
	if o.Account > MaxHardenedValue {
		return fmt.Errorf(
			"%w: account must be in range [0, %d]", ErrDerivation, MaxHardenedValue,
		)
	}
	if o.Index >= hdkeychain.HardenedKeyStart {
		return fmt.Errorf(
			"%w: index must be in range [0, %d]", ErrDerivation,
			hdkeychain.HardenedKeyStart-1,
		)
	}
	for _, r := range o.Roles {
		if err := r.validate(); err != nil {
			return err
		}
	}
	return nil
}

// DeriveKeys derives the private key of every requested role for the given
// account at the given index. All intermediate nodes are zeroed before
// returning.
func (w *Wallet) DeriveKeys(opts DeriveKeysOpts) (Keys, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if w.master == nil {
		return nil, ErrWalletCleared
	}

	keys := make(Keys, len(opts.Roles))
	for _, role := range opts.Roles {
		key, err := w.deriveKey(KeyPath(opts.Account, role, opts.Index))
		if err != nil {
			keys.Wipe()
			return nil, fmt.Errorf("%w: role %s: %s", ErrDerivation, role, err)
		}
		keys[role] = key
	}
	return keys, nil
}

// Clear zeroes the master node. The wallet can't be used anymore afterwards.
func (w *Wallet) Clear() {
	if w.master != nil {
		w.master.Zero()
		w.master = nil
	}
}

// DeriveKeys initializes a derivation tree from the seed, derives the keys of
// the given roles for the account at index 0 and wipes the tree.
func DeriveKeys(seed []byte, account uint32, roles ...Role) (Keys, error) {
	w, err := NewWalletFromSeed(seed)
	if err != nil {
		return nil, err
	}
	defer w.Clear()

	return w.DeriveKeys(DeriveKeysOpts{
		Account: account,
		Roles:   roles,
	})
}

// GenerateRandomSeed returns a new random seed of SeedLen bytes.
func GenerateRandomSeed() ([]byte, error) {
	seed := make([]byte, SeedLen)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// deriveKey walks the given path from the master node and returns the
// private key of the last node.
func (w *Wallet) deriveKey(path DerivationPath) ([]byte, error) {
	nodes := make([]*hdkeychain.ExtendedKey, 0, len(path))
	defer func() {
		for _, n := range nodes {
			n.Zero()
		}
	}()

	node := w.master
	for _, step := range path {
		next, err := node.Derive(step)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, next)
		node = next
	}

	prvkey, err := node.ECPrivKey()
	if err != nil {
		return nil, err
	}
	defer prvkey.Zero()

	return prvkey.Serialize(), nil
}
