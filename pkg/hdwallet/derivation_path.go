package hdwallet

import (
	"fmt"
	"math"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

const (
	// Purpose is the BIP44 purpose of the derivation tree.
	Purpose = 44
	// CoinType is the registered coin type of the network.
	CoinType = 2400

	// MaxHardenedValue is the max value for hardened indexes of BIP32
	// derivation paths
	MaxHardenedValue = math.MaxUint32 - hdkeychain.HardenedKeyStart
)

// DerivationPath is the internal representation of a hierarchical
// deterministic wallet account
type DerivationPath []uint32

var (
	// DefaultBaseDerivationPath m/44'/2400'
	DefaultBaseDerivationPath = DerivationPath{
		hdkeychain.HardenedKeyStart + Purpose,
		hdkeychain.HardenedKeyStart + CoinType,
	}
)

// KeyPath returns the full path of the key of the given account, role and
// index: m/44'/2400'/account'/role/index.
func KeyPath(account uint32, role Role, index uint32) DerivationPath {
	path := append(DerivationPath{}, DefaultBaseDerivationPath...)
	return append(
		path, hdkeychain.HardenedKeyStart+account, uint32(role), index,
	)
}

// String converts a binary derivation path to its canonical representation
func (path DerivationPath) String() string {
	if len(path) <= 0 {
		return ""
	}

	result := "m"
	for _, component := range path {
		var hardened bool
		if component >= hdkeychain.HardenedKeyStart {
			component -= hdkeychain.HardenedKeyStart
			hardened = true
		}
		result = fmt.Sprintf("%s/%d", result, component)
		if hardened {
			result += "'"
		}
	}
	return result
}
