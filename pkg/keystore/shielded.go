package keystore

import (
	"errors"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"golang.org/x/crypto/blake2b"
)

var (
	coinKeyDomain       = []byte("midnight:zswap-coin-pk[v1]")
	encryptionKeyDomain = []byte("midnight:zswap-enc-sk[v1]")
)

// ErrInvalidShieldedKey ...
var ErrInvalidShieldedKey = errors.New("shielded key must be 32 bytes long")

// ShieldedKeys are the public keys of the shielded side of a wallet. Other
// parties use the coin public key to send shielded coins to the wallet and
// the encryption public key to encrypt the coins' openings.
type ShieldedKeys struct {
	CoinPublicKey       []byte
	EncryptionPublicKey []byte
}

// NewShieldedKeys derives the shielded public keys from the raw Zswap key of
// a wallet. The coin public key is the domain separated blake2b-256 hash of
// the key. The encryption secret key is obtained in the same way with a
// different domain and the encryption public key is its x-only public key.
// The given key is not retained.
func NewShieldedKeys(zswapKey []byte) (*ShieldedKeys, error) {
	if len(zswapKey) != keyLen {
		return nil, ErrInvalidShieldedKey
	}

	coinPubkey := domainHash(coinKeyDomain, zswapKey)

	encKey := domainHash(encryptionKeyDomain, zswapKey)
	defer wipe(encKey)
	scalar := new(big.Int).SetBytes(encKey)
	scalar.Mod(scalar, btcec.S256().Params().N)
	if scalar.Sign() == 0 {
		return nil, ErrInvalidShieldedKey
	}
	scalarBytes := scalar.FillBytes(make([]byte, keyLen))
	defer wipe(scalarBytes)
	prvkey, _ := btcec.PrivKeyFromBytes(scalarBytes)
	defer prvkey.Zero()

	return &ShieldedKeys{
		CoinPublicKey:       coinPubkey,
		EncryptionPublicKey: schnorr.SerializePubKey(prvkey.PubKey()),
	}, nil
}

func domainHash(domain, key []byte) []byte {
	h, _ := blake2b.New256(nil)
	h.Write(domain)
	h.Write(key)
	return h.Sum(nil)
}

func wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
