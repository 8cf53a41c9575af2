// Package keystore wraps an unshielded private key, exposing its address
// and a signing capability over arbitrary payloads.
package keystore

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"golang.org/x/crypto/blake2b"
)

const (
	// MainnetID is the id of the network whose addresses have no network
	// suffix in their human readable part.
	MainnetID = "mainnet"

	addressPrefix = "mn_addr"
	keyLen        = 32
	// maxNetworkIDLength keeps the encoded address of a non-mainnet network
	// within the 90 characters a bech32m string can hold: the "mn_addr_"
	// prefix, the separator, 52 data and 6 checksum characters leave room
	// for 23 more.
	maxNetworkIDLength = 23
)

var (
	// ErrInvalidKey ...
	ErrInvalidKey = errors.New("key must be a valid 32 byte secp256k1 private key")
	// ErrNullNetworkID ...
	ErrNullNetworkID = errors.New("network id must not be null")
	// ErrInvalidNetworkID ...
	ErrInvalidNetworkID = errors.New("network id must contain only lowercase letters, digits and '-'")
	// ErrNetworkIDTooLong ...
	ErrNetworkIDTooLong = errors.New("network id must be at most 23 characters long")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address is not a valid unshielded address")
	// ErrNetworkMismatch ...
	ErrNetworkMismatch = errors.New("address belongs to another network")
	// ErrKeystoreCleared ...
	ErrKeystoreCleared = errors.New("keystore has been cleared")
)

// Keystore owns one unshielded key. Its address is computed once and is
// stable for the lifetime of the keystore.
type Keystore struct {
	prvkey    *btcec.PrivateKey
	pubkey    []byte
	networkID string
	address   string
}

// New returns a keystore for the given raw private key on the given network.
func New(key []byte, networkID string) (*Keystore, error) {
	if err := validateNetworkID(networkID); err != nil {
		return nil, err
	}
	if len(key) != keyLen {
		return nil, ErrInvalidKey
	}
	scalar := new(big.Int).SetBytes(key)
	if scalar.Sign() == 0 || scalar.Cmp(btcec.S256().Params().N) >= 0 {
		return nil, ErrInvalidKey
	}

	prvkey, _ := btcec.PrivKeyFromBytes(key)
	pubkey := schnorr.SerializePubKey(prvkey.PubKey())
	address, err := AddressFromPublicKey(pubkey, networkID)
	if err != nil {
		return nil, err
	}

	return &Keystore{
		prvkey:    prvkey,
		pubkey:    pubkey,
		networkID: networkID,
		address:   address,
	}, nil
}

// Address returns the bech32m encoded unshielded address.
func (k *Keystore) Address() string {
	return k.address
}

// PublicKey returns the 32 byte x-only public key.
func (k *Keystore) PublicKey() []byte {
	return append([]byte{}, k.pubkey...)
}

// NetworkID ...
func (k *Keystore) NetworkID() string {
	return k.networkID
}

// Sign produces a BIP340 signature over the blake2b-256 hash of payload.
// It is safe for concurrent use.
func (k *Keystore) Sign(payload []byte) (ledger.Signature, error) {
	if k.prvkey == nil {
		return nil, ErrKeystoreCleared
	}
	hash := blake2b.Sum256(payload)
	sig, err := schnorr.Sign(k.prvkey, hash[:])
	if err != nil {
		return nil, err
	}
	return ledger.Signature(sig.Serialize()), nil
}

// Clear zeroes the private key. The keystore can't sign anymore afterwards.
func (k *Keystore) Clear() {
	if k.prvkey != nil {
		k.prvkey.Zero()
		k.prvkey = nil
	}
}

// Verify checks a signature produced by Sign against an x-only public key.
func Verify(pubkey, payload []byte, signature ledger.Signature) bool {
	key, err := schnorr.ParsePubKey(pubkey)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false
	}
	hash := blake2b.Sum256(payload)
	return sig.Verify(hash[:], key)
}

// AddressFromPublicKey encodes the address of an x-only public key.
func AddressFromPublicKey(pubkey []byte, networkID string) (string, error) {
	if err := validateNetworkID(networkID); err != nil {
		return "", err
	}
	payload := blake2b.Sum256(pubkey)
	data, err := bech32.ConvertBits(payload[:], 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.EncodeM(hrp(networkID), data)
}

// ParseAddress decodes an unshielded address and returns its 32 byte
// payload, making sure it belongs to the given network.
func ParseAddress(address, networkID string) ([]byte, error) {
	if err := validateNetworkID(networkID); err != nil {
		return nil, err
	}
	prefix, data, version, err := bech32.DecodeGeneric(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	if version != bech32.VersionM {
		return nil, fmt.Errorf("%w: must be bech32m encoded", ErrInvalidAddress)
	}
	if !strings.HasPrefix(prefix, addressPrefix) {
		return nil, ErrInvalidAddress
	}
	if prefix != hrp(networkID) {
		return nil, ErrNetworkMismatch
	}
	payload, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAddress, err)
	}
	if len(payload) != 32 {
		return nil, ErrInvalidAddress
	}
	return payload, nil
}

func hrp(networkID string) string {
	if networkID == MainnetID {
		return addressPrefix
	}
	return fmt.Sprintf("%s_%s", addressPrefix, networkID)
}

func validateNetworkID(networkID string) error {
	if len(networkID) <= 0 {
		return ErrNullNetworkID
	}
	if len(networkID) > maxNetworkIDLength {
		return ErrNetworkIDTooLong
	}
	for _, c := range networkID {
		if !(c >= 'a' && c <= 'z') && !(c >= '0' && c <= '9') && c != '-' {
			return ErrInvalidNetworkID
		}
	}
	return nil
}
