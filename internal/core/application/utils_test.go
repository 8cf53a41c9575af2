package application_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/blind-mentorship/mentorship-wallet/internal/infrastructure/storage/db/inmemory"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testNetworkID = "undeployed"
	testSeedHex   = "b2d1a3f09c8e7d6c5b4a392817060504d3c2b1a09f8e7d6c5b4a392817060504"
	testTokenType = "0202020202020202020202020202020202020202020202020202020202020202"
)

var nativeToken = ledger.NativeToken().String()

func newTestSeed(t *testing.T) []byte {
	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)
	return seed
}

// newStartedSession returns a started session backed by a synced engine.
func newStartedSession(t *testing.T, engine *mockEngine) *application.Session {
	engine.On("Start", mock.Anything, mock.Anything).Return(nil)
	engine.On("IsSynced").Return(true)
	engine.On("Stop").Return()

	session, err := application.NewSession(newTestSeed(t), testNetworkID, engine)
	require.NoError(t, err)
	require.NoError(t, session.Start(context.Background()))
	t.Cleanup(session.Stop)
	return session
}

func newTestWalletService(
	t *testing.T, engine *mockEngine,
) (application.WalletService, *application.Session) {
	session := newStartedSession(t, engine)
	repo := inmemory.NewRepoManager().TransferRepository()

	svc, err := application.NewWalletService(session, repo)
	require.NoError(t, err)
	return svc, session
}

func testReceiver(t *testing.T) string {
	addr, err := keystore.AddressFromPublicKey(
		bytes.Repeat([]byte{0x03}, 32), testNetworkID,
	)
	require.NoError(t, err)
	return addr
}

// newTestTransaction returns an unsigned transaction with one intent per
// segment, each spending numOfInputs coins of the given owner.
func newTestTransaction(
	t *testing.T, owner string, numOfInputs int, segments ...uint16,
) *ledger.Transaction {
	ownerKey, err := hex.DecodeString(owner)
	require.NoError(t, err)

	tx := ledger.NewTransaction(testNetworkID)
	for _, segment := range segments {
		offer := &ledger.UnshieldedOffer{
			Outputs: []ledger.UtxoOutput{{
				Value: 100,
				Owner: bytes.Repeat([]byte{0x03}, 32),
				Type:  ledger.NativeToken(),
			}},
		}
		for i := 0; i < numOfInputs; i++ {
			offer.Inputs = append(offer.Inputs, ledger.UtxoSpend{
				Value:      100,
				Owner:      ownerKey,
				Type:       ledger.NativeToken(),
				IntentHash: bytes.Repeat([]byte{byte(segment)}, 32),
				OutputNo:   uint32(i),
			})
		}
		intent := ledger.NewIntent(1700000000)
		intent.GuaranteedUnshieldedOffer = offer
		tx.Intents[segment] = intent
	}
	return tx
}

// requireSignedBy makes sure that every input of every intent of the
// transaction carries a valid signature of the given key.
func requireSignedBy(t *testing.T, tx *ledger.Transaction, pubkey string) {
	key, err := hex.DecodeString(pubkey)
	require.NoError(t, err)

	for _, segment := range tx.Segments() {
		intent := tx.Intents[segment]
		sigData, err := intent.SignatureData(segment)
		require.NoError(t, err)

		for _, offer := range intent.Offers() {
			require.True(t, offer.IsFullySigned())
			for _, sig := range offer.Signatures {
				require.True(t, keystore.Verify(key, sigData, sig))
			}
		}
	}
}
