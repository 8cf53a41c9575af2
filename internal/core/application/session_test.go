package application_test

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	seed := newTestSeed(t)
	session, err := application.NewSession(seed, testNetworkID, &mockEngine{})
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, make([]byte, len(seed)), seed)

	require.True(t, strings.HasPrefix(session.Address(), "mn_addr_undeployed1"))
	require.Len(t, session.PublicKey(), 64)
	require.Equal(t, testNetworkID, session.NetworkID())
	require.False(t, session.IsStarted())

	coinPubkey, encPubkey := session.ShieldedKeys()
	require.Len(t, coinPubkey, 64)
	require.Len(t, encPubkey, 64)
	require.NotEqual(t, coinPubkey, encPubkey)
	require.NotEqual(t, session.PublicKey(), encPubkey)

	other, err := application.NewSession(newTestSeed(t), testNetworkID, &mockEngine{})
	require.NoError(t, err)
	require.Equal(t, session.Address(), other.Address())
	otherCoinPubkey, otherEncPubkey := other.ShieldedKeys()
	require.Equal(t, coinPubkey, otherCoinPubkey)
	require.Equal(t, encPubkey, otherEncPubkey)
}

func TestFailingNewSession(t *testing.T) {
	tests := []struct {
		name        string
		seed        []byte
		networkID   string
		engine      ports.WalletEngine
		expectedErr error
	}{
		{
			name:        "null engine",
			seed:        newTestSeed(t),
			networkID:   testNetworkID,
			engine:      nil,
			expectedErr: application.ErrNullWalletEngine,
		},
		{
			name:        "invalid seed",
			seed:        []byte{0x01, 0x02},
			networkID:   testNetworkID,
			engine:      &mockEngine{},
			expectedErr: application.ErrInvalidSeed,
		},
		{
			name:        "invalid network id",
			seed:        newTestSeed(t),
			networkID:   "Not_Valid",
			engine:      &mockEngine{},
			expectedErr: keystore.ErrInvalidNetworkID,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			session, err := application.NewSession(tt.seed, tt.networkID, tt.engine)
			require.ErrorIs(t, err, tt.expectedErr)
			require.Nil(t, session)
			require.Equal(t, make([]byte, len(tt.seed)), tt.seed)
		})
	}
}

func TestSessionStart(t *testing.T) {
	engine := &mockEngine{}
	session, err := application.NewSession(newTestSeed(t), testNetworkID, engine)
	require.NoError(t, err)

	var keys ports.WalletKeys
	engine.On("Start", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			keys = args.Get(1).(ports.WalletKeys)
		}).
		Return(nil)
	engine.On("IsSynced").Return(false).Once()
	engine.On("IsSynced").Return(true)
	engine.On("Stop").Return()

	err = session.Start(context.Background())
	require.NoError(t, err)
	require.True(t, session.IsStarted())
	require.Equal(t, session.Address(), keys.Address)
	require.Equal(t, session.PublicKey(), hex.EncodeToString(keys.PublicKey))

	// starting twice is a no-op.
	require.NoError(t, session.Start(context.Background()))
	engine.AssertNumberOfCalls(t, "Start", 1)

	session.Stop()
	require.False(t, session.IsStarted())
	engine.AssertNumberOfCalls(t, "Stop", 1)

	err = session.Start(context.Background())
	require.ErrorIs(t, err, application.ErrSessionStopped)
}

func TestFailingSessionStart(t *testing.T) {
	t.Run("engine error", func(t *testing.T) {
		engine := &mockEngine{}
		session, err := application.NewSession(newTestSeed(t), testNetworkID, engine)
		require.NoError(t, err)

		engineErr := errors.New("engine is unreachable")
		engine.On("Start", mock.Anything, mock.Anything).Return(engineErr)

		err = session.Start(context.Background())
		require.ErrorIs(t, err, engineErr)
		require.False(t, session.IsStarted())
	})

	t.Run("sync interrupted", func(t *testing.T) {
		engine := &mockEngine{}
		session, err := application.NewSession(newTestSeed(t), testNetworkID, engine)
		require.NoError(t, err)

		engine.On("Start", mock.Anything, mock.Anything).Return(nil)
		engine.On("IsSynced").Return(false)
		engine.On("Stop").Return()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		err = session.Start(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.False(t, session.IsStarted())
		engine.AssertCalled(t, "Stop")

		err = session.Start(context.Background())
		require.ErrorIs(t, err, application.ErrSessionStopped)
	})
}
