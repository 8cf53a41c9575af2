package hdwallet_test

import (
	"testing"

	"github.com/blind-mentorship/mentorship-wallet/pkg/hdwallet"
	"github.com/stretchr/testify/require"
)

func TestNewMnemonic(t *testing.T) {
	t.Parallel()

	mnemonic, err := hdwallet.NewMnemonic(hdwallet.NewMnemonicOpts{})
	require.NoError(t, err)
	require.Len(t, mnemonic, 24)

	mnemonic, err = hdwallet.NewMnemonic(hdwallet.NewMnemonicOpts{EntropySize: 128})
	require.NoError(t, err)
	require.Len(t, mnemonic, 12)

	seed, err := hdwallet.SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	require.Len(t, seed, 64)

	otherSeed, err := hdwallet.SeedFromMnemonic(mnemonic, "")
	require.NoError(t, err)
	require.Equal(t, seed, otherSeed)

	_, err = hdwallet.DeriveKeys(seed, 0, hdwallet.RoleNightExternal)
	require.NoError(t, err)
}

func TestFailingMnemonic(t *testing.T) {
	t.Parallel()

	for _, size := range []int{-1, 100, 160 + 1, 512} {
		_, err := hdwallet.NewMnemonic(hdwallet.NewMnemonicOpts{EntropySize: size})
		require.ErrorIs(t, err, hdwallet.ErrInvalidEntropySize)
	}

	_, err := hdwallet.SeedFromMnemonic([]string{"not", "a", "mnemonic"}, "")
	require.ErrorIs(t, err, hdwallet.ErrInvalidMnemonic)
}
