package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		amount   string
		expected uint64
	}{
		{"1", 1000000},
		{"0.000001", 1},
		{"12.5", 12500000},
		{"18446744073709.551615", 18446744073709551615},
	}

	for _, tt := range tests {
		amount, err := parseAmount(tt.amount)
		require.NoError(t, err)
		require.Equal(t, tt.expected, amount)
		require.Equal(t, tt.amount, trimZeros(formatAmount(amount)))
	}
}

func TestFailingParseAmount(t *testing.T) {
	tests := []struct {
		amount      string
		expectedErr error
	}{
		{"", errInvalidAmount},
		{"one", errInvalidAmount},
		{"0", errInvalidAmount},
		{"-1", errInvalidAmount},
		{"0.0000001", errAmountPrecision},
		{"18446744073709.551616", errAmountTooBig},
	}

	for _, tt := range tests {
		_, err := parseAmount(tt.amount)
		require.ErrorIs(t, err, tt.expectedErr, tt.amount)
	}
}

func TestFormatAmount(t *testing.T) {
	require.Equal(t, "0.000000", formatAmount(0))
	require.Equal(t, "0.000001", formatAmount(1))
	require.Equal(t, "1500.250000", formatAmount(1500250000))
}

func trimZeros(str string) string {
	for len(str) > 0 && str[len(str)-1] == '0' {
		str = str[:len(str)-1]
	}
	if len(str) > 0 && str[len(str)-1] == '.' {
		str = str[:len(str)-1]
	}
	return str
}
