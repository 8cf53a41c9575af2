package engine

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	"github.com/stretchr/testify/require"
)

func TestGetBestCombination(t *testing.T) {
	tests := []struct {
		name   string
		items  []uint64
		target uint64
		want   []uint64
	}{
		{
			name:   "1",
			items:  []uint64{61, 61, 61, 38, 61, 61, 61, 1, 1, 1, 3},
			target: 6,
			want:   []uint64{38},
		},
		{
			name:   "2",
			items:  []uint64{61, 61, 61, 61, 61, 61, 1, 1, 1, 3},
			target: 6,
			want:   []uint64{3, 1, 1, 1},
		},
		{
			name:   "3",
			items:  []uint64{61, 61},
			target: 6,
			want:   []uint64{61},
		},
		{
			name:   "4",
			items:  []uint64{2, 2},
			target: 6,
			want:   []uint64{},
		},
		{
			name:   "5",
			items:  []uint64{61, 1, 1, 1, 3, 56},
			target: 6,
			want:   []uint64{56},
		},
		{
			name:   "overflowing combinations are skipped",
			items:  []uint64{1<<63 + 3, 1<<63 + 3},
			target: 5,
			want:   []uint64{1<<63 + 3},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			sort.Slice(tt.items, func(i, j int) bool {
				return tt.items[i] > tt.items[j]
			})
			got := make([]uint64, 0)
			for _, i := range getBestCombination(tt.items, tt.target) {
				got = append(got, tt.items[i])
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestSelectCoins(t *testing.T) {
	t.Run("single coin", func(t *testing.T) {
		coins := makeCoins(20, 50, 100)
		selected, change, err := selectCoins(coins, 50)
		require.NoError(t, err)
		require.Len(t, selected, 1)
		require.Equal(t, uint64(100), selected[0].value)
		require.Equal(t, uint64(50), change)
	})

	t.Run("with change", func(t *testing.T) {
		coins := makeCoins(100, 50, 20)
		selected, change, err := selectCoins(coins, 130)
		require.NoError(t, err)
		require.Equal(t, uint64(150), sum(selected))
		require.Equal(t, uint64(20), change)
	})

	t.Run("greedy fallback", func(t *testing.T) {
		values := make([]uint64, 0, 30)
		for i := 0; i < 30; i++ {
			values = append(values, 10)
		}
		coins := makeCoins(values...)
		selected, change, err := selectCoins(coins, 250)
		require.NoError(t, err)
		require.Len(t, selected, 25)
		require.Zero(t, change)
	})

	t.Run("zero target", func(t *testing.T) {
		selected, change, err := selectCoins(makeCoins(10), 0)
		require.NoError(t, err)
		require.Empty(t, selected)
		require.Zero(t, change)
	})

	t.Run("selected coins overflow", func(t *testing.T) {
		selected, change, err := selectCoins(makeCoins(1<<63, 1<<63), 1<<63+1)
		require.ErrorIs(t, err, ledger.ErrAmountOverflow)
		require.Nil(t, selected)
		require.Zero(t, change)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		selected, change, err := selectCoins(makeCoins(10, 20), 31)
		require.ErrorIs(t, err, ErrInsufficientFunds)
		require.Nil(t, selected)
		require.Zero(t, change)

		_, _, err = selectCoins(nil, 1)
		require.ErrorIs(t, err, ErrInsufficientFunds)
	})
}

func TestSum(t *testing.T) {
	require.Zero(t, sum(nil))
	require.Equal(t, uint64(30), sum(makeCoins(10, 20)))
	require.Equal(t, uint64(math.MaxUint64), sum(makeCoins(math.MaxUint64, 1)))
}

func makeCoins(values ...uint64) []coin {
	coins := make([]coin, 0, len(values))
	for i, v := range values {
		coins = append(coins, coin{
			intentHash: []byte(fmt.Sprintf("%032d", i)),
			outputNo:   uint32(i),
			value:      v,
			tokenType:  ledger.NativeToken(),
		})
	}
	return coins
}
