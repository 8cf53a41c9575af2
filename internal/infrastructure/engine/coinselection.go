package engine

import (
	"fmt"
	"math"
	"math/bits"
	"sort"

	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
)

// maxCombinationCandidates caps the number of coins the exhaustive search
// runs on, the rest of the selection is greedy.
const maxCombinationCandidates = 12

// selectCoins performs a coin selection over the given list of coins, all
// expected to be of the same token type, and returns a subset of them to
// cover the targetAmount together with the change.
func selectCoins(coins []coin, targetAmount uint64) ([]coin, uint64, error) {
	if targetAmount == 0 {
		return nil, 0, nil
	}

	sorted := append([]coin{}, coins...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].value > sorted[j].value
	})

	indexes := getCoinsIndexes(targetAmount, sorted)
	if len(indexes) <= 0 {
		return nil, 0, fmt.Errorf(
			"%w: total amount %d does not cover target %d",
			ErrInsufficientFunds, sum(sorted), targetAmount,
		)
	}

	selected := make([]coin, 0, len(indexes))
	totalAmount := uint64(0)
	for _, i := range indexes {
		total, err := ledger.AddAmounts(totalAmount, sorted[i].value)
		if err != nil {
			return nil, 0, err
		}
		totalAmount = total
		selected = append(selected, sorted[i])
	}
	return selected, totalAmount - targetAmount, nil
}

// getCoinsIndexes returns the indexes of the coins, sorted by descending
// value, that are going to be selected. The goal of the selection strategy
// is to select as few coins as possible until a 10x ratio.
func getCoinsIndexes(targetAmount uint64, coins []coin) []int {
	candidates := coins
	if len(candidates) > maxCombinationCandidates {
		candidates = candidates[:maxCombinationCandidates]
	}
	values := make([]uint64, 0, len(candidates))
	for _, c := range candidates {
		values = append(values, c.value)
	}

	if indexes := getBestCombination(values, targetAmount); len(indexes) > 0 {
		return indexes
	}

	// greedy fallback over all coins, largest first. Running out of uint64
	// range means the target is covered.
	indexes := make([]int, 0)
	total := uint64(0)
	for i, c := range coins {
		indexes = append(indexes, i)
		next, carry := bits.Add64(total, c.value, 0)
		if carry != 0 || next >= targetAmount {
			return indexes
		}
		total = next
	}
	return nil
}

// getBestCombination selects as few elements as possible from items so that
// their sum is equal or greater than target, with a 10x ratio:
// 1. set size = 1
// 2. get all combinations of size elements of items
// 3. return the first combination meeting the requirements, if any
// 4. otherwise size++ and go to step 2.
// If no combination meets the ratio, the first element greater than target
// is returned.
func getBestCombination(items []uint64, target uint64) []int {
	for size := 1; size <= len(items); size++ {
		var found []int
		forEachCombination(len(items), size, func(indexes []int) bool {
			total, err := ledger.AddAmounts(pick(items, indexes)...)
			if err != nil {
				return true
			}
			if total >= target && (target > math.MaxUint64/10 || total <= target*10) {
				found = append([]int{}, indexes...)
				return false
			}
			return true
		})
		if found != nil {
			return found
		}
	}

	for i, v := range items {
		if v > target {
			return []int{i}
		}
	}
	return nil
}

// forEachCombination calls fn with every combination of size indexes out of
// n, in lexicographic order, until fn returns false.
func forEachCombination(n, size int, fn func([]int) bool) {
	combination := make([]int, 0, size)

	var visit func(offset int) bool
	visit = func(offset int) bool {
		if len(combination) == size {
			return fn(combination)
		}
		for i := offset; i <= n-(size-len(combination)); i++ {
			combination = append(combination, i)
			if !visit(i + 1) {
				return false
			}
			combination = combination[:len(combination)-1]
		}
		return true
	}
	visit(0)
}

func pick(items []uint64, indexes []int) []uint64 {
	picked := make([]uint64, 0, len(indexes))
	for _, i := range indexes {
		picked = append(picked, items[i])
	}
	return picked
}

// sum returns the total value of the coins, capped to math.MaxUint64.
func sum(coins []coin) uint64 {
	var total uint64
	for _, c := range coins {
		next, carry := bits.Add64(total, c.value, 0)
		if carry != 0 {
			return math.MaxUint64
		}
		total = next
	}
	return total
}
