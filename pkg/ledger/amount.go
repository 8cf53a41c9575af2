package ledger

import (
	"fmt"
	"math/bits"
)

// AddAmounts returns the sum of the given amounts, or ErrAmountOverflow if
// it does not fit a uint64.
func AddAmounts(amounts ...uint64) (uint64, error) {
	var total, carry uint64
	for _, amount := range amounts {
		total, carry = bits.Add64(total, amount, 0)
		if carry != 0 {
			return 0, ErrAmountOverflow
		}
	}
	return total, nil
}

func addTokenAmount(totals map[TokenType]uint64, token TokenType, amount uint64) error {
	total, err := AddAmounts(totals[token], amount)
	if err != nil {
		return fmt.Errorf("token %s: %w", token, err)
	}
	totals[token] = total
	return nil
}
