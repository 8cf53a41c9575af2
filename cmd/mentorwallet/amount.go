package main

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// tokenDecimals is the precision of the amounts given to the CLI.
const tokenDecimals = 6

var (
	errInvalidAmount   = errors.New("amount must be a positive number")
	errAmountPrecision = fmt.Errorf("amount must have at most %d decimals", tokenDecimals)
	errAmountTooBig    = errors.New("amount is too big")

	unit = decimal.New(1, tokenDecimals)
)

// parseAmount converts an amount expressed in token units to its atomic
// representation.
func parseAmount(str string) (uint64, error) {
	amount, err := decimal.NewFromString(str)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errInvalidAmount, err)
	}
	if !amount.IsPositive() {
		return 0, errInvalidAmount
	}

	atomic := amount.Mul(unit)
	if !atomic.Equal(atomic.Truncate(0)) {
		return 0, errAmountPrecision
	}
	n := atomic.BigInt()
	if !n.IsUint64() {
		return 0, errAmountTooBig
	}
	return n.Uint64(), nil
}

func formatAmount(amount uint64) string {
	return decimal.NewFromBigInt(
		new(big.Int).SetUint64(amount), -tokenDecimals,
	).StringFixed(tokenDecimals)
}
