package application_test

import (
	"context"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	"github.com/stretchr/testify/mock"
)

type recipeFn func(*ledger.Transaction) (*ledger.Recipe, error)
type finalizeFn func(*ledger.Recipe) (*ledger.FinalizedTransaction, error)

// **** Wallet engine ****

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Start(ctx context.Context, keys ports.WalletKeys) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *mockEngine) Stop() {
	m.Called()
}

func (m *mockEngine) IsSynced() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockEngine) Balances(ctx context.Context) (map[string]uint64, error) {
	args := m.Called(ctx)

	var res map[string]uint64
	if a := args.Get(0); a != nil {
		res = a.(map[string]uint64)
	}
	return res, args.Error(1)
}

func (m *mockEngine) TransferRecipe(
	ctx context.Context, outs []ports.TxOutput,
) (*ledger.Recipe, error) {
	args := m.Called(ctx, outs)

	var res *ledger.Recipe
	if a := args.Get(0); a != nil {
		res = a.(*ledger.Recipe)
	}
	return res, args.Error(1)
}

func (m *mockEngine) BalanceRecipe(
	ctx context.Context, tx *ledger.Transaction,
) (*ledger.Recipe, error) {
	args := m.Called(ctx, tx)

	if fn, ok := args.Get(0).(recipeFn); ok {
		return fn(tx)
	}
	var res *ledger.Recipe
	if a := args.Get(0); a != nil {
		res = a.(*ledger.Recipe)
	}
	return res, args.Error(1)
}

func (m *mockEngine) FinalizeRecipe(
	ctx context.Context, recipe *ledger.Recipe,
) (*ledger.FinalizedTransaction, error) {
	args := m.Called(ctx, recipe)

	if fn, ok := args.Get(0).(finalizeFn); ok {
		return fn(recipe)
	}
	var res *ledger.FinalizedTransaction
	if a := args.Get(0); a != nil {
		res = a.(*ledger.FinalizedTransaction)
	}
	return res, args.Error(1)
}

func (m *mockEngine) SubmitTransaction(
	ctx context.Context, tx *ledger.FinalizedTransaction,
) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}
