package httpinterface_test

import (
	"context"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type mockWalletService struct {
	mock.Mock
}

func (m *mockWalletService) Info(ctx context.Context) (*application.WalletInfo, error) {
	args := m.Called(ctx)

	var res *application.WalletInfo
	if a := args.Get(0); a != nil {
		res = a.(*application.WalletInfo)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) Address(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) ShieldedAddresses(
	ctx context.Context,
) (*application.ShieldedAddresses, error) {
	args := m.Called(ctx)

	var res *application.ShieldedAddresses
	if a := args.Get(0); a != nil {
		res = a.(*application.ShieldedAddresses)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) Balance(
	ctx context.Context, tokenType string,
) (uint64, error) {
	args := m.Called(ctx, tokenType)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) Balances(
	ctx context.Context,
) (map[string]uint64, error) {
	args := m.Called(ctx)

	var res map[string]uint64
	if a := args.Get(0); a != nil {
		res = a.(map[string]uint64)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) Transfer(
	ctx context.Context, receivers []application.TransferRequest,
) (*domain.Transfer, error) {
	args := m.Called(ctx, receivers)

	var res *domain.Transfer
	if a := args.Get(0); a != nil {
		res = a.(*domain.Transfer)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) BalanceTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	args := m.Called(ctx, txHex)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) SubmitTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	args := m.Called(ctx, txHex)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) ListTransfers(
	ctx context.Context,
) ([]*domain.Transfer, error) {
	args := m.Called(ctx)

	var res []*domain.Transfer
	if a := args.Get(0); a != nil {
		res = a.([]*domain.Transfer)
	}
	return res, args.Error(1)
}
