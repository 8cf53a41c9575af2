package domain_test

import (
	"testing"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/stretchr/testify/require"
)

const nativeToken = "0000000000000000000000000000000000000000000000000000000000000000"

func newTestOutputs() []domain.TransferOutput {
	return []domain.TransferOutput{
		{Address: "mn_addr_undeployed1abc", Amount: 10, TokenType: nativeToken},
		{Address: "mn_addr_undeployed1def", Amount: 5, TokenType: nativeToken},
	}
}

func newTransferUnbalanced(t *testing.T) *domain.Transfer {
	transfer, err := domain.NewTransfer(domain.TransferKindSend, newTestOutputs())
	require.NoError(t, err)
	return transfer
}

func newTransferRecipe(t *testing.T) *domain.Transfer {
	transfer := newTransferUnbalanced(t)
	require.NoError(t, transfer.Recipe([]uint16{1}, []uint16{2}))
	return transfer
}

func newTransferSigned(t *testing.T) *domain.Transfer {
	transfer := newTransferRecipe(t)
	require.NoError(t, transfer.Sign())
	return transfer
}

func newTransferFinalized(t *testing.T) *domain.Transfer {
	transfer := newTransferSigned(t)
	require.NoError(t, transfer.Finalize("txid"))
	return transfer
}

func newTransferSubmitted(t *testing.T) *domain.Transfer {
	transfer := newTransferFinalized(t)
	require.NoError(t, transfer.Submit("txhash"))
	return transfer
}

func TestNewTransfer(t *testing.T) {
	t.Parallel()

	transfer := newTransferUnbalanced(t)
	require.NotEmpty(t, transfer.Id)
	require.True(t, transfer.IsUnbalanced())
	require.Equal(t, "Unbalanced", transfer.Status.String())
	totals, err := transfer.TotalAmountPerToken()
	require.NoError(t, err)
	require.Equal(t, map[string]uint64{nativeToken: 15}, totals)

	other := newTransferUnbalanced(t)
	require.NotEqual(t, transfer.Id, other.Id)

	balance, err := domain.NewTransfer(domain.TransferKindBalance, nil)
	require.NoError(t, err)
	require.Empty(t, balance.Outputs)
}

func TestFailingNewTransfer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		kind          string
		outputs       []domain.TransferOutput
		expectedError error
	}{
		{
			name:          "unknown kind",
			kind:          "swap",
			outputs:       newTestOutputs(),
			expectedError: domain.ErrTransferUnknownKind,
		},
		{
			name:          "null outputs",
			kind:          domain.TransferKindSend,
			expectedError: domain.ErrTransferNullOutputs,
		},
		{
			name: "zero amount",
			kind: domain.TransferKindSend,
			outputs: []domain.TransferOutput{
				{Address: "mn_addr1abc", TokenType: nativeToken},
			},
			expectedError: domain.ErrTransferInvalidAmount,
		},
		{
			name: "null address",
			kind: domain.TransferKindSend,
			outputs: []domain.TransferOutput{
				{Amount: 10, TokenType: nativeToken},
			},
			expectedError: domain.ErrTransferInvalidAddress,
		},
		{
			name: "null token type",
			kind: domain.TransferKindSend,
			outputs: []domain.TransferOutput{
				{Address: "mn_addr1abc", Amount: 10},
			},
			expectedError: domain.ErrTransferInvalidTokenType,
		},
		{
			name: "outputs total overflows",
			kind: domain.TransferKindSend,
			outputs: []domain.TransferOutput{
				{Address: "mn_addr1abc", Amount: 1 << 63, TokenType: nativeToken},
				{Address: "mn_addr1def", Amount: 1 << 63, TokenType: nativeToken},
			},
			expectedError: domain.ErrTransferAmountOverflow,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			transfer, err := domain.NewTransfer(tt.kind, tt.outputs)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, transfer)
		})
	}
}

func TestTransferTotalAmountPerToken(t *testing.T) {
	t.Parallel()

	transfer := newTransferUnbalanced(t)
	transfer.Outputs = append(transfer.Outputs,
		domain.TransferOutput{Address: "mn_addr1ghi", Amount: 7, TokenType: "02"},
	)
	totals, err := transfer.TotalAmountPerToken()
	require.NoError(t, err)
	require.Equal(t, map[string]uint64{nativeToken: 15, "02": 7}, totals)

	transfer.Outputs = append(transfer.Outputs,
		domain.TransferOutput{Address: "mn_addr1jkl", Amount: ^uint64(0) - 6, TokenType: "02"},
	)
	totals, err = transfer.TotalAmountPerToken()
	require.NoError(t, err)
	require.Equal(t, ^uint64(0), totals["02"])

	transfer.Outputs = append(transfer.Outputs,
		domain.TransferOutput{Address: "mn_addr1mno", Amount: 1, TokenType: "02"},
	)
	totals, err = transfer.TotalAmountPerToken()
	require.ErrorIs(t, err, domain.ErrTransferAmountOverflow)
	require.Nil(t, totals)
}

func TestTransferWorkflow(t *testing.T) {
	t.Parallel()

	transfer := newTransferUnbalanced(t)

	require.NoError(t, transfer.Recipe([]uint16{1}, nil))
	require.True(t, transfer.IsRecipe())
	require.Equal(t, []uint16{1}, transfer.PrimarySegments)
	require.Nil(t, transfer.BalancingSegments)

	require.NoError(t, transfer.Sign())
	require.True(t, transfer.IsSigned())

	require.NoError(t, transfer.Finalize("txid"))
	require.True(t, transfer.IsFinalized())
	require.Equal(t, "txid", transfer.TxId)

	require.NoError(t, transfer.Submit("txhash"))
	require.True(t, transfer.IsSubmitted())
	require.Equal(t, "txhash", transfer.TxHash)
	require.Equal(t, "Submitted", transfer.Status.String())

	// moving to a status already reached is a no-op.
	require.NoError(t, transfer.Recipe([]uint16{5}, nil))
	require.NoError(t, transfer.Sign())
	require.NoError(t, transfer.Finalize("other"))
	require.Equal(t, []uint16{1}, transfer.PrimarySegments)
	require.Equal(t, "txid", transfer.TxId)
	require.True(t, transfer.IsSubmitted())
}

func TestFailingTransferWorkflow(t *testing.T) {
	t.Parallel()

	t.Run("sign", func(t *testing.T) {
		err := newTransferUnbalanced(t).Sign()
		require.ErrorIs(t, err, domain.ErrTransferMustBeRecipe)
	})

	t.Run("finalize", func(t *testing.T) {
		for _, transfer := range []*domain.Transfer{
			newTransferUnbalanced(t), newTransferRecipe(t),
		} {
			err := transfer.Finalize("txid")
			require.ErrorIs(t, err, domain.ErrTransferMustBeSigned)
		}

		err := newTransferSigned(t).Finalize("")
		require.ErrorIs(t, err, domain.ErrTransferNullTxId)
	})

	t.Run("submit", func(t *testing.T) {
		for _, transfer := range []*domain.Transfer{
			newTransferUnbalanced(t), newTransferRecipe(t), newTransferSigned(t),
		} {
			err := transfer.Submit("txhash")
			require.ErrorIs(t, err, domain.ErrTransferMustBeFinalized)
		}
	})
}

func TestTransferFail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		transfer *domain.Transfer
	}{
		{"unbalanced", newTransferUnbalanced(t)},
		{"recipe", newTransferRecipe(t)},
		{"signed", newTransferSigned(t)},
		{"finalized", newTransferFinalized(t)},
		{"submitted", newTransferSubmitted(t)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			code := tt.transfer.Status.Code
			tt.transfer.Fail("reason")
			require.True(t, tt.transfer.IsFailed())
			require.Equal(t, code, tt.transfer.Status.Code)
			require.Equal(t, "reason", tt.transfer.FailureReason)
			require.Contains(t, tt.transfer.Status.String(), "Failed")

			// the first failure reason is kept.
			tt.transfer.Fail("other reason")
			require.Equal(t, "reason", tt.transfer.FailureReason)

			require.ErrorIs(t, tt.transfer.Recipe([]uint16{1}, nil), domain.ErrTransferFailed)
			require.ErrorIs(t, tt.transfer.Sign(), domain.ErrTransferFailed)
			require.ErrorIs(t, tt.transfer.Finalize("txid"), domain.ErrTransferFailed)
			require.ErrorIs(t, tt.transfer.Submit("txhash"), domain.ErrTransferFailed)
		})
	}
}
