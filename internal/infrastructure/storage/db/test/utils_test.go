package db_test

import (
	"testing"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/stretchr/testify/require"
	"github.com/thanhpk/randstr"
)

func makeRandomTransfer(t *testing.T) *domain.Transfer {
	transfer, err := domain.NewTransfer(domain.TransferKindSend, []domain.TransferOutput{
		{Address: randstr.Hex(20), Amount: 10, TokenType: randstr.Hex(32)},
	})
	require.NoError(t, err)
	return transfer
}
