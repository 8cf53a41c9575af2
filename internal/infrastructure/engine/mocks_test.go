package engine_test

import (
	"context"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// **** Indexer ****

type mockIndexer struct {
	mock.Mock
}

func (m *mockIndexer) GetUnshieldedUtxos(
	ctx context.Context, address string,
) ([]ports.Utxo, error) {
	args := m.Called(ctx, address)

	var res []ports.Utxo
	if a := args.Get(0); a != nil {
		res = a.([]ports.Utxo)
	}
	return res, args.Error(1)
}

func (m *mockIndexer) GetBlockHeight(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)

	var res uint64
	if a := args.Get(0); a != nil {
		res = a.(uint64)
	}
	return res, args.Error(1)
}

// **** Node ****

type mockNode struct {
	mock.Mock
}

func (m *mockNode) SubmitTransaction(
	ctx context.Context, tx []byte,
) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

// **** Utxo ****

type utxo struct {
	intentHash string
	outputNo   uint32
	value      uint64
	tokenType  string
}

func (u utxo) GetIntentHash() string { return u.intentHash }
func (u utxo) GetOutputNo() uint32   { return u.outputNo }
func (u utxo) GetOwner() string      { return "" }
func (u utxo) GetValue() uint64      { return u.value }
func (u utxo) GetTokenType() string  { return u.tokenType }

// **** Transfer output ****

type output struct {
	address   string
	amount    uint64
	tokenType string
}

func (o output) GetAddress() string   { return o.address }
func (o output) GetAmount() uint64    { return o.amount }
func (o output) GetTokenType() string { return o.tokenType }
