package ports

import "context"

// Indexer serves read-only queries over the ledger state.
type Indexer interface {
	GetUnshieldedUtxos(ctx context.Context, address string) ([]Utxo, error)
	GetBlockHeight(ctx context.Context) (uint64, error)
}
