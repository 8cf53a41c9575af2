package domain

import "context"

// TransferRepository is the abstraction for any kind of database intended to
// persist Transfers.
type TransferRepository interface {
	// AddTransfer stores a new transfer.
	AddTransfer(ctx context.Context, transfer *Transfer) error
	// GetTransfer returns the transfer with the given id or
	// ErrTransferNotFound.
	GetTransfer(ctx context.Context, id string) (*Transfer, error)
	// GetTransferByTxId returns the transfer whose finalized transaction
	// matches the given id.
	GetTransferByTxId(ctx context.Context, txid string) (*Transfer, error)
	// GetAllTransfers returns all the transfers, most recent first.
	GetAllTransfers(ctx context.Context) ([]*Transfer, error)
	// UpdateTransfer allows to commit multiple changes to the same transfer
	// in a transactional way.
	UpdateTransfer(
		ctx context.Context, id string,
		updateFn func(t *Transfer) (*Transfer, error),
	) error
}
