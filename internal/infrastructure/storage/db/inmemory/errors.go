package inmemory

import "errors"

var (
	// ErrTransferExists ...
	ErrTransferExists = errors.New("transfer already exists")
	// ErrNullTransfer ...
	ErrNullTransfer = errors.New("transfer must not be null")
)
