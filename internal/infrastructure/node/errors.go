package node

import "errors"

var (
	// ErrNullUrl ...
	ErrNullUrl = errors.New("node url must not be null")
	// ErrNullTransaction ...
	ErrNullTransaction = errors.New("transaction must not be null")
)
