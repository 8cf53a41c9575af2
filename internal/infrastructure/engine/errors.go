package engine

import (
	"errors"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
)

var (
	// ErrNullIndexer ...
	ErrNullIndexer = errors.New("indexer must not be null")
	// ErrNullNode ...
	ErrNullNode = errors.New("node must not be null")
	// ErrInvalidPollInterval ...
	ErrInvalidPollInterval = errors.New("poll interval must be greater than zero")
	// ErrInvalidLockExpiry ...
	ErrInvalidLockExpiry = errors.New("coin lock expiry must be greater than zero")
	// ErrNotStarted ...
	ErrNotStarted = errors.New("wallet engine is not started")
	// ErrAlreadyStarted ...
	ErrAlreadyStarted = errors.New("wallet engine is already started")
	// ErrInvalidKeys ...
	ErrInvalidKeys = errors.New("wallet keys must contain address and public key")
	// ErrNullOutputs ...
	ErrNullOutputs = errors.New("transfer outputs must not be null")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("output amount must be greater than zero")
	// ErrNullTransaction ...
	ErrNullTransaction = errors.New("transaction must not be null")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = ports.ErrInsufficientFunds
)
