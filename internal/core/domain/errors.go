package domain

import "errors"

var (
	// ErrTransferNullOutputs ...
	ErrTransferNullOutputs = errors.New("transfer must have at least one output")
	// ErrTransferInvalidAmount ...
	ErrTransferInvalidAmount = errors.New("transfer output amount must be greater than zero")
	// ErrTransferInvalidAddress ...
	ErrTransferInvalidAddress = errors.New("transfer output address must not be null")
	// ErrTransferAmountOverflow is returned when the outputs of a transfer
	// sum up to more than a uint64 can hold for some token type.
	ErrTransferAmountOverflow = errors.New("transfer outputs total amount overflows")
	// ErrTransferInvalidTokenType ...
	ErrTransferInvalidTokenType = errors.New("transfer output token type must not be null")
	// ErrTransferUnknownKind ...
	ErrTransferUnknownKind = errors.New("unknown transfer kind")
	// ErrTransferMustBeRecipe ...
	ErrTransferMustBeRecipe = errors.New("transfer must be in Recipe status")
	// ErrTransferMustBeSigned ...
	ErrTransferMustBeSigned = errors.New("transfer must be in Signed status")
	// ErrTransferMustBeFinalized ...
	ErrTransferMustBeFinalized = errors.New("transfer must be in Finalized status")
	// ErrTransferFailed is returned when trying to move forward a failed
	// transfer. A new transfer must be created to retry.
	ErrTransferFailed = errors.New("transfer has failed")
	// ErrTransferNullTxId ...
	ErrTransferNullTxId = errors.New("transaction id must not be null")
	// ErrTransferNotFound ...
	ErrTransferNotFound = errors.New("transfer not found")
)
