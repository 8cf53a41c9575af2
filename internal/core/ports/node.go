package ports

import (
	"context"
	"errors"
)

// ErrSubmissionRejected is returned when the network refuses a transaction.
// The reason given by the network is wrapped as is.
var ErrSubmissionRejected = errors.New("transaction rejected by the network")

// Node is the network submission endpoint.
type Node interface {
	SubmitTransaction(ctx context.Context, tx []byte) (string, error)
}
