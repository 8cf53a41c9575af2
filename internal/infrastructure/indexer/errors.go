package indexer

import "errors"

var (
	// ErrNullUrl ...
	ErrNullUrl = errors.New("indexer url must not be null")
	// ErrInvalidRateLimit ...
	ErrInvalidRateLimit = errors.New("rate limit must be greater than zero")
	// ErrQueryFailed is returned when the indexer answers with GraphQL errors.
	ErrQueryFailed = errors.New("indexer query failed")
)
