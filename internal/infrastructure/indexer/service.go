// Package indexer implements ports.Indexer on top of the GraphQL API of the
// ledger indexer.
package indexer

import (
	"context"
	"strings"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
)

const requestTimeout = 15 * time.Second

type service struct {
	url     string
	client  *client
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewService returns an Indexer making at most rateLimit requests per second
// to the given GraphQL endpoint.
func NewService(url string, rateLimit int) (ports.Indexer, error) {
	if len(strings.TrimSpace(url)) <= 0 {
		return nil, ErrNullUrl
	}
	if rateLimit <= 0 {
		return nil, ErrInvalidRateLimit
	}

	return &service{
		url:     url,
		client:  newHTTPClient(requestTimeout),
		cb:      circuitbreaker.NewCircuitBreaker("indexer"),
		limiter: ratelimit.New(rateLimit),
	}, nil
}

func (s *service) GetUnshieldedUtxos(
	ctx context.Context, address string,
) ([]ports.Utxo, error) {
	req := graphqlRequest{
		Query:     unshieldedUtxosQuery,
		Variables: map[string]interface{}{"address": address},
	}
	iRes, err := s.execute(ctx, req, &unshieldedUtxosResult{})
	if err != nil {
		return nil, err
	}

	res := iRes.(*unshieldedUtxosResult)
	utxos := make([]ports.Utxo, 0, len(res.UnshieldedUtxos))
	for _, u := range res.UnshieldedUtxos {
		utxos = append(utxos, u)
	}
	return utxos, nil
}

func (s *service) GetBlockHeight(ctx context.Context) (uint64, error) {
	req := graphqlRequest{Query: blockHeightQuery}
	iRes, err := s.execute(ctx, req, &blockHeightResult{})
	if err != nil {
		return 0, err
	}

	res := iRes.(*blockHeightResult)
	if res.Block == nil {
		return 0, nil
	}
	return res.Block.Height, nil
}

func (s *service) execute(
	ctx context.Context, req graphqlRequest, result interface{},
) (interface{}, error) {
	return s.cb.Execute(func() (interface{}, error) {
		s.limiter.Take()
		if err := s.client.query(ctx, s.url, req, result); err != nil {
			return nil, err
		}
		return result, nil
	})
}
