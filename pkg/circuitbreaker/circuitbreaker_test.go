package circuitbreaker_test

import (
	"errors"
	"testing"

	"github.com/blind-mentorship/mentorship-wallet/pkg/circuitbreaker"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker("test")
	require.Equal(t, "test", cb.Name())

	failure := errors.New("failure")
	for i := 0; i <= circuitbreaker.MaxNumOfFailingRequests; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, failure
		})
		require.ErrorIs(t, err, failure)
		require.False(t, circuitbreaker.IsOpen(err))
	}
	require.Equal(t, gobreaker.StateOpen, cb.State())

	_, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	require.True(t, circuitbreaker.IsOpen(err))
}
