package utils_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robalyx/turbo/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errGatewayDown = errors.New("gateway unavailable")
	errBadToken    = errors.New("invalid token")
)

func fastRetryOptions() utils.RetryOptions {
	return utils.RetryOptions{
		MaxElapsedTime:  time.Second,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		MaxRetries:      3,
	}
}

func TestWithRetry(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		failures      int
		failWith      error
		expectedCalls int
		expectedErr   error
	}{
		{name: "succeeds first try", expectedCalls: 1},
		{name: "succeeds after retries", failures: 2, failWith: errGatewayDown, expectedCalls: 3},
		{name: "gives up after max retries", failures: 10, failWith: errGatewayDown, expectedCalls: 4, expectedErr: errGatewayDown},
		{name: "stops on permanent error", failures: 10, failWith: utils.Permanent(errBadToken), expectedCalls: 1, expectedErr: errBadToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			operation := func() error {
				calls++
				if calls <= tt.failures {
					return tt.failWith
				}
				return nil
			}

			err := utils.WithRetry(t.Context(), operation, fastRetryOptions())

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.expectedCalls, calls)
		})
	}
}

func TestWithRetryCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	calls := 0
	err := utils.WithRetry(ctx, func() error {
		calls++
		return errGatewayDown
	}, utils.RetryOptions{
		MaxElapsedTime:  time.Second,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     200 * time.Millisecond,
		MaxRetries:      5,
	})

	require.Error(t, err)
	assert.LessOrEqual(t, calls, 1)
}

func TestContextSleep(t *testing.T) {
	t.Parallel()

	assert.Equal(t, utils.SleepCompleted, utils.ContextSleep(t.Context(), time.Millisecond))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.Equal(t, utils.SleepCancelled, utils.ContextSleep(ctx, time.Hour))
}
