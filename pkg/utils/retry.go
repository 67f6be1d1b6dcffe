package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryOptions contains configuration for retry behavior.
type RetryOptions struct {
	MaxElapsedTime  time.Duration
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRetries      uint64
}

// GetGatewayRetryOptions returns retry options for opening the gateway connection.
func GetGatewayRetryOptions() RetryOptions {
	return RetryOptions{
		MaxElapsedTime:  2 * time.Minute,
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
		MaxRetries:      5,
	}
}

// WithRetry executes the given operation with exponential backoff using provided options.
func WithRetry(ctx context.Context, operation func() error, opts RetryOptions) error {
	// Configure exponential backoff
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(opts.MaxElapsedTime),
		backoff.WithInitialInterval(opts.InitialInterval),
		backoff.WithMaxInterval(opts.MaxInterval),
	), opts.MaxRetries)

	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// Permanent marks an error as not worth retrying.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
