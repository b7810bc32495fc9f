package gemini

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultMaxRetries bounds retries of a single remote call.
	DefaultMaxRetries = 3
	// DefaultInitialDelay seeds the exponential backoff.
	DefaultInitialDelay = 2 * time.Second
)

// WithRetry runs op, retrying transient failures (overloaded, internal
// fault, rate limited) with exponential backoff. Non-transient failures
// propagate immediately. Quota exhaustion is retried a few times here
// too, but usually requires the caller to switch models; see
// IsQuotaError.
func WithRetry[T any](ctx context.Context, logger zerolog.Logger, op func(context.Context) (T, error)) (T, error) {
	return withRetry(ctx, logger, op, DefaultMaxRetries, DefaultInitialDelay)
}

// Retry is WithRetry with an explicit retry budget and initial delay.
func Retry[T any](ctx context.Context, logger zerolog.Logger, op func(context.Context) (T, error), retries int, delay time.Duration) (T, error) {
	return withRetry(ctx, logger, op, retries, delay)
}

func withRetry[T any](ctx context.Context, logger zerolog.Logger, op func(context.Context) (T, error), retries int, delay time.Duration) (T, error) {
	out, err := op(ctx)
	if err == nil {
		return out, nil
	}

	svcErr := Classify(err)
	var zero T
	if retries <= 0 || !svcErr.Retryable() {
		return zero, svcErr
	}

	logger.Warn().
		Err(err).
		Str("kind", svcErr.Kind.String()).
		Int("status", svcErr.Status).
		Dur("delay", delay).
		Int("retries_left", retries).
		Msg("transient gemini failure, backing off")

	select {
	case <-time.After(delay):
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	return withRetry(ctx, logger, op, retries-1, delay*2)
}
