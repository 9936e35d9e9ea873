// Package retry provides a bounded retry mechanism with exponential backoff
// for filesystem operations that can fail transiently.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultMaxAttempts    = 3
	DefaultInitialBackoff = 25 * time.Millisecond
	DefaultMaxBackoff     = 200 * time.Millisecond
)

// ErrAttemptsExhausted is wrapped into the error returned by Do when every
// attempt failed with a retryable error.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// SleepFunc waits for d or until ctx is done, whichever comes first.
// It returns ctx.Err() when the wait was interrupted.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Config represents retry configuration.
type Config struct {
	MaxAttempts    int              // Maximum number of attempts, first one included (default: 3)
	InitialBackoff time.Duration    // Initial backoff duration (default: 25ms)
	MaxBackoff     time.Duration    // Maximum backoff duration (default: 200ms)
	Retryable      func(error) bool // Error classifier (default: IsTransient)
	Sleep          SleepFunc        // Backoff wait (default: SleepContext)
	OnRetry        func(int, error) // Called with the failed attempt number before each wait
}

// WithDefaults returns a copy of cfg with zero fields replaced by defaults.
func (cfg Config) WithDefaults() Config {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = DefaultInitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = DefaultMaxBackoff
	}
	if cfg.MaxBackoff < cfg.InitialBackoff {
		cfg.MaxBackoff = cfg.InitialBackoff
	}
	if cfg.Retryable == nil {
		cfg.Retryable = IsTransient
	}
	if cfg.Sleep == nil {
		cfg.Sleep = SleepContext
	}
	return cfg
}

// Do executes fn until it succeeds, returns a non-retryable error, the
// attempts run out, or ctx is done.
//
// A non-retryable error is returned as is. When all attempts fail the
// result wraps both ErrAttemptsExhausted and the last error. Cancellation
// observed before a backoff wait or during it returns ctx.Err().
func Do(ctx context.Context, cfg Config, fn func() error) error {
	cfg = cfg.WithDefaults()

	var lastErr error
	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if !cfg.Retryable(err) {
			return err
		}

		if attempt == cfg.MaxAttempts-1 {
			break
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt+1, err)
		}

		if err := cfg.Sleep(ctx, calculateBackoff(attempt, cfg.InitialBackoff, cfg.MaxBackoff)); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, cfg.MaxAttempts, lastErr)
}

// SleepContext waits for d unless ctx is done first.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// calculateBackoff calculates the backoff duration for a given attempt.
// Uses exponential backoff: 2^attempt * initial
// Capped at maxBackoff if the result exceeds it.
func calculateBackoff(attempt int, initial, max time.Duration) time.Duration {
	if attempt > 30 {
		return max
	}
	backoff := time.Duration(1<<uint(attempt)) * initial
	if backoff > max || backoff <= 0 {
		return max
	}
	return backoff
}
