// Package retry implements retry-with-backoff as a higher-order wrapper.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes a bounded retry with exponential backoff.
// The wait after failed attempt i (0-based) is BaseDelay * 2^i.
type Policy struct {
	// Attempts is the total number of tries, including the first.
	Attempts int

	// BaseDelay is the backoff starting point.
	BaseDelay time.Duration

	// OnRetry, when set, is called before each wait with the 1-based
	// attempt number that just failed and its error. Used for logging.
	OnRetry func(attempt int, wait time.Duration, err error)

	// Sleep waits for the given duration. Nil means a context-aware
	// timer wait; tests inject a recorder here.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Do runs op until it succeeds or Attempts is exhausted, waiting
// BaseDelay * 2^attempt between tries. The last error is returned after
// exhaustion. A cancelled context aborts the wait and returns ctx.Err().
func (p Policy) Do(ctx context.Context, op func() error) error {
	if p.Attempts < 1 {
		return fmt.Errorf("retry: attempts must be >= 1, got %d", p.Attempts)
	}

	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if attempt == p.Attempts-1 {
			break
		}
		wait := p.BaseDelay * (1 << attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, wait, lastErr)
		}
		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
	return lastErr
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
