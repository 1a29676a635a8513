package retry

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"
)

const defaultDelay = 100 * time.Millisecond

type Backoff func(attempt int) time.Duration

// Constant waits the same delay between every attempt.
func Constant(delay time.Duration) Backoff {
	return func(int) time.Duration {
		return delay
	}
}

// Exponential doubles the delay each attempt and adds jitter.
// Delays too small to jitter are returned as-is.
func Exponential(delay time.Duration) Backoff {
	return func(attempt int) time.Duration {
		base := 1 << attempt * delay
		if base < 2 {
			return base
		}
		jitter := time.Duration(rand.IntN(int(base/2)) + 1)
		return base + jitter
	}
}

type Config struct {
	MaxAttempts int
	Backoff     Backoff
	ShouldRetry func(error) bool
}

func (c *Config) normalize() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 1
	}
	if c.Backoff == nil {
		c.Backoff = Exponential(defaultDelay)
	}
	if c.ShouldRetry == nil {
		c.ShouldRetry = func(error) bool { return true }
	}
}

// Do invokes fn until it succeeds, the error is not retryable,
// attempts are exhausted, or ctx is done.
func Do(ctx context.Context, c Config, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.normalize()
	timer := time.NewTimer(0)
	defer timer.Stop()

	var err error
	for attempt := 1; attempt <= c.MaxAttempts; attempt++ {
		err = fn()
		if err == nil || !c.ShouldRetry(err) {
			return err
		}
		if attempt == c.MaxAttempts {
			break
		}

		timer.Reset(c.Backoff(attempt))
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ctx.Err(), err)
		case <-timer.C:
		}
	}
	return err
}
