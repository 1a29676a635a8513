package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	t.Run("SucceedsFirstAttempt", func(t *testing.T) {
		var calls int
		err := Do(t.Context(), Config{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("RetriesUntilSuccess", func(t *testing.T) {
		var calls int
		c := Config{MaxAttempts: 3, Backoff: Constant(time.Millisecond)}

		err := Do(t.Context(), c, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		c := Config{MaxAttempts: 3, Backoff: Constant(time.Millisecond)}
		wantErr := errors.New("permanent")

		err := Do(t.Context(), c, func() error {
			calls++
			return wantErr
		})
		require.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
	})

	t.Run("StopsOnNonRetryableError", func(t *testing.T) {
		var calls int
		fatal := errors.New("fatal")
		c := Config{
			MaxAttempts: 5,
			Backoff:     Constant(time.Millisecond),
			ShouldRetry: func(err error) bool { return !errors.Is(err, fatal) },
		}

		err := Do(t.Context(), c, func() error {
			calls++
			return fatal
		})
		require.ErrorIs(t, err, fatal)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		var calls int
		err := Do(ctx, Config{MaxAttempts: 3}, func() error {
			calls++
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})

	t.Run("CancelBetweenAttempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		c := Config{MaxAttempts: 3, Backoff: Constant(time.Second)}
		wantErr := errors.New("transient")

		err := Do(ctx, c, func() error {
			cancel()
			return wantErr
		})
		require.ErrorIs(t, err, context.Canceled)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("TinyExponentialDelay", func(t *testing.T) {
		for _, delay := range []time.Duration{0, 1, 2} {
			b := Exponential(delay)
			require.NotPanics(t, func() {
				for attempt := 0; attempt <= 3; attempt++ {
					d := b(attempt)
					assert.GreaterOrEqual(t, d, time.Duration(0))
				}
			})
		}
	})

	t.Run("ZeroConfigRunsOnce", func(t *testing.T) {
		var calls int
		err := Do(t.Context(), Config{}, func() error {
			calls++
			return errors.New("transient")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}
