package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/piresc/fleetwatch/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) Config {
	cfg := DefaultConfig()
	cfg.MaxRetries = maxRetries
	cfg.BaseDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

func TestRetrier_SucceedsAfterFailures(t *testing.T) {
	r := New(fastConfig(3), logger.NewNopLogger())

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetrier_ExhaustsBudget(t *testing.T) {
	r := New(fastConfig(2), logger.NewNopLogger())

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("down")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "retry limit exceeded after 3 attempts")
}

func TestRetrier_NotRetryable(t *testing.T) {
	permanent := errors.New("permanent")
	cfg := fastConfig(5)
	cfg.RetryableFunc = func(err error) bool { return !errors.Is(err, permanent) }
	r := New(cfg, logger.NewNopLogger())

	calls := 0
	err := r.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetrier_UnlimitedStopsOnContext(t *testing.T) {
	cfg := fastConfig(Unlimited)
	retries := 0
	cfg.OnRetry = func(attempt int, err error) { retries = attempt }
	r := New(cfg, logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := r.Execute(ctx, func(ctx context.Context) error {
		calls++
		if calls == 10 {
			cancel()
		}
		return errors.New("store unavailable")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 10, calls)
	assert.Equal(t, 10, retries)
}

func TestCalculateDelay(t *testing.T) {
	cfg := fastConfig(3)
	cfg.BaseDelay = 100 * time.Millisecond
	cfg.MaxDelay = 300 * time.Millisecond
	r := New(cfg, logger.NewNopLogger())

	assert.Equal(t, 100*time.Millisecond, r.calculateDelay(0))
	assert.Equal(t, 200*time.Millisecond, r.calculateDelay(1))
	assert.Equal(t, 300*time.Millisecond, r.calculateDelay(2))
	assert.Equal(t, 300*time.Millisecond, r.calculateDelay(5))
}
