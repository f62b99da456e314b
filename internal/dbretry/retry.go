// Package dbretry re-runs storage operations that failed with an intermittent
// backend fault. Anything else is returned untouched on the first failure.
package dbretry

import (
	"context"
	"time"
)

const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = 400 * time.Millisecond
)

// Policy configures Do. The zero value performs a single attempt.
type Policy struct {
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	// BaseDelay grows linearly: attempt n waits BaseDelay*n.
	BaseDelay time.Duration

	IsRetryable func(error) bool
	Sleep       func(ctx context.Context, d time.Duration) error
	OnRetry     func(attempt int, delay time.Duration, err error)
}

func DefaultPolicy() Policy {
	return Policy{
		MaxRetries: DefaultMaxRetries,
		BaseDelay:  DefaultBaseDelay,
	}
}

func (p Policy) withDefaults() Policy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.IsRetryable == nil {
		p.IsRetryable = IsTransient
	}
	if p.Sleep == nil {
		p.Sleep = sleepContext
	}
	return p
}

// Do runs op until it succeeds, fails with a non-retryable error, or the retry
// budget is spent. The last failure is returned as produced by op.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	p = p.withDefaults()

	for attempt := 1; ; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}

		if attempt > p.MaxRetries || !p.IsRetryable(err) || ctx.Err() != nil {
			return out, err
		}

		delay := p.BaseDelay * time.Duration(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}

		if sleepErr := p.Sleep(ctx, delay); sleepErr != nil {
			return out, err
		}
	}
}

// Exec is Do for operations without a result.
func Exec(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	_, err := Do(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
