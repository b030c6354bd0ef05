package retry

import (
	"context"
	"time"

	"storefront-orders/internal/apperr"
	"storefront-orders/models"
)

type Options struct {
	MaxRetries    int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64

	// Classify decides whether a failure is worth another attempt.
	// Defaults to apperr.Category with the network assumed online.
	Classify func(error) models.Category
	// OnRetry is called before each sleep.
	OnRetry func(attempt int, err error, delay time.Duration)
}

func DefaultOptions() Options {
	return Options{
		MaxRetries:    3,
		InitialDelay:  time.Second,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.InitialDelay <= 0 {
		o.InitialDelay = d.InitialDelay
	}
	if o.MaxDelay <= 0 {
		o.MaxDelay = d.MaxDelay
	}
	if o.BackoffFactor < 1 {
		o.BackoffFactor = d.BackoffFactor
	}
	if o.Classify == nil {
		o.Classify = func(err error) models.Category { return apperr.Category(err, true) }
	}
	return o
}

// Do runs op up to MaxRetries+1 times. The attempt index (from 0) is passed to op.
// Failures classified as VALIDATION, AUTH or SHEET_CONFIG are returned at once.
// The last error is returned unchanged once attempts are exhausted.
func Do[T any](ctx context.Context, op func(ctx context.Context, attempt int) (T, error), opts Options) (T, error) {
	opts = opts.withDefaults()

	var (
		zero   T
		result T
		err    error
	)
	delay := opts.InitialDelay

	for attempt := 0; attempt <= opts.MaxRetries; attempt++ {
		result, err = op(ctx, attempt)
		if err == nil {
			return result, nil
		}

		if !apperr.IsRetryable(opts.Classify(err)) {
			return zero, err
		}

		// последняя попытка, выходим
		if attempt == opts.MaxRetries {
			break
		}

		if opts.OnRetry != nil {
			opts.OnRetry(attempt, err, delay)
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return zero, err
		}

		delay = time.Duration(float64(delay) * opts.BackoffFactor)
		if delay > opts.MaxDelay {
			delay = opts.MaxDelay
		}
	}
	return zero, err
}
