// Package retry provides bounded retry helpers for writes guarded by unique constraints.
package retry

import (
	"context"
	"errors"
)

// ErrExhausted is returned when every attempt ended in a conflict.
var ErrExhausted = errors.New("retry: attempts exhausted")

// OnConflict generates a candidate and runs attempt with it until attempt succeeds,
// fails with an error isConflict rejects, or maxAttempts conflicts have been seen.
// Each conflict is reported to onConflict when it is non-nil.
func OnConflict[T, R any](
	ctx context.Context,
	maxAttempts int,
	generate func() (T, error),
	attempt func(context.Context, T) (R, error),
	isConflict func(error) bool,
	onConflict func(attempt int, candidate T, err error),
) (R, error) {
	var zero R
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	for i := 1; i <= maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		candidate, err := generate()
		if err != nil {
			return zero, err
		}

		result, err := attempt(ctx, candidate)
		if err == nil {
			return result, nil
		}
		if !isConflict(err) {
			return zero, err
		}
		if onConflict != nil {
			onConflict(i, candidate, err)
		}
	}

	return zero, ErrExhausted
}
