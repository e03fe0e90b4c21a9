// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"context"
	"time"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/metrics"
)

// Retry re-runs a failing call up to maxRetries more times, sleeping delay
// between attempts. The delay does not grow. Precondition errors fail
// immediately, and cancelling ctx aborts the sleep with ctx.Err().
func Retry[T any](maxRetries int, delay time.Duration) Wrapper[T] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return func(next Func[T]) Func[T] {
		return func(ctx context.Context, call Call) (T, error) {
			var result T
			var lastErr error

			for attempt := 0; attempt <= maxRetries; attempt++ {
				r, err := next(ctx, call)
				if err == nil {
					return r, nil
				}
				result, lastErr = r, err
				if apperrors.IsPrecondition(err) || attempt == maxRetries {
					break
				}

				logging.Ctx(ctx).Warn().
					Err(err).
					Str("operation", call.Name).
					Int("attempt", attempt+1).
					Int("max_attempts", maxRetries+1).
					Dur("delay", delay).
					Msg("Operation failed, retrying")
				metrics.RecordRetryAttempt(call.Name)

				timer := time.NewTimer(delay)
				select {
				case <-timer.C:
				case <-ctx.Done():
					timer.Stop()
					return result, ctx.Err()
				}
			}
			return result, lastErr
		}
	}
}
