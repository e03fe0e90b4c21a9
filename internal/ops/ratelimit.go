// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimit blocks each call until limiter allows it or ctx ends.
func RateLimit[T any](limiter *rate.Limiter) Wrapper[T] {
	return func(next Func[T]) Func[T] {
		if limiter == nil {
			return next
		}
		return func(ctx context.Context, call Call) (T, error) {
			if err := limiter.Wait(ctx); err != nil {
				var zero T
				return zero, fmt.Errorf("rate limit %s: %w", call.Name, err)
			}
			return next(ctx, call)
		}
	}
}
