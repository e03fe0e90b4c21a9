// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"context"
	"time"

	"github.com/tomtom215/salesreport/internal/metrics"
	"github.com/tomtom215/salesreport/internal/table"
)

// Timing measures wall time of every call and hands it to observe. A nil
// observer records salesreport_operation_duration_seconds. Table results are
// returned as a shallow copy with Elapsed set; the original is never written.
func Timing[T any](observe func(name string, d time.Duration)) Wrapper[T] {
	if observe == nil {
		observe = metrics.RecordOperation
	}
	return func(next Func[T]) Func[T] {
		return func(ctx context.Context, call Call) (T, error) {
			start := time.Now()
			result, err := next(ctx, call)
			elapsed := time.Since(start)

			if t, ok := any(result).(*table.Table); ok && t != nil {
				// t may be a cached table shared with other callers.
				stamped := *t
				stamped.Elapsed = elapsed
				result = any(&stamped).(T)
			}
			observe(call.Name, elapsed)
			return result, err
		}
	}
}
