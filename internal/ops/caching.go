// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"context"

	"github.com/tomtom215/salesreport/internal/cache"
	"github.com/tomtom215/salesreport/internal/metrics"
)

// DefaultCacheSize is the capacity used by callers that do not configure one.
const DefaultCacheSize = 100

// Caching memoizes successful results in c, keyed by the call name and its
// JSON-encoded arguments. Errors are never cached. A cached value of the
// wrong type counts as a miss.
func Caching[T any](c cache.Cacher) Wrapper[T] {
	return func(next Func[T]) Func[T] {
		if c == nil {
			return next
		}
		return func(ctx context.Context, call Call) (T, error) {
			key := cache.GenerateKey(call.Name, call.Args, call.Kwargs)
			if v, ok := c.Get(key); ok {
				if result, ok := v.(T); ok {
					metrics.RecordCacheHit(call.Name)
					return result, nil
				}
			}
			metrics.RecordCacheMiss(call.Name)

			result, err := next(ctx, call)
			if err != nil {
				return result, err
			}
			c.Set(key, result)
			return result, nil
		}
	}
}
