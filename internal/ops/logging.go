// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/table"
)

// Logging logs every call before and after execution. Keyword arguments
// whose names look like credentials are redacted. A nil logger uses the
// request-scoped logger from ctx.
func Logging[T any](logger *zerolog.Logger) Wrapper[T] {
	return func(next Func[T]) Func[T] {
		return func(ctx context.Context, call Call) (T, error) {
			log := logger
			if log == nil {
				log = logging.Ctx(ctx)
			}

			log.Debug().
				Str("operation", call.Name).
				Str("args", logging.SanitizeValue("args", formatArgs(call.Args))).
				Strs("kwargs", logging.SanitizeKwargs(call.Kwargs)).
				Msg("Executing operation")

			result, err := next(ctx, call)
			if err != nil {
				log.Error().Err(err).Str("operation", call.Name).Msg("Operation failed")
				return result, err
			}
			log.Debug().
				Str("operation", call.Name).
				Str("result", describe(result)).
				Msg("Operation completed")
			return result, nil
		}
	}
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return "[]"
	}
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// describe summarizes a result for the completion log line.
func describe(v any) string {
	switch x := v.(type) {
	case *table.Table:
		return x.Shape()
	case interface{ Len() int }:
		return fmt.Sprintf("%d items", x.Len())
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
