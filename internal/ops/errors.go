// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"context"
	"errors"

	"github.com/tomtom215/salesreport/internal/apperrors"
)

// OperationError is returned by ErrorHandling for every failed call.
type OperationError struct {
	Op         string
	Err        error
	Connection bool
}

func (e *OperationError) Error() string {
	if e.Connection {
		return "failed to connect to database: " + e.Err.Error()
	}
	return "database operation failed: " + e.Err.Error()
}

// Unwrap exposes both the classification sentinel and the cause.
func (e *OperationError) Unwrap() []error {
	kind := apperrors.ErrOperationFailed
	if e.Connection {
		kind = apperrors.ErrConnectionFailed
	}
	return []error{kind, e.Err}
}

// ErrorHandling converts every error into an *OperationError. isConnection
// classifies driver errors; errors already wrapping ErrConnectionFailed are
// connection errors regardless.
func ErrorHandling[T any](isConnection func(error) bool) Wrapper[T] {
	return func(next Func[T]) Func[T] {
		return func(ctx context.Context, call Call) (T, error) {
			result, err := next(ctx, call)
			if err == nil {
				return result, nil
			}
			var opErr *OperationError
			if errors.As(err, &opErr) {
				return result, err
			}
			conn := errors.Is(err, apperrors.ErrConnectionFailed) ||
				(isConnection != nil && isConnection(err))
			return result, &OperationError{Op: call.Name, Err: err, Connection: conn}
		}
	}
}
