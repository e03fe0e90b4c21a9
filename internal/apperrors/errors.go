// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

// Package apperrors defines the error taxonomy shared by every layer.
//
// Precondition errors surface caller mistakes (a missing column, an unset
// query clause, an unknown registry key). They are raised immediately and are
// never retried. Operation errors come from the database collaborator and may
// be retried; connectivity failures are a distinguished subtype.
//
// Callers test with errors.Is:
//
//	if errors.Is(err, apperrors.ErrPrecondition) { ... }
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks caller mistakes detected before any work is done.
	ErrPrecondition = errors.New("precondition failed")

	// ErrMissingColumn is returned when tabular input lacks a required column.
	ErrMissingColumn = fmt.Errorf("missing required column: %w", ErrPrecondition)

	// ErrUnsupportedType is returned for unknown registry or factory keys.
	ErrUnsupportedType = fmt.Errorf("unsupported type: %w", ErrPrecondition)

	// ErrOperationFailed marks a failed database operation.
	ErrOperationFailed = errors.New("database operation failed")

	// ErrConnectionFailed marks a failure to reach the database.
	ErrConnectionFailed = fmt.Errorf("failed to connect to database: %w", ErrOperationFailed)

	// ErrNotFound is returned when a requested record or report does not exist.
	ErrNotFound = errors.New("not found")
)

// IsPrecondition reports whether err is a precondition failure.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// preconditionError carries a caller-facing message and matches
// ErrPrecondition without repeating its text.
type preconditionError struct{ msg string }

func (e *preconditionError) Error() string { return e.msg }
func (e *preconditionError) Unwrap() error { return ErrPrecondition }

// Preconditionf formats a precondition error. The message is used as is;
// errors.Is(err, ErrPrecondition) holds.
func Preconditionf(format string, args ...any) error {
	return &preconditionError{msg: fmt.Sprintf(format, args...)}
}
