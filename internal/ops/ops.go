// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import "context"

// Call describes one invocation of an operation. Name identifies the
// operation in logs, metrics and cache keys.
type Call struct {
	Name   string
	Args   []any
	Kwargs map[string]any
}

// NewCall returns a call with positional arguments only.
func NewCall(name string, args ...any) Call {
	return Call{Name: name, Args: args}
}

// Func is a wrappable operation.
type Func[T any] func(ctx context.Context, call Call) (T, error)

// Wrapper decorates a Func with one concern.
type Wrapper[T any] func(Func[T]) Func[T]

// Chain composes wrappers. The first wrapper is the outermost, so it sees
// the call first and the result last. Nil wrappers are skipped.
func Chain[T any](wrappers ...Wrapper[T]) Wrapper[T] {
	return func(fn Func[T]) Func[T] {
		for i := len(wrappers) - 1; i >= 0; i-- {
			if wrappers[i] != nil {
				fn = wrappers[i](fn)
			}
		}
		return fn
	}
}
