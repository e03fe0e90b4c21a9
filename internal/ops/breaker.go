// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package ops

import (
	"context"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/salesreport/internal/apperrors"
	"github.com/tomtom215/salesreport/internal/logging"
	"github.com/tomtom215/salesreport/internal/metrics"
)

// CircuitBreaker is the breaker type accepted by Breaker.
type CircuitBreaker = gobreaker.TwoStepCircuitBreaker[any]

// NewCircuitBreaker returns a breaker that opens after maxFailures
// consecutive failures and probes again after timeout. State changes are
// logged and exported as salesreport_circuit_breaker_state.
func NewCircuitBreaker(name string, maxFailures uint32, timeout time.Duration) *CircuitBreaker {
	if maxFailures == 0 {
		maxFailures = 5
	}
	metrics.SetCircuitBreakerState(name, stateValue(gobreaker.StateClosed))

	return gobreaker.NewTwoStepCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("[CIRCUIT BREAKER] State transition")
			metrics.SetCircuitBreakerState(name, stateValue(to))
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})
}

// breakerSuccess treats precondition errors as successes; they are caller
// mistakes, not backend failures.
func breakerSuccess(err error) bool {
	return err == nil || apperrors.IsPrecondition(err)
}

// Breaker rejects calls while cb is open. Outcomes are judged by the
// breaker's IsSuccessful setting.
func Breaker[T any](cb *CircuitBreaker) Wrapper[T] {
	return func(next Func[T]) Func[T] {
		if cb == nil {
			return next
		}
		return func(ctx context.Context, call Call) (T, error) {
			done, err := cb.Allow()
			if err != nil {
				var zero T
				return zero, fmt.Errorf("%s: %w", call.Name, err)
			}
			result, err := next(ctx, call)
			done(err)
			return result, err
		}
	}
}

// stateValue maps breaker states to the exported gauge value.
func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
