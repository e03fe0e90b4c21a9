// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cache

import (
	"strings"
	"testing"
)

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		op     string
		args   []any
		kwargs map[string]any
		want   string
	}{
		{"no arguments", "test_connection", nil, nil, "test_connection:[]:{}"},
		{"positional", "execute_query", []any{"SELECT 1", 5}, nil, `execute_query:["SELECT 1",5]:{}`},
		{"sorted kwargs", "top", nil, map[string]any{"z": 1, "a": "x"}, `top:[]:{"a":"x","z":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GenerateKey(tt.op, tt.args, tt.kwargs); got != tt.want {
				t.Errorf("GenerateKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateKey_Deterministic(t *testing.T) {
	t.Parallel()

	kw1 := map[string]any{"start": "2024-01-01", "end": "2024-12-31", "category": 3}
	kw2 := map[string]any{"category": 3, "end": "2024-12-31", "start": "2024-01-01"}
	if GenerateKey("report", nil, kw1) != GenerateKey("report", nil, kw2) {
		t.Error("Expected keyword order not to change the key")
	}
	if GenerateKey("report", []any{1}, nil) == GenerateKey("report", []any{2}, nil) {
		t.Error("Expected different arguments to produce different keys")
	}
}

func TestGenerateKey_LongKeysAreHashed(t *testing.T) {
	t.Parallel()

	key := GenerateKey("execute_query", []any{strings.Repeat("x", 500)}, nil)
	if len(key) > maxKeyLength {
		t.Errorf("len(key) = %d, want <= %d", len(key), maxKeyLength)
	}
	if !strings.HasPrefix(key, "execute_query:") {
		t.Errorf("Expected operation prefix, got %q", key)
	}
}
