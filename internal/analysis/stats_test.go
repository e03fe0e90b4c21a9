// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuantile(t *testing.T) {
	values := []float64{100, 200, 150, 300}
	tests := []struct {
		q    float64
		want float64
	}{
		{0, 100},
		{0.25, 137.5},
		{0.5, 175},
		{0.75, 225},
		{0.8, 240},
		{1, 300},
	}
	for _, tt := range tests {
		if got := quantile(values, tt.q); !approxEqual(got, tt.want) {
			t.Errorf("quantile(%v) = %v, want %v", tt.q, got, tt.want)
		}
	}
	if values[0] != 100 || values[1] != 200 {
		t.Error("quantile must not reorder its input")
	}
}

func TestStddev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 0},
		{"pair", []float64{1, 3}, math.Sqrt(2)},
		{"quantities", []float64{1, 5, 3, 10, 2}, math.Sqrt(12.7)},
	}
	for _, tt := range tests {
		if got := stddev(tt.values); !approxEqual(got, tt.want) {
			t.Errorf("%s: stddev = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEmptyInputsReportZero(t *testing.T) {
	for name, got := range map[string]float64{
		"mean":     mean(nil),
		"median":   median(nil),
		"min":      minOf(nil),
		"max":      maxOf(nil),
		"quantile": quantile(nil, 0.8),
	} {
		if got != 0 {
			t.Errorf("%s(nil) = %v, want 0", name, got)
		}
	}
}
