// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package validation

import (
	"strings"
	"testing"
)

type sample struct {
	Name  *string `json:"country_name" validate:"required"`
	Code  *string `json:"country_code" validate:"required,len=2"`
	Class *string `json:"class_type" validate:"omitempty,oneof=Low Medium High"`
	Limit int     `koanf:"limit" validate:"gte=0"`
}

func strPtr(s string) *string { return &s }

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		input      sample
		wantFields []string
	}{
		{"valid", sample{Name: strPtr("Spain"), Code: strPtr("ES")}, nil},
		{"missing name", sample{Code: strPtr("ES")}, []string{"country_name"}},
		{"bad code length", sample{Name: strPtr("Spain"), Code: strPtr("ESP")}, []string{"country_code"}},
		{"bad enum and negative", sample{Name: strPtr("x"), Code: strPtr("XX"), Class: strPtr("Huge"), Limit: -1}, []string{"class_type", "limit"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verr := ValidateStruct(&tt.input)
			if len(tt.wantFields) == 0 {
				if verr != nil {
					t.Fatalf("expected no error, got %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("expected validation error")
			}
			for _, f := range tt.wantFields {
				if !verr.HasField(f) {
					t.Errorf("expected violation on %s, got %v", f, verr)
				}
			}
		})
	}
}

func TestTranslateMessages(t *testing.T) {
	t.Parallel()

	verr := ValidateStruct(&sample{Name: strPtr("x"), Code: strPtr("ABC"), Class: strPtr("Huge")})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	msg := verr.Error()
	for _, want := range []string{"country_code must be exactly 2 characters", "class_type must be one of: Low Medium High"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	if err := Join(nil); err != nil {
		t.Errorf("Join(nil) = %v, want nil", err)
	}

	err := Join(nil, NewValidationError("gender", "oneof", "X", "gender must be one of: M F"))
	if err == nil || err.Error() != "gender must be one of: M F" {
		t.Errorf("Join() = %v", err)
	}
}
