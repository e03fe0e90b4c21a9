// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package query

import (
	"regexp"
	"strings"

	"github.com/tomtom215/salesreport/internal/apperrors"
)

// identifierPattern accepts plain or schema-qualified SQL identifiers.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}(\.[A-Za-z_][A-Za-z0-9_]{0,62})?$`)

// IsIdentifier reports whether name can be interpolated as a table or column
// name without quoting.
func IsIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

// CheckIdentifier returns a precondition error when name is not an identifier.
func CheckIdentifier(name string) error {
	if !IsIdentifier(name) {
		return apperrors.Preconditionf("invalid identifier %q", name)
	}
	return nil
}

// CheckTableRef accepts a table reference with an optional alias:
// "sales", "sales s" or "sales AS s".
func CheckTableRef(ref string) error {
	parts := strings.Fields(ref)
	if len(parts) == 3 && strings.EqualFold(parts[1], "AS") {
		parts = []string{parts[0], parts[2]}
	}
	if len(parts) == 0 || len(parts) > 2 || (len(parts) == 2 && strings.EqualFold(parts[1], "AS")) {
		return apperrors.Preconditionf("invalid table reference %q", ref)
	}
	for _, p := range parts {
		if !IsIdentifier(p) {
			return apperrors.Preconditionf("invalid table reference %q", ref)
		}
	}
	return nil
}
