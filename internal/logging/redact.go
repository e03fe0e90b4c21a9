// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package logging

import (
	"fmt"
	"sort"
	"strings"
)

// Redacted replaces sensitive values in log output.
const Redacted = "***REDACTED***"

// sensitiveMarkers are substrings that mark a key as sensitive.
var sensitiveMarkers = []string{"password", "secret", "token", "api_key", "apikey", "authorization"}

// IsSensitiveKey reports whether a key names a credential. Matching is
// case-insensitive and by substring, so "db_password" and "clientSecret" match.
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range sensitiveMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// SanitizeValue returns value, or Redacted when key is sensitive.
func SanitizeValue(key, value string) string {
	if IsSensitiveKey(key) {
		return Redacted
	}
	return truncateString(value, 200)
}

// SanitizeKwargs renders keyword arguments as "k=v" pairs in key order with
// sensitive values redacted.
func SanitizeKwargs(kwargs map[string]any) []string {
	if len(kwargs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+SanitizeValue(k, fmt.Sprint(kwargs[k])))
	}
	return out
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
