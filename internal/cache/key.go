// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cache

import (
	"crypto/sha256"
	"fmt"

	"github.com/goccy/go-json"
)

// maxKeyLength bounds readable keys; longer keys are hashed.
const maxKeyLength = 256

// GenerateKey builds a deterministic cache key from an operation name and its
// positional and keyword arguments. Keyword arguments are serialized with
// sorted keys so that argument order never changes the key.
//
// Example:
//
//	cache.GenerateKey("execute_query", []any{"SELECT 1"}, map[string]any{"limit": 10})
//	// execute_query:["SELECT 1"]:{"limit":10}
func GenerateKey(name string, args []any, kwargs map[string]any) string {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}

	a, errA := json.Marshal(args)
	k, errK := json.Marshal(kwargs)
	if errA != nil || errK != nil {
		// Unserializable arguments fall back to fmt, which still sorts map keys.
		return fmt.Sprintf("%s:%v:%v", name, args, kwargs)
	}

	key := name + ":" + string(a) + ":" + string(k)
	if len(key) <= maxKeyLength {
		return key
	}
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%s:%x", name, hash[:16])
}
