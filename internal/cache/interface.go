// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

// Package cache provides the result caches used by the caching operation
// wrapper: a bounded in-memory LRU and an optional Badger-backed persistent
// tier. Caches are always constructed explicitly and handed to the component
// that memoizes; there is no package-level cache instance.
package cache

// Cacher is the contract the caching wrapper depends on.
//
// Usage:
//
//	var c cache.Cacher = cache.NewLRUCache(100, 5*time.Minute)
//	c.Set("key", value)
//	if v, ok := c.Get("key"); ok {
//	    // Use cached value
//	}
type Cacher interface {
	// Get returns the value and true if present and not expired.
	Get(key string) (any, bool)

	// Set stores a value with the cache's default TTL.
	Set(key string, value any)

	// Delete removes a value.
	Delete(key string)

	// Clear removes every entry.
	Clear()

	// Stats returns a snapshot of cache statistics.
	Stats() Stats
}

// Stats is a point-in-time snapshot of cache activity.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Size      int   `json:"size"`
}

// HitRate returns hits / (hits + misses) as a percentage.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100.0
}
