// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package cache

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/salesreport/internal/logging"
)

// BadgerStore is a persistent Cacher that survives process restarts. Values
// are stored as JSON and decoded back into T, so T must round-trip through
// JSON. Expiry uses Badger's native per-entry TTL.
type BadgerStore[T any] struct {
	db     *badger.DB
	ttl    time.Duration
	prefix []byte

	hits   atomic.Int64
	misses atomic.Int64
}

// OpenBadgerStore opens (or creates) a store at dir. An empty dir opens an
// in-memory instance, which is what tests use.
func OpenBadgerStore[T any](dir string, ttl time.Duration) (*BadgerStore[T], error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger store: %w", err)
	}
	return &BadgerStore[T]{db: db, ttl: ttl, prefix: []byte("result:")}, nil
}

func (s *BadgerStore[T]) key(k string) []byte {
	return append(append([]byte{}, s.prefix...), k...)
}

// Get decodes the stored value for key.
func (s *BadgerStore[T]) Get(key string) (any, bool) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		s.misses.Add(1)
		return nil, false
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		s.misses.Add(1)
		return nil, false
	}
	s.hits.Add(1)
	return v, true
}

// Set encodes and stores value. Values that are not a T are skipped. Encode
// and write failures are logged and dropped; the persistent tier is best
// effort.
func (s *BadgerStore[T]) Set(key string, value any) {
	v, ok := value.(T)
	if !ok {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Result cache failed to encode value")
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(s.key(key), raw)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Result cache failed to store value")
	}
}

// Delete removes key.
func (s *BadgerStore[T]) Delete(key string) {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(s.key(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		logging.Warn().Err(err).Str("key", key).Msg("Result cache failed to delete key")
	}
}

// Clear drops every cached result.
func (s *BadgerStore[T]) Clear() {
	if err := s.db.DropPrefix(s.prefix); err != nil {
		logging.Warn().Err(err).Msg("Result cache failed to drop cached results")
	}
}

// Stats returns hit and miss counters and the number of live keys.
func (s *BadgerStore[T]) Stats() Stats {
	size := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			size++
		}
		return nil
	})
	if err != nil {
		logging.Warn().Err(err).Msg("Result cache failed to count entries")
	}
	return Stats{Hits: s.hits.Load(), Misses: s.misses.Load(), Size: size}
}

// Close releases the underlying database.
func (s *BadgerStore[T]) Close() error {
	return s.db.Close()
}

// Tiered checks a fast in-memory cache before a slower persistent one and
// promotes persistent hits into memory.
type Tiered struct {
	memory     Cacher
	persistent Cacher
}

// NewTiered layers memory over persistent.
func NewTiered(memory, persistent Cacher) *Tiered {
	return &Tiered{memory: memory, persistent: persistent}
}

// Get implements Cacher.
func (t *Tiered) Get(key string) (any, bool) {
	if v, ok := t.memory.Get(key); ok {
		return v, true
	}
	v, ok := t.persistent.Get(key)
	if ok {
		t.memory.Set(key, v)
	}
	return v, ok
}

// Set implements Cacher.
func (t *Tiered) Set(key string, value any) {
	t.memory.Set(key, value)
	t.persistent.Set(key, value)
}

// Delete implements Cacher.
func (t *Tiered) Delete(key string) {
	t.memory.Delete(key)
	t.persistent.Delete(key)
}

// Clear implements Cacher.
func (t *Tiered) Clear() {
	t.memory.Clear()
	t.persistent.Clear()
}

// Stats reports the memory tier, which sees every lookup.
func (t *Tiered) Stats() Stats {
	return t.memory.Stats()
}
