// Package memstore implements an in-process ports.Store with TTL and LRU eviction.
package memstore

import (
	"time"

	cache "github.com/go-pkgz/expirable-cache/v3"
	"go.trai.ch/lessen/internal/core/ports"
)

var _ ports.Store = (*Store)(nil)

// Store wraps an expirable LRU cache.
type Store struct {
	entries cache.Cache[string, []byte]
}

// New creates a Store. A zero ttl keeps entries until evicted and a zero
// maxKeys leaves the size unbounded.
func New(ttl time.Duration, maxKeys int) *Store {
	c := cache.NewCache[string, []byte]().WithLRU()
	if ttl > 0 {
		c = c.WithTTL(ttl)
	}
	if maxKeys > 0 {
		c = c.WithMaxKeys(maxKeys)
	}
	return &Store{entries: c}
}

// Get retrieves the value stored under key.
func (s *Store) Get(key string) ([]byte, bool, error) {
	v, ok := s.entries.Get(key)
	return v, ok, nil
}

// Set stores value under key. A zero ttl uses the store default.
func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	s.entries.Set(key, value, ttl)
	return nil
}

// Purge removes all entries.
func (s *Store) Purge() error {
	s.entries.Purge()
	return nil
}

// Len returns the number of entries, including expired ones not yet evicted.
func (s *Store) Len() int {
	return s.entries.Len()
}
