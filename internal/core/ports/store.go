package ports

import "time"

// Store is the storage backend behind the compilation cache.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type Store interface {
	// Get retrieves the value for key. The boolean is false on a miss.
	Get(key string) ([]byte, bool, error)
	// Set stores value under key. A zero ttl uses the backend default.
	Set(key string, value []byte, ttl time.Duration) error
	// Purge removes all entries.
	Purge() error
}
