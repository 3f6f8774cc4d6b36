// Package cas implements a disk key/value store with content addressed file names.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	goccy "github.com/goccy/go-json"
	"go.trai.ch/lessen/internal/core/domain"
	"go.trai.ch/lessen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Store = (*Store)(nil)

// record is the on-disk form of an entry.
type record struct {
	Key     string `json:"key"`
	Value   []byte `json:"value"`
	Expires int64  `json:"expires,omitempty"`
}

// Store implements ports.Store using one JSON file per key.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the default time to live. Zero keeps entries forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithClock replaces the clock used for expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store rooted at <projectRoot>/.lessen/store.
func NewStore(projectRoot string, opts ...Option) *Store {
	return NewStoreWithPath(filepath.Join(filepath.FromSlash(projectRoot), domain.DefaultStorePath()), opts...)
}

// NewStoreWithPath creates a Store writing directly into dir.
func NewStoreWithPath(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Get retrieves the value stored under key. Expired and missing entries are misses.
func (s *Store) Get(key string) ([]byte, bool, error) {
	filename := s.getFilename(key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "key", key)
	}

	var rec record
	if err := goccy.Unmarshal(data, &rec); err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "key", key)
	}

	// Hash collision.
	if rec.Key != key {
		return nil, false, nil
	}
	if rec.Expires != 0 && s.now().UnixMilli() >= rec.Expires {
		_ = os.Remove(filename)
		return nil, false, nil
	}

	return rec.Value, true, nil
}

// Set stores value under key. A zero ttl falls back to the store default.
func (s *Store) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = s.ttl
	}
	rec := record{Key: key, Value: value}
	if ttl > 0 {
		rec.Expires = s.now().Add(ttl).UnixMilli()
	}

	data, err := goccy.Marshal(rec)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error()), "key", key)
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	// Write to a sibling and rename so readers never see partial records.
	filename := s.getFilename(key)
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "key", key)
	}

	return nil
}

// Purge removes the store directory.
func (s *Store) Purge() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", s.dir)
	}
	return nil
}

func (s *Store) getFilename(key string) string {
	return filepath.Join(s.dir, strconv.FormatUint(xxhash.Sum64String(key), 16)+".json")
}
