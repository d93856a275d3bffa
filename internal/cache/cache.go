// Package cache stores aggregated groupings per project in Redis.
package cache

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"

	"kwtaxonomy/internal/models"
)

// Store is the subset of a fiber storage backend the result cache needs.
// Get returns nil, nil for a missing key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Entry is the cached pipeline output for one project. The summary is not
// stored; it is recomputed from Groups on read.
type Entry struct {
	Groups      []models.Group `json:"groups"`
	InputCount  int            `json:"input_count"`
	UniqueCount int            `json:"unique_count"`
	StoredAt    time.Time      `json:"stored_at"`
}

// Results caches grouped output per project version. An import moves the
// version forward, so older entries are never read again and age out by TTL.
// A nil *Results is a disabled cache: every lookup misses and writes are dropped.
type Results struct {
	store Store
	ttl   time.Duration
}

// New creates a result cache over store.
func New(store Store, ttl time.Duration) *Results {
	return &Results{store: store, ttl: ttl}
}

// NewRedisStore connects to Redis at url.
func NewRedisStore(url string) (store *redis.Storage, err error) {
	// redis.New panics when the initial ping fails
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to connect to redis: %v", r)
		}
	}()

	return redis.New(redis.Config{URL: url}), nil
}

// Key returns the cache key for a project's groups at version.
func Key(projectID uuid.UUID, version time.Time) string {
	return fmt.Sprintf("groups:%s:%d", projectID, version.UnixNano())
}

// Get returns the cached entry for a project at version. The boolean is false
// on a miss.
func (r *Results) Get(projectID uuid.UUID, version time.Time) (*Entry, bool, error) {
	if r == nil {
		return nil, false, nil
	}

	data, err := r.store.Get(Key(projectID, version))
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// A corrupt entry behaves like a miss and is overwritten on the next Put
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &entry, true, nil
}

// Put stores a project's grouped output computed from records at version.
func (r *Results) Put(projectID uuid.UUID, version time.Time, entry Entry) error {
	if r == nil {
		return nil
	}

	if entry.StoredAt.IsZero() {
		entry.StoredAt = time.Now().UTC()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := r.store.Set(Key(projectID, version), data, r.ttl); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Enabled reports whether the cache is backed by a store.
func (r *Results) Enabled() bool {
	return r != nil
}
