package redis

import (
	"context"
	"sisregip-service/internal/app/contracts"
	"sisregip-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// memoryRepository keeps the cache and lock keys in process when no redis
// host is configured. Values are JSON encoded exactly like the redis
// implementation so callers see the same strings.
type memoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryRepository() contracts.RedisRepository {
	return &memoryRepository{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (r *memoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, key)
	return nil
}

func (r *memoryRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = r.newEntry(string(jsonValue), exp)
	return nil
}

func (r *memoryRepository) Get(ctx context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[key]
	if !ok {
		return "", nil
	}
	if entry.expired(r.now()) {
		delete(r.entries, key)
		return "", nil
	}
	return entry.value, nil
}

func (r *memoryRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.entries[key]; ok && !entry.expired(r.now()) {
		return false, nil
	}
	r.entries[key] = r.newEntry(string(jsonValue), exp)
	return true, nil
}

func (r *memoryRepository) newEntry(value string, exp time.Duration) memoryEntry {
	entry := memoryEntry{value: value}
	if exp > 0 {
		entry.expiresAt = r.now().Add(exp)
	}
	return entry
}
