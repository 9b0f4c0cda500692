package redis

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewInMemory returns a Client backed by a process-local store. It is used when
// no Redis endpoint is configured so single-instance deployments keep rate
// limiting and idempotency.
func NewInMemory() *Client {
	return &Client{store: newMemoryStore(time.Now)}
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// memorySweepInterval bounds how often writes pay for a full scan of expired keys.
const memorySweepInterval = 30 * time.Second

type memoryStore struct {
	mu        sync.Mutex
	now       func() time.Time
	entries   map[string]memoryEntry
	nextSweep time.Time
}

func newMemoryStore(now func() time.Time) *memoryStore {
	return &memoryStore{
		now:       now,
		entries:   make(map[string]memoryEntry),
		nextSweep: now().Add(memorySweepInterval),
	}
}

// sweep drops every expired key once per interval so keys that are never read
// again do not accumulate. Must be called with mu held.
func (m *memoryStore) sweep() {
	now := m.now()
	if now.Before(m.nextSweep) {
		return
	}
	for key, entry := range m.entries {
		if !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt) {
			delete(m.entries, key)
		}
	}
	m.nextSweep = now.Add(memorySweepInterval)
}

// lookup must be called with mu held.
func (m *memoryStore) lookup(key string) (memoryEntry, bool) {
	entry, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !entry.expiresAt.IsZero() && !m.now().Before(entry.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

func (m *memoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}

func (m *memoryStore) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *memoryStore) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.lookup(key)
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(entry.value, nil)
}

func (m *memoryStore) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	m.entries[key] = memoryEntry{value: fmt.Sprint(value), expiresAt: m.expiry(ttl)}
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for _, key := range keys {
		if _, ok := m.lookup(key); ok {
			delete(m.entries, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func (m *memoryStore) SetNX(_ context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	if _, ok := m.lookup(key); ok {
		return redis.NewBoolResult(false, nil)
	}
	m.entries[key] = memoryEntry{value: fmt.Sprint(value), expiresAt: m.expiry(ttl)}
	return redis.NewBoolResult(true, nil)
}

func (m *memoryStore) Incr(_ context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	entry, _ := m.lookup(key)
	current := int64(0)
	if entry.value != "" {
		parsed, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return redis.NewIntResult(0, fmt.Errorf("value at %s is not an integer", key))
		}
		current = parsed
	}
	current++
	entry.value = strconv.FormatInt(current, 10)
	m.entries[key] = entry
	return redis.NewIntResult(current, nil)
}

func (m *memoryStore) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.lookup(key)
	if !ok {
		return redis.NewBoolResult(false, nil)
	}
	entry.expiresAt = m.expiry(ttl)
	m.entries[key] = entry
	return redis.NewBoolResult(true, nil)
}
