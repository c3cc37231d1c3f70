package kvstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"parkingbot/internal/pkg/clock"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) liveAt(now time.Time) bool {
	return e.expiresAt.IsZero() || now.Before(e.expiresAt)
}

// MemoryStore keeps everything in a map guarded by a RWMutex. Expired entries
// are dropped lazily by whichever call next touches them: Get, SetIfAbsent and
// DeleteIfEquals for their key, Scan for every key under its prefix.
type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]memoryEntry
	clock clock.Clock
}

func NewMemoryStore(c clock.Clock) *MemoryStore {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &MemoryStore{
		data:  make(map[string]memoryEntry),
		clock: c,
	}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if !e.liveAt(m.clock.Now()) {
		m.dropExpired(key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = m.entry(value, ttl)
	return nil
}

func (m *MemoryStore) SetIfAbsent(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.data[key]; ok && e.liveAt(m.clock.Now()) {
		return false, nil
	}
	// replaces an expired entry, if any
	m.data[key] = m.entry(value, ttl)
	return true, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) DeleteIfEquals(ctx context.Context, key, value string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if !e.liveAt(m.clock.Now()) {
		delete(m.data, key)
		return false, nil
	}
	if e.value != value {
		return false, nil
	}
	delete(m.data, key)
	return true, nil
}

func (m *MemoryStore) Scan(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	keys := make([]string, 0)
	for key, e := range m.data {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if !e.liveAt(now) {
			delete(m.data, key)
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// dropExpired re-checks under the write lock; the entry may have been
// replaced since it was read.
func (m *MemoryStore) dropExpired(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.data[key]; ok && !e.liveAt(m.clock.Now()) {
		delete(m.data, key)
	}
}

// Len counts stored entries, including expired ones no call has touched yet.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryStore) entry(value string, ttl time.Duration) memoryEntry {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.clock.Now().Add(ttl)
	}
	return e
}
