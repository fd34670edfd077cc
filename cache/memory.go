package cache

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory is a process-local TTL cache safe for concurrent use.
// Expired entries are removed lazily when read.
type Memory struct {
	mu         sync.Mutex
	items      map[string]entry
	defaultTTL time.Duration
	now        func() time.Time
}

func NewMemory(defaultTTL time.Duration) *Memory {
	return &Memory{
		items:      make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Put stores value under key. ttl <= 0 uses the default TTL; when that is
// also zero the entry never expires.
func (m *Memory) Put(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = e
	m.mu.Unlock()
}

func (m *Memory) Get(key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.items[key]
	if !ok {
		return nil, false
	}
	if e.expired(m.now()) {
		delete(m.items, key)
		return nil, false
	}
	return e.value, true
}

func (m *Memory) Delete(key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

func (m *Memory) Clear() {
	m.mu.Lock()
	m.items = make(map[string]entry)
	m.mu.Unlock()
}

// Keys lists live keys in sorted order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	keys := make([]string, 0, len(m.items))
	for k, e := range m.items {
		if !e.expired(now) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Size counts stored entries, including expired ones not yet evicted.
func (m *Memory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Backend implementation, so Memory can stand in for Redis.

func (m *Memory) GetBytes(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	return b, ok, nil
}

func (m *Memory) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.Put(key, value, ttl)
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

// Incr increments a counter that expires window after its first increment.
func (m *Memory) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.items[key]
	if !ok || e.expired(now) {
		e = entry{value: int64(0), expiresAt: now.Add(window)}
	}
	n, _ := e.value.(int64)
	n++
	e.value = n
	m.items[key] = e
	return n, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Name() string { return "memory" }
