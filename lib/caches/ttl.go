package caches

import (
	"sync"
	"time"
)

const DefaultTTL = 15 * time.Minute

// Cache is an expiring key/value store. Keys are namespaced by callers
// (e.g. "history:week:2026-01-31") so logically distinct values can share
// one store.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	SetFor(key string, value any, ttl time.Duration)
	Bust(key string)
	BustAll()
}

type entry struct {
	value     any
	expiresAt time.Time
}

// TTL is an in-memory Cache with lazy expiry: entries are checked and
// evicted on read, there is no background sweep. A ttl <= 0 disables
// caching entirely.
type TTL struct {
	mutex   sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

func NewTTL(ttl time.Duration) *TTL {
	return &TTL{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

func (c *TTL) Get(key string) (any, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}

	return e.value, true
}

func (c *TTL) Set(key string, value any) {
	c.SetFor(key, value, c.ttl)
}

func (c *TTL) SetFor(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *TTL) Bust(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
}

func (c *TTL) BustAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]entry)
}
