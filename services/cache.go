package services

import (
	"sync"
	"time"

	"campusevents/analytics"
)

type cacheEntry struct {
	dashboard *analytics.Dashboard
	storedAt  time.Time
}

// ResultCache keeps computed dashboards for a short time. It is bounded: when
// full, the oldest entry is evicted.
type ResultCache struct {
	entries map[string]cacheEntry
	ttl     time.Duration
	maxSize int
	mu      sync.RWMutex
	now     func() time.Time
}

// NewResultCache creates a cache. A zero ttl or size disables caching.
func NewResultCache(ttl time.Duration, maxSize int) *ResultCache {
	return &ResultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (rc *ResultCache) enabled() bool {
	return rc != nil && rc.ttl > 0 && rc.maxSize > 0
}

// Get returns a live entry for key
func (rc *ResultCache) Get(key string) (*analytics.Dashboard, bool) {
	if !rc.enabled() {
		return nil, false
	}

	rc.mu.RLock()
	entry, exists := rc.entries[key]
	rc.mu.RUnlock()

	if !exists || rc.now().Sub(entry.storedAt) >= rc.ttl {
		return nil, false
	}
	return entry.dashboard, true
}

// Set stores a dashboard, dropping expired entries and then the oldest one if
// the cache is still full
func (rc *ResultCache) Set(key string, dashboard *analytics.Dashboard) {
	if !rc.enabled() {
		return
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	now := rc.now()
	if _, exists := rc.entries[key]; !exists && len(rc.entries) >= rc.maxSize {
		rc.evictLocked(now)
	}
	rc.entries[key] = cacheEntry{dashboard: dashboard, storedAt: now}
}

func (rc *ResultCache) evictLocked(now time.Time) {
	for key, entry := range rc.entries {
		if now.Sub(entry.storedAt) >= rc.ttl {
			delete(rc.entries, key)
		}
	}
	if len(rc.entries) < rc.maxSize {
		return
	}

	var oldestKey string
	var oldest time.Time
	for key, entry := range rc.entries {
		if oldestKey == "" || entry.storedAt.Before(oldest) {
			oldestKey, oldest = key, entry.storedAt
		}
	}
	delete(rc.entries, oldestKey)
}

// Purge empties the cache and returns how many entries were dropped
func (rc *ResultCache) Purge() int {
	if rc == nil {
		return 0
	}
	rc.mu.Lock()
	defer rc.mu.Unlock()

	n := len(rc.entries)
	rc.entries = make(map[string]cacheEntry)
	return n
}

// Len returns the number of stored entries, expired ones included
func (rc *ResultCache) Len() int {
	if rc == nil {
		return 0
	}
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.entries)
}
