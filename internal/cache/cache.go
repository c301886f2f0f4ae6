// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

// Package cache provides a small thread-safe TTL cache.
package cache

import (
	"sync"
	"time"
)

// entry represents a cached item with expiration
type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache is a thread-safe in-memory cache whose entries expire after a TTL.
//
//	tokens := cache.New[string](time.Hour)
//	tokens.SetWithTTL("spotify", tok, expiresIn)
//	if tok, ok := tokens.Get("spotify"); ok {
//	    // use tok
//	}
//
// Expired entries are dropped lazily by Get and in bulk by Cleanup, which
// the supervisor's cache cleaner calls on an interval.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

// New creates a cache with the given default TTL.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		entries: make(map[string]entry[V]),
		ttl:     ttl,
		now:     time.Now,
	}
}

// WithClock replaces the time source. Intended for tests.
func (c *Cache[V]) WithClock(now func() time.Time) *Cache[V] {
	c.now = now
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !exists {
		return zero, false
	}

	if !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check: another goroutine may have stored a fresh entry.
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return e.data, true
}

// Set stores value with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value with a custom TTL.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[V]{data: value, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
}

// SetIfAbsent stores value only when key is missing or expired and reports
// whether it did.
func (c *Cache[V]) SetIfAbsent(key string, value V) bool {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	if cur, ok := c.entries[key]; ok && now.Before(cur.expiresAt) {
		return false
	}
	c.entries[key] = entry[V]{data: value, expiresAt: now.Add(c.ttl)}
	return true
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Cleanup removes all expired entries and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
