// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestCacheBasicOperations(t *testing.T) {
	c := New[string](time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	clock := newClock()
	c := New[int](time.Minute).WithClock(clock.Now)

	c.Set("a", 1)
	c.SetWithTTL("b", 2, 10*time.Minute)

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be live")
	}

	clock.Advance(time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("a should expire exactly at its TTL")
	}
	if v, ok := c.Get("b"); !ok || v != 2 {
		t.Errorf("b = %v, %v; want 2, true", v, ok)
	}
}

func TestCacheSetIfAbsent(t *testing.T) {
	clock := newClock()
	c := New[struct{}](10 * time.Minute).WithClock(clock.Now)

	if !c.SetIfAbsent("evt-1", struct{}{}) {
		t.Fatal("first SetIfAbsent should store")
	}
	if c.SetIfAbsent("evt-1", struct{}{}) {
		t.Error("second SetIfAbsent should not store")
	}
	clock.Advance(11 * time.Minute)
	if !c.SetIfAbsent("evt-1", struct{}{}) {
		t.Error("SetIfAbsent should store over an expired entry")
	}
}

func TestCacheDelete(t *testing.T) {
	c := New[string](time.Minute)
	c.Set("key1", "value1")
	if v, ok := c.Get("key1"); !ok || v != "value1" {
		t.Fatalf("Get(key1) = %q, %v", v, ok)
	}
	c.Delete("key1")

	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if _, exists := c.Get("missing"); exists {
		t.Error("missing key reported present")
	}
}

func TestCacheCleanup(t *testing.T) {
	clock := newClock()
	c := New[int](time.Minute).WithClock(clock.Now)
	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("short-%d", i), i)
	}
	c.SetWithTTL("long", 99, time.Hour)

	clock.Advance(2 * time.Minute)
	if n := c.Cleanup(); n != 5 {
		t.Errorf("Cleanup() = %d, want 5", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for j := 0; j < 100; j++ {
				c.Set(key, j)
				c.Get(key)
				c.SetIfAbsent(key, j)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}
