// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package session

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/moodpost/internal/i18n"
)

// MemoryStore is an in-memory Store. With a non-zero TTL, sessions idle for
// longer than the TTL read back as empty and are removed by CleanupExpired.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) expired(sess Session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.UpdatedAt) > s.ttl
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, userID string) (Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()

	if !ok || s.expired(sess, s.now()) {
		return Empty(userID), nil
	}
	return copySession(sess), nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess.Step == StepAwaitingImage {
		delete(s.sessions, sess.UserID)
		return nil
	}
	sess.UpdatedAt = s.now()
	s.sessions[sess.UserID] = copySession(sess)
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

// CleanupExpired removes idle sessions and returns how many were removed.
func (s *MemoryStore) CleanupExpired(_ context.Context) (int, error) {
	if s.ttl <= 0 {
		return 0, nil
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			count++
		}
	}
	return count, nil
}

// Count returns the number of stored sessions, expired ones included.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// MemoryLocaleStore is an in-memory LocaleStore.
type MemoryLocaleStore struct {
	mu      sync.RWMutex
	locales map[string]i18n.Locale
}

// NewMemoryLocaleStore creates an empty MemoryLocaleStore.
func NewMemoryLocaleStore() *MemoryLocaleStore {
	return &MemoryLocaleStore{locales: make(map[string]i18n.Locale)}
}

// Locale implements LocaleStore.
func (s *MemoryLocaleStore) Locale(_ context.Context, userID string) (i18n.Locale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.locales[userID]; ok {
		return l, nil
	}
	return i18n.English, nil
}

// SetLocale implements LocaleStore.
func (s *MemoryLocaleStore) SetLocale(_ context.Context, userID string, l i18n.Locale) error {
	if !l.Valid() {
		return ErrInvalidLocale
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locales[userID] = l
	return nil
}
