// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/moodpost/internal/i18n"
)

// Key prefixes for BadgerDB storage
const (
	sessionKeyPrefix = "session:"
	localeKeyPrefix  = "locale:"
)

// BadgerStore implements Store and LocaleStore on BadgerDB. Session entries
// carry badger's native TTL when one is configured; locale entries never
// expire.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
	now func() time.Time
}

// NewBadgerStore wraps an open database. ttl <= 0 disables session expiry.
func NewBadgerStore(db *badger.DB, ttl time.Duration) *BadgerStore {
	return &BadgerStore{db: db, ttl: ttl, now: time.Now}
}

// OpenInMemoryBadger opens a BadgerDB that keeps everything in RAM.
func OpenInMemoryBadger() (*badger.DB, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil // Suppress BadgerDB logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return db, nil
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, userID string) (Session, error) {
	var sess Session
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(sessionKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sess)
		})
	})
	if err != nil {
		return Session{}, err
	}
	if !found {
		return Empty(userID), nil
	}
	return sess, nil
}

// Set implements Store.
func (s *BadgerStore) Set(ctx context.Context, sess Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	if sess.Step == StepAwaitingImage {
		return s.Delete(ctx, sess.UserID)
	}

	sess.UpdatedAt = s.now()
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(sessionKeyPrefix+sess.UserID), data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		if err := txn.SetEntry(entry); err != nil {
			return fmt.Errorf("set session: %w", err)
		}
		return nil
	})
}

// Delete implements Store.
func (s *BadgerStore) Delete(_ context.Context, userID string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(sessionKeyPrefix + userID))
		if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

// Count returns the number of live sessions.
func (s *BadgerStore) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(sessionKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// Locale implements LocaleStore.
func (s *BadgerStore) Locale(_ context.Context, userID string) (i18n.Locale, error) {
	loc := i18n.English
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(localeKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get locale: %w", err)
		}
		return item.Value(func(val []byte) error {
			if l, ok := i18n.ParseLocale(string(val)); ok {
				loc = l
			}
			return nil
		})
	})
	return loc, err
}

// SetLocale implements LocaleStore.
func (s *BadgerStore) SetLocale(_ context.Context, userID string, l i18n.Locale) error {
	if !l.Valid() {
		return ErrInvalidLocale
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(localeKeyPrefix+userID), []byte(l.String()))
	})
}
