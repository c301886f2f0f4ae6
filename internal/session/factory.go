// Mood Post - Image Mood Music Recommendation Bot
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodpost

package session

import (
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// StoreType selects the storage backend.
type StoreType string

const (
	// StoreMemory keeps sessions in a mutex-guarded map (default).
	StoreMemory StoreType = "memory"

	// StoreBadger keeps sessions in an in-memory BadgerDB with native TTL.
	StoreBadger StoreType = "badger"
)

// Factory creates the session and locale stores for the configured backend.
type Factory struct {
	kind    StoreType
	ttl     time.Duration
	db      *badger.DB
	badger  *BadgerStore
	memory  *MemoryStore
	locales *MemoryLocaleStore
}

// NewFactory opens the backend. An empty kind means StoreMemory.
func NewFactory(kind StoreType, ttl time.Duration) (*Factory, error) {
	f := &Factory{kind: kind, ttl: ttl}

	switch kind {
	case StoreBadger:
		db, err := OpenInMemoryBadger()
		if err != nil {
			return nil, err
		}
		f.db = db
		f.badger = NewBadgerStore(db, ttl)
	case StoreMemory, "":
		f.kind = StoreMemory
		f.memory = NewMemoryStore(ttl)
		f.locales = NewMemoryLocaleStore()
	default:
		return nil, fmt.Errorf("unknown session store %q", kind)
	}
	return f, nil
}

// Kind returns the backend in use.
func (f *Factory) Kind() StoreType {
	return f.kind
}

// Store returns the session store.
func (f *Factory) Store() Store {
	if f.badger != nil {
		return f.badger
	}
	return f.memory
}

// LocaleStore returns the locale store.
func (f *Factory) LocaleStore() LocaleStore {
	if f.badger != nil {
		return f.badger
	}
	return f.locales
}

// Sweeper returns the store's sweeper, or nil when the backend expires
// entries by itself or no TTL is configured.
func (f *Factory) Sweeper() Sweeper {
	if f.memory != nil && f.ttl > 0 {
		return f.memory
	}
	return nil
}

// Close closes the underlying BadgerDB if one was opened.
func (f *Factory) Close() error {
	if f.db != nil {
		return f.db.Close()
	}
	return nil
}
