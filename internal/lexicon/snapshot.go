// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package lexicon

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/keywords"
)

// Snapshot keys
const (
	snapshotEntriesKey = "lexicon:entries"
	snapshotMetaKey    = "lexicon:meta"
)

type snapshotMeta struct {
	Count   int       `json:"count"`
	Origin  string    `json:"origin"`
	SavedAt time.Time `json:"saved_at"`
}

// Snapshot persists the last successfully loaded lexicon in BadgerDB so
// the service can start with vocabulary matching while the source is down.
type Snapshot struct {
	db *badger.DB
}

// OpenSnapshot opens (or creates) a snapshot store at path.
//
//	snap, err := lexicon.OpenSnapshot("/data/lexicon")
//	if err != nil {
//	    return err
//	}
//	defer snap.Close()
func OpenSnapshot(path string) (*Snapshot, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 64 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for lexicon snapshot: %w", err)
	}
	return &Snapshot{db: db}, nil
}

// OpenInMemorySnapshot opens a snapshot store that lives only in memory.
func OpenInMemorySnapshot() (*Snapshot, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger db: %w", err)
	}
	return &Snapshot{db: db}, nil
}

// Save replaces the stored lexicon in one transaction.
func (s *Snapshot) Save(entries []keywords.VocabularyEntry, origin string) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal lexicon entries: %w", err)
	}
	meta, err := json.Marshal(snapshotMeta{Count: len(entries), Origin: origin, SavedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal snapshot meta: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(snapshotEntriesKey), data); err != nil {
			return fmt.Errorf("set lexicon entries: %w", err)
		}
		if err := txn.Set([]byte(snapshotMetaKey), meta); err != nil {
			return fmt.Errorf("set snapshot meta: %w", err)
		}
		return nil
	})
}

// Load returns the stored lexicon and when it was saved. ErrNoSnapshot is
// returned before the first Save.
func (s *Snapshot) Load() ([]keywords.VocabularyEntry, time.Time, error) {
	var entries []keywords.VocabularyEntry
	var meta snapshotMeta

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotEntriesKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSnapshot
		}
		if err != nil {
			return fmt.Errorf("get lexicon entries: %w", err)
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entries)
		}); err != nil {
			return fmt.Errorf("decode lexicon entries: %w", err)
		}

		item, err = txn.Get([]byte(snapshotMetaKey))
		if err != nil {
			// Entries without meta are still usable.
			return nil //nolint:nilerr
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		})
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	return entries, meta.SavedAt, nil
}

// Close closes the underlying database.
func (s *Snapshot) Close() error {
	return s.db.Close()
}
