// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package lexicon

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/marquee/internal/cache"
	"github.com/tomtom215/marquee/internal/keywords"
	"github.com/tomtom215/marquee/internal/metrics"
)

// DefaultLoadTimeout bounds a lazy load triggered from Scan.
const DefaultLoadTimeout = 2 * time.Minute

// originSnapshot labels lexicons restored from the snapshot store.
const originSnapshot = "snapshot"

// Status describes the current lexicon.
type Status struct {
	Loaded    bool      `json:"loaded"`
	Entries   int       `json:"entries"`
	Origin    string    `json:"origin,omitempty"`
	Skipped   int       `json:"skipped"`
	LoadedAt  time.Time `json:"loaded_at,omitempty"`
	Attempts  int64     `json:"attempts"`
	LastError string    `json:"last_error,omitempty"`
}

// state is an immutable loaded lexicon. It is swapped whole, never mutated.
type state struct {
	entries  []keywords.VocabularyEntry
	matcher  *cache.AhoCorasick
	names    *cache.Trie
	origin   string
	skipped  int
	loadedAt time.Time
}

// Service owns the process-wide vocabulary. It loads once, memoizes the
// result, and implements keywords.Vocabulary.
//
// Concurrent Load calls share one in-flight load. A failed load leaves the
// previous lexicon (or none) in place; callers may retry with Load.
type Service struct {
	source      Source
	snapshot    *Snapshot
	logger      zerolog.Logger
	loadTimeout time.Duration

	group     singleflight.Group
	attempted atomic.Bool
	attempts  atomic.Int64

	mu      sync.RWMutex
	current *state
	lastErr error
}

// Option configures a Service.
type Option func(*Service)

// WithSnapshot persists successful loads and restores from the snapshot
// when the source fails before anything was loaded.
func WithSnapshot(s *Snapshot) Option {
	return func(svc *Service) { svc.snapshot = s }
}

// WithLogger sets the service logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) Option {
	return func(svc *Service) { svc.logger = l }
}

// WithLoadTimeout bounds lazy loads triggered by Scan.
func WithLoadTimeout(d time.Duration) Option {
	return func(svc *Service) {
		if d > 0 {
			svc.loadTimeout = d
		}
	}
}

// NewService creates an unloaded service. source may be nil when only a
// snapshot is available.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source:      source,
		logger:      zerolog.Nop(),
		loadTimeout: DefaultLoadTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "lexicon").Logger()
	return s
}

// Load reads the lexicon from the source and installs it. Concurrent calls
// wait for the same load.
func (s *Service) Load(ctx context.Context) error {
	_, err, shared := s.group.Do("load", func() (any, error) {
		return nil, s.load(ctx)
	})
	if shared {
		s.logger.Debug().Msg("joined in-flight lexicon load")
	}
	return err
}

func (s *Service) load(ctx context.Context) error {
	s.attempted.Store(true)
	s.attempts.Add(1)
	start := time.Now()

	if s.source == nil {
		if s.snapshot == nil {
			s.setErr(ErrNoSource)
			return ErrNoSource
		}
		return s.restoreSnapshot(ErrNoSource)
	}

	res, err := s.fetch(ctx)
	metrics.RecordLexiconLoad(s.source.Name(), len(res.Entries), res.Skipped, err)
	if err != nil {
		s.logger.Error().Err(err).Str("source", s.source.Name()).Msg("lexicon load failed")
		if s.IsLoaded() || s.snapshot == nil {
			s.setErr(err)
			return err
		}
		return s.restoreSnapshot(err)
	}

	st := buildState(res.Entries, s.source.Name(), res.Skipped)
	s.install(st)

	s.logger.Info().
		Str("source", s.source.Name()).
		Int("entries", len(st.entries)).
		Int("skipped", res.Skipped).
		Dur("duration", time.Since(start)).
		Msg("lexicon loaded")

	if s.snapshot != nil {
		if err := s.snapshot.Save(res.Entries, s.source.Name()); err != nil {
			s.logger.Warn().Err(err).Msg("failed to save lexicon snapshot")
		}
	}
	return nil
}

func (s *Service) fetch(ctx context.Context) (ParseResult, error) {
	rc, err := s.source.Open(ctx)
	if err != nil {
		return ParseResult{}, err
	}
	defer func() { _ = rc.Close() }()

	res, err := ParseNDJSON(rc)
	if err != nil {
		return ParseResult{}, err
	}
	if len(res.Entries) == 0 {
		return res, ErrEmptyLexicon
	}
	return res, nil
}

// restoreSnapshot installs the stored lexicon after cause prevented a
// source load. cause is still returned so callers see the source failure.
func (s *Service) restoreSnapshot(cause error) error {
	entries, savedAt, err := s.snapshot.Load()
	metrics.RecordLexiconLoad(originSnapshot, len(entries), 0, err)
	if err != nil {
		joined := fmt.Errorf("%w (snapshot: %w)", cause, err)
		s.setErr(joined)
		return joined
	}

	st := buildState(entries, originSnapshot, 0)
	s.install(st)
	s.setErr(cause)

	s.logger.Warn().
		Err(cause).
		Int("entries", len(entries)).
		Time("saved_at", savedAt).
		Msg("lexicon restored from snapshot")
	return fmt.Errorf("using lexicon snapshot: %w", cause)
}

func buildState(entries []keywords.VocabularyEntry, origin string, skipped int) *state {
	ac := cache.NewAhoCorasick()
	names := cache.NewTrie()
	for _, e := range entries {
		ac.AddPattern(e.Name, e)
		names.InsertWithData(e.Name, e)
	}
	ac.Build()

	return &state{
		entries:  entries,
		matcher:  ac,
		names:    names,
		origin:   origin,
		skipped:  skipped,
		loadedAt: time.Now(),
	}
}

func (s *Service) install(st *state) {
	s.mu.Lock()
	s.current = st
	s.lastErr = nil
	s.mu.Unlock()
	metrics.LexiconEntries.Set(float64(len(st.entries)))
}

func (s *Service) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Service) snapshotState() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// IsLoaded reports whether a lexicon is installed.
func (s *Service) IsLoaded() bool {
	return s.snapshotState() != nil
}

// Scan implements keywords.Vocabulary. The first call loads the lexicon if
// nothing has attempted to yet; a failed load yields no hits.
func (s *Service) Scan(text string) []keywords.VocabularyHit {
	st := s.snapshotState()
	if st == nil && !s.attempted.Load() {
		ctx, cancel := context.WithTimeout(context.Background(), s.loadTimeout)
		if err := s.Load(ctx); err != nil && !errors.Is(err, ErrNoSource) {
			s.logger.Warn().Err(err).Msg("lazy lexicon load failed")
		}
		cancel()
		st = s.snapshotState()
	}
	if st == nil {
		return nil
	}

	matches := st.matcher.Search(text)
	hits := make([]keywords.VocabularyHit, 0, len(matches))
	for _, m := range matches {
		entry, ok := m.Data.(keywords.VocabularyEntry)
		if !ok {
			continue
		}
		hits = append(hits, keywords.VocabularyHit{Entry: entry, Start: m.Position, End: m.End})
	}
	return hits
}

// Autocomplete returns up to limit entries whose name starts with prefix.
func (s *Service) Autocomplete(prefix string, limit int) []keywords.VocabularyEntry {
	st := s.snapshotState()
	prefix = keywords.Normalize(prefix)
	if st == nil || prefix == "" {
		return []keywords.VocabularyEntry{}
	}

	results := st.names.AutocompleteWithLimit(prefix, limit)
	out := make([]keywords.VocabularyEntry, 0, len(results))
	for _, r := range results {
		if e, ok := r.Data.(keywords.VocabularyEntry); ok {
			out = append(out, e)
		}
	}
	return out
}

// Lookup returns the entry with exactly this name, after normalization.
func (s *Service) Lookup(name string) (keywords.VocabularyEntry, bool) {
	st := s.snapshotState()
	if st == nil {
		return keywords.VocabularyEntry{}, false
	}
	data, ok := st.names.Search(keywords.Normalize(name))
	if !ok {
		return keywords.VocabularyEntry{}, false
	}
	e, ok := data.(keywords.VocabularyEntry)
	return e, ok
}

// Count returns the number of loaded entries.
func (s *Service) Count() int {
	if st := s.snapshotState(); st != nil {
		return len(st.entries)
	}
	return 0
}

// Status reports the lexicon state for health and admin endpoints.
func (s *Service) Status() Status {
	s.mu.RLock()
	st, lastErr := s.current, s.lastErr
	s.mu.RUnlock()

	status := Status{Attempts: s.attempts.Load()}
	if lastErr != nil {
		status.LastError = lastErr.Error()
	}
	if st != nil {
		status.Loaded = true
		status.Entries = len(st.entries)
		status.Origin = st.origin
		status.Skipped = st.skipped
		status.LoadedAt = st.loadedAt
	}
	return status
}
