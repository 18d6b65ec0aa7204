// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package main

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/config"
	"github.com/tomtom215/marquee/internal/ingest"
	"github.com/tomtom215/marquee/internal/lexicon"
	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
)

func TestLexiconSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfg      config.LexiconConfig
		wantName string
	}{
		{"none", config.LexiconConfig{}, ""},
		{"file", config.LexiconConfig{Path: "/data/keywords.json"}, "file"},
		{"url", config.LexiconConfig{URL: "https://example.org/keywords.json.gz"}, "http"},
		{"file wins", config.LexiconConfig{Path: "/data/keywords.json", URL: "https://example.org/k.json"}, "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := lexiconSource(&tt.cfg)
			if tt.wantName == "" {
				if src != nil {
					t.Errorf("lexiconSource() = %v, want nil", src)
				}
				return
			}
			if src == nil {
				t.Fatalf("lexiconSource() = nil, want %s source", tt.wantName)
			}
			if src.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", src.Name(), tt.wantName)
			}
		})
	}
}

func TestInitLexicon_NoSource(t *testing.T) {
	t.Parallel()

	svc, cleanup, err := initLexicon(&config.LexiconConfig{})
	if err != nil {
		t.Fatalf("initLexicon() error = %v", err)
	}
	defer cleanup()

	if svc.IsLoaded() {
		t.Error("IsLoaded() = true, want false")
	}
	if err := svc.Load(context.Background()); !errors.Is(err, lexicon.ErrNoSource) {
		t.Errorf("Load() error = %v, want ErrNoSource", err)
	}
}

func TestInitLexicon_Snapshot(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "lexicon")
	svc, cleanup, err := initLexicon(&config.LexiconConfig{SnapshotPath: dir})
	if err != nil {
		t.Fatalf("initLexicon() error = %v", err)
	}
	defer cleanup()

	// The snapshot is empty, so a load without a source still fails.
	if err := svc.Load(context.Background()); err == nil {
		t.Error("Load() error = nil, want error for empty snapshot")
	}
}

type recordingStore struct {
	upserted chan int64
}

func (s *recordingStore) UpsertItem(_ context.Context, item *models.Item) error {
	s.upserted <- item.ID
	return nil
}

func (s *recordingStore) DeleteItem(context.Context, int64) error { return nil }

func TestInitIngest_ChannelTransport(t *testing.T) {
	t.Parallel()

	cfg := &config.NATSConfig{Topic: "catalog.items"}
	store := &recordingStore{upserted: make(chan int64, 1)}
	handler := ingest.NewHandler(store, nil, logging.NewTestLogger(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pipeline, err := initIngest(ctx, cfg, handler)
	if err != nil {
		t.Fatalf("initIngest() error = %v", err)
	}
	defer func() { _ = pipeline.Close() }()

	if pipeline.server != nil {
		t.Error("server != nil, want no embedded server for channel transport")
	}
	if got := pipeline.transport.Name(); got != "channel" {
		t.Errorf("transport = %q, want channel", got)
	}

	session, err := pipeline.consumer.NewSession()
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	go func() { _ = session.Run(ctx) }()

	select {
	case <-session.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("session did not start")
	}

	item := models.Item{ID: 42, MediaType: "movie", Title: "Heat", Overview: "A bank heist goes wrong."}
	if _, err := pipeline.publisher.PublishUpserts(ctx, []models.Item{item}); err != nil {
		t.Fatalf("PublishUpserts() error = %v", err)
	}

	select {
	case id := <-store.upserted:
		if id != 42 {
			t.Errorf("upserted id = %d, want 42", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("item event was not applied")
	}
}
