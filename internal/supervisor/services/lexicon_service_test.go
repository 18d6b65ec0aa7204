// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type mockLoader struct {
	failures int32
	calls    atomic.Int32
	loaded   atomic.Bool
}

func (m *mockLoader) Load(context.Context) error {
	if m.calls.Add(1) <= m.failures {
		return errors.New("source unavailable")
	}
	m.loaded.Store(true)
	return nil
}

func (m *mockLoader) IsLoaded() bool { return m.loaded.Load() }

func TestLexiconLoaderService_RetriesUntilLoaded(t *testing.T) {
	t.Parallel()

	loader := &mockLoader{failures: 2}
	svc := NewLexiconLoaderService(loader, 10*time.Millisecond, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := svc.Serve(ctx); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() error = %v, want suture.ErrDoNotRestart", err)
	}
	if got := loader.calls.Load(); got != 3 {
		t.Errorf("Load calls = %d, want 3", got)
	}
}

func TestLexiconLoaderService_AlreadyLoaded(t *testing.T) {
	t.Parallel()

	loader := &mockLoader{}
	loader.loaded.Store(true)
	svc := NewLexiconLoaderService(loader, 0, 0, zerolog.Nop())

	if err := svc.Serve(context.Background()); !errors.Is(err, suture.ErrDoNotRestart) {
		t.Errorf("Serve() error = %v, want suture.ErrDoNotRestart", err)
	}
	if loader.calls.Load() != 0 {
		t.Error("Load called for an already loaded lexicon")
	}
}

func TestLexiconLoaderService_StopsOnCancel(t *testing.T) {
	t.Parallel()

	loader := &mockLoader{failures: 1 << 20}
	svc := NewLexiconLoaderService(loader, time.Hour, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if svc.String() != "lexicon-loader" {
		t.Errorf("String() = %q, want lexicon-loader", svc.String())
	}
}

func TestNewLexiconLoaderService_Backoff(t *testing.T) {
	t.Parallel()

	svc := NewLexiconLoaderService(&mockLoader{}, 0, 0, zerolog.Nop())
	if svc.minBackoff != 5*time.Second || svc.maxBackoff != 5*time.Minute {
		t.Errorf("backoff = %v..%v, want 5s..5m", svc.minBackoff, svc.maxBackoff)
	}
	svc = NewLexiconLoaderService(&mockLoader{}, 10*time.Minute, time.Second, zerolog.Nop())
	if svc.maxBackoff != 10*time.Minute {
		t.Errorf("maxBackoff = %v, want clamped to minBackoff", svc.maxBackoff)
	}
}
