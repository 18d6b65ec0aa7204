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

	"github.com/tomtom215/marquee/internal/models"
)

type mockExtractor struct {
	calls atomic.Int32
	err   error
}

func (m *mockExtractor) ExtractAll(context.Context) (models.RunResult, error) {
	m.calls.Add(1)
	return models.RunResult{Processed: 1, Updated: 1}, m.err
}

func TestReextractService_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewReextractService(&mockExtractor{}, ReextractServiceConfig{}, zerolog.Nop())
	if svc.config.Interval != 24*time.Hour {
		t.Errorf("Interval = %v, want 24h", svc.config.Interval)
	}
	if svc.config.RunTimeout != time.Hour {
		t.Errorf("RunTimeout = %v, want 1h", svc.config.RunTimeout)
	}
	if svc.String() != "keyword-reextract" {
		t.Errorf("String() = %q, want keyword-reextract", svc.String())
	}
}

func TestReextractService_RunOnStartup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		onStartup bool
		want      int32
	}{
		{"runs on startup", true, 1},
		{"waits for the schedule", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ex := &mockExtractor{}
			svc := NewReextractService(ex, ReextractServiceConfig{RunOnStartup: tt.onStartup, Interval: time.Hour}, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
			}
			if got := ex.calls.Load(); got != tt.want {
				t.Errorf("ExtractAll calls = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReextractService_ScheduledRunsSurviveErrors(t *testing.T) {
	t.Parallel()

	ex := &mockExtractor{err: errors.New("store unavailable")}
	svc := NewReextractService(ex, ReextractServiceConfig{Interval: 20 * time.Millisecond}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() error = %v, want context.DeadlineExceeded", err)
	}
	if got := ex.calls.Load(); got < 2 {
		t.Errorf("ExtractAll calls = %d, want at least 2", got)
	}
}
