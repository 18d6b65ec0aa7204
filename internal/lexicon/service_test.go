// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package lexicon

import (
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/marquee/internal/keywords"
)

const sampleLexicon = `{"id": 1, "name": "time travel"}
{"id": 2, "name": "time loop"}
{"id": 3, "name": "heist"}
{"id": 4, "name": "artificial intelligence"}
`

// stubSource serves a fixed body or error and counts opens.
type stubSource struct {
	mu    sync.Mutex
	body  string
	err   error
	delay time.Duration
	opens atomic.Int32
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.opens.Add(1)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func (s *stubSource) set(body string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body, s.err = body, err
}

func TestService_LoadAndScan(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubSource{body: sampleLexicon})
	if svc.IsLoaded() {
		t.Fatal("IsLoaded() = true before Load")
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !svc.IsLoaded() || svc.Count() != 4 {
		t.Fatalf("IsLoaded() = %v, Count() = %d, want true, 4", svc.IsLoaded(), svc.Count())
	}

	text := keywords.Normalize("A heist about time travel")
	hits := svc.Scan(text)
	if len(hits) != 2 {
		t.Fatalf("Scan() = %+v, want 2 hits", hits)
	}
	for _, h := range hits {
		if got := text[h.Start:h.End]; got != h.Entry.Name {
			t.Errorf("hit span %q != entry name %q", got, h.Entry.Name)
		}
	}
}

func TestService_ConcurrentLoadsShareOneFetch(t *testing.T) {
	t.Parallel()

	src := &stubSource{body: sampleLexicon, delay: 50 * time.Millisecond}
	svc := NewService(src)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Load(context.Background()); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if n := src.opens.Load(); n > 2 {
		t.Errorf("source opened %d times, want at most 2", n)
	}
	if svc.Count() != 4 {
		t.Errorf("Count() = %d, want 4", svc.Count())
	}
}

func TestService_FailureThenRetry(t *testing.T) {
	t.Parallel()

	src := &stubSource{err: errors.New("connection refused")}
	svc := NewService(src)

	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("Load() error = nil, want failure")
	}
	if svc.IsLoaded() {
		t.Error("IsLoaded() = true after failed load")
	}
	if hits := svc.Scan("a heist about time travel"); len(hits) != 0 {
		t.Errorf("Scan() after failure = %+v, want none", hits)
	}
	if st := svc.Status(); st.LastError == "" || st.Attempts != 1 {
		t.Errorf("Status() = %+v, want last error and one attempt", st)
	}

	src.set(sampleLexicon, nil)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("retry Load() error = %v", err)
	}
	if !svc.IsLoaded() {
		t.Error("IsLoaded() = false after successful retry")
	}
	if st := svc.Status(); st.LastError != "" || st.Origin != "stub" {
		t.Errorf("Status() = %+v, want cleared error and stub origin", st)
	}
}

func TestService_FailedReloadKeepsLexicon(t *testing.T) {
	t.Parallel()

	src := &stubSource{body: sampleLexicon}
	svc := NewService(src)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// A truncated stream must not replace the loaded lexicon.
	src.set("", nil)
	if err := svc.Load(context.Background()); !errors.Is(err, ErrEmptyLexicon) {
		t.Errorf("reload error = %v, want ErrEmptyLexicon", err)
	}
	if svc.Count() != 4 {
		t.Errorf("Count() = %d, want previous 4 entries", svc.Count())
	}
}

func TestService_LazyLoadOnFirstScan(t *testing.T) {
	t.Parallel()

	src := &stubSource{body: sampleLexicon}
	svc := NewService(src)

	hits := svc.Scan("a heist")
	if len(hits) != 1 || hits[0].Entry.ID != 3 {
		t.Errorf("Scan() = %+v, want heist", hits)
	}
	svc.Scan("another heist")
	if n := src.opens.Load(); n != 1 {
		t.Errorf("source opened %d times, want 1", n)
	}
}

func TestService_LazyLoadNotRepeatedAfterFailure(t *testing.T) {
	t.Parallel()

	src := &stubSource{err: errors.New("boom")}
	svc := NewService(src)

	svc.Scan("a heist")
	svc.Scan("a heist")
	if n := src.opens.Load(); n != 1 {
		t.Errorf("source opened %d times, want 1", n)
	}
}

func TestService_NoSource(t *testing.T) {
	t.Parallel()

	svc := NewService(nil)
	if err := svc.Load(context.Background()); !errors.Is(err, ErrNoSource) {
		t.Errorf("Load() error = %v, want ErrNoSource", err)
	}
	if hits := svc.Scan("time travel"); hits != nil {
		t.Errorf("Scan() = %+v, want nil", hits)
	}
}

func TestService_SnapshotFallback(t *testing.T) {
	t.Parallel()

	snap, err := OpenInMemorySnapshot()
	if err != nil {
		t.Fatalf("OpenInMemorySnapshot() error = %v", err)
	}
	defer func() { _ = snap.Close() }()

	// First process: load succeeds and is persisted.
	first := NewService(&stubSource{body: sampleLexicon}, WithSnapshot(snap))
	if err := first.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Second process: source is down, snapshot is restored.
	second := NewService(&stubSource{err: errors.New("503")}, WithSnapshot(snap))
	err = second.Load(context.Background())
	if err == nil {
		t.Fatal("Load() error = nil, want source failure reported")
	}
	if !second.IsLoaded() || second.Count() != 4 {
		t.Errorf("IsLoaded() = %v, Count() = %d, want snapshot with 4 entries", second.IsLoaded(), second.Count())
	}
	if st := second.Status(); st.Origin != originSnapshot {
		t.Errorf("Origin = %q, want %q", st.Origin, originSnapshot)
	}
}

func TestService_AutocompleteAndLookup(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubSource{body: sampleLexicon})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got := svc.Autocomplete("Time", 10)
	if len(got) != 2 || got[0].Name != "time loop" || got[1].Name != "time travel" {
		t.Errorf("Autocomplete(Time) = %+v, want time loop, time travel", got)
	}
	if got := svc.Autocomplete("zzz", 10); len(got) != 0 {
		t.Errorf("Autocomplete(zzz) = %+v, want none", got)
	}
	if got := svc.Autocomplete("", 10); len(got) != 0 {
		t.Errorf("Autocomplete(\"\") = %+v, want none", got)
	}

	e, ok := svc.Lookup("Artificial Intelligence")
	if !ok || e.ID != 4 {
		t.Errorf("Lookup() = %+v, %v, want id 4", e, ok)
	}
}

func TestFileSource_Gzip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.json.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	zw := gzip.NewWriter(f)
	if _, err := zw.Write([]byte(sampleLexicon)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}

	svc := NewService(FileSource{Path: path})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if svc.Count() != 4 {
		t.Errorf("Count() = %d, want 4", svc.Count())
	}
}

func TestFileSource_Missing(t *testing.T) {
	t.Parallel()

	svc := NewService(FileSource{Path: filepath.Join(t.TempDir(), "missing.json")})
	if err := svc.Load(context.Background()); err == nil {
		t.Error("Load() error = nil, want missing file error")
	}
}

func TestHTTPSource(t *testing.T) {
	t.Parallel()

	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, sampleLexicon)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second)
	svc := NewService(src)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if svc.Count() != 4 {
		t.Errorf("Count() = %d, want 4", svc.Count())
	}

	fail.Store(true)
	for i := 0; i < 3; i++ {
		if _, err := src.Open(context.Background()); err == nil {
			t.Fatalf("Open() attempt %d error = nil, want status error", i)
		}
	}
	if got := src.State(); got != "open" {
		t.Errorf("State() = %q, want open after three failures", got)
	}
}
