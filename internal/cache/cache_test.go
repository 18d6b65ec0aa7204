// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package cache

import (
	"strings"
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	defer c.Close()

	c.Set("stats", 42)
	v, ok := c.Get("stats")
	if !ok || v != 42 {
		t.Errorf("Get = %v, %v; want 42, true", v, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	s := c.GetStats()
	if s.Hits != 1 || s.Misses != 1 || s.TotalKeys != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 key", s)
	}
	if got := c.HitRate(); got != 50 {
		t.Errorf("HitRate = %v, want 50", got)
	}
}

func TestCache_Expiration(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	defer c.Close()

	c.SetWithTTL("short", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry returned")
	}
	if s := c.GetStats(); s.Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", s.Evictions)
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry returned")
	}

	c.Clear()
	if _, ok := c.Get("b"); ok {
		t.Error("entry survived Clear")
	}
	if s := c.GetStats(); s.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d, want 0", s.TotalKeys)
	}

	c.Close()
	c.Close()
}

func TestCache_Cleanup(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	defer c.Close()

	c.SetWithTTL("old", 1, time.Nanosecond)
	c.Set("new", 2)
	time.Sleep(time.Millisecond)
	c.cleanup()

	if s := c.GetStats(); s.TotalKeys != 1 {
		t.Errorf("TotalKeys after cleanup = %d, want 1", s.TotalKeys)
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	a := GenerateKey("KeywordCounts", map[string]any{"search": "time", "limit": 100})
	b := GenerateKey("KeywordCounts", map[string]any{"limit": 100, "search": "time"})
	c := GenerateKey("KeywordCounts", map[string]any{"search": "space", "limit": 100})

	if a != b {
		t.Errorf("same params produced different keys: %s vs %s", a, b)
	}
	if a == c {
		t.Error("different params produced the same key")
	}
	if !strings.HasPrefix(a, "KeywordCounts:") {
		t.Errorf("key %q missing method prefix", a)
	}
}
