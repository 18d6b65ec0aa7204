// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package lexicon

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/tomtom215/marquee/internal/keywords"
)

// maxRecordSize bounds a single NDJSON line.
const maxRecordSize = 1 << 20

// record is the wire shape of one lexicon line: {"id": 1, "name": "time travel"}.
type record struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// ParseResult is the outcome of reading a lexicon stream.
type ParseResult struct {
	Entries []keywords.VocabularyEntry

	// Skipped counts malformed lines and records without an id or a usable
	// name. Blank lines are not counted.
	Skipped int
}

// ParseNDJSON reads newline-delimited lexicon records. Names are stored in
// keywords.Normalize form so they line up with normalized synopses.
//
// Malformed records are skipped and counted. A read error fails the whole
// parse so a truncated stream never replaces a good lexicon.
func ParseNDJSON(r io.Reader) (ParseResult, error) {
	var res ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var rec record
		if err := json.Unmarshal(raw, &rec); err != nil || rec.ID == nil {
			res.Skipped++
			continue
		}
		name := keywords.Normalize(rec.Name)
		if name == "" {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, keywords.VocabularyEntry{ID: *rec.ID, Name: name})
	}
	if err := scanner.Err(); err != nil {
		return ParseResult{}, fmt.Errorf("read lexicon line %d: %w", line+1, err)
	}
	return res, nil
}
