// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
)

var (
	lexiconURLSchemes = []string{"http", "https"}
	natsURLSchemes    = []string{"nats", "tls", "ws", "wss"}
)

// parseURL parses rawURL and checks that it has a host and one of the
// allowed schemes.
func parseURL(rawURL string, allowed []string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if !slices.Contains(allowed, u.Scheme) {
		return nil, fmt.Errorf("scheme must be one of %s, got: %q", strings.Join(allowed, ", "), u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("host is required")
	}
	return u, nil
}

// validateLexiconURL checks a lexicon download URL. The path must name the
// export file; a bare host would fetch an HTML index page instead of NDJSON.
func validateLexiconURL(rawURL string) error {
	u, err := parseURL(rawURL, lexiconURLSchemes)
	if err != nil {
		return fmt.Errorf("LEXICON_URL is invalid: %w", err)
	}
	if strings.Trim(u.Path, "/") == "" {
		return fmt.Errorf("LEXICON_URL is invalid: path must name the lexicon file")
	}
	return nil
}

// validateNATSURL checks the broker URL. The embedded server only listens
// on plain client connections, so it requires the nats scheme.
func validateNATSURL(rawURL string, embedded bool) error {
	u, err := parseURL(rawURL, natsURLSchemes)
	if err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	if embedded && u.Scheme != "nats" {
		return fmt.Errorf("NATS_URL is invalid: embedded server requires the nats scheme, got: %q", u.Scheme)
	}
	return nil
}
