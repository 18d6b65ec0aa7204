// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"time"

	"github.com/tomtom215/marquee/internal/keywords"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting via environment variables
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Database   DatabaseConfig   `koanf:"database"`
	Keywords   KeywordsConfig   `koanf:"keywords"`
	Lexicon    LexiconConfig    `koanf:"lexicon"`
	NATS       NATSConfig       `koanf:"nats"`       // Optional: item events over NATS JetStream instead of in-process
	Security   SecurityConfig   `koanf:"security"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // "development", "staging", "production"
	CacheTTL        time.Duration `koanf:"cache_ttl"`   // TTL of cached read responses
}

// LoggingConfig holds logging settings for zerolog.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = use NumCPU
}

// KeywordsConfig holds keyword extraction settings.
//
// ExtractionEnabled is the global switch: when false every extraction
// returns an empty list and keyword filtering passes items through.
type KeywordsConfig struct {
	ExtractionEnabled      bool   `koanf:"extraction_enabled"`
	Strategy               string `koanf:"strategy"` // rake, vocabulary, auto
	MaxPhrasesPerText      int    `koanf:"max_phrases_per_text"`
	MaxVocabularyMatches   int    `koanf:"max_vocabulary_matches"`
	TopKeywords            int    `koanf:"top_keywords"`
	RAKEMinFrequency       int    `koanf:"rake_min_frequency"`
	VocabularyMinFrequency int    `koanf:"vocabulary_min_frequency"`
	Workers                int    `koanf:"workers"` // 0 = use NumCPU

	// Batch re-extraction of the stored catalog.
	BatchWorkers      int           `koanf:"batch_workers"`
	BatchRate         float64       `koanf:"batch_rate"` // items per second, 0 = unpaced
	ReextractInterval time.Duration `koanf:"reextract_interval"`
}

// EngineConfig converts the section into the extraction engine config.
func (k KeywordsConfig) EngineConfig() keywords.Config {
	return keywords.Config{
		ExtractionEnabled:      k.ExtractionEnabled,
		Strategy:               keywords.Strategy(k.Strategy),
		MaxPhrasesPerText:      k.MaxPhrasesPerText,
		MaxVocabularyMatches:   k.MaxVocabularyMatches,
		TopKeywords:            k.TopKeywords,
		RAKEMinFrequency:       k.RAKEMinFrequency,
		VocabularyMinFrequency: k.VocabularyMinFrequency,
		Workers:                k.Workers,
	}
}

// LexiconConfig holds the controlled vocabulary source.
//
// Exactly one of Path or URL selects the source; with neither, the service
// can still serve a previously saved snapshot.
type LexiconConfig struct {
	Path          string        `koanf:"path"`
	URL           string        `koanf:"url"`
	SnapshotPath  string        `koanf:"snapshot_path"` // empty disables the snapshot store
	LoadOnStartup bool          `koanf:"load_on_startup"`
	LoadTimeout   time.Duration `koanf:"load_timeout"`
	HTTPTimeout   time.Duration `koanf:"http_timeout"`
}

// HasSource reports whether a file or URL source is configured.
func (l LexiconConfig) HasSource() bool {
	return l.Path != "" || l.URL != ""
}

// NATSConfig holds NATS JetStream settings for the item event transport.
// When disabled, item events flow through an in-process channel.
type NATSConfig struct {
	Enabled             bool   `koanf:"enabled"`
	URL                 string `koanf:"url"`
	EmbeddedServer      bool   `koanf:"embedded_server"`
	StoreDir            string `koanf:"store_dir"`
	MaxMemory           int64  `koanf:"max_memory"`
	MaxStore            int64  `koanf:"max_store"`
	StreamRetentionDays int    `koanf:"stream_retention_days"`
	Topic               string `koanf:"topic"`
	DurableName         string `koanf:"durable_name"`
	QueueGroup          string `koanf:"queue_group"`
	SubscribersCount    int    `koanf:"subscribers_count"`

	// Watermill router middleware
	RouterRetryCount           int           `koanf:"router_retry_count"`
	RouterRetryInitialInterval time.Duration `koanf:"router_retry_initial_interval"`
	RouterDeduplicationEnabled bool          `koanf:"router_deduplication_enabled"`
	RouterDeduplicationTTL     time.Duration `koanf:"router_deduplication_ttl"`
	RouterCloseTimeout         time.Duration `koanf:"router_close_timeout"`
}

// SecurityConfig holds request limiting and CORS settings
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes"`
}

// SupervisorConfig holds suture tree settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// Load reads configuration from all sources in order of priority:
//  1. Built-in defaults
//  2. Config file (config.yaml if exists, or path specified in CONFIG_PATH env var)
//  3. Environment variables
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
