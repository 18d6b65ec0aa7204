// Marquee - Media Keyword Extraction and Categorization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/keywords"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateKeywords,
		c.validateLexicon,
		c.validateNATS,
		c.validateSecurity,
		c.validateSupervisor,
		c.validateLogging,
	}

	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateServer validates HTTP server settings
func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("RESPONSE_CACHE_TTL must not be negative")
	}
	return nil
}

// validateDatabase validates DuckDB settings
func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

// validateKeywords validates extraction settings by delegating to the
// engine config and adds the batch settings only the indexer reads.
func (c *Config) validateKeywords() error {
	engineCfg := c.Keywords.EngineConfig()
	if err := engineCfg.Validate(); err != nil {
		return fmt.Errorf("keywords: %w", err)
	}
	if c.Keywords.BatchWorkers < 1 || c.Keywords.BatchWorkers > 64 {
		return fmt.Errorf("KEYWORD_BATCH_WORKERS must be between 1 and 64")
	}
	if c.Keywords.BatchRate < 0 {
		return fmt.Errorf("KEYWORD_BATCH_RATE must not be negative")
	}
	if c.Keywords.ReextractInterval != 0 && c.Keywords.ReextractInterval < time.Minute {
		return fmt.Errorf("KEYWORD_REEXTRACT_INTERVAL must be 0 (disabled) or at least 1m")
	}
	return nil
}

// validateLexicon validates the vocabulary source
func (c *Config) validateLexicon() error {
	if c.Lexicon.Path != "" && c.Lexicon.URL != "" {
		return fmt.Errorf("LEXICON_PATH and LEXICON_URL are mutually exclusive")
	}
	if c.Lexicon.URL != "" {
		if err := validateLexiconURL(c.Lexicon.URL); err != nil {
			return err
		}
	}
	if c.Lexicon.LoadTimeout <= 0 {
		return fmt.Errorf("LEXICON_LOAD_TIMEOUT must be positive")
	}
	if c.Keywords.Strategy == string(keywords.StrategyVocabulary) && !c.Lexicon.HasSource() && c.Lexicon.SnapshotPath == "" {
		return fmt.Errorf("KEYWORD_STRATEGY=vocabulary requires LEXICON_PATH, LEXICON_URL or LEXICON_SNAPSHOT_PATH")
	}
	return nil
}

// NATS limit constants
const (
	natsMinMemory      = 16 * 1024 * 1024 // 16MB
	natsMinStore       = 64 * 1024 * 1024 // 64MB
	natsMaxRetention   = 365
	natsMinRetention   = 1
	natsMaxSubscribers = 32
	natsMaxRetries     = 10
)

// validateNATS validates NATS configuration (only if enabled)
func (c *Config) validateNATS() error {
	if !c.NATS.Enabled {
		return nil
	}

	if err := validateNATSURL(c.NATS.URL, c.NATS.EmbeddedServer); err != nil {
		return err
	}

	validators := []func() error{
		c.validateNATSStorage,
		c.validateNATSRetention,
		c.validateNATSSubscribers,
		c.validateNATSRouter,
	}
	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validateNATSStorage validates the embedded server limits
func (c *Config) validateNATSStorage() error {
	if !c.NATS.EmbeddedServer {
		return nil
	}
	if c.NATS.MaxMemory < natsMinMemory {
		return fmt.Errorf("NATS_MAX_MEMORY must be at least 16MB (16777216 bytes)")
	}
	if c.NATS.MaxStore < natsMinStore {
		return fmt.Errorf("NATS_MAX_STORE must be at least 64MB (67108864 bytes)")
	}
	if c.NATS.StoreDir == "" {
		return fmt.Errorf("NATS_STORE_DIR is required when NATS_EMBEDDED=true")
	}
	return nil
}

// validateNATSRetention validates NATS stream retention days
func (c *Config) validateNATSRetention() error {
	if c.NATS.StreamRetentionDays < natsMinRetention || c.NATS.StreamRetentionDays > natsMaxRetention {
		return fmt.Errorf("NATS_RETENTION_DAYS must be between 1 and 365")
	}
	return nil
}

// validateNATSSubscribers validates NATS subscribers count
func (c *Config) validateNATSSubscribers() error {
	if c.NATS.SubscribersCount < 1 || c.NATS.SubscribersCount > natsMaxSubscribers {
		return fmt.Errorf("NATS_SUBSCRIBERS must be between 1 and 32")
	}
	return nil
}

// validateNATSRouter validates the Watermill router middleware settings
func (c *Config) validateNATSRouter() error {
	if c.NATS.Topic == "" {
		return fmt.Errorf("NATS_TOPIC is required")
	}
	if c.NATS.RouterRetryCount < 0 || c.NATS.RouterRetryCount > natsMaxRetries {
		return fmt.Errorf("NATS_ROUTER_RETRY_COUNT must be between 0 and %d", natsMaxRetries)
	}
	if c.NATS.RouterDeduplicationEnabled && c.NATS.RouterDeduplicationTTL <= 0 {
		return fmt.Errorf("NATS_ROUTER_DEDUP_TTL must be positive when deduplication is enabled")
	}
	return nil
}

// Rate limit constants
const (
	minRateLimitRequests = 1           // Minimum 1 request allowed
	maxRateLimitRequests = 100000      // Maximum 100K requests per window
	minRateLimitWindow   = time.Second // Minimum 1 second window
	maxRateLimitWindow   = time.Hour   // Maximum 1 hour window
)

// validateSecurity validates rate limits and request bounds
func (c *Config) validateSecurity() error {
	if c.Security.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	return c.validateRateLimits()
}

// validateRateLimits validates rate limiting configuration bounds.
func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}

	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// hasWildcardCORS checks if CORS is configured with wildcard origins
func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS returns true if wildcard CORS is used in production
// and should be logged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}

// validateSupervisor validates suture tree settings
func (c *Config) validateSupervisor() error {
	if c.Supervisor.FailureThreshold < 0 || c.Supervisor.FailureDecay < 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_THRESHOLD and SUPERVISOR_FAILURE_DECAY must not be negative")
	}
	if c.Supervisor.FailureBackoff < 0 || c.Supervisor.ShutdownTimeout < 0 {
		return fmt.Errorf("SUPERVISOR_FAILURE_BACKOFF and SUPERVISOR_SHUTDOWN_TIMEOUT must not be negative")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// IsDevelopment returns true if the application is running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development" || env == "dev"
}

// validLogLevels defines the allowed log levels
var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validLogFormats defines the allowed log formats
var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// validateLogging validates logging configuration
func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
