// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// --------------------------------------------------------------------------
// Table names for the optional Postgres mirror
// --------------------------------------------------------------------------

const (
	MatchLogsTable = "match_logs"
)

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Filesystem layout
	DataDir      string
	RawDir       string
	ProcessedDir string
	ReportDir    string

	// Delimited text output
	Delimiter        rune
	DecimalSeparator rune

	// Database (optional; only `load` needs it)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// Scraping
	ScrapeRequestsPerMinute int
	ScrapeUserAgent         string
	ScrapeDelay             time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dataDir := envOr("DATA_DIR", "data")

	decimal, err := envRune("DECIMAL_SEPARATOR", '.')
	if err != nil {
		return nil, err
	}
	defaultDelim := ','
	if decimal == ',' {
		defaultDelim = ';'
	}
	delim, err := envRune("CSV_DELIMITER", defaultDelim)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DataDir:      dataDir,
		RawDir:       envOr("RAW_DIR", filepath.Join(dataDir, "raw")),
		ProcessedDir: envOr("PROCESSED_DIR", filepath.Join(dataDir, "processed")),
		ReportDir:    envOr("REPORT_DIR", "reports"),

		Delimiter:        delim,
		DecimalSeparator: decimal,

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 4),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		ScrapeRequestsPerMinute: envInt("SCRAPE_REQUESTS_PER_MINUTE", 20),
		ScrapeUserAgent: envOr("SCRAPE_USER_AGENT",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119 Safari/537.36 (+stats-research)"),
		ScrapeDelay: time.Duration(envInt("SCRAPE_DELAY_MS", 1000)) * time.Millisecond,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects separator combinations the table reader cannot undo.
func (c *Config) Validate() error {
	if c.DecimalSeparator != '.' && c.DecimalSeparator != ',' {
		return fmt.Errorf("DECIMAL_SEPARATOR must be '.' or ',', got %q", c.DecimalSeparator)
	}
	switch c.Delimiter {
	case '\r', '\n', '"', utf8.RuneError:
		return fmt.Errorf("CSV_DELIMITER %q is not usable", c.Delimiter)
	}
	if c.Delimiter == c.DecimalSeparator {
		return fmt.Errorf("CSV_DELIMITER and DECIMAL_SEPARATOR must differ, both are %q", c.Delimiter)
	}
	if c.ScrapeRequestsPerMinute <= 0 {
		return fmt.Errorf("SCRAPE_REQUESTS_PER_MINUTE must be positive")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// RawPath returns the raw snapshot path for a file name.
func (c *Config) RawPath(name string) string {
	return filepath.Join(c.RawDir, name)
}

// ProcessedPath returns the canonical table path for a file name.
func (c *Config) ProcessedPath(name string) string {
	return filepath.Join(c.ProcessedDir, name)
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// envRune reads a single-character setting. "tab" and `\t` are accepted for
// tab-separated output.
func envRune(key string, fallback rune) (rune, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	return ParseRune(v)
}

// ParseRune parses a one-character separator as used in flags and env vars.
func ParseRune(v string) (rune, error) {
	switch strings.ToLower(v) {
	case "tab", `\t`:
		return '\t', nil
	}
	if utf8.RuneCountInString(v) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", v)
	}
	r, _ := utf8.DecodeRuneInString(v)
	return r, nil
}
