package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSourceURL is the published CSV export of the word sheet.
// The first row of the sheet must hold the column names ("en,ja,year").
const DefaultSourceURL = "https://docs.google.com/spreadsheets/d/1eb5Qks5GwyyMM8UFOeKkPZ6U42UU6LoWN6jcNVGZzuk/export?format=csv&gid=0"

// Config holds application configuration
type Config struct {
	// Word sheet location: an http(s) URL or a local .csv/.xlsx path
	SourceURL string
	// "csv", "xlsx" or "" to detect from the URL/extension
	SourceFormat string
	// Sheet to read from XLSX workbooks, first sheet if empty
	SheetName string
	// Column names in the header row
	Columns Columns
	// Timeout for fetching the word sheet
	FetchTimeout time.Duration
	// How often to reload the word sheet while playing, 0 disables
	RefreshInterval time.Duration

	// Database type: sqlite3, postgres or mysql
	DatabaseType string
	// SQLite file path
	DatabasePath string
	// Connection URL for postgres/mysql
	DatabaseURL string
	// Name of the durable record holding per-word performance
	StatsKey string

	// Priority scoring parameters
	UnseenScore    float64
	AccuracyWeight float64
	RecencyCapDays float64

	// Questions per session, 0 means all matching words
	DefaultCount int
	// Number of choices shown for multiple-choice questions
	OptionCount int
}

// Columns maps word fields to header names in the sheet
type Columns struct {
	Source    []string
	Target    []string
	AltSource []string
	Category  []string
	Input     []string
}

// DefaultColumns returns the header names used by the published word sheet
func DefaultColumns() Columns {
	return Columns{
		Source:    []string{"en"},
		Target:    []string{"ja"},
		AltSource: []string{"alt", "en2"},
		Category:  []string{"year", "Year"},
		Input:     []string{"input"},
	}
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		SourceURL:      DefaultSourceURL,
		Columns:        DefaultColumns(),
		FetchTimeout:   15 * time.Second,
		DatabaseType:   "sqlite3",
		DatabasePath:   "data/wordquiz.db",
		StatsKey:       "wordStats",
		UnseenScore:    1000,
		AccuracyWeight: 10,
		RecencyCapDays: 10,
		DefaultCount:   10,
		OptionCount:    4,
	}
}

// Load reads configuration from an optional .env file and environment variables
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	def := Default()
	cfg := &Config{
		SourceURL:       getEnv("WORDQUIZ_SOURCE_URL", def.SourceURL),
		SourceFormat:    strings.ToLower(getEnv("WORDQUIZ_SOURCE_FORMAT", "")),
		SheetName:       getEnv("WORDQUIZ_SHEET", ""),
		FetchTimeout:    getDuration("WORDQUIZ_FETCH_TIMEOUT", def.FetchTimeout),
		RefreshInterval: getDuration("WORDQUIZ_REFRESH_INTERVAL", 0),
		DatabaseType:    strings.ToLower(getEnv("DB_TYPE", def.DatabaseType)),
		DatabasePath:    getEnv("DB_PATH", def.DatabasePath),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		StatsKey:        getEnv("WORDQUIZ_STATS_KEY", def.StatsKey),
		UnseenScore:     getFloat("WORDQUIZ_UNSEEN_SCORE", def.UnseenScore),
		AccuracyWeight:  getFloat("WORDQUIZ_ACCURACY_WEIGHT", def.AccuracyWeight),
		RecencyCapDays:  getFloat("WORDQUIZ_RECENCY_CAP_DAYS", def.RecencyCapDays),
		DefaultCount:    getInt("WORDQUIZ_DEFAULT_COUNT", def.DefaultCount),
		OptionCount:     getInt("WORDQUIZ_OPTION_COUNT", def.OptionCount),
		Columns: Columns{
			Source:    getList("WORDQUIZ_COL_SOURCE", def.Columns.Source),
			Target:    getList("WORDQUIZ_COL_TARGET", def.Columns.Target),
			AltSource: getList("WORDQUIZ_COL_ALT", def.Columns.AltSource),
			Category:  getList("WORDQUIZ_COL_CATEGORY", def.Columns.Category),
			Input:     getList("WORDQUIZ_COL_INPUT", def.Columns.Input),
		},
	}

	if cfg.OptionCount < 2 {
		slog.Warn("option count too small, using default", "value", cfg.OptionCount, "default", def.OptionCount)
		cfg.OptionCount = def.OptionCount
	}
	if cfg.DefaultCount < 0 {
		cfg.DefaultCount = 0
	}
	return cfg
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", s)
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		slog.Warn("invalid number in environment, using default", "key", key, "value", s)
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || v < 0 {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", s)
		return defaultValue
	}
	return v
}

// getList splits a comma-separated variable into trimmed, non-empty names
func getList(key string, defaultValue []string) []string {
	s := os.Getenv(key)
	if s == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
