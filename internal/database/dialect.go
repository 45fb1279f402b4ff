package database

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect covers the SQL differences between the supported databases
type Dialect interface {
	// DriverName returns the driver name for sqlx.Connect
	DriverName() string
	// DSN builds the data source name from connection options
	DSN(opts Options) (string, error)
	// Configure applies database-specific connection settings
	Configure(db *sqlx.DB) error
	// Schema returns the statements creating the tables if they don't exist
	Schema() []string
	// UpsertRecord returns the statement inserting or replacing a named record
	UpsertRecord() string
}

// DialectFor returns the dialect for a database type name
func DialectFor(dbType string) (Dialect, error) {
	switch strings.ToLower(dbType) {
	case "sqlite", "sqlite3", "":
		return sqliteDialect{}, nil
	case "postgres", "postgresql":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite3" }

func (sqliteDialect) DSN(opts Options) (string, error) {
	if opts.Path == "" {
		return "", fmt.Errorf("database path is not set")
	}
	return opts.Path, nil
}

func (sqliteDialect) Configure(db *sqlx.DB) error {
	// SQLite doesn't support multiple writers; a single connection also keeps
	// in-memory databases alive between queries
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return nil
}

func (sqliteDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS kv_records (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_results (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			direction TEXT NOT NULL,
			style TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			total_words INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			started_at TIMESTAMP NOT NULL,
			completed_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_results_completed_at ON session_results (completed_at)`,
	}
}

func (sqliteDialect) UpsertRecord() string {
	return `INSERT INTO kv_records (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
}

type postgresDialect struct{}

func (postgresDialect) DriverName() string { return "postgres" }

func (postgresDialect) DSN(opts Options) (string, error) {
	if opts.URL == "" {
		return "", fmt.Errorf("DATABASE_URL is not set")
	}
	return opts.URL, nil
}

func (postgresDialect) Configure(db *sqlx.DB) error {
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	return nil
}

func (postgresDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS kv_records (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_results (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			direction TEXT NOT NULL,
			style TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			total_words INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			started_at TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_results_completed_at ON session_results (completed_at)`,
	}
}

func (postgresDialect) UpsertRecord() string {
	return `INSERT INTO kv_records (name, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
}

type mysqlDialect struct{}

func (mysqlDialect) DriverName() string { return "mysql" }

// DSN forces parseTime so DATETIME columns scan into time.Time
func (mysqlDialect) DSN(opts Options) (string, error) {
	if opts.URL == "" {
		return "", fmt.Errorf("DATABASE_URL is not set")
	}
	cfg, err := mysql.ParseDSN(opts.URL)
	if err != nil {
		return "", fmt.Errorf("failed to parse mysql DSN: %w", err)
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

func (mysqlDialect) Configure(db *sqlx.DB) error {
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	return nil
}

func (mysqlDialect) Schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS kv_records (
			name VARCHAR(191) PRIMARY KEY,
			value LONGTEXT NOT NULL,
			updated_at DATETIME(6) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_results (
			id VARCHAR(64) PRIMARY KEY,
			kind VARCHAR(16) NOT NULL,
			direction VARCHAR(16) NOT NULL,
			style VARCHAR(32) NOT NULL,
			category VARCHAR(191) NOT NULL DEFAULT '',
			total_words INT NOT NULL,
			correct_words INT NOT NULL,
			started_at DATETIME(6) NOT NULL,
			completed_at DATETIME(6) NOT NULL,
			INDEX idx_session_results_completed_at (completed_at)
		)`,
	}
}

func (mysqlDialect) UpsertRecord() string {
	return "INSERT INTO kv_records (name, value, updated_at) VALUES (?, ?, ?) " +
		"ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)"
}
