package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Options selects and locates the database
type Options struct {
	Type string // sqlite3, postgres or mysql
	Path string // SQLite file path
	URL  string // Connection URL for postgres/mysql
}

// DB is a database connection together with its dialect
type DB struct {
	*sqlx.DB
	Dialect Dialect
}

// Connect establishes a connection to the database and creates missing tables
func Connect(opts Options) (*DB, error) {
	dialect, err := DialectFor(opts.Type)
	if err != nil {
		return nil, err
	}

	dsn, err := dialect.DSN(opts)
	if err != nil {
		return nil, err
	}

	if dialect.DriverName() == "sqlite3" && !isMemoryPath(dsn) {
		// Create data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	conn, err := sqlx.Connect(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := dialect.Configure(conn); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{DB: conn, Dialect: dialect}
	if err := db.initializeSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	return db.DB.Close()
}

// initializeSchema creates necessary tables if they don't exist
func (db *DB) initializeSchema() error {
	for _, stmt := range db.Dialect.Schema() {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}

func isMemoryPath(path string) bool {
	return path == ":memory:" || strings.HasPrefix(path, "file::memory:")
}
