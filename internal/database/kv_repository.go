package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVRepository stores named records, each holding one serialized value
type KVRepository struct {
	db *DB
}

// NewKVRepository creates a new repository instance
func NewKVRepository(db *DB) *KVRepository {
	return &KVRepository{db: db}
}

// Get returns the value stored under name, or nil if there is none
func (r *KVRepository) Get(ctx context.Context, name string) ([]byte, error) {
	var value string
	err := r.db.GetContext(ctx, &value, r.db.Rebind("SELECT value FROM kv_records WHERE name = ?"), name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %q: %w", name, err)
	}
	return []byte(value), nil
}

// Put replaces the value stored under name
func (r *KVRepository) Put(ctx context.Context, name string, value []byte) error {
	query := r.db.Rebind(r.db.Dialect.UpsertRecord())
	if _, err := r.db.ExecContext(ctx, query, name, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to put record %q: %w", name, err)
	}
	return nil
}

// Delete removes the record stored under name
func (r *KVRepository) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind("DELETE FROM kv_records WHERE name = ?"), name); err != nil {
		return fmt.Errorf("failed to delete record %q: %w", name, err)
	}
	return nil
}
