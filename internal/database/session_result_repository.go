package database

import (
	"context"
	"fmt"
	"time"

	"github.com/example/wordquiz/pkg/models"
)

// SessionResultRepository handles database operations for finished quiz sessions
type SessionResultRepository struct {
	db *DB
}

// NewSessionResultRepository creates a new repository instance
func NewSessionResultRepository(db *DB) *SessionResultRepository {
	return &SessionResultRepository{db: db}
}

// Create inserts a new session result
func (r *SessionResultRepository) Create(ctx context.Context, result *models.SessionResult) error {
	if result.CompletedAt.IsZero() {
		result.CompletedAt = time.Now().UTC()
	}
	if result.StartedAt.IsZero() {
		result.StartedAt = result.CompletedAt
	}

	query := r.db.Rebind(`
		INSERT INTO session_results (
			id, kind, direction, style, category,
			total_words, correct_words, started_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.Kind,
		result.Direction,
		result.Style,
		result.Category,
		result.TotalWords,
		result.CorrectWords,
		result.StartedAt,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session result: %w", err)
	}
	return nil
}

// Recent returns the latest session results, newest first
func (r *SessionResultRepository) Recent(ctx context.Context, limit int) ([]models.SessionResult, error) {
	if limit <= 0 {
		limit = 10
	}
	var results []models.SessionResult
	query := r.db.Rebind(`
		SELECT id, kind, direction, style, category, total_words, correct_words, started_at, completed_at
		FROM session_results
		ORDER BY completed_at DESC
		LIMIT ?
	`)
	if err := r.db.SelectContext(ctx, &results, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get session results: %w", err)
	}
	return results, nil
}

// Totals summarizes every recorded session
type Totals struct {
	Sessions     int `db:"sessions"`
	TotalWords   int `db:"total_words"`
	CorrectWords int `db:"correct_words"`
}

// GetTotals returns the number of sessions and words answered since the given time
func (r *SessionResultRepository) GetTotals(ctx context.Context, since time.Time) (Totals, error) {
	var totals Totals
	query := r.db.Rebind(`
		SELECT COUNT(*) AS sessions,
		       COALESCE(SUM(total_words), 0) AS total_words,
		       COALESCE(SUM(correct_words), 0) AS correct_words
		FROM session_results
		WHERE completed_at >= ?
	`)
	if err := r.db.GetContext(ctx, &totals, query, since); err != nil {
		return Totals{}, fmt.Errorf("failed to get session totals: %w", err)
	}
	return totals, nil
}

// DeleteAll removes every session result
func (r *SessionResultRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM session_results"); err != nil {
		return fmt.Errorf("failed to delete session results: %w", err)
	}
	return nil
}
