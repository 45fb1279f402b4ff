package models

import "time"

// SessionResult is the history row written when a quiz session completes
type SessionResult struct {
	ID           string    `json:"id" db:"id"`
	Kind         string    `json:"kind" db:"kind"`           // "normal" or "remediation"
	Direction    string    `json:"direction" db:"direction"` // "forward" or "reverse"
	Style        string    `json:"style" db:"style"`         // "choice" or "input"
	Category     string    `json:"category" db:"category"`
	TotalWords   int       `json:"total_words" db:"total_words"`
	CorrectWords int       `json:"correct_words" db:"correct_words"`
	StartedAt    time.Time `json:"started_at" db:"started_at"`
	CompletedAt  time.Time `json:"completed_at" db:"completed_at"`
}

// Percent returns the share of correct answers, 0 for an empty session
func (r SessionResult) Percent() float64 {
	if r.TotalWords == 0 {
		return 0
	}
	return float64(r.CorrectWords) / float64(r.TotalWords) * 100
}
