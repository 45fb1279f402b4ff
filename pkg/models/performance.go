package models

import "time"

// PerformanceRecord tracks how a user has done with a single word across sessions
type PerformanceRecord struct {
	Seen           int        `json:"seen"`
	Correct        int        `json:"correct"`
	Wrong          int        `json:"wrong"`
	LastAnsweredAt *time.Time `json:"lastAnsweredAt"` // nil if never answered
}

// Consistent reports whether the counters satisfy Correct + Wrong == Seen
func (p PerformanceRecord) Consistent() bool {
	return p.Seen >= 0 && p.Correct >= 0 && p.Wrong >= 0 && p.Correct+p.Wrong == p.Seen
}

// Accuracy returns Correct/Seen, or 0 for an unseen word
func (p PerformanceRecord) Accuracy() float64 {
	if p.Seen == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Seen)
}
