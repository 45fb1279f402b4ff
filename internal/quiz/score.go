package quiz

import (
	"time"

	"github.com/example/wordquiz/pkg/models"
)

// ScoringConfig holds the weights of the priority heuristic
type ScoringConfig struct {
	// Score of a word that was never answered, kept far above any computed score
	UnseenScore float64
	// Points contributed by a fully inaccurate record
	AccuracyWeight float64
	// Maximum number of days counted for staleness
	RecencyCapDays float64
	// Length of one day
	Day time.Duration
}

// DefaultScoringConfig returns the standard weights
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		UnseenScore:    1000,
		AccuracyWeight: 10,
		RecencyCapDays: 10,
		Day:            24 * time.Hour,
	}
}

// Score computes the urgency of a word from its performance record.
// Unseen words get UnseenScore; otherwise inaccuracy and staleness add up.
func (c ScoringConfig) Score(record models.PerformanceRecord, ok bool, now time.Time) float64 {
	if !ok || record.Seen == 0 {
		return c.UnseenScore
	}

	days := c.RecencyCapDays
	if record.LastAnsweredAt != nil {
		day := c.Day
		if day <= 0 {
			day = 24 * time.Hour
		}
		elapsed := now.Sub(*record.LastAnsweredAt)
		if elapsed < 0 {
			elapsed = 0 // Clock skew
		}
		days = float64(elapsed) / float64(day)
	}
	if days > c.RecencyCapDays {
		days = c.RecencyCapDays
	}

	return (1-record.Accuracy())*c.AccuracyWeight + days
}

// Scorer scores words against the performance store
type Scorer struct {
	config ScoringConfig
	store  *PerformanceStore
	clock  func() time.Time
}

// NewScorer creates a scorer; a nil clock uses time.Now
func NewScorer(config ScoringConfig, store *PerformanceStore, clock func() time.Time) *Scorer {
	if clock == nil {
		clock = time.Now
	}
	return &Scorer{config: config, store: store, clock: clock}
}

// Config returns the scoring weights
func (s *Scorer) Config() ScoringConfig {
	return s.config
}

// ScoreWord returns the current priority of a single word
func (s *Scorer) ScoreWord(word models.Word) float64 {
	record, ok := s.store.Get(word.ID)
	return s.config.Score(record, ok, s.clock())
}

// Scores returns the priority of each word, evaluated at one instant
func (s *Scorer) Scores(words []models.Word) []float64 {
	now := s.clock()
	records := s.store.Snapshot()

	scores := make([]float64, len(words))
	for i, w := range words {
		record, ok := records[w.ID]
		scores[i] = s.config.Score(record, ok, now)
	}
	return scores
}
