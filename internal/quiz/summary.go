package quiz

import (
	"math"
	"time"

	"github.com/example/wordquiz/pkg/models"
)

// Outcome classifies a finished session
type Outcome string

const (
	// OutcomePerfect means every question of a normal session was right
	OutcomePerfect Outcome = "perfect"
	// OutcomeReviewCleared means every missed word was answered right on review
	OutcomeReviewCleared Outcome = "review_cleared"
	// OutcomeNeedsReview means at least one word was missed
	OutcomeNeedsReview Outcome = "needs_review"
)

// Message returns the text shown at the end of a session
func (o Outcome) Message() string {
	switch o {
	case OutcomePerfect:
		return "All correct! Keep it up."
	case OutcomeReviewCleared:
		return "You got every previously missed word right this time."
	default:
		return "Choose review to practice only the words you missed."
	}
}

// Summary is the score of a session
type Summary struct {
	SessionID string
	Kind      Kind
	Total     int
	Correct   int
	Answered  int
	Percent   float64 // Rounded to one decimal
	Outcome   Outcome
	Missed    []string
}

// Summarize scores a session
func Summarize(s *Session) Summary {
	sum := Summary{
		SessionID: s.ID,
		Kind:      s.Kind,
		Total:     s.Len(),
		Correct:   s.CorrectCount,
		Missed:    s.Missed(),
	}
	for _, judged := range s.judged {
		if judged {
			sum.Answered++
		}
	}
	if sum.Total > 0 {
		sum.Percent = math.Round(float64(sum.Correct)/float64(sum.Total)*1000) / 10
	}

	switch {
	case sum.Total > 0 && sum.Correct == sum.Total && s.Kind == KindRemediation:
		sum.Outcome = OutcomeReviewCleared
	case sum.Total > 0 && sum.Correct == sum.Total:
		sum.Outcome = OutcomePerfect
	default:
		sum.Outcome = OutcomeNeedsReview
	}
	return sum
}

// newSessionResult converts a completed session to its history row
func newSessionResult(s *Session, sum Summary, completedAt time.Time) *models.SessionResult {
	return &models.SessionResult{
		ID:           s.ID,
		Kind:         string(s.Kind),
		Direction:    string(s.Settings.Direction),
		Style:        string(s.Settings.Style),
		Category:     s.Settings.Category,
		TotalWords:   sum.Total,
		CorrectWords: sum.Correct,
		StartedAt:    s.StartedAt,
		CompletedAt:  completedAt,
	}
}
