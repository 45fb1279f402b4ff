package quiz

import (
	"context"

	"github.com/example/wordquiz/pkg/models"
)

// Recorder applies judged answers to the session and the performance store
type Recorder struct {
	store *PerformanceStore
}

// NewRecorder creates a recorder writing to store
func NewRecorder(store *PerformanceStore) *Recorder {
	return &Recorder{store: store}
}

// Submit records the outcome for the word at the session's cursor. It returns
// false without side effects when that question was already judged.
func (r *Recorder) Submit(ctx context.Context, s *Session, word models.Word, correct bool) (bool, error) {
	if s == nil {
		return false, ErrNoSession
	}
	if s.State == StateCompleted {
		return false, ErrSessionCompleted
	}
	current, ok := s.Current()
	if !ok || current.ID != word.ID {
		return false, ErrNotCurrentQuestion
	}
	if s.judged[s.Cursor] {
		return false, nil
	}

	s.judged[s.Cursor] = true
	if correct {
		s.CorrectCount++
	} else {
		s.markMissed(word.ID)
	}

	r.store.Record(ctx, word.ID, correct)
	return true, nil
}
