package quiz

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/wordquiz/pkg/models"
)

// Kind distinguishes normal sessions from review rounds
type Kind string

const (
	// KindNormal is a session drawn from the corpus by priority
	KindNormal Kind = "normal"
	// KindRemediation replays the words missed in the preceding session
	KindRemediation Kind = "remediation"
)

// State is the lifecycle stage of a session
type State int

const (
	// StateBuilding is a session whose words are still being selected
	StateBuilding State = iota
	// StateInProgress is a session with questions left to answer
	StateInProgress
	// StateCompleted is a session whose questions have all been consumed
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Direction is the quiz direction
type Direction string

const (
	// Forward shows the source word and asks for the target
	Forward Direction = "forward"
	// Reverse shows the target word and asks for the source
	Reverse Direction = "reverse"
)

// ParseDirection accepts forward/reverse and the en-ja/ja-en aliases
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "forward", "en-ja":
		return Forward, nil
	case "reverse", "ja-en":
		return Reverse, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Style is the answer style
type Style string

const (
	// MultipleChoice asks the user to pick one of several options
	MultipleChoice Style = "choice"
	// FreeText asks the user to type the answer
	FreeText Style = "input"
)

// ParseStyle accepts choice/input and their long names
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "choice", "multiple_choice", "multiple-choice":
		return MultipleChoice, nil
	case "input", "text", "free_text", "free-text":
		return FreeText, nil
	}
	return "", fmt.Errorf("unknown style %q", s)
}

// Settings are the user's choices for a session
type Settings struct {
	Direction Direction
	Style     Style
	Category  string // "" or "all" for every category
	Count     int    // 0 for the whole pool
}

// normalized fills defaults
func (s Settings) normalized() Settings {
	if s.Direction == "" {
		s.Direction = Forward
	}
	if s.Style == "" {
		s.Style = MultipleChoice
	}
	if s.Count < 0 {
		s.Count = 0
	}
	return s
}

// Filter returns the word predicate for these settings
func (s Settings) Filter() Filter {
	if s.Style == FreeText {
		return AllOf(CategoryFilter(s.Category), InputEligibleFilter)
	}
	return CategoryFilter(s.Category)
}

// Session is one ordered run of words
type Session struct {
	ID           string
	Kind         Kind
	Settings     Settings
	State        State
	Cursor       int
	CorrectCount int
	StartedAt    time.Time

	words     []models.Word
	judged    []bool
	missed    []string
	missedSet map[string]bool
}

func newSession(id string, kind Kind, words []models.Word, startedAt time.Time) *Session {
	return &Session{
		ID:        id,
		Kind:      kind,
		State:     StateBuilding,
		StartedAt: startedAt,
		words:     words,
		judged:    make([]bool, len(words)),
		missed:    make([]string, 0),
		missedSet: make(map[string]bool),
	}
}

// Len returns the number of questions
func (s *Session) Len() int {
	return len(s.words)
}

// Words returns a copy of the session's word order
func (s *Session) Words() []models.Word {
	return append([]models.Word(nil), s.words...)
}

// Current returns the word at the cursor
func (s *Session) Current() (models.Word, bool) {
	if s.Cursor >= len(s.words) {
		return models.Word{}, false
	}
	return s.words[s.Cursor], true
}

// CurrentJudged reports whether the question at the cursor has been judged
func (s *Session) CurrentJudged() bool {
	return s.Cursor < len(s.judged) && s.judged[s.Cursor]
}

// Missed returns the ids answered incorrectly, in order of first miss
func (s *Session) Missed() []string {
	return append([]string(nil), s.missed...)
}

// Completed reports whether all questions have been consumed
func (s *Session) Completed() bool {
	return s.State == StateCompleted
}

// Advance moves past the current question once it has been judged
func (s *Session) Advance() error {
	if s.State == StateCompleted {
		return ErrSessionCompleted
	}
	if !s.CurrentJudged() {
		return ErrNotAnswered
	}
	s.Cursor++
	if s.Cursor >= len(s.words) {
		s.State = StateCompleted
	}
	return nil
}

// markMissed adds the word to the missed set once
func (s *Session) markMissed(id string) {
	if s.missedSet[id] {
		return
	}
	s.missedSet[id] = true
	s.missed = append(s.missed, id)
}
