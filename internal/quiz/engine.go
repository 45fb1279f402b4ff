package quiz

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/example/wordquiz/pkg/models"
)

// HistoryRepository stores completed session results
type HistoryRepository interface {
	Create(ctx context.Context, result *models.SessionResult) error
}

// Judgment is the outcome of answering the current question
type Judgment struct {
	Correct  bool
	Expected string
	Given    string
	Repeat   bool // The question had already been judged, nothing was recorded
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithClock sets the clock used for scoring and timestamps
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithRand sets the random source for shuffles
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) {
		if rnd != nil {
			e.rnd = rnd
		}
	}
}

// WithScoring sets the priority weights
func WithScoring(config ScoringConfig) Option {
	return func(e *Engine) {
		e.scoring = config
	}
}

// WithOptionCount sets the number of choices in multiple choice questions
func WithOptionCount(n int) Option {
	return func(e *Engine) {
		if n >= 2 {
			e.optionCount = n
		}
	}
}

// WithHistory sets where completed sessions are recorded
func WithHistory(history HistoryRepository) Option {
	return func(e *Engine) {
		e.history = history
	}
}

// Engine owns the corpus, the performance store and the active session
type Engine struct {
	mu sync.Mutex

	corpus  []models.Word
	pending []models.Word // Replacement corpus waiting for the active session to end

	store    *PerformanceStore
	scorer   *Scorer
	builder  *Builder
	recorder *Recorder
	history  HistoryRepository

	session  *Session
	question *Question
	judgment *Judgment
	last     *Settings
	review   []models.Word // Words to replay in the next review

	scoring     ScoringConfig
	optionCount int
	logger      *slog.Logger
	clock       func() time.Time
	rnd         *rand.Rand
}

// New creates an engine over a non-empty corpus
func New(corpus []models.Word, store *PerformanceStore, opts ...Option) (*Engine, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	e := &Engine{
		corpus:      append([]models.Word(nil), corpus...),
		store:       store,
		scoring:     DefaultScoringConfig(),
		optionCount: DefaultOptionCount,
		logger:      slog.Default(),
		clock:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(e.clock().UnixNano()))
	}

	e.scorer = NewScorer(e.scoring, store, e.clock)
	e.builder = NewBuilder(e.scorer, e.rnd, e.clock)
	e.recorder = NewRecorder(store)
	return e, nil
}

// Start begins a normal session. On failure the current state is kept.
func (e *Engine) Start(ctx context.Context, settings Settings) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.start(ctx, settings.normalized())
}

// Retry begins a new normal session with the last used settings
func (e *Engine) Retry(ctx context.Context) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	settings := Settings{}.normalized()
	if e.last != nil {
		settings = *e.last
	}
	return e.start(ctx, settings)
}

func (e *Engine) start(ctx context.Context, settings Settings) (*Session, error) {
	e.store.ensureLoaded(ctx)

	// A new session replaces the active one, so a waiting corpus can be used now
	corpus := e.corpus
	if e.pending != nil {
		corpus = e.pending
	}
	s, err := e.builder.Build(corpus, settings.Filter(), settings.Count)
	if err != nil {
		return nil, err
	}
	s.Settings = settings
	if e.pending != nil {
		e.corpus = e.pending
		e.pending = nil
		e.logger.Info("word list replaced", "words", len(e.corpus))
	}

	e.setSession(s)
	e.last = &settings
	e.review = nil

	e.logger.Info("session started", "session_id", s.ID, "kind", s.Kind,
		"words", s.Len(), "category", settings.Category, "style", settings.Style)
	return s, nil
}

// StartReview begins a remediation session over the missed words
func (e *Engine) StartReview(ctx context.Context) (*Session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.ensureLoaded(ctx)
	s, err := e.builder.BuildRemediation(e.review)
	if err != nil {
		return nil, err
	}

	settings := Settings{}.normalized()
	if e.last != nil {
		settings = *e.last
	}
	settings.Category = ""
	settings.Count = s.Len()
	s.Settings = settings

	e.setSession(s)

	e.logger.Info("review started", "session_id", s.ID, "words", s.Len())
	return s, nil
}

func (e *Engine) setSession(s *Session) {
	e.session = s
	e.question = nil
	e.judgment = nil
}

// Session returns the active session, nil if none
func (e *Engine) Session() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Question returns the question at the cursor; it stays the same until Next
func (e *Engine) Question() (Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, err := e.current()
	if err != nil {
		return Question{}, err
	}
	return *q, nil
}

func (e *Engine) current() (*Question, error) {
	if e.session == nil {
		return nil, ErrNoSession
	}
	word, ok := e.session.Current()
	if !ok {
		return nil, ErrSessionCompleted
	}
	if e.question == nil || e.question.Index != e.session.Cursor {
		q := newQuestion(word, e.session.Cursor, e.session.Len(), e.session.Settings, e.corpus, e.optionCount, e.rnd)
		e.question = &q
		e.judgment = nil
	}
	return e.question, nil
}

// Answer judges typed text for a free-text question
func (e *Engine) Answer(ctx context.Context, text string) (Judgment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, err := e.current()
	if err != nil {
		return Judgment{}, err
	}
	if q.Style != FreeText {
		return Judgment{}, ErrWrongStyle
	}
	return e.judge(ctx, q, text, CheckAnswer(text, q.Acceptable))
}

// Choose judges the option at index for a multiple choice question
func (e *Engine) Choose(ctx context.Context, index int) (Judgment, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, err := e.current()
	if err != nil {
		return Judgment{}, err
	}
	if q.Style != MultipleChoice {
		return Judgment{}, ErrWrongStyle
	}
	if index < 0 || index >= len(q.Options) {
		return Judgment{}, ErrInvalidChoice
	}
	given := q.Options[index]
	return e.judge(ctx, q, given, given == q.Answer)
}

func (e *Engine) judge(ctx context.Context, q *Question, given string, correct bool) (Judgment, error) {
	recorded, err := e.recorder.Submit(ctx, e.session, q.Word, correct)
	if err != nil {
		return Judgment{}, err
	}
	if !recorded {
		// Repeated answers keep the first judgment
		j := Judgment{Expected: q.Answer, Given: given, Repeat: true}
		if e.judgment != nil {
			j = *e.judgment
			j.Repeat = true
		}
		return j, nil
	}

	if !correct && e.session.Kind == KindNormal {
		e.addReview(q.Word)
	}
	e.judgment = &Judgment{Correct: correct, Expected: q.Answer, Given: given}
	return *e.judgment, nil
}

func (e *Engine) addReview(word models.Word) {
	for _, w := range e.review {
		if w.ID == word.ID {
			return
		}
	}
	e.review = append(e.review, word)
}

// Next advances past the judged question. It reports whether the session has completed.
func (e *Engine) Next(ctx context.Context) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return false, ErrNoSession
	}
	if err := e.session.Advance(); err != nil {
		return false, err
	}
	e.question = nil
	e.judgment = nil

	if !e.session.Completed() {
		return false, nil
	}
	e.complete(ctx)
	return true, nil
}

// complete stores the history row and seeds the next review
func (e *Engine) complete(ctx context.Context) {
	s := e.session
	sum := Summarize(s)

	missed := make([]models.Word, 0, len(sum.Missed))
	missedSet := make(map[string]bool, len(sum.Missed))
	for _, id := range sum.Missed {
		missedSet[id] = true
	}
	for _, w := range s.words {
		if missedSet[w.ID] {
			missed = append(missed, w)
		}
	}
	e.review = missed

	e.logger.Info("session completed", "session_id", s.ID, "kind", s.Kind,
		"correct", sum.Correct, "total", sum.Total, "percent", sum.Percent)

	if e.history != nil {
		if err := e.history.Create(ctx, newSessionResult(s, sum, e.clock())); err != nil {
			e.logger.Warn("failed to save session result", "session_id", s.ID, "error", err)
		}
	}
	e.applyPending()
}

// Abandon discards the active session. Performance already recorded is kept.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != nil {
		e.logger.Info("session abandoned", "session_id", e.session.ID, "cursor", e.session.Cursor)
	}
	e.setSession(nil)
	e.applyPending()
}

// Summary scores the active or just completed session
func (e *Engine) Summary() (Summary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session == nil {
		return Summary{}, ErrNoSession
	}
	return Summarize(e.session), nil
}

// ReviewSize returns the number of words waiting for review
func (e *Engine) ReviewSize() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.review)
}

// ReplaceCorpus swaps in a new word list. While a session is in progress the
// swap waits until it ends so the running session keeps its distractor pool.
func (e *Engine) ReplaceCorpus(words []models.Word) error {
	if len(words) == 0 {
		return ErrEmptyCorpus
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = append([]models.Word(nil), words...)
	e.applyPending()
	return nil
}

// applyPending installs a waiting corpus when no session is in progress
func (e *Engine) applyPending() {
	if e.pending == nil {
		return
	}
	if e.session != nil && !e.session.Completed() {
		return
	}
	e.corpus = e.pending
	e.pending = nil
	e.logger.Info("word list replaced", "words", len(e.corpus))
}

// Corpus returns a copy of the current word list
func (e *Engine) Corpus() []models.Word {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Word(nil), e.corpus...)
}

// CategoryStats summarizes performance for each category of the corpus
func (e *Engine) CategoryStats() []models.CategoryStatistics {
	e.mu.Lock()
	defer e.mu.Unlock()
	return categoryStats(e.corpus, e.store.Snapshot())
}

// Categories lists the categories present in the corpus
func (e *Engine) Categories() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return categories(e.corpus)
}
