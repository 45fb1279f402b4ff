package quiz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wordquiz/pkg/models"
)

func newTestEngine(t *testing.T, corpus []models.Word, opts ...Option) (*Engine, *PerformanceStore) {
	t.Helper()
	store := newTestStore(nil)
	opts = append([]Option{WithClock(fixedClock), WithRand(seededRand()), WithLogger(discardLogger())}, opts...)
	engine, err := New(corpus, store, opts...)
	require.NoError(t, err)
	return engine, store
}

// play answers every question, missing the words in miss
func play(t *testing.T, ctx context.Context, engine *Engine, miss map[string]bool) {
	t.Helper()
	for {
		q, err := engine.Question()
		require.NoError(t, err)

		index := q.CorrectIndex
		if miss[q.Word.ID] {
			index = (q.CorrectIndex + 1) % len(q.Options)
		}
		j, err := engine.Choose(ctx, index)
		require.NoError(t, err)
		assert.Equal(t, !miss[q.Word.ID], j.Correct)

		done, err := engine.Next(ctx)
		require.NoError(t, err)
		if done {
			return
		}
	}
}

func TestNewRequiresWords(t *testing.T) {
	_, err := New(nil, newTestStore(nil))
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestEngineSessionAndReview(t *testing.T) {
	ctx := context.Background()
	history := &historyStub{}
	engine, store := newTestEngine(t, testWords(10), WithHistory(history))

	s, err := engine.Start(ctx, Settings{Count: 4})
	require.NoError(t, err)
	require.Equal(t, 4, s.Len())
	words := s.Words()

	miss := map[string]bool{words[1].ID: true, words[3].ID: true}
	play(t, ctx, engine, miss)

	sum, err := engine.Summary()
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, 2, sum.Correct)
	assert.Equal(t, 50.0, sum.Percent)
	assert.Equal(t, OutcomeNeedsReview, sum.Outcome)
	assert.ElementsMatch(t, []string{words[1].ID, words[3].ID}, sum.Missed)
	assert.Equal(t, 2, engine.ReviewSize())

	require.Len(t, history.results, 1)
	assert.Equal(t, s.ID, history.results[0].ID)
	assert.Equal(t, "normal", history.results[0].Kind)
	assert.Equal(t, 2, history.results[0].CorrectWords)

	for _, w := range words {
		record, ok := store.Get(w.ID)
		require.True(t, ok)
		assert.Equal(t, 1, record.Seen)
	}

	review, err := engine.StartReview(ctx)
	require.NoError(t, err)
	assert.Equal(t, KindRemediation, review.Kind)
	assert.ElementsMatch(t, []string{words[1].ID, words[3].ID}, ids(review.Words()))

	play(t, ctx, engine, nil)

	sum, err = engine.Summary()
	require.NoError(t, err)
	assert.Equal(t, OutcomeReviewCleared, sum.Outcome)
	assert.Equal(t, 100.0, sum.Percent)
	assert.Zero(t, engine.ReviewSize())
	assert.Len(t, history.results, 2)

	_, err = engine.StartReview(ctx)
	assert.ErrorIs(t, err, ErrNothingToReview)
}

func TestEnginePerfectSession(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(6))

	_, err := engine.Start(ctx, Settings{Count: 3})
	require.NoError(t, err)
	play(t, ctx, engine, nil)

	sum, err := engine.Summary()
	require.NoError(t, err)
	assert.Equal(t, OutcomePerfect, sum.Outcome)

	_, err = engine.StartReview(ctx)
	assert.ErrorIs(t, err, ErrNothingToReview)
}

func TestEngineReviewWithoutMisses(t *testing.T) {
	engine, _ := newTestEngine(t, testWords(3))

	s, err := engine.StartReview(context.Background())
	assert.ErrorIs(t, err, ErrNothingToReview)
	assert.Nil(t, s)
	assert.Nil(t, engine.Session())
}

func TestEngineStartFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(6))

	s, err := engine.Start(ctx, Settings{Count: 2})
	require.NoError(t, err)

	_, err = engine.Start(ctx, Settings{Category: "2031"})
	assert.ErrorIs(t, err, ErrNoMatchingWords)
	assert.Same(t, s, engine.Session())
}

func TestEngineFreeText(t *testing.T) {
	ctx := context.Background()
	corpus := []models.Word{
		{ID: "run", Source: "run", Target: "走る", InputEligible: true},
		{ID: "dog", Source: "dog", Target: "犬"},
	}
	engine, store := newTestEngine(t, corpus)

	s, err := engine.Start(ctx, Settings{Direction: Reverse, Style: FreeText})
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	q, err := engine.Question()
	require.NoError(t, err)
	assert.Equal(t, "走る", q.Prompt)
	assert.Empty(t, q.Options)

	_, err = engine.Choose(ctx, 0)
	assert.ErrorIs(t, err, ErrWrongStyle)

	j, err := engine.Answer(ctx, " Run ")
	require.NoError(t, err)
	assert.True(t, j.Correct)
	assert.False(t, j.Repeat)
	assert.Equal(t, "run", j.Expected)

	j, err = engine.Answer(ctx, "walk")
	require.NoError(t, err)
	assert.True(t, j.Repeat)
	assert.True(t, j.Correct)

	record, _ := store.Get("run")
	assert.Equal(t, 1, record.Seen)
}

func TestEngineChoiceErrors(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(5))

	_, err := engine.Question()
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = engine.Next(ctx)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = engine.Start(ctx, Settings{Count: 2})
	require.NoError(t, err)

	_, err = engine.Answer(ctx, "target0")
	assert.ErrorIs(t, err, ErrWrongStyle)
	_, err = engine.Choose(ctx, 4)
	assert.ErrorIs(t, err, ErrInvalidChoice)
	_, err = engine.Choose(ctx, -1)
	assert.ErrorIs(t, err, ErrInvalidChoice)

	_, err = engine.Next(ctx)
	assert.ErrorIs(t, err, ErrNotAnswered)
}

func TestEngineQuestionIsStable(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(8))

	_, err := engine.Start(ctx, Settings{Count: 3})
	require.NoError(t, err)

	first, err := engine.Question()
	require.NoError(t, err)
	again, err := engine.Question()
	require.NoError(t, err)
	assert.Equal(t, first, again)

	_, err = engine.Choose(ctx, first.CorrectIndex)
	require.NoError(t, err)
	_, err = engine.Next(ctx)
	require.NoError(t, err)

	next, err := engine.Question()
	require.NoError(t, err)
	assert.Equal(t, 1, next.Index)
	assert.Equal(t, 3, next.Total)
}

func TestEngineNewSessionResetsReview(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(4))

	_, err := engine.Start(ctx, Settings{Count: 1})
	require.NoError(t, err)
	q, err := engine.Question()
	require.NoError(t, err)
	_, err = engine.Choose(ctx, (q.CorrectIndex+1)%len(q.Options))
	require.NoError(t, err)
	assert.Equal(t, 1, engine.ReviewSize())

	_, err = engine.Retry(ctx)
	require.NoError(t, err)
	assert.Zero(t, engine.ReviewSize())
}

func TestEngineRetryUsesLastSettings(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(10))

	_, err := engine.Start(ctx, Settings{Direction: Reverse, Category: "2", Count: 3})
	require.NoError(t, err)

	s, err := engine.Retry(ctx)
	require.NoError(t, err)
	assert.Equal(t, Settings{Direction: Reverse, Style: MultipleChoice, Category: "2", Count: 3}, s.Settings)
	assert.Equal(t, 3, s.Len())
	for _, w := range s.Words() {
		assert.Equal(t, "2", w.Category)
	}
}

func TestEngineAbandon(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t, testWords(4))

	_, err := engine.Start(ctx, Settings{Count: 2})
	require.NoError(t, err)
	q, err := engine.Question()
	require.NoError(t, err)
	_, err = engine.Choose(ctx, (q.CorrectIndex+1)%len(q.Options))
	require.NoError(t, err)

	engine.Abandon()
	assert.Nil(t, engine.Session())
	_, err = engine.Question()
	assert.ErrorIs(t, err, ErrNoSession)
	_, err = engine.Summary()
	assert.ErrorIs(t, err, ErrNoSession)

	record, ok := store.Get(q.Word.ID)
	require.True(t, ok)
	assert.Equal(t, 1, record.Wrong)

	review, err := engine.StartReview(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{q.Word.ID}, ids(review.Words()))
}

func TestEngineReplaceCorpus(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(4))
	replacement := []models.Word{{ID: "new", Source: "new", Target: "新しい", Category: "9"}}

	assert.ErrorIs(t, engine.ReplaceCorpus(nil), ErrEmptyCorpus)

	_, err := engine.Start(ctx, Settings{Count: 2})
	require.NoError(t, err)
	require.NoError(t, engine.ReplaceCorpus(replacement))
	assert.Len(t, engine.Corpus(), 4)

	engine.Abandon()
	assert.Equal(t, []string{"new"}, ids(engine.Corpus()))
	assert.Equal(t, []string{"9"}, engine.Categories())

	require.NoError(t, engine.ReplaceCorpus(testWords(3)))
	assert.Len(t, engine.Corpus(), 3)
}

func TestEngineStartUsesPendingCorpus(t *testing.T) {
	ctx := context.Background()
	engine, _ := newTestEngine(t, testWords(4))

	_, err := engine.Start(ctx, Settings{Count: 2})
	require.NoError(t, err)
	require.NoError(t, engine.ReplaceCorpus([]models.Word{{ID: "new", Source: "new", Target: "新しい"}}))

	s, err := engine.Start(ctx, Settings{})
	require.NoError(t, err)
	assert.Equal(t, []string{"new"}, ids(s.Words()))
	assert.Len(t, engine.Corpus(), 1)
}

func TestEngineHistoryFailureIsLogged(t *testing.T) {
	ctx := context.Background()
	history := &historyStub{err: errors.New("database is locked")}
	engine, _ := newTestEngine(t, testWords(3), WithHistory(history))

	_, err := engine.Start(ctx, Settings{Count: 1})
	require.NoError(t, err)
	play(t, ctx, engine, nil)

	sum, err := engine.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Total)
}

func TestEngineCategoryStats(t *testing.T) {
	ctx := context.Background()
	engine, store := newTestEngine(t, testWords(6))
	store.Record(ctx, "w0", true)
	store.Record(ctx, "w0", false)
	store.Record(ctx, "w1", true)

	stats := engine.CategoryStats()
	require.Len(t, stats, 2)

	assert.Equal(t, models.CategoryStatistics{Category: "1", TotalWords: 3, SeenWords: 1, Answers: 2, Correct: 1, Accuracy: 0.5}, stats[0])
	assert.Equal(t, models.CategoryStatistics{Category: "2", TotalWords: 3, SeenWords: 1, Answers: 1, Correct: 1, Accuracy: 1}, stats[1])
	assert.Equal(t, []string{"1", "2"}, engine.Categories())
}

func TestSummarize(t *testing.T) {
	words := testWords(3)
	s := inProgress(words...)
	s.CorrectCount = 2
	s.judged[0], s.judged[1] = true, true

	sum := Summarize(s)
	assert.Equal(t, 66.7, sum.Percent)
	assert.Equal(t, 2, sum.Answered)
	assert.Equal(t, OutcomeNeedsReview, sum.Outcome)
	assert.NotEmpty(t, sum.Outcome.Message())
}
