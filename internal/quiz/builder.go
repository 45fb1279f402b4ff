package quiz

import (
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/wordquiz/pkg/models"
)

// Filter selects the words eligible for a session
type Filter func(models.Word) bool

// CategoryFilter matches words of one category; "" and "all" match every word
func CategoryFilter(category string) Filter {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return func(models.Word) bool { return true }
	}
	return func(w models.Word) bool { return w.Category == category }
}

// InputEligibleFilter matches words usable in free-text mode
func InputEligibleFilter(w models.Word) bool {
	return w.InputEligible
}

// AllOf matches words accepted by every filter
func AllOf(filters ...Filter) Filter {
	return func(w models.Word) bool {
		for _, f := range filters {
			if f != nil && !f(w) {
				return false
			}
		}
		return true
	}
}

// Builder selects and orders the words of a session
type Builder struct {
	scorer *Scorer
	rnd    *rand.Rand
	clock  func() time.Time
}

// NewBuilder creates a builder; a nil rnd is seeded from the clock
func NewBuilder(scorer *Scorer, rnd *rand.Rand, clock func() time.Time) *Builder {
	if clock == nil {
		clock = time.Now
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Builder{scorer: scorer, rnd: rnd, clock: clock}
}

// Build draws up to count words from the filtered corpus. The highest-priority
// words are over-sampled into a window of twice the count, which is shuffled
// before truncation. A count of 0 or less means the whole pool.
func (b *Builder) Build(corpus []models.Word, filter Filter, count int) (*Session, error) {
	pool := make([]models.Word, 0, len(corpus))
	for _, w := range corpus {
		if filter == nil || filter(w) {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoMatchingWords
	}

	if count <= 0 || count > len(pool) {
		count = len(pool)
	}

	scores := b.scorer.Scores(pool)
	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	window := count * 2
	if window > len(pool) {
		window = len(pool)
	}
	candidates := make([]models.Word, window)
	for i := 0; i < window; i++ {
		candidates[i] = pool[order[i]]
	}
	b.shuffle(candidates)

	s := newSession(uuid.NewString(), KindNormal, candidates[:count], b.clock())
	s.State = StateInProgress
	return s, nil
}

// BuildRemediation replays exactly the missed words in random order
func (b *Builder) BuildRemediation(missed []models.Word) (*Session, error) {
	words := make([]models.Word, 0, len(missed))
	seen := make(map[string]bool, len(missed))
	for _, w := range missed {
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, ErrNothingToReview
	}

	b.shuffle(words)

	s := newSession(uuid.NewString(), KindRemediation, words, b.clock())
	s.State = StateInProgress
	return s, nil
}

func (b *Builder) shuffle(words []models.Word) {
	b.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
