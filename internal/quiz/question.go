package quiz

import (
	"math/rand"

	"github.com/example/wordquiz/pkg/models"
)

// DefaultOptionCount is the number of choices shown for a multiple choice question
const DefaultOptionCount = 4

// Question is the word at the cursor rendered for the session settings
type Question struct {
	Index        int // 0-based position in the session
	Total        int
	Word         models.Word
	Direction    Direction
	Style        Style
	Prompt       string
	Answer       string   // The expected answer text
	Acceptable   []string // Answers accepted for free text
	Options      []string // Possible answers (for multiple choice)
	CorrectIndex int      // Index of correct answer in options
}

// promptFor returns the text shown for the word
func promptFor(w models.Word, dir Direction) string {
	if dir == Reverse {
		return w.Target
	}
	return w.Source
}

// answerFor returns the expected answer for the word
func answerFor(w models.Word, dir Direction) string {
	if dir == Reverse {
		return w.Source
	}
	return w.Target
}

// acceptableFor lists the answers accepted in free-text mode
func acceptableFor(w models.Word, dir Direction) []string {
	if dir == Reverse {
		if w.AltSource != "" {
			return []string{w.Source, w.AltSource}
		}
		return []string{w.Source}
	}
	return []string{w.Target}
}

// newQuestion builds the question for word. For multiple choice the options
// hold the correct answer and up to optionCount-1 distractors from corpus.
func newQuestion(word models.Word, index, total int, settings Settings, corpus []models.Word, optionCount int, rnd *rand.Rand) Question {
	q := Question{
		Index:      index,
		Total:      total,
		Word:       word,
		Direction:  settings.Direction,
		Style:      settings.Style,
		Prompt:     promptFor(word, settings.Direction),
		Answer:     answerFor(word, settings.Direction),
		Acceptable: acceptableFor(word, settings.Direction),
	}
	if settings.Style != MultipleChoice {
		return q
	}

	// Add correct option and shuffle
	options := append(distractors(word, corpus, settings.Direction, optionCount-1, rnd), q.Answer)
	correctIndex := len(options) - 1
	rnd.Shuffle(len(options), func(i, j int) {
		if i == correctIndex {
			correctIndex = j
		} else if j == correctIndex {
			correctIndex = i
		}
		options[i], options[j] = options[j], options[i]
	})

	q.Options = options
	q.CorrectIndex = correctIndex
	return q
}

// distractors picks count wrong answers, preferring words of the same category
func distractors(word models.Word, corpus []models.Word, dir Direction, count int, rnd *rand.Rand) []string {
	options := make([]string, 0, count)
	if count <= 0 {
		return options
	}
	correct := answerFor(word, dir)
	used := map[string]bool{correct: true}

	sameCategory := make([]models.Word, 0)
	others := make([]models.Word, 0)
	for _, w := range corpus {
		if w.ID == word.ID || answerFor(w, dir) == "" {
			continue
		}
		if word.Category != "" && w.Category == word.Category {
			sameCategory = append(sameCategory, w)
		} else {
			others = append(others, w)
		}
	}

	for _, group := range [][]models.Word{sameCategory, others} {
		rnd.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		for _, w := range group {
			if len(options) == count {
				return options
			}
			text := answerFor(w, dir)
			if used[text] {
				continue
			}
			used[text] = true
			options = append(options, text)
		}
	}
	return options
}
