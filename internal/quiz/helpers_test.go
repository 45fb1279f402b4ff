package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"time"

	"github.com/example/wordquiz/pkg/models"
)

var testNow = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(records RecordStore) *PerformanceStore {
	if records == nil {
		records = NewMemoryRecordStore()
	}
	return NewPerformanceStore(records, WithStoreClock(fixedClock), WithStoreLogger(discardLogger()))
}

// testWords returns n words split across categories "1" and "2"
func testWords(n int) []models.Word {
	words := make([]models.Word, n)
	for i := range words {
		words[i] = models.Word{
			ID:            fmt.Sprintf("w%d", i),
			Source:        fmt.Sprintf("source%d", i),
			Target:        fmt.Sprintf("target%d", i),
			Category:      fmt.Sprintf("%d", i%2+1),
			InputEligible: i%3 == 0,
			Row:           i + 2,
		}
	}
	return words
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func ids(words []models.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.ID
	}
	return out
}

// failingRecordStore fails every read and write
type failingRecordStore struct{}

func (failingRecordStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("disk unavailable")
}

func (failingRecordStore) Put(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

// historyStub collects saved session results
type historyStub struct {
	results []*models.SessionResult
	err     error
}

func (h *historyStub) Create(_ context.Context, result *models.SessionResult) error {
	if h.err != nil {
		return h.err
	}
	h.results = append(h.results, result)
	return nil
}
