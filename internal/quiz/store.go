package quiz

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/example/wordquiz/pkg/models"
)

// DefaultStatsKey is the name of the durable record holding performance data
const DefaultStatsKey = "wordStats"

// RecordStore reads and writes a single named record
type RecordStore interface {
	Get(ctx context.Context, name string) ([]byte, error)
	Put(ctx context.Context, name string, value []byte) error
}

// PerformanceStore keeps per-word performance records and writes the full
// mapping back to the record store after every change
type PerformanceStore struct {
	mu      sync.RWMutex
	records RecordStore
	key     string
	clock   func() time.Time
	logger  *slog.Logger
	data    map[string]models.PerformanceRecord
	loaded  bool
}

// StoreOption configures a PerformanceStore
type StoreOption func(*PerformanceStore)

// WithStoreKey sets the name of the durable record
func WithStoreKey(key string) StoreOption {
	return func(s *PerformanceStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithStoreClock sets the clock used for answer timestamps
func WithStoreClock(clock func() time.Time) StoreOption {
	return func(s *PerformanceStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithStoreLogger sets the logger for swallowed storage failures
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *PerformanceStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewPerformanceStore creates a store backed by records
func NewPerformanceStore(records RecordStore, opts ...StoreOption) *PerformanceStore {
	s := &PerformanceStore{
		records: records,
		key:     DefaultStatsKey,
		clock:   time.Now,
		logger:  slog.Default(),
		data:    make(map[string]models.PerformanceRecord),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the mapping from durable storage and makes it the live mapping.
// Absent or unreadable data yields an empty mapping.
func (s *PerformanceStore) Load(ctx context.Context) map[string]models.PerformanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = s.read(ctx)
	s.loaded = true
	return copyRecords(s.data)
}

func (s *PerformanceStore) read(ctx context.Context) map[string]models.PerformanceRecord {
	data := make(map[string]models.PerformanceRecord)

	raw, err := s.records.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("failed to read performance records", "key", s.key, "error", err)
		return data
	}
	if len(raw) == 0 {
		return data
	}

	var stored map[string]models.PerformanceRecord
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("performance records are corrupt, starting empty", "key", s.key, "error", err)
		return data
	}

	for id, record := range stored {
		if !record.Consistent() {
			s.logger.Warn("dropping inconsistent performance record", "word_id", id,
				"seen", record.Seen, "correct", record.Correct, "wrong", record.Wrong)
			continue
		}
		data[id] = record
	}
	return data
}

// Save replaces the live mapping and writes it in full
func (s *PerformanceStore) Save(ctx context.Context, records map[string]models.PerformanceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = copyRecords(records)
	s.loaded = true
	s.write(ctx)
}

// write persists the live mapping; callers hold the lock
func (s *PerformanceStore) write(ctx context.Context) {
	raw, err := json.Marshal(s.data)
	if err != nil {
		s.logger.Warn("failed to encode performance records", "error", err)
		return
	}
	if err := s.records.Put(ctx, s.key, raw); err != nil {
		s.logger.Warn("failed to save performance records", "key", s.key, "error", err)
	}
}

// Record counts one answer for the word and persists the mapping before returning
func (s *PerformanceStore) Record(ctx context.Context, id string, correct bool) models.PerformanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.data = s.read(ctx)
		s.loaded = true
	}

	record := s.data[id]
	record.Seen++
	if correct {
		record.Correct++
	} else {
		record.Wrong++
	}
	now := s.clock()
	record.LastAnsweredAt = &now
	s.data[id] = record

	s.write(ctx)
	return record
}

// Get returns the record for a word
func (s *PerformanceStore) Get(id string) (models.PerformanceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.data[id]
	return record, ok
}

// Snapshot returns a copy of the live mapping
func (s *PerformanceStore) Snapshot() map[string]models.PerformanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRecords(s.data)
}

// Reset forgets all performance data
func (s *PerformanceStore) Reset(ctx context.Context) {
	s.Save(ctx, nil)
}

// ensureLoaded loads the mapping once
func (s *PerformanceStore) ensureLoaded(ctx context.Context) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if !loaded {
		s.Load(ctx)
	}
}

func copyRecords(records map[string]models.PerformanceRecord) map[string]models.PerformanceRecord {
	out := make(map[string]models.PerformanceRecord, len(records))
	for id, record := range records {
		if record.LastAnsweredAt != nil {
			t := *record.LastAnsweredAt
			record.LastAnsweredAt = &t
		}
		out[id] = record
	}
	return out
}

// MemoryRecordStore is a RecordStore kept in memory
type MemoryRecordStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryRecordStore creates an empty in-memory record store
func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{values: make(map[string][]byte)}
}

// Get returns a copy of the named value, nil if absent
func (m *MemoryRecordStore) Get(_ context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[name]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

// Put stores a copy of value under name
func (m *MemoryRecordStore) Put(_ context.Context, name string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = append([]byte(nil), value...)
	return nil
}
