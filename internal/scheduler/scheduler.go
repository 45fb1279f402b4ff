package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/wordquiz/internal/corpus"
	"github.com/example/wordquiz/pkg/models"
)

// Source loads the current word list
type Source interface {
	Load(ctx context.Context) ([]models.Word, *corpus.ImportResult, error)
}

// Target receives a refreshed word list
type Target interface {
	ReplaceCorpus(words []models.Word) error
}

// Scheduler periodically reloads the word sheet
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    Source
	target    Target
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new scheduler instance
func New(source Source, target Target, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		target:    target,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the refresh job. The first run happens one interval from now.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return errors.New("refresh interval must be positive")
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(func() {
		if err := s.Refresh(ctx); err != nil {
			s.logger.Warn("word list refresh failed, keeping current list", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule refresh: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	s.logger.Info("word list refresh scheduled", "interval", s.interval)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// Refresh loads the word list once and hands it to the target
func (s *Scheduler) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	words, result, err := s.source.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.target.ReplaceCorpus(words); err != nil {
		return err
	}

	if result != nil {
		s.logger.Info("word list refreshed", "loaded", result.Loaded,
			"skipped", result.Skipped, "duplicates", result.Duplicates)
	}
	return nil
}
