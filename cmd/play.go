package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/wordquiz/internal/console"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/internal/scheduler"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a quiz session",
	RunE:  runPlay,
}

func init() {
	playCmd.Flags().String("direction", "forward", "Quiz direction: forward (en-ja) or reverse (ja-en)")
	playCmd.Flags().String("style", "choice", "Answer style: choice or input")
	playCmd.Flags().String("category", "all", "Only ask words of this category (year)")
	playCmd.Flags().Int("count", -1, "Questions per session, 0 for all matching words (default from WORDQUIZ_DEFAULT_COUNT)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(cmd)

	direction, err := quiz.ParseDirection(mustString(cmd, "direction"))
	if err != nil {
		return err
	}
	style, err := quiz.ParseStyle(mustString(cmd, "style"))
	if err != nil {
		return err
	}
	count, _ := cmd.Flags().GetInt("count")
	if count < 0 {
		count = cfg.DefaultCount
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	loader := newLoader(cfg)
	words, result, err := loadWords(ctx, loader)
	if err != nil {
		return fmt.Errorf("cannot start quiz: %w", err)
	}
	slog.Info("word list loaded", "loaded", result.Loaded, "skipped", result.Skipped, "duplicates", result.Duplicates)

	store := newStore(cfg, db)
	store.Load(ctx)

	engine, err := quiz.New(words, store,
		quiz.WithScoring(scoringConfig(cfg)),
		quiz.WithOptionCount(cfg.OptionCount),
		quiz.WithHistory(database.NewSessionResultRepository(db)),
	)
	if err != nil {
		return err
	}

	if cfg.RefreshInterval > 0 {
		refresher := scheduler.New(loader, engine, cfg.RefreshInterval, slog.Default())
		if err := refresher.Start(ctx); err != nil {
			return err
		}
		defer refresher.Stop()
	}

	settings := quiz.Settings{
		Direction: direction,
		Style:     style,
		Category:  mustString(cmd, "category"),
		Count:     count,
	}
	err = console.New(engine, cmd.InOrStdin(), cmd.OutOrStdout()).Play(ctx, settings)
	switch {
	case errors.Is(err, quiz.ErrNoMatchingWords):
		return fmt.Errorf("%w; available categories: %v", err, engine.Categories())
	case ctx.Err() != nil && errors.Is(err, ctx.Err()):
		return nil
	}
	return err
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
