package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/pkg/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("recent", 5, "Number of recent sessions to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig(cmd)

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()

	// Session history is printed even without a word list
	words, _, err := loadWords(ctx, newLoader(cfg))
	if err != nil {
		slog.Warn("word list unavailable, skipping category statistics", "source", cfg.SourceURL, "error", err)
		fmt.Fprintf(out, "Category statistics unavailable: %v\n", err)
	} else if err := printCategoryStats(ctx, out, words, newStore(cfg, db), scoringConfig(cfg)); err != nil {
		return err
	}

	history := database.NewSessionResultRepository(db)
	totals, err := history.GetTotals(ctx, time.Time{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSessions: %d, answered: %d, correct: %d\n", totals.Sessions, totals.TotalWords, totals.CorrectWords)

	limit, _ := cmd.Flags().GetInt("recent")
	recent, err := history.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(recent) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COMPLETED\tKIND\tSTYLE\tCATEGORY\tSCORE")
	for _, r := range recent {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d/%d (%.1f%%)\n",
			r.CompletedAt.Local().Format("2006-01-02 15:04"), r.Kind, r.Style, r.Category,
			r.CorrectWords, r.TotalWords, r.Percent())
	}
	return w.Flush()
}

func printCategoryStats(ctx context.Context, out io.Writer, words []models.Word, store *quiz.PerformanceStore, scoring quiz.ScoringConfig) error {
	store.Load(ctx)
	engine, err := quiz.New(words, store, quiz.WithScoring(scoring))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tWORDS\tSEEN\tANSWERS\tACCURACY")
	for _, s := range engine.CategoryStats() {
		category := s.Category
		if category == "" {
			category = "(none)"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f%%\n", category, s.TotalWords, s.SeenWords, s.Answers, s.Accuracy*100)
	}
	return w.Flush()
}
