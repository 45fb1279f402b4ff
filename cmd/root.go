package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/wordquiz/internal/config"
	"github.com/example/wordquiz/internal/corpus"
	"github.com/example/wordquiz/internal/database"
	"github.com/example/wordquiz/internal/quiz"
	"github.com/example/wordquiz/pkg/models"
)

var rootCmd = &cobra.Command{
	Use:   "wordquiz",
	Short: "Adaptive vocabulary quiz",
	Long:  "wordquiz asks vocabulary questions from a spreadsheet word list and favors the words you miss or have not seen for a while.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// ExecuteContext runs the root command with ctx available to subcommands
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides DB_PATH env var)")
	rootCmd.PersistentFlags().String("source", "", "Word sheet URL or local .csv/.xlsx path (overrides WORDQUIZ_SOURCE_URL env var)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig reads the environment and applies the persistent flags
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DatabaseType = "sqlite3"
		cfg.DatabasePath = p
	}
	if s, _ := cmd.Flags().GetString("source"); s != "" {
		cfg.SourceURL = s
	}
	return cfg
}

func openDatabase(cfg *config.Config) (*database.DB, error) {
	db, err := database.Connect(database.Options{
		Type: cfg.DatabaseType,
		Path: cfg.DatabasePath,
		URL:  cfg.DatabaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func newLoader(cfg *config.Config) *corpus.Loader {
	return corpus.NewLoader(corpus.ImportConfig{
		Source:    cfg.SourceURL,
		Format:    corpus.Format(cfg.SourceFormat),
		SheetName: cfg.SheetName,
		Columns:   corpus.Columns(cfg.Columns),
		Timeout:   cfg.FetchTimeout,
	}, nil)
}

// loadWords fetches the word list; an empty list is an error
func loadWords(ctx context.Context, loader *corpus.Loader) ([]models.Word, *corpus.ImportResult, error) {
	words, result, err := loader.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load word list: %w", err)
	}
	if len(words) == 0 {
		return nil, result, quiz.ErrEmptyCorpus
	}
	return words, result, nil
}

func newStore(cfg *config.Config, db *database.DB) *quiz.PerformanceStore {
	return quiz.NewPerformanceStore(database.NewKVRepository(db), quiz.WithStoreKey(cfg.StatsKey))
}

func scoringConfig(cfg *config.Config) quiz.ScoringConfig {
	scoring := quiz.DefaultScoringConfig()
	scoring.UnseenScore = cfg.UnseenScore
	scoring.AccuracyWeight = cfg.AccuracyWeight
	scoring.RecencyCapDays = cfg.RecencyCapDays
	return scoring
}
