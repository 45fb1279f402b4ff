package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/wordquiz/internal/database"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget per-word performance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := loadConfig(cmd)

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.NewKVRepository(db).Delete(ctx, cfg.StatsKey); err != nil {
			return fmt.Errorf("failed to clear performance data: %w", err)
		}

		if history, _ := cmd.Flags().GetBool("history"); history {
			if err := database.NewSessionResultRepository(db).DeleteAll(ctx); err != nil {
				return fmt.Errorf("failed to delete session history: %w", err)
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Performance data cleared.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("history", false, "Also delete the session history")
}
