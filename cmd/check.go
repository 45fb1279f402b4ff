package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Load the word sheet and report problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)

		words, result, err := newLoader(cfg).Load(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Source: %s\n", cfg.SourceURL)
		fmt.Fprintf(out, "Rows: %d, loaded: %d, skipped: %d, duplicates: %d\n",
			result.TotalProcessed, result.Loaded, result.Skipped, result.Duplicates)

		counts := make(map[string]int)
		inputEligible := 0
		for _, w := range words {
			counts[w.Category]++
			if w.InputEligible {
				inputEligible++
			}
		}
		fmt.Fprintf(out, "Free-text eligible: %d\n", inputEligible)
		categories := make([]string, 0, len(counts))
		for category := range counts {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			name := category
			if name == "" {
				name = "(none)"
			}
			fmt.Fprintf(out, "  %s: %d\n", name, counts[category])
		}
		if len(result.Errors) > 0 {
			fmt.Fprintf(out, "Problems:\n  %s\n", strings.Join(result.Errors, "\n  "))
		}
		if len(words) == 0 {
			return fmt.Errorf("no usable words in %s", cfg.SourceURL)
		}
		return nil
	},
}
