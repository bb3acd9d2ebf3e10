package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/ai"
	"github.com/chronicle-cli/chronicle/internal/models"
	"github.com/chronicle-cli/chronicle/internal/storage"
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run AI processing on unprocessed entries (categorize + fix spelling)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if err := requireAI(cfg); err != nil {
			return err
		}
		entries, err := loadEntries(cfg)
		if err != nil {
			return err
		}

		processed, err := ai.LoadProcessed(cfg.ProcessedFile())
		if err != nil {
			return err
		}

		var unprocessed []*models.Entry
		for _, e := range entries {
			if _, done := processed[e.ID]; !done {
				unprocessed = append(unprocessed, e)
			}
		}
		if len(unprocessed) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No new entries to process.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Processing %d new entries...\n", len(unprocessed))

		completer, err := ai.NewGeminiClient(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return err
		}
		results, err := ai.Process(cmd.Context(), completer, unprocessed)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		categoryCounts := map[string]int{}
		for _, r := range results {
			processed[r.ID] = ai.ProcessedEntry{
				Categories:  r.Categories,
				Summary:     r.Summary,
				ProcessedAt: now,
			}
			for _, cat := range r.Categories {
				categoryCounts[cat]++
			}
		}

		corrections := map[string]ai.Result{}
		for _, r := range results {
			corrections[r.ID] = r
		}
		corrected := 0
		for _, e := range entries {
			if r, ok := corrections[e.ID]; ok && r.CorrectedBody != "" && r.CorrectedBody != e.Body {
				e.Body = r.CorrectedBody
				corrected++
			}
		}
		if corrected > 0 {
			if err := storage.Rewrite(entries, cfg.LogFile()); err != nil {
				return err
			}
		}

		if err := ai.SaveProcessed(processed, cfg.ProcessedFile()); err != nil {
			return err
		}

		var parts []string
		if len(categoryCounts) > 0 {
			parts = append(parts, "Categorized: "+formatCategoryCounts(categoryCounts)+".")
		}
		if corrected > 0 {
			parts = append(parts, fmt.Sprintf("Corrected %d entries.", corrected))
		}
		if len(parts) == 0 {
			parts = append(parts, "Processing complete.")
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
}

// formatCategoryCounts renders "2 win, 1 block", most frequent first.
func formatCategoryCounts(counts map[string]int) string {
	type pair struct {
		cat   string
		count int
	}
	pairs := make([]pair, 0, len(counts))
	for cat, count := range counts {
		pairs = append(pairs, pair{cat, count})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].cat < pairs[j].cat
	})
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%d %s", p.count, p.cat))
	}
	return strings.Join(parts, ", ")
}
