package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/ai"
	"github.com/chronicle-cli/chronicle/internal/config"
	"github.com/chronicle-cli/chronicle/internal/export"
	"github.com/chronicle-cli/chronicle/internal/models"
)

var (
	aiFrom string
	aiTo   string
)

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Generate AI insights from your journal entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, entries, err := loadEntriesForAI()
		if err != nil {
			return err
		}

		completer, err := ai.NewGeminiClient(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Analyzing your journal entries...")
		fmt.Fprintln(cmd.OutOrStdout())
		result, err := ai.GenerateInsights(cmd.Context(), completer, entries)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

var aiFreestyleCmd = &cobra.Command{
	Use:   "freestyle <question>",
	Short: "Ask a freeform question about your journal entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, entries, err := loadEntriesForAI()
		if err != nil {
			return err
		}

		completer, err := ai.NewGeminiClient(cmd.Context(), cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Thinking...")
		fmt.Fprintln(cmd.OutOrStdout())
		result, err := ai.FreestyleQuery(cmd.Context(), completer, entries, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

func init() {
	aiCmd.PersistentFlags().StringVar(&aiFrom, "from", "", "start date (YYYY-MM-DD)")
	aiCmd.PersistentFlags().StringVar(&aiTo, "to", "", "end date (YYYY-MM-DD)")
	aiCmd.AddCommand(aiFreestyleCmd)
	rootCmd.AddCommand(aiCmd)
}

func requireAI(cfg *config.Config) error {
	if !cfg.AI.Enabled {
		return errors.New("AI features are disabled, set 'enabled = true' under [ai] in your config.toml")
	}
	return nil
}

// loadEntriesForAI loads the log and applies the shared --from/--to filter.
func loadEntriesForAI() (*config.Config, []*models.Entry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if err := requireAI(cfg); err != nil {
		return nil, nil, err
	}
	entries, err := loadEntries(cfg)
	if err != nil {
		return nil, nil, err
	}

	from, err := parseDateFlag(aiFrom)
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDateFlag(aiTo)
	if err != nil {
		return nil, nil, err
	}
	entries = export.FilterByDate(entries, from, to)
	if len(entries) == 0 {
		return nil, nil, errors.New("no entries found for the given date range")
	}
	return cfg, entries, nil
}
