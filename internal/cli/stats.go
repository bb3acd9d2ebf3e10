package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/stats"
)

var (
	statsCategory string
	statsFrom     string
	statsTo       string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "View entries grouped by AI category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		entries, err := loadEntries(cfg)
		if err != nil {
			return err
		}

		from, err := parseDateFlag(statsFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag(statsTo)
		if err != nil {
			return err
		}

		out, err := stats.Generate(entries, cfg.ProcessedFile(), stats.Options{
			Category: statsCategory,
			From:     from,
			To:       to,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsCategory, "category", "", "filter by category (win, block, ...)")
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "start date (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "end date (YYYY-MM-DD)")
	rootCmd.AddCommand(statsCmd)
}
