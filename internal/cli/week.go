package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/export"
)

var (
	weekFrom string
	weekTo   string
)

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Generate a weekly brief",
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

		end, err := parseDateFlag(weekTo)
		if err != nil {
			return err
		}
		if end.IsZero() {
			now := time.Now()
			end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		}
		start, err := parseDateFlag(weekFrom)
		if err != nil {
			return err
		}
		if start.IsZero() {
			start = end.AddDate(0, 0, -6)
		}

		filtered := export.FilterByDate(entries, start, end)
		brief, err := export.GenerateWeeklyBrief(filtered, start, end, cfg.ProcessedFile())
		if err != nil {
			return err
		}

		outDir := filepath.Join(cfg.ExportsDir(), "weekly")
		if err := os.MkdirAll(outDir, 0o700); err != nil {
			return err
		}
		isoYear, isoWeek := end.ISOWeek()
		outPath := filepath.Join(outDir, fmt.Sprintf("weekly-%d-%02d.md", isoYear, isoWeek))
		if err := os.WriteFile(outPath, []byte(brief), 0o600); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), brief)
		fmt.Fprintf(cmd.OutOrStdout(), "\nSaved to %s\n", outPath)
		return nil
	},
}

func init() {
	weekCmd.Flags().StringVar(&weekFrom, "from", "", "start date (YYYY-MM-DD), default 7 days ago")
	weekCmd.Flags().StringVar(&weekTo, "to", "", "end date (YYYY-MM-DD), default today")
	rootCmd.AddCommand(weekCmd)
}
