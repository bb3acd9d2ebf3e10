package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/export"
)

var (
	exportAll   bool
	exportSplit bool
	exportFrom  string
	exportTo    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export chronicle entries",
}

var exportMdCmd = &cobra.Command{
	Use:   "md",
	Short: "Export entries as Markdown with YAML front matter",
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

		if !exportAll {
			from, err := parseDateFlag(exportFrom)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(exportTo)
			if err != nil {
				return err
			}
			entries = export.FilterByDate(entries, from, to)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No entries to export.")
			return nil
		}

		if exportSplit {
			outDir := filepath.Join(cfg.ExportsDir(), "md")
			if err := os.MkdirAll(outDir, 0o700); err != nil {
				return err
			}
			paths, err := export.ExportSplit(entries, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", len(paths), outDir)
			return nil
		}

		doc, err := export.ExportAll(entries)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), doc)
		return nil
	},
}

var exportStoryCmd = &cobra.Command{
	Use:   "story",
	Short: "Generate a life story document",
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

		from, err := parseDateFlag(exportFrom)
		if err != nil {
			return err
		}
		to, err := parseDateFlag(exportTo)
		if err != nil {
			return err
		}
		entries = export.FilterByDate(entries, from, to)

		story, err := export.GenerateLifeStory(entries, cfg.ProcessedFile())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), story)
		return nil
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportFrom, "from", "", "start date (YYYY-MM-DD)")
	exportCmd.PersistentFlags().StringVar(&exportTo, "to", "", "end date (YYYY-MM-DD)")
	exportMdCmd.Flags().BoolVar(&exportAll, "all", false, "export all entries, ignoring the date range")
	exportMdCmd.Flags().BoolVar(&exportSplit, "split", false, "one Markdown file per entry")
	exportCmd.AddCommand(exportMdCmd)
	exportCmd.AddCommand(exportStoryCmd)
	rootCmd.AddCommand(exportCmd)
}
