package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/logbook"
)

// errDiagnostics makes Execute exit non-zero without re-printing anything.
var errDiagnostics = errors.New("validation failed")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the chronicle log file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := os.ReadFile(cfg.LogFile())
		if err != nil {
			if os.IsNotExist(err) {
				return errors.New("no chronicle log found, run 'chronicle init' first")
			}
			return err
		}

		diagnostics := logbook.Validate(string(data))
		if len(diagnostics) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Chronicle log is valid.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Found %d error(s):\n", len(diagnostics))
		for _, d := range diagnostics {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", d)
		}
		return errDiagnostics
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
