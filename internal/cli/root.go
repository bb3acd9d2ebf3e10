// Package cli implements the chronicle command tree. All user messaging and
// exit-code mapping lives here; the core packages stay silent.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/config"
	"github.com/chronicle-cli/chronicle/internal/logbook"
	"github.com/chronicle-cli/chronicle/internal/models"
)

var (
	configDir string
	rootCmd   = &cobra.Command{
		Use:           "chronicle",
		Short:         "A CLI journaling and self-analysis tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "override chronicle config directory")
	_ = rootCmd.PersistentFlags().MarkHidden("config-dir")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	return config.Load(configDir)
}

// loadEntries strict-parses the log file. A missing log is an error; most
// commands are useless without one.
func loadEntries(cfg *config.Config) ([]*models.Entry, error) {
	if _, err := os.Stat(cfg.LogFile()); os.IsNotExist(err) {
		return nil, errors.New("no chronicle log found, run 'chronicle init' first")
	}
	return logbook.ParseFile(cfg.LogFile())
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty means unset.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
