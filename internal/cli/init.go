package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the chronicle directory and config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return fmt.Errorf("create chronicle dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("create log file: %w", err)
		}
		f.Close()

		if _, err := os.Stat(cfg.ConfigFile()); os.IsNotExist(err) {
			if err := os.WriteFile(cfg.ConfigFile(), []byte(config.DefaultConfigTOML()), 0o600); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Chronicle initialized at %s\n", cfg.Dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
