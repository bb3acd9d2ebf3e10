package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chronicle-cli/chronicle/internal/config"
)

// readPassword is a seam so tests can skip the terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

var addKeyCmd = &cobra.Command{
	Use:   "add-key",
	Short: "Save your Gemini API key to the chronicle config",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprint(cmd.OutOrStdout(), "Paste your Gemini API key: ")
		key, err := readPassword()
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		apiKey := strings.TrimSpace(string(key))
		if apiKey == "" {
			return errors.New("no key provided")
		}

		path, err := config.SaveAPIKey(configDir, apiKey)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "API key saved to %s\n", path)

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.AI.Enabled {
			fmt.Fprintln(cmd.OutOrStdout(),
				"Tip: AI features are currently disabled. Set 'enabled = true' under [ai] in your config.toml to use them.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addKeyCmd)
}
