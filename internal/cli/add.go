package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chronicle-cli/chronicle/internal/models"
	"github.com/chronicle-cli/chronicle/internal/storage"
)

var (
	addUseEditor bool
	addTags      string
	addPeople    string

	// stdin is swapped out by tests feeding the prompt.
	stdin io.Reader = os.Stdin
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new chronicle entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.LogFile()); os.IsNotExist(err) {
			return errors.New("chronicle not initialized, run 'chronicle init' first")
		}

		var body string
		if addUseEditor {
			body, err = editBody(cfg.Chronicle.Editor)
		} else {
			body, err = promptBody(cmd.OutOrStdout())
		}
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		entry := &models.Entry{
			ID:        models.GenerateID(now),
			Timestamp: now,
			Type:      "entry",
			Tags:      splitCommaFlag(addTags),
			People:    splitCommaFlag(addPeople),
			Body:      body,
		}

		if err := storage.Append(entry, cfg.LogFile()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Entry %s added.\n", entry.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVarP(&addUseEditor, "editor", "e", false, "open text editor for longer entries")
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
	addCmd.Flags().StringVar(&addPeople, "people", "", "comma-separated people")
	rootCmd.AddCommand(addCmd)
}

func promptBody(out io.Writer) (string, error) {
	fmt.Fprint(out, "What's on your mind? ")
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// editBody opens the configured editor on a temp file and returns its
// trimmed content.
func editBody(editor string) (string, error) {
	f, err := os.CreateTemp("", "chronicle-entry-*.md")
	if err != nil {
		return "", err
	}
	path := f.Name()
	f.Close()
	defer os.Remove(path)

	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return "", errors.New("no editor configured")
	}
	ed := exec.Command(parts[0], append(parts[1:], path)...)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return "", fmt.Errorf("editor failed: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func splitCommaFlag(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
