package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const guideText = `Chronicle CLI - Quick Guide
============================

GETTING STARTED
  chronicle init              Set up ~/.chronicle/ directory
  chronicle add-key           Save your Gemini API key

ADDING ENTRIES
  chronicle add               Prompt: "What's on your mind?"
  chronicle add --editor      Open your text editor for longer entries
  chronicle add --tags work,go --people Alice
                              Attach tags and people to an entry

AI FEATURES  (requires API key + enabled = true in config)
  chronicle add-key           Save your Gemini API key
  chronicle process           Categorize entries & fix spelling/grammar
  chronicle stats             View entries grouped by category
  chronicle stats --category win
                              Filter to a single category
  chronicle ai                Get AI-generated insights
  chronicle ai freestyle "question"
                              Ask a freeform question about your journal

  Categories assigned by AI:
    win, decision_needed, block, failure, lesson_learned

WEEKLY BRIEF
  chronicle week              Brief for the last 7 days
  chronicle week --from 2026-01-01 --to 2026-01-07

SYNC
  chronicle sync setup        Generate key material, create the gist
  chronicle sync push         Encrypt everything, overwrite remote
  chronicle sync pull         Merge new remote entries into the log

EXPORTS
  chronicle export md --all   All entries as Markdown
  chronicle export md --split --all
                              One Markdown file per entry
  chronicle export story      Life story document

UTILITIES
  chronicle validate          Check log file for syntax errors
  chronicle guide             Show this guide

LOG FORMAT
  Entries live in ~/.chronicle/chronicle.log:

    @entry <id> <timestamp> entry [tags] [people:names]
    Your entry text here.
    @end

CONFIGURATION
  Config file: ~/.chronicle/config.toml

    [chronicle]
    # editor = "code --wait"
    # timezone = "America/New_York"

    [ai]
    enabled = true
    api_key = "..."          # set via: chronicle add-key
    # model = "gemini-2.0-flash"

    [sync]
    # backend = "gist"       # gist, s3 or redis
`

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show a usage guide for Chronicle CLI",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), guideText)
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
