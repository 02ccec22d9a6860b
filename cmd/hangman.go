package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahmarkhann/sidekick/internal/config"
	"github.com/ahmarkhann/sidekick/internal/tui"
	"github.com/ahmarkhann/sidekick/internal/words"
)

var (
	flagWordFile string
	flagOffline  bool
)

var hangmanCmd = &cobra.Command{
	Use:   "hangman",
	Short: "Play a round of hangman",
	Long: `Guess the word one letter at a time before the figure is complete.

Words come from a local word file when available, otherwise from an online
word list. A couple of letters are revealed up front as hints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		wordFile := cfg.Hangman.WordFile
		if flagWordFile != "" {
			wordFile = flagWordFile
		}

		opts := words.Options{
			File:       wordFile,
			MinLength:  cfg.GetMinLength(),
			MaxLength:  cfg.GetMaxLength(),
			FetchCount: cfg.GetFetchCount(),
			Offline:    flagOffline,
		}
		return tui.Run(words.NewLoader(), opts)
	},
}

func init() {
	hangmanCmd.Flags().StringVar(&flagWordFile, "words", "", "path to a newline-separated word list")
	hangmanCmd.Flags().BoolVar(&flagOffline, "offline", false, "skip the online word source")
}
