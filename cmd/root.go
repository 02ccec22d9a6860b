package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ahmarkhann/sidekick/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "sidekick",
	Short: "A desk-side toolkit: lookup chat, hangman, and a portfolio tracker",
	Long: `sidekick bundles a handful of small terminal tools: a chat loop that
answers questions from an encyclopedia, a hangman game, a stock portfolio
tracker, and a few file automation helpers.

Running sidekick with no arguments starts the chat.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
	},
	RunE: runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug detail to stderr")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(hangmanCmd)
	rootCmd.AddCommand(stocksCmd)
	rootCmd.AddCommand(emailsCmd)
	rootCmd.AddCommand(scrapeCmd)
	rootCmd.AddCommand(tidyCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sidekick %s (commit: %s, built: %s)\n", version, commit, date)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if res := update.Check(ctx, version); res != nil {
			fmt.Printf("Update available: %s\n", res.LatestVersion)
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
