package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahmarkhann/sidekick/internal/config"
	"github.com/ahmarkhann/sidekick/internal/portfolio"
	"github.com/ahmarkhann/sidekick/internal/quote"
	"github.com/ahmarkhann/sidekick/internal/store"
)

var (
	flagLive   bool
	flagSave   string
	flagOutDir string
)

var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "Track a stock portfolio",
	Long: `Add stock positions one by one and get a valued summary at the end.

Prices come from a live quote API with --live, from the fallback table in
the config file, or from manual entry when neither knows the symbol.
Positions persist between sessions.`,
	RunE: runTracker,
}

func init() {
	stocksCmd.Flags().BoolVar(&flagLive, "live", false, "fetch live prices before using the fallback table")
	stocksCmd.Flags().StringVar(&flagSave, "save", "", "save the report without asking (txt, csv or both)")
	stocksCmd.Flags().StringVar(&flagOutDir, "out", "", "directory for saved reports")

	stocksCmd.AddCommand(stocksListCmd)
	stocksCmd.AddCommand(stocksClearCmd)
	stocksCmd.AddCommand(stocksStatsCmd)
}

func runTracker(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	db, err := store.Open(config.StorePath())
	if err != nil {
		return fmt.Errorf("opening portfolio store: %w", err)
	}
	defer db.Close()

	outDir := flagOutDir
	if outDir == "" {
		outDir = cfg.ReportDir()
	}

	session := portfolio.NewSession(portfolio.SessionOpts{
		Store:      db,
		Quotes:     quote.NewClient(),
		Fallback:   cfg.Stocks.FallbackPrices,
		Live:       flagLive,
		SaveFormat: flagSave,
		OutDir:     outDir,
		In:         os.Stdin,
		Out:        os.Stdout,
	})
	return session.Run(context.Background())
}

var stocksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the stored portfolio",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening portfolio store: %w", err)
		}
		defer db.Close()

		positions, err := db.Positions()
		if err != nil {
			return fmt.Errorf("loading positions: %w", err)
		}
		if len(positions) == 0 {
			fmt.Println("Portfolio is empty.")
			return nil
		}
		return portfolio.WriteText(os.Stdout, portfolio.Summarize(positions), time.Now())
	},
}

var stocksClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every stored position",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := store.Open(config.StorePath())
		if err != nil {
			return fmt.Errorf("opening portfolio store: %w", err)
		}
		defer db.Close()

		dropped, err := db.Clear()
		if err != nil {
			return fmt.Errorf("clearing: %w", err)
		}
		if dropped == 0 {
			fmt.Println("Nothing to clear.")
		} else {
			fmt.Printf("Dropped %d position(s).\n", dropped)
		}
		return nil
	},
}

var stocksStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show portfolio store statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath := config.StorePath()
		db, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("opening portfolio store: %w", err)
		}
		defer db.Close()

		count, size, err := db.Stats(dbPath)
		if err != nil {
			return fmt.Errorf("reading stats: %w", err)
		}

		fmt.Printf("Store: %s\n", dbPath)
		fmt.Printf("Positions: %d\n", count)
		fmt.Printf("Size: %s\n", formatBytes(size))

		if last, err := db.LastSession(); err == nil {
			fmt.Printf("Last session: %s\n", last.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
