package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahmarkhann/sidekick/internal/automate"
	"github.com/ahmarkhann/sidekick/internal/wiki"
)

var (
	flagEmailsIn  string
	flagEmailsOut string
	flagScrapeOut string
	flagTidySrc   string
	flagTidyDst   string
)

var emailsCmd = &cobra.Command{
	Use:   "emails",
	Short: "Extract email addresses from a text file",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := automate.ExtractEmailFile(flagEmailsIn, flagEmailsOut)
		if err != nil {
			return err
		}
		if count == 0 {
			fmt.Println("No email addresses found.")
			return nil
		}
		fmt.Printf("Wrote %d address(es) to %s.\n", count, flagEmailsOut)
		return nil
	},
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Fetch a page title and short summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scraper := automate.NewScraper(wiki.NewClient())
		info, err := scraper.Scrape(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Title: %s\n", info.Title)
		if info.Summary != "" {
			fmt.Printf("\n%s\n", info.Summary)
		}

		if flagScrapeOut != "" {
			paths, err := automate.SaveResult(flagScrapeOut, info)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Printf("Saved %s\n", p)
			}
		}
		return nil
	},
}

var tidyCmd = &cobra.Command{
	Use:   "tidy",
	Short: "Move image files into a separate folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := automate.MoveImages(flagTidySrc, flagTidyDst)
		if err != nil {
			return err
		}

		for _, e := range result.Errors {
			fmt.Printf("  [warn] %v\n", e)
		}
		if len(result.Moved) == 0 {
			fmt.Println("No images to move.")
			return nil
		}
		fmt.Printf("Moved %d image(s) to %s.\n", len(result.Moved), flagTidyDst)
		return nil
	},
}

func init() {
	emailsCmd.Flags().StringVar(&flagEmailsIn, "in", "", "text file to scan (required)")
	emailsCmd.Flags().StringVar(&flagEmailsOut, "out", "emails.txt", "file to write the addresses to")
	emailsCmd.MarkFlagRequired("in")

	scrapeCmd.Flags().StringVar(&flagScrapeOut, "out", "", "directory to save title and summary files")

	tidyCmd.Flags().StringVar(&flagTidySrc, "src", ".", "directory to scan for images")
	tidyCmd.Flags().StringVar(&flagTidyDst, "dst", "images", "directory to move images into")
}
