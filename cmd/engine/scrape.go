package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape [source-id]",
	Short: "Scrape one company source, or all of them, and print postings as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = e.log.Sync() }()

		term, _ := cmd.Flags().GetString("term")
		svc := e.service()

		if len(args) == 1 {
			posts, err := svc.ScrapeSource(cmd.Context(), args[0], term)
			if err != nil {
				return err
			}
			e.log.Info("scraped", zap.String("source", args[0]), zap.Int("postings", len(posts)))
			return printJSON(cmd.OutOrStdout(), posts)
		}

		cats, _ := cmd.Flags().GetStringSlice("category")
		return printJSON(cmd.OutOrStdout(), svc.ScrapeAllSources(cmd.Context(), term, cats))
	},
}

func init() {
	rootCmd.AddCommand(scrapeCmd)
	scrapeCmd.Flags().StringP("term", "t", "", "only keep postings whose title contains this term")
	scrapeCmd.Flags().StringSlice("category", nil, "restrict to these categories (all sources when omitted)")
}
