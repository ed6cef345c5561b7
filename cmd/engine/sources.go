package main

import (
	"strings"

	"jobsearch-engine/internal/domain"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured company career pages",
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		cat, _ := cmd.Flags().GetString("category")
		all := e.service().ListSources()
		if cat == "" {
			return printJSON(cmd.OutOrStdout(), all)
		}
		out := []domain.SourceDefinition{}
		for _, s := range all {
			if strings.EqualFold(s.Category, strings.TrimSpace(cat)) {
				out = append(out, s)
			}
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.Flags().String("category", "", "only list sources in this category")
}
