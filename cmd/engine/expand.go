package main

import (
	"github.com/spf13/cobra"
)

var expandCmd = &cobra.Command{
	Use:   "expand keyword...",
	Short: "Print the keyword list a search with --expand would use",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		svc := e.service()

		if suggest, _ := cmd.Flags().GetBool("suggest"); suggest {
			out := map[string][]string{}
			for _, a := range args {
				s, err := svc.Suggest(a)
				if err != nil {
					return err
				}
				out[a] = s
			}
			return printJSON(cmd.OutOrStdout(), out)
		}

		out, err := svc.Expand(args)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().Bool("suggest", false, "print related titles per keyword instead")
}
