package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var seed bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Re-render the homepage recent projects from the manifest",
		Long: `Sync rewrites the recent projects region of index.html from the manifest
without scaffolding anything. With --seed, an empty manifest is first rebuilt
from the tiles already on portfolio.html.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffolder, err := ctx.scaffolder(cmd)
			if err != nil {
				return err
			}
			result, err := scaffolder.SyncRecent(cmd.Context(), seed)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			if result.Seeded > 0 {
				fmt.Fprintf(out, "Seeded manifest with %d projects from the portfolio\n", result.Seeded)
			}
			fmt.Fprintln(out, renderOutputs(cmd, result.Outputs))
			printRecent(cmd, result.Recent)
			return nil
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", false, "Build the manifest from portfolio tiles when it is empty")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}
