package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"folio/internal/scaffold"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var siteFlag string
	var logLevelFlag string
	var force bool
	var jsonOutput bool

	ctx := newCommandContext(&configFlag, &siteFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:   "scaffold <slug> <title> <subtitle>",
		Short: "Scaffold a photography project into the portfolio site",
		Long: `Scaffold generates projects/<slug>.html from the images in media/projects/<slug>/,
adds a tile to portfolio.html, records the project in the manifest, and
re-renders the recent projects section of index.html.

An empty title is derived from the slug. Re-running an existing slug fails
unless --force is given, which regenerates the page and fills in anything
missing without duplicating tiles. An existing portfolio tile is kept as is:
a changed title or subtitle reaches the page, the manifest, and the homepage,
but the portfolio tile has to be edited by hand (a warning is logged).`,
		Example: `  scaffold iceland_2023 "Iceland" "Landscapes / Travel"
  scaffold iceland_2023 "Iceland" "Landscapes / Travel" --force`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				return fmt.Errorf("expected 3 arguments (slug, title, subtitle), got %d\nUsage: %s", len(args), cmd.UseLine())
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			scaffolder, err := ctx.scaffolder(cmd)
			if err != nil {
				return err
			}
			result, err := scaffolder.Run(cmd.Context(), scaffold.Request{
				Slug:     args[0],
				Title:    args[1],
				Subtitle: args[2],
				Force:    force,
			})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, result)
			}
			printScaffoldResult(cmd, result)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&siteFlag, "site", "", "Site root directory (overrides paths.site_root)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&force, "force", false, "Regenerate an existing project instead of rejecting it (existing portfolio tiles are not rewritten)")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")

	rootCmd.AddCommand(newSyncCommand(ctx))
	rootCmd.AddCommand(newListCommand(ctx))
	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
