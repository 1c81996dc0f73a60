package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"folio/internal/manifest"
)

type listItem struct {
	manifest.Entry
	Recent bool `json:"recent"`
}

func newListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scaffolded projects in manifest order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			m, err := manifest.Load(cfg.Paths.ManifestFile)
			if err != nil {
				return fmt.Errorf("load manifest: %w", err)
			}

			entries := m.Entries()
			items := make([]listItem, 0, len(entries))
			for _, entry := range entries {
				items = append(items, listItem{Entry: entry, Recent: m.IsRecent(entry.Slug, cfg.Scaffold.RecentLimit)})
			}
			if jsonOutput {
				return writeJSON(cmd, items)
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "No projects recorded in %s\n", cfg.Paths.ManifestFile)
				return nil
			}
			rows := make([][]string, 0, len(items))
			for i, item := range items {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					item.Slug,
					item.Title,
					item.Subtitle,
					strconv.Itoa(item.Images),
					item.AddedAt.Format("2006-01-02 15:04"),
					yesNo(item.Recent),
				})
			}
			fmt.Fprintln(out, renderTable([]column{
				{header: "#", numeric: true},
				{header: "Slug"},
				{header: "Title"},
				{header: "Subtitle"},
				{header: "Images", numeric: true},
				{header: "Added"},
				{header: "Recent"},
			}, rows))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the manifest as JSON")
	return cmd
}
