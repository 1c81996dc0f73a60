package main

import (
	"github.com/spf13/cobra"

	"folio/internal/preview"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site root for local preview",
		Long:  "Serve runs a static file server over the site root until interrupted (Ctrl+C or SIGTERM).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			return preview.New(cfg, addr, logger).Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to preview.bind)")
	return cmd
}
