package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"folio/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = "folio.toml"
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			target = expanded

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the [site] section to set your name and URL before scaffolding.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file (default ./folio.toml)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and the site documents it points at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if !ctx.configSeen {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Site root: %s\n", cfg.Paths.SiteRoot)

			checks := []documentCheck{
				{path: cfg.Paths.PortfolioFile, markers: []string{cfg.Scaffold.PortfolioMarker}},
				{path: cfg.Paths.IndexFile, markers: []string{cfg.Scaffold.RecentBeginMarker, cfg.Scaffold.RecentEndMarker}},
			}
			rows := make([][]string, 0, len(checks))
			var failed []error
			for _, check := range checks {
				status := "ok"
				if err := check.run(); err != nil {
					status = err.Error()
					failed = append(failed, err)
				}
				rel, relErr := cfg.SiteRelative(check.path)
				if relErr != nil {
					rel = check.path
				}
				rows = append(rows, []string{rel, status})
			}
			fmt.Fprintln(out, renderTable([]column{{header: "Document"}, {header: "Status"}}, rows))
			if len(failed) > 0 {
				return fmt.Errorf("site documents are not ready: %w", errors.Join(failed...))
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

type documentCheck struct {
	path    string
	markers []string
}

func (d documentCheck) run() error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s does not exist", filepath.Base(d.path))
		}
		return fmt.Errorf("read %s: %w", filepath.Base(d.path), err)
	}
	doc := string(data)
	for _, marker := range d.markers {
		switch n := strings.Count(doc, marker); n {
		case 1:
		case 0:
			return fmt.Errorf("%s: marker %q not found", filepath.Base(d.path), marker)
		default:
			return fmt.Errorf("%s: marker %q appears %d times", filepath.Base(d.path), marker, n)
		}
	}
	return nil
}
