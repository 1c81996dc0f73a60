package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"folio/internal/fileutil"
	"folio/internal/logging"
	"folio/internal/scaffold"
)

func printScaffoldResult(cmd *cobra.Command, result *scaffold.Result) {
	out := cmd.OutOrStdout()
	verb := "Scaffolded"
	if result.Regenerated {
		verb = "Regenerated"
	}
	fmt.Fprintf(out, "%s %s (%d images, cover %s)\n", verb, result.Slug, result.Images, result.Cover)
	fmt.Fprintln(out, renderOutputs(cmd, result.Outputs))
	printRecent(cmd, result.Recent)
}

func renderOutputs(cmd *cobra.Command, outputs []scaffold.Output) string {
	colorize := logging.IsTerminal(cmd.OutOrStdout())
	rows := make([][]string, 0, len(outputs))
	for _, output := range outputs {
		rows = append(rows, []string{output.Path, actionLabel(output.Action, colorize)})
	}
	return renderTable([]column{{header: "File"}, {header: "Action"}}, rows)
}

func printRecent(cmd *cobra.Command, recent []string) {
	out := cmd.OutOrStdout()
	if len(recent) == 0 {
		fmt.Fprintln(out, "Recent projects: none")
		return
	}
	fmt.Fprintf(out, "Recent projects: %s\n", strings.Join(recent, ", "))
}

func actionLabel(action fileutil.Action, colorize bool) string {
	label := string(action)
	if !colorize {
		return label
	}
	switch action {
	case fileutil.ActionCreated:
		return text.FgGreen.Sprint(label)
	case fileutil.ActionUpdated:
		return text.FgYellow.Sprint(label)
	default:
		return text.FgHiBlack.Sprint(label)
	}
}
