// Package main hosts the scaffold CLI entrypoint and command graph.
//
// The root command takes a project slug, title, and subtitle and hands them
// to the scaffolder, which writes the project page, the portfolio tile, the
// manifest entry, and the homepage recent region in one batch. Subcommands
// cover the maintenance around that: re-syncing the recent region, listing
// the manifest, previewing the site locally, and creating or checking the
// configuration file.
//
// Keep this package lean: behaviour belongs in the internal packages and the
// commands here only resolve configuration, build loggers, and print results.
package main
