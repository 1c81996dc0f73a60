// Package logging assembles structured slog loggers and formatting helpers used
// across folio.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so a scaffold run tags every line with
// its run id and project slug. The package also provides a no-op logger for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every command emits
// data with the same shape.
package logging
