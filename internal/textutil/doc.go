// Package textutil provides the small string helpers shared by the
// scaffolder and the CLI.
//
// The primary use cases are:
//   - Validating project slugs before they become file and folder names
//   - Deriving a display title from a slug when none is given
//   - Formatting subtitles for portfolio tiles
package textutil
