// Package site renders the markup the scaffolder writes and splices it into
// the hand-maintained pages of a portfolio site.
//
// Project pages, portfolio tiles, and homepage tiles come from embedded
// html/template files, so every title, subtitle, and file name is escaped.
// Existing documents are treated as text with designated insertion points
// marked by sentinel comments: InsertAfterMarker adds a block after a single
// marker, and ReplaceRegion rewrites everything between a begin/end pair.
// Nothing outside those points is ever changed.
package site
