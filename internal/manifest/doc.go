// Package manifest persists the ordered log of scaffolded projects.
//
// The manifest is the source of truth for recency: entries are kept in the
// order they were scaffolded, and Recent reads newest first from the tail.
// It is stored as TOML next to the site so it can be reviewed and committed
// with the pages it describes.
package manifest
