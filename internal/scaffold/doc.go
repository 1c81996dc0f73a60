// Package scaffold turns a folder of photos into a published project.
//
// A run scans media/projects/<slug>/, renders projects/<slug>.html, inserts
// a card into the portfolio grid, records the project in the manifest, and
// re-renders the homepage recent-projects region from the manifest. All
// outputs are rendered in memory and staged through a fileutil.Batch before
// any of them is renamed into place, so a validation or render failure never
// leaves a partially updated site.
//
// Runs against the same site are serialized with a non-blocking file lock;
// a second concurrent run fails with ErrLocked instead of waiting.
package scaffold
