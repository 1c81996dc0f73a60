// Package config loads, normalizes, and validates folio configuration data.
//
// It supplies site defaults, expands user paths (including tilde shortcuts),
// reads TOML files, and honours the FOLIO_SITE_ROOT environment override. The
// Config type centralizes every knob the scaffolder and CLI need: where the
// site lives, where project media and pages go, which sentinels mark the
// insertion points, and how logs are emitted.
//
// Always obtain settings through this package so downstream code receives
// absolute paths rooted in the site, canonical log formats, and clear
// validation errors.
package config
