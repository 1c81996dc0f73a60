package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSite(); err != nil {
		return err
	}
	if err := c.validateScaffold(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.SiteRoot == "" {
		return errors.New("paths.site_root must be set")
	}
	fields := []struct {
		key   string
		value string
	}{
		{"paths.media_dir", c.Paths.MediaDir},
		{"paths.projects_dir", c.Paths.ProjectsDir},
		{"paths.portfolio_file", c.Paths.PortfolioFile},
		{"paths.index_file", c.Paths.IndexFile},
		{"paths.manifest_file", c.Paths.ManifestFile},
	}
	for _, field := range fields {
		rel, err := c.SiteRelative(field.value)
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		if rel == "." {
			return fmt.Errorf("%s must not be the site root itself", field.key)
		}
	}
	if c.Paths.PortfolioFile == c.Paths.IndexFile {
		return errors.New("paths.portfolio_file and paths.index_file must differ")
	}
	return nil
}

func (c *Config) validateSite() error {
	for i, link := range c.Site.Nav {
		if link.Label == "" {
			return fmt.Errorf("site.nav[%d].label must be set", i)
		}
		if link.Href == "" {
			return fmt.Errorf("site.nav[%d].href must be set", i)
		}
	}
	if c.Site.CopyrightYear < 0 {
		return errors.New("site.copyright_year must not be negative")
	}
	if c.Site.BaseURL != "" && !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("site.base_url must be an http(s) URL, got %q", c.Site.BaseURL)
	}
	return nil
}

func (c *Config) validateScaffold() error {
	if len(c.Scaffold.ImageExtensions) == 0 {
		return errors.New("scaffold.image_extensions must list at least one extension")
	}
	if c.Scaffold.RecentLimit <= 0 {
		return errors.New("scaffold.recent_limit must be positive")
	}
	if c.Scaffold.PortfolioMarker == "" {
		return errors.New("scaffold.portfolio_marker must be set")
	}
	if c.Scaffold.RecentBeginMarker == "" || c.Scaffold.RecentEndMarker == "" {
		return errors.New("scaffold.recent_begin_marker and scaffold.recent_end_marker must be set")
	}
	if c.Scaffold.RecentBeginMarker == c.Scaffold.RecentEndMarker {
		return errors.New("scaffold.recent_begin_marker and scaffold.recent_end_marker must differ")
	}
	if strings.Contains(c.Scaffold.RecentBeginMarker, c.Scaffold.RecentEndMarker) ||
		strings.Contains(c.Scaffold.RecentEndMarker, c.Scaffold.RecentBeginMarker) {
		return errors.New("scaffold recent markers must not contain each other")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
