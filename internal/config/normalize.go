package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

func (c *Config) normalize(baseDir string) error {
	if err := c.normalizePaths(baseDir); err != nil {
		return err
	}
	c.normalizeSite()
	c.normalizeScaffold()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.Preview.Bind = strings.TrimSpace(c.Preview.Bind)
	if c.Preview.Bind == "" {
		c.Preview.Bind = defaultPreviewBind
	}
	return nil
}

func (c *Config) normalizePaths(baseDir string) error {
	var err error
	if strings.TrimSpace(c.Paths.SiteRoot) == "" {
		c.Paths.SiteRoot = defaultSiteRoot
	}
	if c.Paths.SiteRoot, err = resolvePath(baseDir, c.Paths.SiteRoot); err != nil {
		return fmt.Errorf("paths.site_root: %w", err)
	}

	root := c.Paths.SiteRoot
	fields := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.media_dir", &c.Paths.MediaDir, defaultMediaDir},
		{"paths.projects_dir", &c.Paths.ProjectsDir, defaultProjectsDir},
		{"paths.portfolio_file", &c.Paths.PortfolioFile, defaultPortfolioFile},
		{"paths.index_file", &c.Paths.IndexFile, defaultIndexFile},
		{"paths.manifest_file", &c.Paths.ManifestFile, defaultManifestFile},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.fallback
		}
		if *field.value, err = resolvePath(root, *field.value); err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
	}
	return nil
}

func (c *Config) normalizeSite() {
	c.Site.Author = strings.TrimSpace(c.Site.Author)
	c.Site.BaseURL = strings.TrimRight(strings.TrimSpace(c.Site.BaseURL), "/")
	assets := []struct {
		value    *string
		fallback string
	}{
		{&c.Site.Logo, defaultLogo},
		{&c.Site.Icon, defaultIcon},
		{&c.Site.Banner, defaultBanner},
	}
	for _, asset := range assets {
		*asset.value = strings.TrimLeft(filepath.ToSlash(strings.TrimSpace(*asset.value)), "/")
		if *asset.value == "" {
			*asset.value = asset.fallback
		}
	}
	links := c.Site.Nav[:0]
	for _, link := range c.Site.Nav {
		link.Label = strings.TrimSpace(link.Label)
		link.Href = strings.TrimSpace(link.Href)
		if link.Label == "" && link.Href == "" {
			continue
		}
		links = append(links, link)
	}
	c.Site.Nav = links
}

func (c *Config) normalizeScaffold() {
	seen := make(map[string]struct{}, len(c.Scaffold.ImageExtensions))
	exts := make([]string, 0, len(c.Scaffold.ImageExtensions))
	for _, ext := range c.Scaffold.ImageExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	c.Scaffold.ImageExtensions = exts
	c.Scaffold.PortfolioMarker = strings.TrimSpace(c.Scaffold.PortfolioMarker)
	c.Scaffold.RecentBeginMarker = strings.TrimSpace(c.Scaffold.RecentBeginMarker)
	c.Scaffold.RecentEndMarker = strings.TrimSpace(c.Scaffold.RecentEndMarker)
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		expanded, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
