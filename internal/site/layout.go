package site

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"folio/internal/config"
)

// Layout holds the site geometry and metadata needed to render markup. Paths
// are slash separated and relative to the site root.
type Layout struct {
	Author        string
	BaseURL       string
	CopyrightYear int
	Logo          string
	Icon          string
	Banner        string
	Nav           []config.NavLink

	MediaPath     string
	ProjectsPath  string
	PortfolioHref string
	IndexHref     string

	// PageRoot prefixes site-relative paths when linking from a project
	// page, e.g. "../" for the default projects/ folder.
	PageRoot string
}

// NewLayout derives a Layout from a loaded configuration.
func NewLayout(cfg *config.Config) (Layout, error) {
	if cfg == nil {
		return Layout{}, errors.New("layout: config is nil")
	}
	layout := Layout{
		Author:        cfg.Site.Author,
		BaseURL:       cfg.Site.BaseURL,
		CopyrightYear: cfg.Site.CopyrightYear,
		Logo:          cfg.Site.Logo,
		Icon:          cfg.Site.Icon,
		Banner:        cfg.Site.Banner,
		Nav:           append([]config.NavLink(nil), cfg.Site.Nav...),
	}
	rels := []struct {
		key   string
		path  string
		value *string
	}{
		{"media_dir", cfg.Paths.MediaDir, &layout.MediaPath},
		{"projects_dir", cfg.Paths.ProjectsDir, &layout.ProjectsPath},
		{"portfolio_file", cfg.Paths.PortfolioFile, &layout.PortfolioHref},
		{"index_file", cfg.Paths.IndexFile, &layout.IndexHref},
	}
	for _, rel := range rels {
		value, err := cfg.SiteRelative(rel.path)
		if err != nil {
			return Layout{}, fmt.Errorf("layout %s: %w", rel.key, err)
		}
		*rel.value = value
	}

	up, err := filepath.Rel(cfg.Paths.ProjectsDir, cfg.Paths.SiteRoot)
	if err != nil {
		return Layout{}, fmt.Errorf("layout page root: %w", err)
	}
	layout.PageRoot = filepath.ToSlash(up) + "/"
	return layout, nil
}

// ProjectHref is the site-relative link to a project page.
func (l Layout) ProjectHref(slug string) string {
	return l.ProjectsPath + "/" + slug + ".html"
}

// MediaHref is the site-relative link to a file under the media folder.
// cover is relative to the media folder, e.g. "iceland_2023/a.jpg".
func (l Layout) MediaHref(cover string) string {
	return l.MediaPath + "/" + cover
}

// Credits is the footer line stamped into project pages.
func (l Layout) Credits() string {
	parts := []string{"©"}
	if l.CopyrightYear > 0 {
		parts = append(parts, strconv.Itoa(l.CopyrightYear))
	}
	if l.Author != "" {
		parts = append(parts, l.Author)
	}
	return strings.Join(parts, " ")
}

// fromPage turns a site-relative href into one usable from a project page.
// Absolute URLs and fragments are returned unchanged.
func (l Layout) fromPage(href string) string {
	if isExternal(href) {
		return href
	}
	return l.PageRoot + strings.TrimPrefix(href, "/")
}

func isExternal(href string) bool {
	lower := strings.ToLower(href)
	for _, prefix := range []string{"http://", "https://", "mailto:", "#", "//"} {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}
