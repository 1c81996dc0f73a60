package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio/internal/config"
)

// PortfolioHTML is a minimal portfolio grid carrying the default sentinel.
const PortfolioHTML = `<!DOCTYPE html>
<html lang="en">
    <body>
        <section class="portfolio-grid">
            <div class="wrap-wide">
             <!-- Duplicate and customize these for each of your shoots/trips -->

            </div>
        </section>
    </body>
</html>
`

// IndexHTML is a minimal homepage with an empty recent-projects region.
const IndexHTML = `<!DOCTYPE html>
<html lang="en">
    <body>
        <section class="portfolio fade-in" id="recent-projects">
            <div class="wrap">
                <!-- recent-projects:begin -->
                <!-- recent-projects:end -->
            </div>
            <div style="text-align: center; margin-top: 20px; margin-bottom: 20px;">
                <a href="portfolio.html" class="button animatelink">View all projects</a>
            </div>
        </section>
    </body>
</html>
`

const siteConfig = `[site]
author = "Test Photographer"
base_url = "https://photos.example"
copyright_year = 2025
`

// SiteOption allows callers to customize the generated test site.
type SiteOption func(*siteBuilder)

type siteBuilder struct {
	portfolio string
	index     string
	site      string
	extra     string
}

// WithPortfolio replaces the portfolio document written into the site.
func WithPortfolio(content string) SiteOption {
	return func(b *siteBuilder) {
		b.portfolio = content
	}
}

// WithIndex replaces the homepage document written into the site.
func WithIndex(content string) SiteOption {
	return func(b *siteBuilder) {
		b.index = content
	}
}

// WithSiteTable replaces the default [site] table of folio.toml.
func WithSiteTable(toml string) SiteOption {
	return func(b *siteBuilder) {
		b.site = toml + "\n"
	}
}

// WithConfig appends raw TOML to the generated folio.toml. Use WithSiteTable
// to change the [site] table.
func WithConfig(toml string) SiteOption {
	return func(b *siteBuilder) {
		b.extra += "\n" + toml + "\n"
	}
}

// Site is a throwaway portfolio site rooted in a temp directory.
type Site struct {
	t          testing.TB
	Root       string
	ConfigPath string
	Config     *config.Config
}

// NewSite writes folio.toml, portfolio.html, and index.html into a fresh temp
// directory and loads the configuration through config.Load.
func NewSite(t testing.TB, opts ...SiteOption) *Site {
	t.Helper()

	builder := &siteBuilder{portfolio: PortfolioHTML, index: IndexHTML, site: siteConfig}
	for _, opt := range opts {
		opt(builder)
	}

	t.Setenv("FOLIO_SITE_ROOT", "")
	root := t.TempDir()
	configPath := filepath.Join(root, "folio.toml")
	WriteFile(t, configPath, []byte(builder.site+builder.extra))
	if builder.portfolio != "" {
		WriteFile(t, filepath.Join(root, "portfolio.html"), []byte(builder.portfolio))
	}
	if builder.index != "" {
		WriteFile(t, filepath.Join(root, "index.html"), []byte(builder.index))
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}

	return &Site{t: t, Root: root, ConfigPath: configPath, Config: cfg}
}

// Path joins a slash separated site-relative path onto the site root.
func (s *Site) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

// Read returns the content of a site-relative file.
func (s *Site) Read(rel string) string {
	s.t.Helper()
	data, err := os.ReadFile(s.Path(rel))
	if err != nil {
		s.t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// Exists reports whether a site-relative path exists.
func (s *Site) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// AddProject creates media/projects/<slug>/ holding a 4x3 landscape PNG for
// every name given. Names ending in .jpg or .jpeg are written as JPEG.
func (s *Site) AddProject(slug string, names ...string) string {
	s.t.Helper()
	dir := s.Config.ProjectMediaDir(slug)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		s.AddImage(slug, name, 40, 30)
	}
	return dir
}

// AddImage writes one image of the given size into a project folder.
func (s *Site) AddImage(slug, name string, width, height int) {
	s.t.Helper()
	path := filepath.Join(s.Config.ProjectMediaDir(slug), name)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		WriteJPEG(s.t, path, width, height)
	default:
		WritePNG(s.t, path, width, height)
	}
}

// Snapshot returns every regular file under the site root keyed by
// site-relative path, for asserting that a run left the tree untouched.
func (s *Site) Snapshot() map[string]string {
	s.t.Helper()
	files := map[string]string{}
	err := filepath.WalkDir(s.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.Root, path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		s.t.Fatalf("snapshot %s: %v", s.Root, err)
	}
	return files
}
