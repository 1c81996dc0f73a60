package config

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"folio/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths locates the site and the files the scaffolder reads and writes.
type Paths struct {
	SiteRoot      string `toml:"site_root"`
	MediaDir      string `toml:"media_dir"`
	ProjectsDir   string `toml:"projects_dir"`
	PortfolioFile string `toml:"portfolio_file"`
	IndexFile     string `toml:"index_file"`
	ManifestFile  string `toml:"manifest_file"`
}

// NavLink is one entry of the navigation menu on generated pages. Href is
// relative to the site root.
type NavLink struct {
	Label string `toml:"label"`
	Href  string `toml:"href"`
}

// Site contains the metadata stamped into generated pages. Logo, Icon, and
// Banner are asset paths relative to the site root.
type Site struct {
	Author        string    `toml:"author"`
	BaseURL       string    `toml:"base_url"`
	CopyrightYear int       `toml:"copyright_year"`
	Logo          string    `toml:"logo"`
	Icon          string    `toml:"icon"`
	Banner        string    `toml:"banner"`
	Nav           []NavLink `toml:"nav"`
}

// Scaffold contains the knobs for image discovery and document splicing.
type Scaffold struct {
	ImageExtensions   []string `toml:"image_extensions"`
	RecentLimit       int      `toml:"recent_limit"`
	PortfolioMarker   string   `toml:"portfolio_marker"`
	RecentBeginMarker string   `toml:"recent_begin_marker"`
	RecentEndMarker   string   `toml:"recent_end_marker"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Preview contains configuration for the development preview server.
type Preview struct {
	Bind string `toml:"bind"`
}

// Config encapsulates all configuration values for folio.
//
// Configuration sections:
//   - Paths: site root and the media, page, and manifest locations inside it
//   - Site: author, canonical URL, footer year, branding assets, navigation menu
//   - Scaffold: recognised image extensions, recent limit, sentinels
//   - Logging: log format, level, and optional log file
//   - Preview: bind address for `scaffold serve`
type Config struct {
	Paths    Paths    `toml:"paths"`
	Site     Site     `toml:"site"`
	Scaffold Scaffold `toml:"scaffold"`
	Logging  Logging  `toml:"logging"`
	Preview  Preview  `toml:"preview"`
}

// LoadOption adjusts a configuration before it is normalized.
type LoadOption func(*loadOptions)

type loadOptions struct {
	siteRoot string
}

// WithSiteRoot overrides paths.site_root and FOLIO_SITE_ROOT.
func WithSiteRoot(dir string) LoadOption {
	return func(o *loadOptions) {
		o.siteRoot = strings.TrimSpace(dir)
	}
}

// DefaultConfigPath returns the absolute path to the per-user configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/folio/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has every path field expanded to an absolute path. The second and
// third results report the resolved file path and whether it existed.
func Load(path string, opts ...LoadOption) (*Config, string, bool, error) {
	var options loadOptions
	for _, opt := range opts {
		opt(&options)
	}

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// List fields are cleared so file values replace the defaults instead of
		// extending them.
		cfg.Site.Nav = nil
		cfg.Scaffold.ImageExtensions = nil
		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		defaults := Default()
		if len(cfg.Site.Nav) == 0 {
			cfg.Site.Nav = defaults.Site.Nav
		}
		if len(cfg.Scaffold.ImageExtensions) == 0 {
			cfg.Scaffold.ImageExtensions = defaults.Scaffold.ImageExtensions
		}
	}

	baseDir, err := os.Getwd()
	if err != nil {
		return nil, "", false, fmt.Errorf("resolve working directory: %w", err)
	}
	if exists {
		baseDir = filepath.Dir(resolvedPath)
	}
	if value, ok := os.LookupEnv("FOLIO_SITE_ROOT"); ok && strings.TrimSpace(value) != "" {
		cfg.Paths.SiteRoot = strings.TrimSpace(value)
	}
	if options.siteRoot != "" {
		cfg.Paths.SiteRoot = options.siteRoot
		if baseDir, err = os.Getwd(); err != nil {
			return nil, "", false, fmt.Errorf("resolve working directory: %w", err)
		}
	}

	if err := cfg.normalize(baseDir); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("folio.toml")
	if err != nil {
		return "", false, err
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return projectPath, false, nil
}

// ProjectMediaDir returns the media folder for a project slug.
func (c *Config) ProjectMediaDir(slug string) string {
	return filepath.Join(c.Paths.MediaDir, slug)
}

// ProjectPagePath returns the generated page location for a project slug.
func (c *Config) ProjectPagePath(slug string) string {
	return filepath.Join(c.Paths.ProjectsDir, slug+".html")
}

// LockPath returns the lock file guarding scaffold runs against one site. It
// lives in the system temp directory so the site tree only ever changes
// through the scaffolder's own outputs.
func (c *Config) LockPath() string {
	sum := sha256.Sum256([]byte(c.Paths.SiteRoot))
	return filepath.Join(os.TempDir(), "folio-"+hex.EncodeToString(sum[:8])+".lock")
}

// SiteRelative converts an absolute path inside the site into a slash
// separated path relative to the site root, suitable for use in markup.
func (c *Config) SiteRelative(path string) (string, error) {
	rel, err := filepath.Rel(c.Paths.SiteRoot, path)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the site root %s", path, c.Paths.SiteRoot)
	}
	return filepath.ToSlash(rel), nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// resolvePath expands pathValue and anchors it at base when it is relative.
func resolvePath(base, pathValue string) (string, error) {
	pathValue = strings.TrimSpace(pathValue)
	if pathValue == "" {
		return "", errors.New("path is empty")
	}
	if !strings.HasPrefix(pathValue, "~") && !filepath.IsAbs(pathValue) {
		pathValue = filepath.Join(base, pathValue)
	}
	return expandPath(pathValue)
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
