package config

const (
	defaultSiteRoot          = "."
	defaultMediaDir          = "media/projects"
	defaultProjectsDir       = "projects"
	defaultPortfolioFile     = "portfolio.html"
	defaultIndexFile         = "index.html"
	defaultManifestFile      = "projects.toml"
	defaultLogo              = "assets/img/logo.png"
	defaultIcon              = "assets/img/logo-black.png"
	defaultBanner            = "media/site/banner.jpg"
	defaultRecentLimit       = 4
	defaultPortfolioMarker   = "<!-- Duplicate and customize these for each of your shoots/trips -->"
	defaultRecentBeginMarker = "<!-- recent-projects:begin -->"
	defaultRecentEndMarker   = "<!-- recent-projects:end -->"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultPreviewBind       = "127.0.0.1:8000"
)

var defaultImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			SiteRoot:      defaultSiteRoot,
			MediaDir:      defaultMediaDir,
			ProjectsDir:   defaultProjectsDir,
			PortfolioFile: defaultPortfolioFile,
			IndexFile:     defaultIndexFile,
			ManifestFile:  defaultManifestFile,
		},
		Site: Site{
			Logo:   defaultLogo,
			Icon:   defaultIcon,
			Banner: defaultBanner,
			Nav: []NavLink{
				{Label: "Homepage", Href: defaultIndexFile},
				{Label: "Portfolio", Href: defaultPortfolioFile},
				{Label: "Video", Href: "video.html"},
			},
		},
		Scaffold: Scaffold{
			ImageExtensions:   append([]string(nil), defaultImageExtensions...),
			RecentLimit:       defaultRecentLimit,
			PortfolioMarker:   defaultPortfolioMarker,
			RecentBeginMarker: defaultRecentBeginMarker,
			RecentEndMarker:   defaultRecentEndMarker,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Preview: Preview{
			Bind: defaultPreviewBind,
		},
	}
}
