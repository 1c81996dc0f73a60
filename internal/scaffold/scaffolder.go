package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"folio/internal/config"
	"folio/internal/fileutil"
	"folio/internal/logging"
	"folio/internal/manifest"
	"folio/internal/media"
	"folio/internal/site"
	"folio/internal/textutil"
)

const fileMode = 0o644

// Request describes one project to scaffold.
type Request struct {
	Slug     string
	Title    string
	Subtitle string
	// Force regenerates an existing project instead of rejecting it. Missing
	// pieces are added, nothing is duplicated, and unchanged files are left
	// alone.
	Force bool
}

// Output is one file touched by a run, relative to the site root.
type Output struct {
	Path   string          `json:"path"`
	Action fileutil.Action `json:"action"`
}

// Result summarizes a completed run.
type Result struct {
	RunID       string   `json:"run_id"`
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Images      int      `json:"images"`
	Cover       string   `json:"cover"`
	Regenerated bool     `json:"regenerated"`
	Recent      []string `json:"recent"`
	Outputs     []Output `json:"outputs"`
}

// Option customizes a Scaffolder.
type Option func(*Scaffolder)

// WithClock overrides the time source used for manifest timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scaffolder) {
		if now != nil {
			s.now = now
		}
	}
}

// Scaffolder generates project pages for one site.
type Scaffolder struct {
	cfg      *config.Config
	logger   *slog.Logger
	layout   site.Layout
	renderer *site.Renderer
	now      func() time.Time
}

// New constructs a Scaffolder for cfg.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Scaffolder, error) {
	if cfg == nil {
		return nil, errors.New("scaffold requires a config")
	}
	layout, err := site.NewLayout(cfg)
	if err != nil {
		return nil, Wrap(ErrInvalidInput, "site layout", "", err)
	}
	s := &Scaffolder{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "scaffold"),
		layout:   layout,
		renderer: site.NewRenderer(layout),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// siteDocs holds the documents a run reads before deciding what to write.
type siteDocs struct {
	portfolio string
	index     string
	manifest  *manifest.Manifest
}

// Run scaffolds one project.
func (s *Scaffolder) Run(ctx context.Context, req Request) (*Result, error) {
	slug := strings.TrimSpace(req.Slug)
	if !textutil.ValidSlug(slug) {
		return nil, Wrap(ErrInvalidInput, "validate slug", fmt.Sprintf("%q must start with a letter or digit and contain only letters, digits, '.', '_' or '-'", req.Slug), nil)
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = textutil.TitleFromSlug(slug)
	}
	subtitle := strings.TrimSpace(req.Subtitle)

	ctx = logging.WithRunID(ctx)
	runID, _ := logging.RunIDFromContext(ctx)
	logger := logging.WithContext(ctx, s.logger).With(logging.Project(slug))

	lock, err := acquireLock(s.cfg.LockPath())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release site lock", logging.Error(err))
		}
	}()

	images, err := s.scan(ctx, slug, logger)
	if err != nil {
		return nil, err
	}

	docs, err := s.readSite(true)
	if err != nil {
		return nil, err
	}

	pagePath := s.cfg.ProjectPagePath(slug)
	pageExists, err := fileExists(pagePath)
	if err != nil {
		return nil, Wrap(ErrRead, "inspect project page", pagePath, err)
	}
	href := s.layout.ProjectHref(slug)
	hasTile := site.HasTile(docs.portfolio, href)
	inManifest := docs.manifest.Has(slug)
	existing := existingParts(pageExists, hasTile, inManifest)
	if len(existing) > 0 && !req.Force {
		return nil, Wrap(ErrDuplicateProject, "check existing project",
			fmt.Sprintf("%s already has %s; use --force to regenerate", slug, strings.Join(existing, ", ")), nil)
	}
	if len(existing) > 0 {
		logger.Info("regenerating existing project", logging.String("existing", strings.Join(existing, ", ")))
	}

	project := site.Project{Slug: slug, Title: title, Subtitle: subtitle, Images: images}
	page, err := s.renderer.ProjectPage(project)
	if err != nil {
		return nil, Wrap(ErrWrite, "render project page", "", err)
	}

	portfolio := docs.portfolio
	if hasTile {
		s.warnStaleTile(logger, docs.portfolio, slug, title, subtitle)
	} else {
		tile, err := s.renderer.PortfolioTile(project)
		if err != nil {
			return nil, Wrap(ErrWrite, "render portfolio tile", "", err)
		}
		portfolio, err = site.InsertAfterMarker(portfolio, s.cfg.Scaffold.PortfolioMarker, tile)
		if err != nil {
			return nil, Wrap(ErrMarker, "insert portfolio tile", s.cfg.Paths.PortfolioFile, err)
		}
	}

	docs.manifest.Upsert(manifest.Entry{
		Slug:        slug,
		Title:       title,
		Subtitle:    subtitle,
		Cover:       project.Cover(),
		Orientation: string(images[0].Orientation()),
		Images:      len(images),
		AddedAt:     s.now(),
	})

	index, recent, err := s.renderRecent(docs.index, docs.manifest)
	if err != nil {
		return nil, err
	}

	manifestData, err := docs.manifest.Encode()
	if err != nil {
		return nil, Wrap(ErrWrite, "encode manifest", "", err)
	}

	outputs, err := s.commit(logger, []pendingFile{
		{path: pagePath, data: page},
		{path: s.cfg.Paths.PortfolioFile, data: []byte(portfolio)},
		{path: s.cfg.Paths.ManifestFile, data: manifestData},
		{path: s.cfg.Paths.IndexFile, data: []byte(index)},
	})
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:       runID,
		Slug:        slug,
		Title:       title,
		Subtitle:    subtitle,
		Images:      len(images),
		Cover:       project.Cover(),
		Regenerated: len(existing) > 0,
		Recent:      recent,
		Outputs:     outputs,
	}
	logger.Info("project scaffolded",
		logging.Int("images", result.Images),
		logging.String("page", href),
		logging.Bool("regenerated", result.Regenerated),
	)
	return result, nil
}

func existingParts(pageExists, hasTile, inManifest bool) []string {
	var parts []string
	if pageExists {
		parts = append(parts, "a project page")
	}
	if hasTile {
		parts = append(parts, "a portfolio tile")
	}
	if inManifest {
		parts = append(parts, "a manifest entry")
	}
	return parts
}

// warnStaleTile logs when the existing portfolio tile shows a different title
// or subtitle than the request. Existing tiles are never rewritten, so the
// tile has to be edited by hand.
func (s *Scaffolder) warnStaleTile(logger *slog.Logger, portfolio, slug, title, subtitle string) {
	for _, tile := range s.layout.ParseTiles(portfolio) {
		if tile.Slug != slug {
			continue
		}
		if tile.Title != title || tile.Subtitle != subtitle {
			logger.Warn("portfolio tile kept with its old text; edit portfolio.html to match",
				logging.String("tile_title", tile.Title),
				logging.String("tile_subtitle", tile.Subtitle),
				logging.String("title", title),
				logging.String("subtitle", subtitle),
			)
		}
		return
	}
}

// scan lists the project's images, mapping media errors onto the scaffold
// sentinels.
func (s *Scaffolder) scan(ctx context.Context, slug string, logger *slog.Logger) ([]media.Image, error) {
	dir := s.cfg.ProjectMediaDir(slug)
	images, err := media.Scan(ctx, dir, s.cfg.Scaffold.ImageExtensions, logger)
	switch {
	case err == nil:
		return images, nil
	case errors.Is(err, media.ErrDirNotFound):
		return nil, Wrap(ErrNotFound, "scan media", "media folder "+dir+" does not exist", nil)
	case errors.Is(err, media.ErrNoImages):
		return nil, Wrap(ErrEmptyProject, "scan media", fmt.Sprintf("no %s images in %s", strings.Join(s.cfg.Scaffold.ImageExtensions, "/"), dir), nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	default:
		return nil, Wrap(ErrRead, "scan media", dir, err)
	}
}

// readSite loads the homepage and manifest, plus the portfolio page when
// withPortfolio is set.
func (s *Scaffolder) readSite(withPortfolio bool) (*siteDocs, error) {
	docs := &siteDocs{}
	if withPortfolio {
		data, err := readDocument(s.cfg.Paths.PortfolioFile, "portfolio page")
		if err != nil {
			return nil, err
		}
		docs.portfolio = data
	}
	index, err := readDocument(s.cfg.Paths.IndexFile, "homepage")
	if err != nil {
		return nil, err
	}
	docs.index = index

	m, err := manifest.Load(s.cfg.Paths.ManifestFile)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, Wrap(ErrRead, "load manifest", s.cfg.Paths.ManifestFile, err)
		}
		return nil, Wrap(ErrInvalidInput, "load manifest", s.cfg.Paths.ManifestFile, err)
	}
	docs.manifest = m
	return docs, nil
}

func readDocument(path, label string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", Wrap(ErrNotFound, "read "+label, path+" does not exist", nil)
		}
		return "", Wrap(ErrRead, "read "+label, path, err)
	}
	return string(data), nil
}

// renderRecent rewrites the homepage recent region from the manifest and
// returns the new document with the slugs it lists.
func (s *Scaffolder) renderRecent(index string, m *manifest.Manifest) (string, []string, error) {
	entries := m.Recent(s.cfg.Scaffold.RecentLimit)
	tiles, err := s.renderer.RecentTiles(entries)
	if err != nil {
		return "", nil, Wrap(ErrWrite, "render recent projects", "", err)
	}
	updated, err := site.ReplaceRegion(index, s.cfg.Scaffold.RecentBeginMarker, s.cfg.Scaffold.RecentEndMarker, strings.Join(tiles, "\n"))
	if err != nil {
		return "", nil, Wrap(ErrMarker, "update recent projects", s.cfg.Paths.IndexFile, err)
	}
	slugs := make([]string, 0, len(entries))
	for _, entry := range entries {
		slugs = append(slugs, entry.Slug)
	}
	return updated, slugs, nil
}

type pendingFile struct {
	path string
	data []byte
}

// commit stages every file before renaming any of them into place.
func (s *Scaffolder) commit(logger *slog.Logger, files []pendingFile) ([]Output, error) {
	var batch fileutil.Batch
	for _, f := range files {
		if err := batch.Stage(f.path, f.data, fileMode); err != nil {
			batch.Discard()
			return nil, Wrap(ErrWrite, "stage output", f.path, err)
		}
	}
	logger.Debug("outputs staged", logging.Int("files", batch.Len()))
	changes, err := batch.Commit()
	outputs := make([]Output, 0, len(changes))
	for _, change := range changes {
		rel, relErr := s.cfg.SiteRelative(change.Path)
		if relErr != nil {
			rel = change.Path
		}
		outputs = append(outputs, Output{Path: rel, Action: change.Action})
		logger.Debug("output committed", logging.String("path", rel), logging.String("action", string(change.Action)))
	}
	if err != nil {
		return outputs, Wrap(ErrWrite, "commit outputs", "", err)
	}
	return outputs, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}
