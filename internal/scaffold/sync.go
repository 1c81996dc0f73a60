package scaffold

import (
	"context"
	"log/slog"
	"path/filepath"

	"folio/internal/logging"
	"folio/internal/manifest"
	"folio/internal/media"
)

// SyncResult summarizes a recent-projects sync.
type SyncResult struct {
	RunID   string   `json:"run_id"`
	Seeded  int      `json:"seeded"`
	Recent  []string `json:"recent"`
	Outputs []Output `json:"outputs"`
}

// SyncRecent re-renders the homepage recent region from the manifest. When
// seed is set and the manifest is empty, it is first rebuilt from the tiles
// already on the portfolio page, oldest tile first, so an existing site can
// be adopted without re-scaffolding every project.
func (s *Scaffolder) SyncRecent(ctx context.Context, seed bool) (*SyncResult, error) {
	ctx = logging.WithRunID(ctx)
	runID, _ := logging.RunIDFromContext(ctx)
	logger := logging.WithContext(ctx, s.logger)

	lock, err := acquireLock(s.cfg.LockPath())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release site lock", logging.Error(err))
		}
	}()

	docs, err := s.readSite(seed)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{RunID: runID}
	switch {
	case seed && docs.manifest.Len() == 0:
		result.Seeded = s.seed(ctx, docs, logger)
	case seed:
		logger.Info("manifest already has projects; skipping seed", logging.Int("projects", docs.manifest.Len()))
	}

	index, recent, err := s.renderRecent(docs.index, docs.manifest)
	if err != nil {
		return nil, err
	}
	result.Recent = recent

	files := []pendingFile{{path: s.cfg.Paths.IndexFile, data: []byte(index)}}
	if result.Seeded > 0 {
		data, err := docs.manifest.Encode()
		if err != nil {
			return nil, Wrap(ErrWrite, "encode manifest", "", err)
		}
		files = append([]pendingFile{{path: s.cfg.Paths.ManifestFile, data: data}}, files...)
	}
	outputs, err := s.commit(logger, files)
	if err != nil {
		return nil, err
	}
	result.Outputs = outputs

	logger.Info("recent projects synced", logging.Int("recent", len(recent)), logging.Int("seeded", result.Seeded))
	return result, nil
}

// seed fills an empty manifest from the portfolio tiles and reports how many
// entries were added. Tiles are listed newest first, so they are added in
// reverse.
func (s *Scaffolder) seed(ctx context.Context, docs *siteDocs, logger *slog.Logger) int {
	tiles := s.layout.ParseTiles(docs.portfolio)
	added := 0
	now := s.now()
	for i := len(tiles) - 1; i >= 0; i-- {
		tile := tiles[i]
		if docs.manifest.Has(tile.Slug) {
			continue
		}
		entry := manifest.Entry{
			Slug:        tile.Slug,
			Title:       tile.Title,
			Subtitle:    tile.Subtitle,
			Cover:       tile.Cover,
			Orientation: string(media.Landscape),
			AddedAt:     now,
		}
		if w, h, err := media.Dimensions(filepath.Join(s.cfg.Paths.MediaDir, filepath.FromSlash(tile.Cover))); err == nil {
			entry.Orientation = string(media.Image{Width: w, Height: h}.Orientation())
		} else {
			logger.Warn("cover unreadable; assuming landscape", logging.Project(tile.Slug), logging.Error(err))
		}
		if images, err := media.Scan(ctx, s.cfg.ProjectMediaDir(tile.Slug), s.cfg.Scaffold.ImageExtensions, nil); err == nil {
			entry.Images = len(images)
		}
		if err := docs.manifest.Add(entry); err == nil {
			added++
		}
	}
	return added
}
