package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/webp"

	"folio/internal/logging"
)

var (
	// ErrDirNotFound is returned when the project media folder does not exist.
	ErrDirNotFound = errors.New("media folder not found")
	// ErrNoImages is returned when a folder holds no readable recognised image.
	ErrNoImages = errors.New("no images found")
)

// Orientation classifies an image by aspect.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Image is one photograph inside a project folder.
type Image struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Orientation reports portrait when the image is taller than it is wide.
func (i Image) Orientation() Orientation {
	if i.Height > i.Width {
		return Portrait
	}
	return Landscape
}

// Size renders the dimensions as WIDTHxHEIGHT, the form PhotoSwipe reads
// from data-size.
func (i Image) Size() string {
	return strconv.Itoa(i.Width) + "x" + strconv.Itoa(i.Height)
}

// Scan lists the images in dir whose extension (case-insensitive) is in
// extensions, sorted by file name. Subdirectories are ignored and symlinks to
// regular files are followed. Files whose header cannot be decoded are
// skipped with a warning.
func Scan(ctx context.Context, dir string, extensions []string, logger *slog.Logger) ([]Image, error) {
	logger = logging.NewComponentLogger(logger, "media")

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return nil, fmt.Errorf("stat media folder %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read media folder %s: %w", dir, err)
	}

	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if _, ok := allowed[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		if !isRegularFile(dir, entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	images := make([]Image, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		width, height, err := decodeDimensions(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping unreadable image",
				logging.String("file", name),
				logging.Error(err),
			)
			continue
		}
		images = append(images, Image{Name: name, Width: width, Height: height})
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, dir)
	}
	logger.Debug("media folder scanned", logging.String("dir", dir), logging.Int("images", len(images)), logging.Int("skipped", len(names)-len(images)))
	return images, nil
}

// isRegularFile reports whether entry is a regular file, following symlinks.
// Dangling links and links to directories are not.
func isRegularFile(dir string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// Dimensions reads the width and height of a single image file.
func Dimensions(path string) (int, int, error) {
	return decodeDimensions(path)
}

func decodeDimensions(path string) (int, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("decode %s: invalid dimensions %dx%d", filepath.Base(path), cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}
