package media_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"folio/internal/logging"
	"folio/internal/media"
	"folio/internal/testsupport"
)

var defaultExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

func TestScanSortsAndReadsDimensions(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteJPEG(t, filepath.Join(dir, "c.jpg"), 30, 40)
	testsupport.WritePNG(t, filepath.Join(dir, "a.png"), 40, 30)
	testsupport.WriteJPEG(t, filepath.Join(dir, "b.JPG"), 20, 20)
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), []byte("not an image"))
	testsupport.WritePNG(t, filepath.Join(dir, "thumbnails", "a_thumb.png"), 8, 6)

	images, err := media.Scan(context.Background(), dir, defaultExts, logging.NewNop())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	want := []media.Image{
		{Name: "a.png", Width: 40, Height: 30},
		{Name: "b.JPG", Width: 20, Height: 20},
		{Name: "c.jpg", Width: 30, Height: 40},
	}
	if diff := cmp.Diff(want, images); diff != "" {
		t.Fatalf("unexpected images (-want +got):\n%s", diff)
	}
	if images[0].Orientation() != media.Landscape {
		t.Fatalf("expected landscape for 40x30")
	}
	if images[1].Orientation() != media.Landscape {
		t.Fatalf("expected square images to count as landscape")
	}
	if images[2].Orientation() != media.Portrait {
		t.Fatalf("expected portrait for 30x40")
	}
	if images[2].Size() != "30x40" {
		t.Fatalf("unexpected size string %q", images[2].Size())
	}
}

func TestScanSkipsUnreadableImages(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "broken.jpg"), []byte("garbage"))
	testsupport.WritePNG(t, filepath.Join(dir, "ok.png"), 4, 3)

	images, err := media.Scan(context.Background(), dir, defaultExts, nil)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(images) != 1 || images[0].Name != "ok.png" {
		t.Fatalf("expected only ok.png, got %+v", images)
	}
}

func TestScanFollowsSymlinks(t *testing.T) {
	library := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(library, "source.png"), 6, 8)
	if err := os.Mkdir(filepath.Join(library, "album"), 0o755); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	testsupport.WritePNG(t, filepath.Join(dir, "a.png"), 4, 3)
	links := map[string]string{
		"b.png":        filepath.Join(library, "source.png"),
		"dangling.png": filepath.Join(library, "missing.png"),
		"folder.png":   filepath.Join(library, "album"),
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	images, err := media.Scan(context.Background(), dir, defaultExts, nil)
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	want := []media.Image{
		{Name: "a.png", Width: 4, Height: 3},
		{Name: "b.png", Width: 6, Height: 8},
	}
	if diff := cmp.Diff(want, images); diff != "" {
		t.Fatalf("unexpected images (-want +got):\n%s", diff)
	}

	t.Run("only symlinks", func(t *testing.T) {
		linked := t.TempDir()
		if err := os.Symlink(filepath.Join(library, "source.png"), filepath.Join(linked, "x.png")); err != nil {
			t.Fatal(err)
		}
		images, err := media.Scan(context.Background(), linked, defaultExts, nil)
		if err != nil {
			t.Fatalf("Scan returned error: %v", err)
		}
		if len(images) != 1 || images[0].Name != "x.png" {
			t.Fatalf("expected the linked image, got %+v", images)
		}
	})
}

func TestScanErrors(t *testing.T) {
	t.Run("missing folder", func(t *testing.T) {
		_, err := media.Scan(context.Background(), filepath.Join(t.TempDir(), "nope"), defaultExts, nil)
		if !errors.Is(err, media.ErrDirNotFound) {
			t.Fatalf("expected ErrDirNotFound, got %v", err)
		}
	})

	t.Run("file instead of folder", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.jpg")
		testsupport.WriteFile(t, path, []byte("x"))
		_, err := media.Scan(context.Background(), path, defaultExts, nil)
		if !errors.Is(err, media.ErrDirNotFound) {
			t.Fatalf("expected ErrDirNotFound, got %v", err)
		}
	})

	t.Run("empty folder", func(t *testing.T) {
		_, err := media.Scan(context.Background(), t.TempDir(), defaultExts, nil)
		if !errors.Is(err, media.ErrNoImages) {
			t.Fatalf("expected ErrNoImages, got %v", err)
		}
	})

	t.Run("only unrecognised files", func(t *testing.T) {
		dir := t.TempDir()
		testsupport.WriteFile(t, filepath.Join(dir, "readme.md"), []byte("# hi"))
		if err := os.Mkdir(filepath.Join(dir, "sub.jpg"), 0o755); err != nil {
			t.Fatal(err)
		}
		_, err := media.Scan(context.Background(), dir, defaultExts, nil)
		if !errors.Is(err, media.ErrNoImages) {
			t.Fatalf("expected ErrNoImages, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		dir := t.TempDir()
		testsupport.WritePNG(t, filepath.Join(dir, "a.png"), 2, 2)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := media.Scan(ctx, dir, defaultExts, nil)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tall.png")
	testsupport.WritePNG(t, path, 3, 9)
	w, h, err := media.Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions returned error: %v", err)
	}
	if w != 3 || h != 9 {
		t.Fatalf("unexpected dimensions %dx%d", w, h)
	}
}
