package site_test

import (
	"errors"
	"strings"
	"testing"

	"folio/internal/site"
)

const marker = "<!-- tiles -->"

func TestInsertAfterMarkerNewestFirst(t *testing.T) {
	doc := "<div>\n    " + marker + "\n\n</div>\n"

	doc, err := site.InsertAfterMarker(doc, marker, "<a>one</a>")
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}
	doc, err = site.InsertAfterMarker(doc, marker, "<a>\n  two\n</a>")
	if err != nil {
		t.Fatalf("second insert: %v", err)
	}

	want := "<div>\n    " + marker + "\n\n    <a>\n      two\n    </a>\n\n    <a>one</a>\n\n</div>\n"
	if doc != want {
		t.Fatalf("unexpected document:\n%q\nwant:\n%q", doc, want)
	}
}

func TestInsertAfterMarkerAtEndOfDocument(t *testing.T) {
	doc, err := site.InsertAfterMarker(marker, marker, "<a/>")
	if err != nil {
		t.Fatal(err)
	}
	if doc != marker+"\n\n<a/>\n" {
		t.Fatalf("unexpected document %q", doc)
	}
}

func TestInsertAfterMarkerKeepsCRLF(t *testing.T) {
	doc, err := site.InsertAfterMarker("x\r\n"+marker+"\r\ny\r\n", marker, "<a>\n</a>")
	if err != nil {
		t.Fatal(err)
	}
	if doc != "x\r\n"+marker+"\r\n\r\n<a>\r\n</a>\r\ny\r\n" {
		t.Fatalf("unexpected document %q", doc)
	}
}

func TestMarkerErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"missing", "<div></div>", site.ErrMarkerNotFound},
		{"duplicated", marker + "\n" + marker, site.ErrMarkerAmbiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := site.InsertAfterMarker(tt.doc, marker, "x")
			if !errors.Is(err, tt.want) {
				t.Fatalf("InsertAfterMarker error = %v, want %v", err, tt.want)
			}
			_, err = site.ReplaceRegion(tt.doc+"\n<!-- end -->", marker, "<!-- end -->", "x")
			if !errors.Is(err, tt.want) {
				t.Fatalf("ReplaceRegion error = %v, want %v", err, tt.want)
			}
		})
	}
}

const (
	begin = "<!-- recent:begin -->"
	end   = "<!-- recent:end -->"
)

func TestReplaceRegionIsIdempotent(t *testing.T) {
	doc := "<section>\n    " + begin + "\n    <a>old</a>\n    " + end + "\n    <a>button</a>\n</section>\n"

	once, err := site.ReplaceRegion(doc, begin, end, "<a>new</a>\n<a>newer</a>")
	if err != nil {
		t.Fatalf("ReplaceRegion: %v", err)
	}
	want := "<section>\n    " + begin + "\n    <a>new</a>\n    <a>newer</a>\n    " + end + "\n    <a>button</a>\n</section>\n"
	if once != want {
		t.Fatalf("unexpected document:\n%q\nwant:\n%q", once, want)
	}

	twice, err := site.ReplaceRegion(once, begin, end, "<a>new</a>\n<a>newer</a>")
	if err != nil {
		t.Fatal(err)
	}
	if twice != once {
		t.Fatalf("second replace changed the document:\n%q", twice)
	}

	empty, err := site.ReplaceRegion(once, begin, end, "")
	if err != nil {
		t.Fatal(err)
	}
	if empty != "<section>\n    "+begin+"\n    "+end+"\n    <a>button</a>\n</section>\n" {
		t.Fatalf("unexpected empty region %q", empty)
	}
}

func TestReplaceRegionMarkersOnOneLine(t *testing.T) {
	doc := "  " + begin + end + "\n<p>after</p>"
	once, err := site.ReplaceRegion(doc, begin, end, "<a/>")
	if err != nil {
		t.Fatal(err)
	}
	want := "  " + begin + "\n  <a/>\n  " + end + "\n<p>after</p>"
	if once != want {
		t.Fatalf("unexpected document:\n%q\nwant:\n%q", once, want)
	}
	twice, err := site.ReplaceRegion(once, begin, end, "<a/>")
	if err != nil {
		t.Fatal(err)
	}
	if twice != once {
		t.Fatalf("second replace changed the document:\n%q", twice)
	}
}

func TestReplaceRegionRejectsReversedMarkers(t *testing.T) {
	_, err := site.ReplaceRegion(end+"\n"+begin, begin, end, "x")
	if !errors.Is(err, site.ErrMarkerNotFound) {
		t.Fatalf("expected ErrMarkerNotFound, got %v", err)
	}
}

func TestReplaceRegionLeavesOutsideUntouched(t *testing.T) {
	before := "<html>\n<p>keep &amp; me</p>\n"
	after := "<footer>also kept</footer>\n</html>\n"
	doc := before + begin + "\nstale\n" + end + "\n" + after
	got, err := site.ReplaceRegion(doc, begin, end, "fresh")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, before+begin+"\n") || !strings.HasSuffix(got, end+"\n"+after) {
		t.Fatalf("content outside the region changed:\n%s", got)
	}
	if strings.Contains(got, "stale") || !strings.Contains(got, "\nfresh\n") {
		t.Fatalf("region not replaced:\n%s", got)
	}
}

func TestHasTile(t *testing.T) {
	doc := `<a href="projects/iceland.html" class="project-card">`
	if !site.HasTile(doc, "projects/iceland.html") {
		t.Error("expected tile to be found")
	}
	if site.HasTile(doc, "projects/ice.html") {
		t.Error("prefix of an existing slug must not match")
	}
}
