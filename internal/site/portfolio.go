package site

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

// Tile is a project card recovered from an existing portfolio page.
type Tile struct {
	Slug     string
	Cover    string // relative to the media folder
	Title    string
	Subtitle string
}

var (
	tileImgPattern      = regexp.MustCompile(`<img\s[^>]*src="([^"]*)"`)
	tileAltPattern      = regexp.MustCompile(`<img\s[^>]*alt="([^"]*)"`)
	tileTitlePattern    = regexp.MustCompile(`(?s)<h3(?:\s[^>]*)?>(.*?)</h3>`)
	tileSubtitlePattern = regexp.MustCompile(`(?s)<p(?:\s[^>]*)?>(.*?)</p>`)
)

// ParseTiles returns the project cards found in a portfolio document, in
// document order. Cards whose cover does not live under the media folder are
// skipped.
func (l Layout) ParseTiles(doc string) []Tile {
	card := regexp.MustCompile(`(?s)<a href="` + regexp.QuoteMeta(l.ProjectsPath+"/") +
		`([^"/]+)\.html" class="project-card[^"]*">(.*?)</a>`)
	mediaPrefix := l.MediaPath + "/"

	var tiles []Tile
	for _, m := range card.FindAllStringSubmatch(doc, -1) {
		slug, body := html.UnescapeString(m[1]), m[2]
		img := tileImgPattern.FindStringSubmatch(body)
		if img == nil {
			continue
		}
		src := html.UnescapeString(img[1])
		if unescaped, err := url.PathUnescape(src); err == nil {
			src = unescaped
		}
		if !strings.HasPrefix(src, mediaPrefix) {
			continue
		}
		tile := Tile{Slug: slug, Cover: strings.TrimPrefix(src, mediaPrefix)}
		if t := tileTitlePattern.FindStringSubmatch(body); t != nil {
			tile.Title = strings.TrimSpace(html.UnescapeString(t[1]))
		}
		if tile.Title == "" {
			if alt := tileAltPattern.FindStringSubmatch(body); alt != nil {
				tile.Title = strings.TrimSpace(html.UnescapeString(alt[1]))
			}
		}
		if p := tileSubtitlePattern.FindStringSubmatch(body); p != nil {
			tile.Subtitle = strings.TrimSpace(strings.ReplaceAll(html.UnescapeString(p[1]), "•", "/"))
		}
		tiles = append(tiles, tile)
	}
	return tiles
}
