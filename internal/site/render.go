package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"folio/internal/manifest"
	"folio/internal/media"
	"folio/internal/textutil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Project is the input for rendering a project page and its portfolio tile.
// Images must already be in page order.
type Project struct {
	Slug     string
	Title    string
	Subtitle string
	Images   []media.Image
}

// Cover returns the cover path relative to the media folder: the first image.
func (p Project) Cover() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Slug + "/" + p.Images[0].Name
}

type navItem struct {
	Label  string
	Href   string
	Active bool
}

type galleryImage struct {
	Src    string
	Width  int
	Height int
	Size   string
}

type projectPageData struct {
	Title         string
	Subtitle      string
	Description   string
	Author        string
	OGURL         string
	Canonical     string
	Root          string
	Icon          string
	Logo          string
	Banner        string
	HomeHref      string
	PortfolioHref string
	Credits       string
	Nav           []navItem
	Images        []galleryImage
}

type tileData struct {
	Href        string
	Cover       string
	Title       string
	Subtitle    string
	Orientation string
}

// Renderer turns projects into markup for one site layout.
type Renderer struct {
	layout Layout
}

// NewRenderer returns a Renderer for layout.
func NewRenderer(layout Layout) *Renderer {
	return &Renderer{layout: layout}
}

// ProjectPage renders the full HTML page for a project. The output depends
// only on the project and the layout.
func (r *Renderer) ProjectPage(p Project) ([]byte, error) {
	if len(p.Images) == 0 {
		return nil, fmt.Errorf("render project page %s: no images", p.Slug)
	}
	l := r.layout
	data := projectPageData{
		Title:         p.Title,
		Subtitle:      p.Subtitle,
		Description:   p.Title + " photography project",
		Author:        l.Author,
		Canonical:     l.fromPage(l.ProjectHref(p.Slug)),
		Root:          l.PageRoot,
		Icon:          l.Icon,
		Logo:          l.Logo,
		Banner:        l.Banner,
		HomeHref:      l.fromPage(l.IndexHref),
		PortfolioHref: l.fromPage(l.PortfolioHref),
		Credits:       l.Credits(),
	}
	if l.Author != "" {
		data.Description += " by " + l.Author
	}
	data.Description += "."
	if l.BaseURL != "" {
		data.OGURL = l.BaseURL + "/" + l.ProjectHref(p.Slug)
	}
	for _, link := range l.Nav {
		data.Nav = append(data.Nav, navItem{
			Label:  link.Label,
			Href:   l.fromPage(link.Href),
			Active: strings.TrimPrefix(link.Href, "/") == l.PortfolioHref,
		})
	}
	for _, img := range p.Images {
		data.Images = append(data.Images, galleryImage{
			Src:    l.fromPage(l.MediaHref(p.Slug + "/" + img.Name)),
			Width:  img.Width,
			Height: img.Height,
			Size:   img.Size(),
		})
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "project.html.tmpl", data); err != nil {
		return nil, fmt.Errorf("render project page %s: %w", p.Slug, err)
	}
	return buf.Bytes(), nil
}

// PortfolioTile renders the grid card linking to a project page.
func (r *Renderer) PortfolioTile(p Project) (string, error) {
	if len(p.Images) == 0 {
		return "", fmt.Errorf("render portfolio tile %s: no images", p.Slug)
	}
	data := tileData{
		Href:     r.layout.ProjectHref(p.Slug),
		Cover:    r.layout.MediaHref(p.Cover()),
		Title:    p.Title,
		Subtitle: textutil.TileSubtitle(p.Subtitle),
	}
	return r.execute("portfolio_tile.html.tmpl", data)
}

// RecentTiles renders the homepage tiles for entries, in the order given.
func (r *Renderer) RecentTiles(entries []manifest.Entry) ([]string, error) {
	tiles := make([]string, 0, len(entries))
	for _, entry := range entries {
		orientation := entry.Orientation
		if orientation != string(media.Portrait) {
			orientation = string(media.Landscape)
		}
		tile, err := r.execute("recent_tile.html.tmpl", tileData{
			Href:        r.layout.ProjectHref(entry.Slug),
			Cover:       r.layout.MediaHref(entry.Cover),
			Title:       entry.Title,
			Orientation: orientation,
		})
		if err != nil {
			return nil, fmt.Errorf("render recent tile %s: %w", entry.Slug, err)
		}
		tiles = append(tiles, tile)
	}
	return tiles, nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
