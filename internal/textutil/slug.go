package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// slugPattern restricts slugs to characters that are safe in file names and
// URLs without escaping.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidSlug reports whether slug can name a media folder and a page.
func ValidSlug(slug string) bool {
	if len(slug) > 128 {
		return false
	}
	return slugPattern.MatchString(slug)
}

// TitleFromSlug turns iceland_2023 into "Iceland 2023". Underscores, dashes,
// and dots collapse into single spaces; other punctuation is dropped.
func TitleFromSlug(slug string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range slug {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return ""
	}
	return cases.Title(language.Und).String(title)
}

// subtitleReplacer swaps the path-like separator used in subtitles for the
// bullet shown on portfolio tiles.
var subtitleReplacer = strings.NewReplacer("/", "•")

// TileSubtitle formats a subtitle for display on a portfolio tile.
// "Reykjavik / Vik" becomes "Reykjavik • Vik".
func TileSubtitle(subtitle string) string {
	return strings.TrimSpace(subtitleReplacer.Replace(subtitle))
}
