package textutil

import (
	"strings"
	"testing"
)

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"iceland_2023", true},
		{"Norway-Fjords.2024", true},
		{"a", true},
		{"", false},
		{".", false},
		{"..", false},
		{".hidden", false},
		{"-dash-first", false},
		{"nested/slug", false},
		{`back\slash`, false},
		{"with space", false},
		{"émigré", false},
		{strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := ValidSlug(tt.slug); got != tt.want {
				t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestTitleFromSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"iceland_2023", "Iceland 2023"},
		{"norway-fjords", "Norway Fjords"},
		{"new__york..city", "New York City"},
		{"LOUD", "Loud"},
		{"___", ""},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := TitleFromSlug(tt.slug); got != tt.want {
				t.Errorf("TitleFromSlug(%q) = %q, want %q", tt.slug, got, tt.want)
			}
		})
	}
}

func TestTileSubtitle(t *testing.T) {
	if got := TileSubtitle("Reykjavik / Vik / Höfn"); got != "Reykjavik • Vik • Höfn" {
		t.Errorf("TileSubtitle() = %q", got)
	}
	if got := TileSubtitle("  Plain  "); got != "Plain" {
		t.Errorf("TileSubtitle() = %q", got)
	}
}
