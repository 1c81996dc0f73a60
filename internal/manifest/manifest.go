package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrDuplicate is returned when adding a slug that is already recorded.
var ErrDuplicate = errors.New("project already recorded")

// Entry records one scaffolded project.
type Entry struct {
	Slug        string    `toml:"slug" json:"slug"`
	Title       string    `toml:"title" json:"title"`
	Subtitle    string    `toml:"subtitle" json:"subtitle"`
	Cover       string    `toml:"cover" json:"cover"`
	Orientation string    `toml:"orientation" json:"orientation"`
	Images      int       `toml:"images" json:"images"`
	AddedAt     time.Time `toml:"added_at" json:"added_at"`
}

type document struct {
	Projects []Entry `toml:"project,omitempty"`
}

// Manifest is the in-memory form of the project log, oldest entry first.
type Manifest struct {
	entries []Entry
}

// Load reads a manifest file. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Decode(data)
}

// Decode parses manifest TOML and rejects duplicate or empty slugs.
func Decode(data []byte) (*Manifest, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m := &Manifest{}
	for i, entry := range doc.Projects {
		if entry.Slug == "" {
			return nil, fmt.Errorf("parse manifest: project %d has no slug", i+1)
		}
		if err := m.Add(entry); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	}
	return m, nil
}

// Encode renders the manifest as TOML.
func (m *Manifest) Encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# Projects in the order they were scaffolded, oldest first.\n")
	buf.WriteString("# The homepage lists the newest entries; keep this file under version control.\n\n")
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(document{Projects: m.entries}); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Len reports the number of recorded projects.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Entries returns a copy of all entries, oldest first.
func (m *Manifest) Entries() []Entry {
	return append([]Entry(nil), m.entries...)
}

// Has reports whether slug is recorded.
func (m *Manifest) Has(slug string) bool {
	return m.index(slug) >= 0
}

// Get returns the entry for slug.
func (m *Manifest) Get(slug string) (Entry, bool) {
	if i := m.index(slug); i >= 0 {
		return m.entries[i], true
	}
	return Entry{}, false
}

// Add appends entry as the newest project.
func (m *Manifest) Add(entry Entry) error {
	if m.Has(entry.Slug) {
		return fmt.Errorf("%w: %s", ErrDuplicate, entry.Slug)
	}
	entry.AddedAt = entry.AddedAt.UTC().Truncate(time.Second)
	m.entries = append(m.entries, entry)
	return nil
}

// Upsert appends entry when slug is new, otherwise refreshes the recorded
// metadata in place. The original position and AddedAt are kept so
// regenerating a project never changes its recency. It reports whether the
// entry was added.
func (m *Manifest) Upsert(entry Entry) bool {
	i := m.index(entry.Slug)
	if i < 0 {
		_ = m.Add(entry)
		return true
	}
	entry.AddedAt = m.entries[i].AddedAt
	m.entries[i] = entry
	return false
}

// Recent returns up to n entries, newest first.
func (m *Manifest) Recent(n int) []Entry {
	if n <= 0 {
		return nil
	}
	if n > len(m.entries) {
		n = len(m.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(m.entries) - 1; i >= len(m.entries)-n; i-- {
		out = append(out, m.entries[i])
	}
	return out
}

// IsRecent reports whether slug is among the n newest entries.
func (m *Manifest) IsRecent(slug string, n int) bool {
	i := m.index(slug)
	return i >= 0 && i >= len(m.entries)-n
}

func (m *Manifest) index(slug string) int {
	for i := range m.entries {
		if m.entries[i].Slug == slug {
			return i
		}
	}
	return -1
}
