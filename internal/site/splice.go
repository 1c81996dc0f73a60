package site

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMarkerNotFound indicates a sentinel comment is absent from a document.
	ErrMarkerNotFound = errors.New("marker not found")
	// ErrMarkerAmbiguous indicates a sentinel comment appears more than once.
	ErrMarkerAmbiguous = errors.New("marker appears more than once")
)

// findMarker returns the offset of the single occurrence of marker in doc.
func findMarker(doc, marker string) (int, error) {
	switch strings.Count(doc, marker) {
	case 0:
		return -1, fmt.Errorf("%w: %s", ErrMarkerNotFound, marker)
	case 1:
		return strings.Index(doc, marker), nil
	default:
		return -1, fmt.Errorf("%w: %s", ErrMarkerAmbiguous, marker)
	}
}

// newline returns the line ending used by doc.
func newline(doc string) string {
	if strings.Contains(doc, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// lineIndent returns the leading whitespace of the line containing offset,
// and whether the line holds nothing but whitespace before offset.
func lineIndent(doc string, offset int) (string, bool) {
	start := strings.LastIndex(doc[:offset], "\n") + 1
	prefix := doc[start:offset]
	trimmed := strings.TrimLeft(prefix, " \t")
	return prefix[:len(prefix)-len(trimmed)], trimmed == ""
}

// indentLines prefixes every non-empty line of block with indent and joins
// the lines with nl. The result ends with nl unless block is empty.
func indentLines(block, indent, nl string) string {
	block = strings.ReplaceAll(block, "\r\n", "\n")
	if strings.TrimSpace(block) == "" {
		return ""
	}
	var b strings.Builder
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			b.WriteString(indent)
			b.WriteString(line)
		}
		b.WriteString(nl)
	}
	return b.String()
}

// InsertAfterMarker inserts block on its own lines directly below the line
// holding marker, separated from it by one blank line and indented like the
// marker. Content already below the marker moves down unchanged, so the most
// recent insertion always comes first.
func InsertAfterMarker(doc, marker, block string) (string, error) {
	at, err := findMarker(doc, marker)
	if err != nil {
		return "", err
	}
	nl := newline(doc)
	indent, _ := lineIndent(doc, at)

	end := at + len(marker)
	var prefix string
	if i := strings.Index(doc[end:], "\n"); i >= 0 {
		end += i + 1
	} else {
		end = len(doc)
		prefix = nl
	}
	return doc[:end] + prefix + nl + indentLines(block, indent, nl) + doc[end:], nil
}

// ReplaceRegion replaces everything between the begin and end markers with
// body. The markers themselves and everything outside them are preserved, and
// body is indented to match the end marker. Applying the same body twice
// yields the same document.
func ReplaceRegion(doc, begin, end, body string) (string, error) {
	bi, err := findMarker(doc, begin)
	if err != nil {
		return "", err
	}
	ei, err := findMarker(doc, end)
	if err != nil {
		return "", err
	}
	if ei < bi+len(begin) {
		return "", fmt.Errorf("%w: %s must follow %s", ErrMarkerNotFound, end, begin)
	}
	nl := newline(doc)

	start := bi + len(begin)
	var prefix string
	if i := strings.Index(doc[start:ei], "\n"); i >= 0 {
		start += i + 1
	} else {
		prefix = nl
	}

	indent, ownLine := lineIndent(doc, ei)
	if ownLine && ei-len(indent) >= start {
		return doc[:start] + prefix + indentLines(body, indent, nl) + doc[ei-len(indent):], nil
	}
	// The end marker shares its line with other text; move it onto its own
	// line indented like the begin marker.
	indent, _ = lineIndent(doc, bi)
	return doc[:start] + prefix + indentLines(body, indent, nl) + indent + doc[ei:], nil
}

// HasTile reports whether doc already links to href, which is how duplicate
// tiles are detected.
func HasTile(doc, href string) bool {
	return strings.Contains(doc, `href="`+href+`"`)
}
