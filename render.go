package textdiff

import (
	"strings"
	"unicode/utf8"
)

// lineBreakMarker stands in for "\n" in rendered edits so that each edit
// renders on a single line.
const lineBreakMarker = "¶"

// Marker returns the single character that prefixes a rendered edit of
// type t.
func (t OpType) Marker() string {
	switch t {
	case Delete:
		return "<"
	case Insert:
		return ">"
	case Equal:
		return "="
	default:
		return "?"
	}
}

// String renders e for debugging: its marker followed by the quoted text,
// with line breaks shown as ¶.
func (e Edit) String() string {
	return e.Type.Marker() + `"` + strings.ReplaceAll(e.Text, "\n", lineBreakMarker) + `"`
}

// Render renders an edit script with one edit per line.
func Render(edits []Edit) string {
	var sb strings.Builder
	for i, e := range edits {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}

// Source rebuilds the source text of an edit script.
func Source(edits []Edit) string {
	var sb strings.Builder
	for _, e := range edits {
		if e.Type != Insert {
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// Target rebuilds the target text of an edit script.
func Target(edits []Edit) string {
	var sb strings.Builder
	for _, e := range edits {
		if e.Type != Delete {
			sb.WriteString(e.Text)
		}
	}
	return sb.String()
}

// Levenshtein returns the number of inserted, deleted or substituted runes
// the script implies. A deletion next to an insertion counts as
// substitutions.
func Levenshtein(edits []Edit) int {
	distance := 0
	insertions, deletions := 0, 0
	for _, e := range edits {
		n := utf8.RuneCountInString(e.Text)
		switch e.Type {
		case Insert:
			insertions += n
		case Delete:
			deletions += n
		case Equal:
			distance += max(insertions, deletions)
			insertions, deletions = 0, 0
		}
	}
	return distance + max(insertions, deletions)
}
