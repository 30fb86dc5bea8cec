package textdiff

import (
	"slices"
	"strings"
)

// Reference line table caps. Implementations that encode each line as one
// UTF-16 code unit stop interning at these sizes; pass them to
// WithLineTokenLimits to reproduce their output exactly.
const (
	ReferenceFirstLineLimit  = 40000
	ReferenceSecondLineLimit = 65535
)

// lineTable interns lines as dense integer IDs. ID 0 is reserved so that no
// real line maps to the zero value.
type lineTable struct {
	lines []string
	ids   map[string]int
}

func newLineTable() *lineTable {
	return &lineTable{
		lines: []string{""},
		ids:   make(map[string]int),
	}
}

// linesToTokens splits both texts into lines and returns them as ID
// sequences over one shared table.
func linesToTokens(a, b []rune, limits [2]int) (ta, tb []int, table *lineTable) {
	table = newLineTable()
	ta = table.tokenize(a, limits[0])
	tb = table.tokenize(b, limits[1])
	return ta, tb, table
}

// tokenize returns the line IDs of text. Each line keeps its trailing
// newline; a final line without one is a line too. When limit > 0 and the
// table holds limit or more entries, the rest of text becomes one line.
func (t *lineTable) tokenize(text []rune, limit int) []int {
	var tokens []int
	start := 0
	for start < len(text) {
		end := slices.Index(text[start:], '\n')
		if end == -1 {
			end = len(text) - 1
		} else {
			end += start
		}
		line := string(text[start : end+1])

		id, ok := t.ids[line]
		if !ok && limit > 0 && len(t.lines) >= limit {
			// The other text may already have filled the table.
			line = string(text[start:])
			end = len(text) - 1
			id, ok = t.ids[line]
		}
		if !ok {
			t.lines = append(t.lines, line)
			id = len(t.lines) - 1
			t.ids[line] = id
		}
		tokens = append(tokens, id)
		start = end + 1
	}
	return tokens
}

// tokensToLines expands an ID-level script back into text. An unknown ID is
// a bug in the caller and panics.
func tokensToLines(diffs []edit[int], table *lineTable) []edit[rune] {
	out := make([]edit[rune], len(diffs))
	for i, d := range diffs {
		var sb strings.Builder
		for _, id := range d.text {
			sb.WriteString(table.lines[id])
		}
		out[i] = edit[rune]{op: d.op, text: []rune(sb.String())}
	}
	return out
}

// lineMode diffs two long texts line by line, then rediffs every replaced
// block character by character. Much faster than a character diff on large
// inputs, at some cost in minimality.
func lineMode(e *engine[rune], a, b []rune, depth int) []edit[rune] {
	ta, tb, table := linesToTokens(a, b, e.lineLimits)
	e.debug("line mode", "source_lines", len(ta), "target_lines", len(tb), "distinct_lines", len(table.lines)-1)

	le := &engine[int]{run: e.run}
	diffs := tokensToLines(le.main(ta, tb, false, depth), table)

	// Eliminate freak matches such as blank lines.
	diffs = cleanupSemantic(diffs)

	out := make([]edit[rune], 0, len(diffs))
	var pending []edit[rune]
	var textDelete, textInsert []rune
	countDelete, countInsert := 0, 0
	flush := func() {
		if countDelete > 0 && countInsert > 0 {
			out = append(out, e.main(textDelete, textInsert, false, depth+1)...)
		} else {
			out = append(out, pending...)
		}
		pending = pending[:0]
		textDelete, textInsert = nil, nil
		countDelete, countInsert = 0, 0
	}
	for _, d := range diffs {
		switch d.op {
		case Insert:
			countInsert++
			textInsert = concat(textInsert, d.text)
			pending = append(pending, d)
		case Delete:
			countDelete++
			textDelete = concat(textDelete, d.text)
			pending = append(pending, d)
		case Equal:
			flush()
			out = append(out, d)
		}
	}
	flush()
	return out
}
