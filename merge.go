package textdiff

// cleanupMerge reorders and merges like edit sections and factors out
// commonalities between deletions and insertions. It repeats until sliding
// single edits no longer changes the script.
func cleanupMerge[T comparable](diffs []edit[T]) []edit[T] {
	for {
		diffs = mergeRuns(diffs)
		var changed bool
		diffs, changed = slideEdits(diffs)
		if !changed {
			return diffs
		}
	}
}

// mergeRuns collapses every run of deletions and insertions between two
// equalities into at most one deletion followed by one insertion. Text the
// two share at either end moves into the surrounding equalities.
func mergeRuns[T comparable](diffs []edit[T]) []edit[T] {
	out := make([]edit[T], 0, len(diffs))
	var pending []edit[T]
	var textDelete, textInsert []T

	// appendEqual adds text as an equality, extending the previous one.
	appendEqual := func(text []T) {
		if len(text) == 0 {
			return
		}
		if last := len(out) - 1; last >= 0 && out[last].op == Equal {
			out[last].text = concat(out[last].text, text)
			return
		}
		out = append(out, edit[T]{op: Equal, text: text})
	}

	// A zero edit past the end acts as the terminating equality.
	for i := 0; i <= len(diffs); i++ {
		var d edit[T]
		if i < len(diffs) {
			d = diffs[i]
			if d.op == Equal && len(d.text) == 0 {
				continue
			}
		}

		switch d.op {
		case Insert:
			textInsert = concat(textInsert, d.text)
			pending = append(pending, d)
			continue
		case Delete:
			textDelete = concat(textDelete, d.text)
			pending = append(pending, d)
			continue
		}

		text := d.text
		switch {
		case len(pending) > 1:
			if len(textDelete) != 0 && len(textInsert) != 0 {
				if n := commonPrefix(textInsert, textDelete); n != 0 {
					appendEqual(textInsert[:n])
					textInsert = textInsert[n:]
					textDelete = textDelete[n:]
				}
				if n := commonSuffix(textInsert, textDelete); n != 0 {
					text = concat(textInsert[len(textInsert)-n:], text)
					textInsert = textInsert[:len(textInsert)-n]
					textDelete = textDelete[:len(textDelete)-n]
				}
			}
			if len(textDelete) != 0 {
				out = append(out, edit[T]{op: Delete, text: textDelete})
			}
			if len(textInsert) != 0 {
				out = append(out, edit[T]{op: Insert, text: textInsert})
			}
		case len(pending) == 1 && len(pending[0].text) != 0:
			out = append(out, pending[0])
		}
		appendEqual(text)

		pending = pending[:0]
		textDelete, textInsert = nil, nil
	}
	return out
}

// slideEdits looks for single edits surrounded on both sides by equalities
// which can be shifted sideways to eliminate an equality, e.g.
// A<ins>BA</ins>C -> <ins>AB</ins>AC.
func slideEdits[T comparable](diffs []edit[T]) ([]edit[T], bool) {
	changed := false
	out := make([]edit[T], 0, len(diffs))
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		last := len(out) - 1
		if last < 0 || out[last].op != Equal || i+1 >= len(diffs) || diffs[i+1].op != Equal {
			out = append(out, d)
			continue
		}
		prev, next := out[last], diffs[i+1]
		switch {
		case hasSuffix(d.text, prev.text):
			// Shift the edit over the previous equality.
			d.text = concat(prev.text, d.text[:len(d.text)-len(prev.text)])
			next.text = concat(prev.text, next.text)
			out = append(out[:last], d, next)
			i++
			changed = true
		case hasPrefix(d.text, next.text):
			// Shift the edit over the next equality.
			out[last].text = concat(prev.text, next.text)
			d.text = concat(d.text[len(next.text):], next.text)
			out = append(out, d)
			i++
			changed = true
		default:
			out = append(out, d)
		}
	}
	return out, changed
}
