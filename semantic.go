package textdiff

import "slices"

// cleanupSemantic reduces the number of edits by eliminating semantically
// trivial equalities, then shifts the remaining edits onto natural
// boundaries and turns large deletion/insertion overlaps into equalities.
func cleanupSemantic(diffs []edit[rune]) []edit[rune] {
	diffs, changed := eliminateEqualities(diffs)
	if changed {
		diffs = cleanupMerge(diffs)
	}
	diffs = cleanupSemanticLossless(diffs)
	return extractOverlaps(diffs)
}

// eliminateEqualities turns every equality that is no longer than the edits
// on both of its sides into a deletion and an insertion. After each
// elimination the scan steps back one equality, because merging may have
// made the previous one trivial as well.
func eliminateEqualities[T comparable](diffs []edit[T]) ([]edit[T], bool) {
	diffs = slices.Clone(diffs)
	changed := false

	// Indices of equalities seen so far.
	var equalities []int
	var lastEquality []T
	haveLast := false
	// Edit lengths before and after the last equality.
	var insertsBefore, deletesBefore, insertsAfter, deletesAfter int

	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		if d.op == Equal {
			equalities = append(equalities, i)
			insertsBefore, deletesBefore = insertsAfter, deletesAfter
			insertsAfter, deletesAfter = 0, 0
			lastEquality, haveLast = d.text, true
			continue
		}

		if d.op == Insert {
			insertsAfter += len(d.text)
		} else {
			deletesAfter += len(d.text)
		}
		if !haveLast ||
			len(lastEquality) > max(insertsBefore, deletesBefore) ||
			len(lastEquality) > max(insertsAfter, deletesAfter) {
			continue
		}

		// Replace the equality with a deletion followed by an insertion.
		at := equalities[len(equalities)-1]
		diffs = slices.Insert(diffs, at, edit[T]{op: Delete, text: lastEquality})
		diffs[at+1].op = Insert

		// Drop this equality and reevaluate the one before it.
		equalities = equalities[:len(equalities)-1]
		if len(equalities) > 0 {
			equalities = equalities[:len(equalities)-1]
		}
		i = -1
		if len(equalities) > 0 {
			i = equalities[len(equalities)-1]
		}
		insertsBefore, deletesBefore, insertsAfter, deletesAfter = 0, 0, 0, 0
		lastEquality, haveLast = nil, false
		changed = true
	}
	return diffs, changed
}

// extractOverlaps looks at each deletion directly followed by an insertion.
// When the end of one is the start of the other and the overlap covers at
// least half of either text, the overlap becomes an equality, e.g.
// <del>abcxxx</del><ins>xxxdef</ins> -> <del>abc</del>xxx<ins>def</ins>.
func extractOverlaps[T comparable](diffs []edit[T]) []edit[T] {
	out := make([]edit[T], 0, len(diffs))
	for i := 0; i < len(diffs); i++ {
		if i+1 >= len(diffs) || diffs[i].op != Delete || diffs[i+1].op != Insert {
			out = append(out, diffs[i])
			continue
		}
		deletion, insertion := diffs[i].text, diffs[i+1].text
		overlapA := commonOverlap(deletion, insertion)
		overlapB := commonOverlap(insertion, deletion)
		switch {
		case overlapA >= overlapB && coversHalf(overlapA, deletion, insertion):
			out = append(out,
				edit[T]{op: Delete, text: deletion[:len(deletion)-overlapA]},
				edit[T]{op: Equal, text: insertion[:overlapA]},
				edit[T]{op: Insert, text: insertion[overlapA:]},
			)
		case overlapA < overlapB && coversHalf(overlapB, deletion, insertion):
			// Reverse overlap: the insertion comes first.
			out = append(out,
				edit[T]{op: Insert, text: insertion[:len(insertion)-overlapB]},
				edit[T]{op: Equal, text: deletion[:overlapB]},
				edit[T]{op: Delete, text: deletion[overlapB:]},
			)
		default:
			out = append(out, diffs[i], diffs[i+1])
		}
		i++
	}
	return out
}

// coversHalf reports whether an overlap of n tokens is at least half the
// length of a or of b.
func coversHalf[T any](n int, a, b []T) bool {
	return n*2 >= len(a) || n*2 >= len(b)
}
