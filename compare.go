package textdiff

import "slices"

// lineModeThreshold is the length both texts must exceed before the line
// pre-pass is worth its setup cost.
const lineModeThreshold = 100

// main diffs a against b. It strips the common prefix and suffix, diffs the
// middle and returns the merged script.
func (e *engine[T]) main(a, b []T, checkLines bool, depth int) []edit[T] {
	if slices.Equal(a, b) {
		if len(a) == 0 {
			return nil
		}
		return []edit[T]{{op: Equal, text: a}}
	}

	n := commonPrefix(a, b)
	prefix := a[:n]
	a, b = a[n:], b[n:]

	n = commonSuffix(a, b)
	suffix := a[len(a)-n:]
	a, b = a[:len(a)-n], b[:len(b)-n]

	middle := e.compute(a, b, checkLines, depth)

	diffs := make([]edit[T], 0, len(middle)+2)
	if len(prefix) > 0 {
		diffs = append(diffs, edit[T]{op: Equal, text: prefix})
	}
	diffs = append(diffs, middle...)
	if len(suffix) > 0 {
		diffs = append(diffs, edit[T]{op: Equal, text: suffix})
	}
	return cleanupMerge(diffs)
}

// compute diffs two texts that share no common prefix or suffix, picking the
// cheapest strategy that applies.
func (e *engine[T]) compute(a, b []T, checkLines bool, depth int) []edit[T] {
	if len(a) == 0 {
		return []edit[T]{{op: Insert, text: b}}
	}
	if len(b) == 0 {
		return []edit[T]{{op: Delete, text: a}}
	}
	if depth > maxRecursionDepth {
		e.debug("recursion limit reached", "depth", depth, "source_len", len(a), "target_len", len(b))
		return replacement(a, b)
	}

	long, short, op := a, b, Delete
	if len(a) <= len(b) {
		long, short, op = b, a, Insert
	}
	if i := index(long, short, 0); i != -1 {
		return []edit[T]{
			{op: op, text: long[:i]},
			{op: Equal, text: short},
			{op: op, text: long[i+len(short):]},
		}
	}

	// A single token that is not contained can't be an equality.
	if len(short) == 1 {
		return replacement(a, b)
	}

	if e.halfMatch {
		if hm := halfMatch(a, b, e.expired); hm != nil {
			left := e.main(hm.sourceBefore, hm.targetBefore, checkLines, depth+1)
			right := e.main(hm.sourceAfter, hm.targetAfter, checkLines, depth+1)
			diffs := make([]edit[T], 0, len(left)+len(right)+1)
			diffs = append(diffs, left...)
			diffs = append(diffs, edit[T]{op: Equal, text: hm.common})
			return append(diffs, right...)
		}
	}

	if checkLines && e.lines != nil && len(a) > lineModeThreshold && len(b) > lineModeThreshold {
		return e.lines(a, b, depth+1)
	}

	return e.bisect(a, b, depth)
}

// replacement is the trivially valid script that deletes a and inserts b.
func replacement[T comparable](a, b []T) []edit[T] {
	return []edit[T]{{op: Delete, text: a}, {op: Insert, text: b}}
}
