package textdiff

// bisect finds the middle snake of a and b and diffs the two halves on either
// side of it independently.
//
// Algorithm source: Myers 1986, "An O(ND) Difference Algorithm and Its
// Variations", section 4b (http://www.xmailserver.org/diff2.pdf).
//
// The forward search walks from (0,0) and the reverse search from (n,m). v1
// and v2 hold the furthest x reached on each diagonal k = x-y, the reverse
// one counted from the end of both texts. Diagonals that run off the edit
// graph shrink the live range through k1start/k1end and k2start/k2end.
//
// The deadline is checked once per edit distance d. If it passes before the
// frontiers meet, the whole region is reported as a replacement.
func (e *engine[T]) bisect(a, b []T, depth int) []edit[T] {
	n := len(a)
	m := len(b)
	maxD := (n + m + 1) / 2
	vOffset := maxD
	// Two spare slots keep k±1 in range for the smallest inputs.
	vLength := 2*maxD + 2
	v1 := make([]int, vLength)
	v2 := make([]int, vLength)
	for i := range v1 {
		v1[i] = -1
		v2[i] = -1
	}
	v1[vOffset+1] = 0
	v2[vOffset+1] = 0

	delta := n - m
	// With an odd delta the frontiers can only meet on a forward step,
	// with an even delta only on a reverse step.
	front := delta%2 != 0

	k1start, k1end := 0, 0
	k2start, k2end := 0, 0
	for d := 0; d < maxD; d++ {
		if e.expired() {
			e.debug("bisect deadline expired", "d", d, "source_len", n, "target_len", m)
			break
		}

		// Forward path one step.
		for k1 := -d + k1start; k1 <= d-k1end; k1 += 2 {
			k1Offset := vOffset + k1
			var x1 int
			if k1 == -d || (k1 != d && v1[k1Offset-1] < v1[k1Offset+1]) {
				x1 = v1[k1Offset+1]
			} else {
				x1 = v1[k1Offset-1] + 1
			}
			y1 := x1 - k1
			for x1 < n && y1 < m && a[x1] == b[y1] {
				x1++
				y1++
			}
			v1[k1Offset] = x1
			switch {
			case x1 > n:
				// Ran off the right of the graph.
				k1end += 2
			case y1 > m:
				// Ran off the bottom of the graph.
				k1start += 2
			case front:
				k2Offset := vOffset + delta - k1
				if k2Offset >= 0 && k2Offset < vLength && v2[k2Offset] != -1 {
					// Mirror x2 onto the top-left coordinate system.
					x2 := n - v2[k2Offset]
					if x1 >= x2 {
						return e.bisectSplit(a, b, x1, y1, depth)
					}
				}
			}
		}

		// Reverse path one step.
		for k2 := -d + k2start; k2 <= d-k2end; k2 += 2 {
			k2Offset := vOffset + k2
			var x2 int
			if k2 == -d || (k2 != d && v2[k2Offset-1] < v2[k2Offset+1]) {
				x2 = v2[k2Offset+1]
			} else {
				x2 = v2[k2Offset-1] + 1
			}
			y2 := x2 - k2
			for x2 < n && y2 < m && a[n-x2-1] == b[m-y2-1] {
				x2++
				y2++
			}
			v2[k2Offset] = x2
			switch {
			case x2 > n:
				k2end += 2
			case y2 > m:
				k2start += 2
			case !front:
				k1Offset := vOffset + delta - k2
				if k1Offset >= 0 && k1Offset < vLength && v1[k1Offset] != -1 {
					x1 := v1[k1Offset]
					y1 := vOffset + x1 - k1Offset
					if x1 >= n-x2 {
						return e.bisectSplit(a, b, x1, y1, depth)
					}
				}
			}
		}
	}

	// Out of time, or no commonality at all.
	return replacement(a, b)
}

// bisectSplit diffs a[:x]/b[:y] and a[x:]/b[y:] and joins the results.
func (e *engine[T]) bisectSplit(a, b []T, x, y, depth int) []edit[T] {
	left := e.main(a[:x], b[:y], false, depth+1)
	right := e.main(a[x:], b[y:], false, depth+1)
	diffs := make([]edit[T], 0, len(left)+len(right))
	diffs = append(diffs, left...)
	return append(diffs, right...)
}
