package textdiff

import "slices"

// edit is one operation over a token sequence. Text slices may alias the
// inputs and other edits, so they are never appended to in place.
type edit[T comparable] struct {
	op   OpType
	text []T
}

// concat returns a new slice holding a followed by b.
func concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// commonPrefix returns the number of leading tokens a and b share.
func commonPrefix[T comparable](a, b []T) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

// commonSuffix returns the number of trailing tokens a and b share.
func commonSuffix[T comparable](a, b []T) int {
	n := min(len(a), len(b))
	for i := 1; i <= n; i++ {
		if a[len(a)-i] != b[len(b)-i] {
			return i - 1
		}
	}
	return n
}

// commonOverlap returns the length of the longest suffix of a that is also a
// prefix of b.
func commonOverlap[T comparable](a, b []T) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// Truncate the longer input; only the overlapping window matters.
	if len(a) > len(b) {
		a = a[len(a)-len(b):]
	} else if len(a) < len(b) {
		b = b[:len(a)]
	}
	n := len(a)
	if slices.Equal(a, b) {
		return n
	}

	// Look for a single token match, then grow the candidate until the
	// suffix no longer occurs in b.
	best := 0
	length := 1
	for {
		found := index(b, a[n-length:], 0)
		if found == -1 {
			return best
		}
		length += found
		if found == 0 || slices.Equal(a[n-length:], b[:length]) {
			best = length
			length++
		}
	}
}

// index returns the position of the first occurrence of sub in s at or after
// from, or -1.
func index[T comparable](s, sub []T, from int) int {
	return newMatcher(sub).next(s, from)
}

// matcher searches for one pattern with Knuth-Morris-Pratt, so a search
// costs O(len(s)+len(pattern)) even on repetitive text.
type matcher[T comparable] struct {
	pattern []T
	// fail[i] is the length of the longest proper border of pattern[:i+1].
	fail []int
}

func newMatcher[T comparable](pattern []T) *matcher[T] {
	fail := make([]int, len(pattern))
	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = fail[k-1]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		fail[i] = k
	}
	return &matcher[T]{pattern: pattern, fail: fail}
}

// next returns the position of the first occurrence of the pattern in s at
// or after from, or -1.
func (m *matcher[T]) next(s []T, from int) int {
	if from < 0 {
		from = 0
	}
	p := m.pattern
	if len(p) == 0 {
		if from <= len(s) {
			return from
		}
		return -1
	}
	k := 0
	for i := from; i < len(s); i++ {
		for k > 0 && s[i] != p[k] {
			k = m.fail[k-1]
		}
		if s[i] == p[k] {
			k++
		}
		if k == len(p) {
			return i - len(p) + 1
		}
	}
	return -1
}

func hasPrefix[T comparable](s, prefix []T) bool {
	return len(s) >= len(prefix) && slices.Equal(s[:len(prefix)], prefix)
}

func hasSuffix[T comparable](s, suffix []T) bool {
	return len(s) >= len(suffix) && slices.Equal(s[len(s)-len(suffix):], suffix)
}
