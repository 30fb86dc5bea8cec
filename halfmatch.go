package textdiff

// halfMatchResult splits both texts around a shared block.
type halfMatchResult[T comparable] struct {
	sourceBefore, sourceAfter []T
	targetBefore, targetAfter []T
	common                    []T
}

// halfMatch looks for a block shared by a and b that is at least half as
// long as the longer text. The result is not guaranteed to give a minimal
// diff, which is why it is only used when a deadline is in effect. The
// search stops early once expired reports true; expired may be nil.
func halfMatch[T comparable](a, b []T, expired func() bool) *halfMatchResult[T] {
	long, short := a, b
	if len(a) <= len(b) {
		long, short = b, a
	}
	if len(long) < 4 || len(short)*2 < len(long) {
		return nil
	}

	// Probe with seeds starting at the second and third quarters.
	hm1 := halfMatchAt(long, short, len(long)/4, expired)
	hm2 := halfMatchAt(long, short, len(long)/2, expired)
	var hm *halfMatchResult[T]
	switch {
	case hm1 == nil && hm2 == nil:
		return nil
	case hm2 == nil:
		hm = hm1
	case hm1 == nil:
		hm = hm2
	case len(hm1.common) > len(hm2.common):
		hm = hm1
	default:
		hm = hm2
	}

	// The probes work in long/short order; flip back if b was the longer.
	if len(a) > len(b) {
		return hm
	}
	return &halfMatchResult[T]{
		sourceBefore: hm.targetBefore,
		sourceAfter:  hm.targetAfter,
		targetBefore: hm.sourceBefore,
		targetAfter:  hm.sourceAfter,
		common:       hm.common,
	}
}

// halfMatchAt searches short for the quarter-length seed of long starting at
// i. The result is in long/short order: source fields describe long.
func halfMatchAt[T comparable](long, short []T, i int, expired func() bool) *halfMatchResult[T] {
	seed := newMatcher(long[i : i+len(long)/4])
	var best halfMatchResult[T]
	bestLen := 0
	for j := seed.next(short, 0); j != -1; j = seed.next(short, j+1) {
		if expired != nil && expired() {
			break
		}
		prefixLen := commonPrefix(long[i:], short[j:])
		suffixLen := commonSuffix(long[:i], short[:j])
		if bestLen < prefixLen+suffixLen {
			bestLen = prefixLen + suffixLen
			best = halfMatchResult[T]{
				sourceBefore: long[:i-suffixLen],
				sourceAfter:  long[i+prefixLen:],
				targetBefore: short[:j-suffixLen],
				targetAfter:  short[j+prefixLen:],
				common:       short[j-suffixLen : j+prefixLen],
			}
		}
	}
	if bestLen*2 < len(long) {
		return nil
	}
	return &best
}
