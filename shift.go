package textdiff

import (
	"slices"
	"unicode"
)

// Boundary scores (higher = more preferred). A boundary is scored by the
// last rune before it and the first rune after it.
const (
	// scoreEdge is given when the boundary touches the start or end of text.
	scoreEdge = 6
	// scoreBlankLine is given for a boundary next to an empty line.
	scoreBlankLine = 5
	// scoreLineBreak is given for a boundary next to a line break.
	scoreLineBreak = 4
	// scoreEndOfSentence is given after punctuation followed by a space.
	scoreEndOfSentence = 3
	// scoreWhitespace is given for a boundary next to whitespace.
	scoreWhitespace = 2
	// scoreNonAlphanumeric is given for a boundary next to punctuation.
	scoreNonAlphanumeric = 1
)

// cleanupSemanticLossless looks for single edits surrounded on both sides by
// equalities and slides each one to the best scoring boundary, e.g.
// The c<ins>at c</ins>ame. -> The <ins>cat </ins>came.
func cleanupSemanticLossless(diffs []edit[rune]) []edit[rune] {
	diffs = slices.Clone(diffs)
	for i := 1; i < len(diffs)-1; i++ {
		if diffs[i-1].op != Equal || diffs[i+1].op != Equal {
			continue
		}
		equality1 := diffs[i-1].text
		ed := diffs[i].text
		equality2 := diffs[i+1].text

		// First, shift the edit as far left as possible.
		if n := commonSuffix(equality1, ed); n > 0 {
			common := ed[len(ed)-n:]
			equality1 = equality1[:len(equality1)-n]
			ed = concat(common, ed[:len(ed)-n])
			equality2 = concat(common, equality2)
		}

		// Second, step right one rune at a time looking for the best fit.
		bestEquality1, bestEdit, bestEquality2 := equality1, ed, equality2
		bestScore := boundaryScore(equality1, ed) + boundaryScore(ed, equality2)
		for len(ed) != 0 && len(equality2) != 0 && ed[0] == equality2[0] {
			equality1 = concat(equality1, ed[:1])
			ed = concat(ed[1:], equality2[:1])
			equality2 = equality2[1:]
			score := boundaryScore(equality1, ed) + boundaryScore(ed, equality2)
			// >= favours the last position among equals.
			if score >= bestScore {
				bestScore = score
				bestEquality1, bestEdit, bestEquality2 = equality1, ed, equality2
			}
		}

		if slices.Equal(diffs[i-1].text, bestEquality1) {
			continue
		}
		// An improvement was found.
		if len(bestEquality1) != 0 {
			diffs[i-1].text = bestEquality1
		} else {
			diffs = slices.Delete(diffs, i-1, i)
			i--
		}
		diffs[i].text = bestEdit
		if len(bestEquality2) != 0 {
			diffs[i+1].text = bestEquality2
		} else {
			diffs = slices.Delete(diffs, i+1, i+2)
			i--
		}
	}
	return diffs
}

// boundaryScore scores the boundary between the end of one and the start of
// two, from 6 (best) to 0.
func boundaryScore(one, two []rune) int {
	if len(one) == 0 || len(two) == 0 {
		return scoreEdge
	}

	char1 := one[len(one)-1]
	char2 := two[0]
	nonAlphaNumeric1 := !isAlphanumeric(char1)
	nonAlphaNumeric2 := !isAlphanumeric(char2)
	whitespace1 := nonAlphaNumeric1 && unicode.IsSpace(char1)
	whitespace2 := nonAlphaNumeric2 && unicode.IsSpace(char2)
	lineBreak1 := whitespace1 && unicode.IsControl(char1)
	lineBreak2 := whitespace2 && unicode.IsControl(char2)
	blankLine1 := lineBreak1 && endsWithBlankLine(one)
	blankLine2 := lineBreak2 && startsWithBlankLine(two)

	switch {
	case blankLine1 || blankLine2:
		return scoreBlankLine
	case lineBreak1 || lineBreak2:
		return scoreLineBreak
	case nonAlphaNumeric1 && !whitespace1 && whitespace2:
		return scoreEndOfSentence
	case whitespace1 || whitespace2:
		return scoreWhitespace
	case nonAlphaNumeric1 || nonAlphaNumeric2:
		return scoreNonAlphanumeric
	}
	return 0
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

var (
	lf   = []rune("\n")
	crlf = []rune("\r\n")
)

// endsWithBlankLine reports whether s ends in "\n\n" or "\n\r\n".
func endsWithBlankLine(s []rune) bool {
	return hasSuffix(s, []rune("\n\n")) || hasSuffix(s, []rune("\n\r\n"))
}

// startsWithBlankLine reports whether s starts with two line breaks, each
// either "\n" or "\r\n".
func startsWithBlankLine(s []rune) bool {
	for _, first := range [][]rune{lf, crlf} {
		if !hasPrefix(s, first) {
			continue
		}
		rest := s[len(first):]
		if hasPrefix(rest, lf) || hasPrefix(rest, crlf) {
			return true
		}
	}
	return false
}
