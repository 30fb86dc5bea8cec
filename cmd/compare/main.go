// Comparison tool for checking textdiff output against other diff implementations
package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/dacharyc/textdiff"
	"github.com/pkg/profile"
	"github.com/pmezard/go-difflib/difflib"
	godiff "github.com/sergi/go-diff/diffmatchpatch"
)

type testCase struct {
	name string
	a, b string
}

func main() {
	cpuProfile := flag.String("cpuprofile", "", "write a CPU profile to this directory")
	timeout := flag.Duration("timeout", textdiff.DefaultTimeout, "diff timeout, 0 for none")
	flag.Parse()

	if *cpuProfile != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProfile), profile.NoShutdownHook).Stop()
	}

	testCases := []testCase{
		{
			name: "Fox example",
			a:    "The quick brown fox jumps over the lazy dog.",
			b:    "The slow brown fox leaps over the lazy cat.",
		},
		{
			name: "Overlapping words",
			a:    "Apples are a fruit.",
			b:    "Bananas are also fruit.",
		},
		{
			name: "Code lines",
			a:    "func main() {\n\tfmt.Println(\"hello\")\n}\n",
			b:    "func main() {\n\tlog.Printf(\"world\")\n}\n",
		},
	}

	// Large inputs take the line mode path.
	testCases = append(testCases, testCase{
		name: "Large file (500 lines, scattered changes)",
		a:    generateLargeText(500, 0),
		b:    generateLargeText(500, 42),
	})

	d := textdiff.New(textdiff.WithTimeout(*timeout))
	dmp := godiff.New()
	dmp.DiffTimeout = *timeout

	for _, tc := range testCases {
		fmt.Printf("\n=== %s ===\n", tc.name)
		fmt.Printf("A: %d bytes, B: %d bytes\n", len(tc.a), len(tc.b))

		start := time.Now()
		edits := d.Diff(tc.a, tc.b)
		textdiffTime := time.Since(start)

		start = time.Now()
		goDiffs := dmp.DiffMain(tc.a, tc.b, true)
		goDiffTime := time.Since(start)

		// difflib works on lines.
		start = time.Now()
		matcher := difflib.NewMatcher(difflib.SplitLines(tc.a), difflib.SplitLines(tc.b))
		opCodes := matcher.GetOpCodes()
		difflibTime := time.Since(start)

		textdiffStats := analyzeTextdiff(edits)
		goDiffStats := analyzeGoDiff(goDiffs)
		difflibStats := analyzeDifflib(opCodes)

		fmt.Printf("\ntextdiff: %v\n", textdiffTime)
		printStats(textdiffStats)
		fmt.Printf("  Levenshtein: %d\n", textdiff.Levenshtein(edits))
		if textdiff.Source(edits) != tc.a || textdiff.Target(edits) != tc.b {
			fmt.Println("  ERROR: edit script does not reproduce the inputs")
		}

		fmt.Printf("\ngo-diff:  %v\n", goDiffTime)
		printStats(goDiffStats)
		fmt.Printf("  Levenshtein: %d\n", dmp.DiffLevenshtein(goDiffs))

		fmt.Printf("\ndifflib:  %v (lines)\n", difflibTime)
		printStats(difflibStats)

		// Show detailed output for small cases
		if len(tc.a) <= 200 {
			fmt.Println("\ntextdiff output:")
			for _, e := range edits {
				fmt.Printf("  %s\n", e)
			}
		}
	}
}

type diffStats struct {
	total, equal, delete, insert int
	changeRegions                int
}

func (s *diffStats) add(op textdiff.OpType, inChange *bool) {
	s.total++
	switch op {
	case textdiff.Equal:
		s.equal++
		*inChange = false
		return
	case textdiff.Delete:
		s.delete++
	case textdiff.Insert:
		s.insert++
	}
	if !*inChange {
		s.changeRegions++
		*inChange = true
	}
}

func printStats(s diffStats) {
	fmt.Printf("  Operations: %d (Equal: %d, Delete: %d, Insert: %d)\n",
		s.total, s.equal, s.delete, s.insert)
	fmt.Printf("  Change regions: %d\n", s.changeRegions)
}

func analyzeTextdiff(edits []textdiff.Edit) diffStats {
	var s diffStats
	inChange := false
	for _, e := range edits {
		s.add(e.Type, &inChange)
	}
	return s
}

func analyzeGoDiff(diffs []godiff.Diff) diffStats {
	var s diffStats
	inChange := false
	for _, d := range diffs {
		switch d.Type {
		case godiff.DiffEqual:
			s.add(textdiff.Equal, &inChange)
		case godiff.DiffDelete:
			s.add(textdiff.Delete, &inChange)
		case godiff.DiffInsert:
			s.add(textdiff.Insert, &inChange)
		}
	}
	return s
}

// analyzeDifflib counts a replace opcode as a deletion and an insertion.
func analyzeDifflib(opCodes []difflib.OpCode) diffStats {
	var s diffStats
	inChange := false
	for _, op := range opCodes {
		switch op.Tag {
		case 'e':
			s.add(textdiff.Equal, &inChange)
		case 'd':
			s.add(textdiff.Delete, &inChange)
		case 'i':
			s.add(textdiff.Insert, &inChange)
		case 'r':
			s.add(textdiff.Delete, &inChange)
			s.add(textdiff.Insert, &inChange)
		}
	}
	return s
}

func generateLargeText(lines int, seed int) string {
	words := []string{"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"func", "main", "return", "if", "else", "for", "range", "var", "const",
		"import", "package", "type", "struct", "interface", "map", "slice"}

	result := make([]string, lines)
	for i := 0; i < lines; i++ {
		lineWords := make([]string, 5+i%3)
		for j := range lineWords {
			idx := (i*7 + j*13 + seed) % len(words)
			lineWords[j] = words[idx]
		}
		result[i] = strings.Join(lineWords, " ")
	}

	// Introduce some changes based on seed
	for i := seed % 10; i < lines; i += 10 + seed%5 {
		result[i] = "CHANGED LINE " + fmt.Sprint(i)
	}

	return strings.Join(result, "\n") + "\n"
}
