package textdiff

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Empty(t *testing.T) {
	tests := []struct {
		name   string
		source string
		target string
		want   []Edit
	}{
		{name: "both empty", source: "", target: "", want: nil},
		{name: "source empty", source: "", target: "abc", want: []Edit{{Insert, "abc"}}},
		{name: "target empty", source: "abc", target: "", want: []Edit{{Delete, "abc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diff(tt.source, tt.target)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiff_Identity(t *testing.T) {
	assert.Empty(t, Diff("", ""))
	assert.Equal(t, []Edit{{Equal, "abc"}}, Diff("abc", "abc"))
	assert.Equal(t, []Edit{{Equal, "line\n"}}, Diff("line\n", "line\n", WithTimeout(0)))
}

func TestDiff_ConcreteCases(t *testing.T) {
	assert.Equal(t, []Edit{{Delete, "a"}, {Insert, "b"}, {Equal, "x"}}, Diff("ax", "bx"))
	assert.Equal(t, []Edit{
		{Equal, "The "},
		{Delete, "quick"},
		{Insert, "slow"},
		{Equal, " brown fox"},
	}, Diff("The quick brown fox", "The slow brown fox"))
}

func TestDiff_Trivial(t *testing.T) {
	tests := []struct {
		source, target string
		want           []Edit
	}{
		{"abc", "ab123c", []Edit{{Equal, "ab"}, {Insert, "123"}, {Equal, "c"}}},
		{"a123bc", "abc", []Edit{{Equal, "a"}, {Delete, "123"}, {Equal, "bc"}}},
		{"abc", "a123b456c", []Edit{{Equal, "a"}, {Insert, "123"}, {Equal, "b"}, {Insert, "456"}, {Equal, "c"}}},
		{"a123b456c", "abc", []Edit{{Equal, "a"}, {Delete, "123"}, {Equal, "b"}, {Delete, "456"}, {Equal, "c"}}},
	}

	for _, tt := range tests {
		got := Diff(tt.source, tt.target, WithLineMode(false))
		assert.Equal(t, tt.want, got, "Diff(%q, %q)", tt.source, tt.target)
	}
}

func TestDiff_NoTimeout(t *testing.T) {
	tests := []struct {
		source, target string
		want           []Edit
	}{
		{"a", "b", []Edit{{Delete, "a"}, {Insert, "b"}}},
		{
			"Apples are a fruit.",
			"Bananas are also fruit.",
			[]Edit{{Delete, "Apple"}, {Insert, "Banana"}, {Equal, "s are a"}, {Insert, "lso"}, {Equal, " fruit."}},
		},
		{
			"ax\t",
			"ڀx\u0000",
			[]Edit{{Delete, "a"}, {Insert, "ڀ"}, {Equal, "x"}, {Delete, "\t"}, {Insert, "\u0000"}},
		},
		{
			"1ayb2",
			"abxab",
			[]Edit{{Delete, "1"}, {Equal, "a"}, {Delete, "y"}, {Equal, "b"}, {Delete, "2"}, {Insert, "xab"}},
		},
		{
			"abcy",
			"xaxcxabc",
			[]Edit{{Insert, "xaxcx"}, {Equal, "abc"}, {Delete, "y"}},
		},
		{
			"a [[Pennsylvania]] and [[New",
			" and [[Pennsylvania]]",
			[]Edit{{Insert, " "}, {Equal, "a"}, {Insert, "nd"}, {Equal, " [[Pennsylvania]]"}, {Delete, " and [[New"}},
		},
	}

	for _, tt := range tests {
		got := Diff(tt.source, tt.target, WithTimeout(0), WithLineMode(false))
		assert.Equal(t, tt.want, got, "Diff(%q, %q)", tt.source, tt.target)
	}
}

func TestDiff_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabets := []string{"ab", "abc\n", "The quick brown fox.\n", "日本語テキスト"}
	configs := map[string][]Option{
		"default":    nil,
		"no timeout": {WithTimeout(0)},
		"no lines":   {WithLineMode(false)},
		"semantic":   {WithSemanticCleanup(true)},
		"capped":     {WithLineTokenLimits(3, 5)},
	}

	for name, opts := range configs {
		t.Run(name, func(t *testing.T) {
			d := New(opts...)
			for i := 0; i < 200; i++ {
				alphabet := []rune(alphabets[i%len(alphabets)])
				source := randomText(rng, alphabet, rng.Intn(300))
				target := mutate(rng, source, alphabet)

				got := d.Diff(source, target)
				require.Equal(t, source, Source(got), "source of Diff(%q, %q)", source, target)
				require.Equal(t, target, Target(got), "target of Diff(%q, %q)", source, target)
				// Semantic cleanup may leave neighbours of one type behind.
				if name != "semantic" {
					assertCanonical(t, got)
				}
			}
		})
	}
}

func TestDiff_LineModeMatchesCharacterMode(t *testing.T) {
	tests := []struct {
		source, target string
	}{
		{
			strings.Repeat("1234567890\n", 13),
			strings.Repeat("abcdefghij\n", 13),
		},
		{
			strings.Repeat("1234567890", 13),
			strings.Repeat("abcdefghij", 13),
		},
	}

	for i, tt := range tests {
		withLines := Diff(tt.source, tt.target, WithTimeout(0), WithLineMode(true))
		withoutLines := Diff(tt.source, tt.target, WithTimeout(0), WithLineMode(false))
		assert.Equal(t, withoutLines, withLines, "test case #%d", i)
	}
}

func TestDiff_LineModeRoundTrip(t *testing.T) {
	source := strings.Repeat("1234567890\n", 13)
	target := "abcdefghij\n1234567890\n1234567890\n1234567890\nabcdefghij\n1234567890\n1234567890\n1234567890\nabcdefghij\n1234567890\n1234567890\n1234567890\nabcdefghij\n"

	for _, opts := range [][]Option{nil, {WithTimeout(0)}, {WithLineTokenLimits(ReferenceFirstLineLimit, ReferenceSecondLineLimit)}} {
		got := Diff(source, target, opts...)
		assert.Equal(t, source, Source(got))
		assert.Equal(t, target, Target(got))
		assertCanonical(t, got)
	}
}

func TestDiff_DeadlineSafety(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("abcdefghijklmnopqrstuvwxyz")
	source := randomText(rng, alphabet, 4000)
	target := randomText(rng, alphabet, 4000)

	start := time.Now()
	got := Diff(source, target, WithTimeout(time.Nanosecond))
	elapsed := time.Since(start)

	assert.Less(t, elapsed, 5*time.Second)
	assert.Equal(t, source, Source(got))
	assert.Equal(t, target, Target(got))
}

func TestDiff_RepetitiveInputHonoursTimeout(t *testing.T) {
	// Every alignment of target against source matches for a long run
	// before failing.
	source := "c" + strings.Repeat("a", 59999)
	target := strings.Repeat("a", 29998) + "b"

	for _, lineMode := range []bool{true, false} {
		start := time.Now()
		got := Diff(source, target, WithTimeout(time.Millisecond), WithLineMode(lineMode))
		elapsed := time.Since(start)

		assert.Less(t, elapsed, 2*time.Second, "line mode %v", lineMode)
		assert.Equal(t, source, Source(got))
		assert.Equal(t, target, Target(got))
	}
}

func TestDiff_TimeoutOnLargeInput(t *testing.T) {
	a := "`Twas brillig, and the slithy toves\nDid gyre and gimble in the wabe:\nAll mimsy were the borogoves,\nAnd the mome raths outgrabe.\n"
	b := "I am the very model of a modern major general,\nI've information vegetable, animal, and mineral,\nI know the kings of England, and I quote the fights historical,\nFrom Marathon to Waterloo, in order categorical.\n"
	for x := 0; x < 10; x++ {
		a += a
		b += b
	}

	timeout := 100 * time.Millisecond
	start := time.Now()
	got := Diff(a, b, WithTimeout(timeout))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, timeout)
	assert.Less(t, elapsed, 100*timeout)
	assert.Equal(t, a, Source(got))
	assert.Equal(t, b, Target(got))
}

func TestDiffContext_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := "Apples are a fruit."
	target := "Bananas are also fruit."
	got := DiffContext(ctx, source, target, WithTimeout(0))

	assert.Equal(t, source, Source(got))
	assert.Equal(t, target, Target(got))
	assert.Contains(t, got, Edit{Delete, "Apples are a"})
}

func TestDiffer_Concurrent(t *testing.T) {
	d := New(WithTimeout(0))
	want := []Edit{{Equal, "The "}, {Delete, "quick"}, {Insert, "slow"}, {Equal, " brown fox"}}

	var wg sync.WaitGroup
	results := make([][]Edit, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = d.Diff("The quick brown fox", "The slow brown fox")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestDiffTokens(t *testing.T) {
	source := []string{"the", "quick", "brown", "fox"}
	target := []string{"the", "slow", "brown", "fox"}

	got := DiffTokens(source, target)
	assert.Equal(t, []TokenEdit[string]{
		{Type: Equal, Items: []string{"the"}},
		{Type: Delete, Items: []string{"quick"}},
		{Type: Insert, Items: []string{"slow"}},
		{Type: Equal, Items: []string{"brown", "fox"}},
	}, got)

	assert.Empty(t, DiffTokens([]int{}, []int{}))
	assert.Equal(t, []TokenEdit[int]{{Type: Equal, Items: []int{1, 2}}}, DiffTokens([]int{1, 2}, []int{1, 2}))
}

func TestOpType_String(t *testing.T) {
	tests := []struct {
		op   OpType
		want string
	}{
		{Equal, "Equal"},
		{Insert, "Insert"},
		{Delete, "Delete"},
		{OpType(99), "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

// assertCanonical checks the invariants a merged script must hold.
func assertCanonical(t *testing.T, edits []Edit) {
	t.Helper()
	for i, e := range edits {
		assert.NotEmpty(t, e.Text, "edit %d of %v is empty", i, edits)
		if i > 0 {
			assert.NotEqual(t, edits[i-1].Type, e.Type, "edits %d and %d of %v share a type", i-1, i, edits)
		}
	}
}

func randomText(rng *rand.Rand, alphabet []rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(out)
}

// mutate applies a handful of random insertions, deletions and
// substitutions to s.
func mutate(rng *rand.Rand, s string, alphabet []rune) string {
	runes := []rune(s)
	for n := rng.Intn(8); n >= 0; n-- {
		pos := 0
		if len(runes) > 0 {
			pos = rng.Intn(len(runes))
		}
		switch rng.Intn(3) {
		case 0:
			ins := []rune(randomText(rng, alphabet, 1+rng.Intn(10)))
			runes = append(runes[:pos], append(ins, runes[pos:]...)...)
		case 1:
			if len(runes) > 0 {
				end := min(len(runes), pos+1+rng.Intn(10))
				runes = append(runes[:pos], runes[end:]...)
			}
		default:
			if len(runes) > 0 {
				runes[pos] = alphabet[rng.Intn(len(alphabet))]
			}
		}
	}
	return string(runes)
}
