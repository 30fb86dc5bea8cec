// Package textdiff computes edit scripts between two texts using the Myers
// O(ND) algorithm in linear space, with speedups and cleanups that make the
// output readable.
//
// A diff runs in three stages:
//   - Shortcuts: common affixes, containment, a half-match split and a
//     line-level pre-pass avoid most of the expensive search
//   - Bisection: the exact middle-snake search, bounded by a deadline
//   - Cleanup: merging, semantic elimination and boundary shifting
//
// The returned script always reproduces both inputs (see Source and Target).
// When the deadline expires the script is still valid, just not minimal.
package textdiff

import (
	"context"
	"log/slog"
	"time"
)

// OpType identifies the type of edit operation.
type OpType int

const (
	// Equal means the text is unchanged.
	Equal OpType = iota
	// Insert means the text was added to the target.
	Insert
	// Delete means the text was removed from the source.
	Delete
)

// String returns a string representation of the OpType.
func (t OpType) String() string {
	switch t {
	case Equal:
		return "Equal"
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Edit is a single operation of an edit script.
type Edit struct {
	Type OpType
	Text string
}

// DefaultTimeout is the time budget used when no WithTimeout option is given.
const DefaultTimeout = time.Second

// options holds configuration for the diff algorithm.
type options struct {
	timeout         time.Duration
	lineMode        bool
	semanticCleanup bool
	lineLimits      [2]int
	logger          *slog.Logger
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() *options {
	return &options{
		timeout:  DefaultTimeout,
		lineMode: true,
	}
}

// Option configures diff behavior.
type Option func(*options)

// WithTimeout sets the time budget of a single diff. A zero or negative
// timeout disables the deadline and the half-match speedup, so the result is
// always minimal but may take much longer on large inputs.
// Default: DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLineMode enables or disables the line-level pre-pass for long texts.
// Default: true.
func WithLineMode(enabled bool) Option {
	return func(o *options) {
		o.lineMode = enabled
	}
}

// WithSemanticCleanup runs CleanupSemantic on every result.
// Default: false.
func WithSemanticCleanup(enabled bool) Option {
	return func(o *options) {
		o.semanticCleanup = enabled
	}
}

// WithLineTokenLimits caps the number of distinct lines the line pre-pass
// interns while reading the source (first) and the target (second). Once a
// cap is reached the rest of that text is treated as one line. Zero means
// no cap. Pass ReferenceFirstLineLimit and ReferenceSecondLineLimit to get
// output identical to implementations that encode lines as UTF-16 units.
// Default: no cap.
func WithLineTokenLimits(first, second int) Option {
	return func(o *options) {
		o.lineLimits = [2]int{first, second}
	}
}

// WithLogger sets a logger for debug events such as an expired deadline.
// Default: no logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Differ computes diffs with a fixed configuration. It holds no mutable
// state and is safe for concurrent use.
type Differ struct {
	opts options
}

// New returns a Differ configured by opts.
func New(opts ...Option) *Differ {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Differ{opts: *o}
}

// Diff compares source with target and returns the edit script.
func (d *Differ) Diff(source, target string) []Edit {
	return d.DiffContext(context.Background(), source, target)
}

// DiffContext is like Diff but also stops searching when ctx is done. An
// interrupted diff degrades the same way an expired timeout does.
func (d *Differ) DiffContext(ctx context.Context, source, target string) []Edit {
	r := d.newRun(ctx)
	e := newCharEngine(r)
	edits := e.main([]rune(source), []rune(target), d.opts.lineMode, 0)
	if d.opts.semanticCleanup {
		edits = cleanupSemantic(edits)
	}
	return fromRunes(edits)
}

// Diff compares source with target using a Differ configured by opts.
func Diff(source, target string, opts ...Option) []Edit {
	return New(opts...).Diff(source, target)
}

// DiffContext compares source with target, stopping early when ctx is done.
func DiffContext(ctx context.Context, source, target string, opts ...Option) []Edit {
	return New(opts...).DiffContext(ctx, source, target)
}

// TokenEdit is a single operation of an edit script over arbitrary tokens.
type TokenEdit[T comparable] struct {
	Type  OpType
	Items []T
}

// DiffTokens compares two token sequences, such as words or lines that were
// split by the caller. Line mode and semantic cleanup do not apply; the
// timeout does.
func DiffTokens[T comparable](a, b []T, opts ...Option) []TokenEdit[T] {
	d := New(opts...)
	e := &engine[T]{run: d.newRun(context.Background())}
	edits := e.main(a, b, false, 0)
	out := make([]TokenEdit[T], len(edits))
	for i, ed := range edits {
		out[i] = TokenEdit[T]{Type: ed.op, Items: ed.text}
	}
	return out
}

// CleanupMerge canonicalizes an edit script: adjacent operations of the same
// type are joined, empty operations are dropped and text shared by
// neighbouring deletions and insertions is factored into equalities.
func CleanupMerge(edits []Edit) []Edit {
	return fromRunes(cleanupMerge(toRunes(edits)))
}

// CleanupSemantic trades minimality for readability by removing short
// coincidental equalities and aligning edits with word and line boundaries.
func CleanupSemantic(edits []Edit) []Edit {
	return fromRunes(cleanupSemantic(toRunes(edits)))
}

func toRunes(edits []Edit) []edit[rune] {
	out := make([]edit[rune], len(edits))
	for i, e := range edits {
		out[i] = edit[rune]{op: e.Type, text: []rune(e.Text)}
	}
	return out
}

func fromRunes(edits []edit[rune]) []Edit {
	out := make([]Edit, len(edits))
	for i, e := range edits {
		out[i] = Edit{Type: e.op, Text: string(e.text)}
	}
	return out
}
