package textdiff

import (
	"context"
	"log/slog"
	"time"
)

// maxRecursionDepth bounds the nesting of the divide-and-conquer steps.
// Past it the remaining region is reported as a plain replacement.
const maxRecursionDepth = 4096

// run holds the state shared by every recursive call of one diff.
type run struct {
	deadline   time.Time       // zero means no deadline
	done       <-chan struct{} // nil unless a cancellable context was given
	halfMatch  bool            // half-match speedup enabled
	lineLimits [2]int          // line table caps for source and target, 0 = none
	logger     *slog.Logger
}

// newRun derives the shared state of one diff from the configuration.
func (d *Differ) newRun(ctx context.Context) *run {
	r := &run{
		halfMatch:  d.opts.timeout > 0,
		lineLimits: d.opts.lineLimits,
		logger:     d.opts.logger,
		done:       ctx.Done(),
	}
	if d.opts.timeout > 0 {
		r.deadline = time.Now().Add(d.opts.timeout)
	}
	if dl, ok := ctx.Deadline(); ok && (r.deadline.IsZero() || dl.Before(r.deadline)) {
		r.deadline = dl
	}
	return r
}

// expired reports whether the search should give up.
func (r *run) expired() bool {
	if r.done != nil {
		select {
		case <-r.done:
			return true
		default:
		}
	}
	return !r.deadline.IsZero() && time.Now().After(r.deadline)
}

func (r *run) debug(msg string, args ...any) {
	if r.logger == nil {
		return
	}
	r.logger.Debug(msg, args...)
}

// engine runs the diff over token type T. lines is the line-mode pre-pass;
// it is only set for character diffs.
type engine[T comparable] struct {
	*run
	lines func(a, b []T, depth int) []edit[T]
}

// newCharEngine returns an engine over runes with line mode available.
func newCharEngine(r *run) *engine[rune] {
	e := &engine[rune]{run: r}
	e.lines = func(a, b []rune, depth int) []edit[rune] {
		return lineMode(e, a, b, depth)
	}
	return e
}
