// Command textdiff prints the character-level differences between two files.
//
// Usage:
//
//	textdiff [flags] SOURCE TARGET
//
// Each edit is printed on its own line: <"..." for deleted text, >"..." for
// inserted text and ="..." for unchanged text, with line breaks shown as ¶.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"

	"github.com/dacharyc/textdiff"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	source, target string
	color          bool
	watch          bool
	verbose        bool
	opts           []textdiff.Option
}

func parseArgs(args []string, stderr io.Writer) (*config, error) {
	flags := flag.NewFlagSet("textdiff", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: textdiff [flags] SOURCE TARGET")
		flags.PrintDefaults()
	}
	timeout := flags.Duration("timeout", textdiff.DefaultTimeout, "give up refining the diff after this long, 0 for no limit")
	lineMode := flags.Bool("lines", true, "diff long inputs line by line first")
	semantic := flags.Bool("semantic", false, "clean up the result for human readers")
	color := flags.Bool("color", false, "colorize the output")
	watch := flags.Bool("watch", false, "diff again whenever either file changes")
	verbose := flags.Bool("v", false, "log debug output to stderr")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return nil, errors.New("expected exactly two files")
	}

	return &config{
		source:  flags.Arg(0),
		target:  flags.Arg(1),
		color:   *color,
		watch:   *watch,
		verbose: *verbose,
		opts: []textdiff.Option{
			textdiff.WithTimeout(*timeout),
			textdiff.WithLineMode(*lineMode),
			textdiff.WithSemanticCleanup(*semantic),
		},
	}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	logger := newLogger(stderr, cfg.verbose)
	d := textdiff.New(append(cfg.opts, textdiff.WithLogger(logger))...)
	p := newPrinter(stdout, cfg.color)

	if err := diffFiles(ctx, d, p, cfg.source, cfg.target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(stderr, "%v\nCheck the path and try again.\n", err)
		} else {
			fmt.Fprintf(stderr, "textdiff: %v\n", err)
		}
		return 1
	}
	if !cfg.watch {
		return 0
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := newFileWatcher(logger, cfg.source, cfg.target)
	if err != nil {
		fmt.Fprintf(stderr, "textdiff: %v\n", err)
		return 1
	}
	defer w.Close()

	err = w.Run(ctx, func() {
		if err := p.separator(); err != nil {
			logger.Warn("write failed", "error", err)
			return
		}
		if err := diffFiles(ctx, d, p, cfg.source, cfg.target); err != nil {
			// The file may be mid-write; wait for the next event.
			logger.Warn("diff failed", "error", err)
		}
	})
	if err != nil {
		fmt.Fprintf(stderr, "textdiff: %v\n", err)
		return 1
	}
	return 0
}

// diffFiles reads both files and prints their diff.
func diffFiles(ctx context.Context, d *textdiff.Differ, p *printer, source, target string) error {
	a, err := os.ReadFile(source)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	b, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("read target: %w", err)
	}
	return p.print(d.DiffContext(ctx, string(a), string(b)))
}
