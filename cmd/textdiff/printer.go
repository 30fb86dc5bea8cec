package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dacharyc/textdiff"
)

var (
	deleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	insertStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	equalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
)

// printer writes rendered edits, one per line.
type printer struct {
	out   io.Writer
	color bool
}

func newPrinter(out io.Writer, color bool) *printer {
	return &printer{out: out, color: color}
}

func (p *printer) print(edits []textdiff.Edit) error {
	for _, e := range edits {
		line := e.String()
		if p.color {
			line = styleFor(e.Type).Render(line)
		}
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

// separator marks the start of a new diff in watch mode.
func (p *printer) separator() error {
	rule := "----"
	if p.color {
		rule = ruleStyle.Render(rule)
	}
	if _, err := fmt.Fprintln(p.out, rule); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func styleFor(op textdiff.OpType) lipgloss.Style {
	switch op {
	case textdiff.Delete:
		return deleteStyle
	case textdiff.Insert:
		return insertStyle
	default:
		return equalStyle
	}
}
