// Package ui implements the thin human-readable output layer every
// handler emits: at most one header/success line and at most one error
// line per invocation, per the error-handling design. Adapted from the
// teacher's cmd/helpers.go color-constant style, gated on whether stdout
// is actually a terminal so piped or CI output never carries ANSI escapes.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
)

// Printer emits human-readable lines to a writer, colorizing only when
// the writer is a terminal.
type Printer struct {
	Out     io.Writer
	colored bool
}

// NewPrinter builds a Printer over out, auto-detecting color support.
func NewPrinter(out *os.File) *Printer {
	return &Printer{Out: out, colored: out != nil && isatty.IsTerminal(out.Fd())}
}

func (p *Printer) wrap(color, msg string) string {
	if !p.colored {
		return msg
	}
	return color + msg + colorReset
}

// Header prints a section heading.
func (p *Printer) Header(msg string) {
	fmt.Fprintf(p.Out, "\n%s\n", p.wrap(colorBold+colorCyan, "▸ "+msg))
}

// Success prints the single success line a handler emits on SUCCESS.
func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.Out, "  %s\n", p.wrap(colorGreen, "✓ "+msg))
}

// Warn prints a non-fatal warning line.
func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.Out, "  %s\n", p.wrap(colorYellow, "! "+msg))
}

// Error prints the single error line a handler emits on failure, followed
// by the worker's error buffer verbatim when non-empty.
func (p *Printer) Error(msg, errBuf string) {
	fmt.Fprintf(p.Out, "  %s\n", p.wrap(colorRed, "✗ "+msg))
	if errBuf != "" {
		fmt.Fprintln(p.Out, errBuf)
	}
}

// Default is the process-wide printer wired to stdout.
var Default = NewPrinter(os.Stdout)
