package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiBold   = "\x1b[1m"
)

// Printer renders diagnostics to a writer, colorizing severity when the
// writer is a terminal.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter creates a printer for out. Color is enabled only when out is a
// real terminal (or cygwin pty).
func NewPrinter(out io.Writer) *Printer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Printer{out: out, color: color}
}

// Print renders a single diagnostic.
func (p *Printer) Print(d *Diagnostic) {
	if !p.color {
		fmt.Fprintln(p.out, d.Error())
		return
	}
	tint := ansiRed
	if d.Severity == SeverityWarning {
		tint = ansiYellow
	}
	prefix := ""
	if d.File != "" {
		prefix = d.File + ": "
	}
	loc := ""
	if d.Token.Line > 0 {
		loc = fmt.Sprintf(" at %d:%d", d.Token.Line, d.Token.Column)
	}
	fmt.Fprintf(p.out, "%s%s%s%s%s [%s]: %s%s", prefix, ansiBold, tint, d.Severity, ansiReset, d.Category, d.Text, loc)
	if hint := d.suggestionHint(); hint != "" {
		fmt.Fprintf(p.out, " %s", hint)
	}
	fmt.Fprintln(p.out)
}

// PrintAll renders every diagnostic in the bag in source order and returns
// how many were printed.
func (p *Printer) PrintAll(bag *Bag) int {
	diags := bag.All()
	for _, d := range diags {
		p.Print(d)
	}
	return len(diags)
}
