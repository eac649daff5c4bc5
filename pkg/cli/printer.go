package cli

import (
	"fmt"
	"io"
)

const (
	ansiBold  = "\x1b[1m"
	ansiCyan  = "\x1b[36m"
	ansiReset = "\x1b[0m"
)

// printer writes aligned key/value output, with ANSI color on terminals and
// plain text everywhere else.
type printer struct {
	w     io.Writer
	color bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, color: colorEnabled(w)}
}

func (p *printer) headline(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if p.color {
		fmt.Fprintf(p.w, "%s%s%s\n", ansiBold, line, ansiReset)
		return
	}
	fmt.Fprintln(p.w, line)
}

func (p *printer) row(label, format string, args ...any) {
	value := fmt.Sprintf(format, args...)
	if p.color {
		fmt.Fprintf(p.w, "  %s%-20s%s %s\n", ansiCyan, label, ansiReset, value)
		return
	}
	fmt.Fprintf(p.w, "  %-20s %s\n", label, value)
}
