// Package tbdlog is a small level-colored logger, in the style of
// go-ethereum's log package: color is auto-detected from the output
// stream via go-isatty and disabled entirely when writing to a pipe or
// file, so redirected output stays plain text.
package tbdlog

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger writes level-prefixed, optionally colored lines to an
// underlying writer. It implements the core package's Logger interface
// (Errorf) plus Infof/Warnf for the REPL's own ambient messages.
type Logger struct {
	w        io.Writer
	colorize bool
}

// New builds a Logger writing to w. Color is enabled only when w is a
// terminal, detected via isatty; anything else (a file, a pipe, a
// bytes.Buffer in tests) gets plain output.
func New(w io.Writer) *Logger {
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{w: w, colorize: colorize}
}

func (l *Logger) print(c *color.Color, level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if l.colorize {
		fmt.Fprintln(l.w, c.Sprintf("%s %s", level, msg))
		return
	}
	fmt.Fprintf(l.w, "%s %s\n", level, msg)
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.print(color.New(color.FgGreen), "INFO", format, args...)
}

// Warnf logs a warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.print(color.New(color.FgYellow), "WARN", format, args...)
}

// Errorf logs an error message. Satisfies the core package's Logger
// interface, so an Arena's capacity-exhaustion notices flow through
// here.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.print(color.New(color.FgRed), "ERROR", format, args...)
}
