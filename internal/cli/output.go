package cli

import (
	"fmt"
	"io"
	"strings"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// Output writes console messages for one invocation.
// Quiet suppresses info, success and progress lines. Notices and errors
// always print: they report why a requested action did not happen.
type Output struct {
	stdout  io.Writer
	stderr  io.Writer
	quiet   bool
	noColor bool
}

// NewOutput creates an Output. Color is disabled automatically when stdout
// is not a terminal.
func NewOutput(stdout, stderr io.Writer, quiet, noColor bool) *Output {
	return &Output{
		stdout:  stdout,
		stderr:  stderr,
		quiet:   quiet,
		noColor: noColor || !isTerminal(stdout),
	}
}

func isTerminal(w io.Writer) bool {
	_, ok := terminalFd(w)
	return ok
}

// paint wraps s in color unless color is disabled.
func (o *Output) paint(color, s string) string {
	if o.noColor {
		return s
	}
	return color + s + colorReset
}

// Info prints an informational message
func (o *Output) Info(msg string) {
	if o.quiet {
		return
	}
	fmt.Fprintln(o.stdout, msg)
}

// Success prints a success message
func (o *Output) Success(msg string) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.stdout, "%s %s\n", o.paint(colorGreen, "✓"), msg)
}

// Progress prints a progress indicator
func (o *Output) Progress(msg string) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.stdout, "%s %s\n", o.paint(colorBlue, "→"), msg)
}

// DryRun prints what a simulated action would have done.
func (o *Output) DryRun(msg string) {
	if o.quiet {
		return
	}
	fmt.Fprintf(o.stdout, "%s %s\n", o.paint(colorCyan, "[Dry Run]"), msg)
}

// Notice prints a message that blocks the requested action. Not affected by quiet.
func (o *Output) Notice(msg string) {
	fmt.Fprintf(o.stdout, "%s %s\n", o.paint(colorYellow, "⚠"), msg)
}

// Hint prints a dimmed follow-up line under a notice. Not affected by quiet.
func (o *Output) Hint(msg string) {
	fmt.Fprintf(o.stdout, "  %s\n", o.paint(colorGray, msg))
}

// Error prints an error message to stderr
func (o *Output) Error(msg string) {
	fmt.Fprintf(o.stderr, "%s %s\n", o.paint(colorRed, "✗"), msg)
}

// Suggest prints a "did you mean" hint when there are candidates.
func (o *Output) Suggest(candidates []string) {
	if len(candidates) == 0 {
		return
	}
	o.Hint(fmt.Sprintf("Did you mean: %s?", strings.Join(candidates, ", ")))
}
