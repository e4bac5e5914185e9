package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Reporter prints extraction diagnostics. Errors and warnings go to
// stderr on separate visual channels so build logs can tell them apart;
// status lines go to stdout.
type Reporter struct {
	errColor  *color.Color
	warnColor *color.Color
	okColor   *color.Color

	Errors   int
	Warnings int
}

// NewReporter creates a reporter.
func NewReporter() *Reporter {
	return &Reporter{
		errColor:  color.New(color.FgRed, color.Bold),
		warnColor: color.New(color.FgYellow),
		okColor:   color.New(color.FgGreen),
	}
}

// Errorf reports a fatal per-file extraction error.
func (r *Reporter) Errorf(format string, args ...interface{}) {
	r.Errors++
	r.errColor.Fprint(os.Stderr, "error: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Warnf reports a non-fatal warning.
func (r *Reporter) Warnf(format string, args ...interface{}) {
	r.Warnings++
	r.warnColor.Fprint(os.Stderr, "warning: ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Successf prints a green status line.
func (r *Reporter) Successf(format string, args ...interface{}) {
	r.okColor.Printf(format+"\n", args...)
}
