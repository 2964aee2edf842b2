package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/steveyegge/logscan/internal/logscan"
)

// diagnostics prints one-line Error:/Warning: messages to stderr
type diagnostics struct {
	w          io.Writer
	errorColor *color.Color
	warnColor  *color.Color
}

func newDiagnostics(w io.Writer) *diagnostics {
	return &diagnostics{
		w:          w,
		errorColor: color.New(color.FgRed, color.Bold),
		warnColor:  color.New(color.FgYellow),
	}
}

func (d *diagnostics) errorf(format string, args ...any) {
	fmt.Fprintf(d.w, "%s %s\n", d.errorColor.Sprint("Error:"), fmt.Sprintf(format, args...))
}

func (d *diagnostics) warnf(format string, args ...any) {
	fmt.Fprintf(d.w, "%s %s\n", d.warnColor.Sprint("Warning:"), fmt.Sprintf(format, args...))
}

// coercionWarning reports a matching line whose value is not a number
func (d *diagnostics) coercionWarning(w *logscan.ValueCoercionWarning) {
	d.warnf("Could not convert value on line %d to a float.", w.Line)
}

// usage reports bad command-line input with a pointer to --help
func (d *diagnostics) usage(err *usageError, commandPath string) {
	d.errorf("%v (run '%s --help' for usage)", err.err, commandPath)
}

// fatal reports the error that ended the run
func (d *diagnostics) fatal(err error) {
	var (
		patternErr *logscan.InvalidPatternError
		fileErr    *logscan.FileNotFoundError
		scanErr    *logscan.UnexpectedError
	)

	switch {
	case errors.As(err, &patternErr):
		d.errorf("Invalid regular expression: %v", patternErr.Err)
	case errors.As(err, &fileErr):
		if fileErr.NotExist() {
			d.errorf("Log file not found at '%s'", fileErr.Path)
		} else {
			d.errorf("Cannot open log file '%s': %v", fileErr.Path, fileErr.Err)
		}
	case errors.As(err, &scanErr):
		d.errorf("An unexpected error occurred: %v", scanErr.Err)
	default:
		d.errorf("An unexpected error occurred: %v", err)
	}
}
