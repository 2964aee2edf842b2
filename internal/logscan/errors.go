package logscan

import (
	"errors"
	"fmt"
	"os"
)

// InvalidPatternError is returned when the pattern does not compile.
// It is fatal and is reported before the log file is opened.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid regular expression %q: %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// FileNotFoundError is returned when the log file cannot be opened for reading.
type FileNotFoundError struct {
	Path string
	Err  error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("cannot open log file %q: %v", e.Path, e.Err)
}

func (e *FileNotFoundError) Unwrap() error { return e.Err }

// NotExist reports whether the file is missing, as opposed to unreadable.
func (e *FileNotFoundError) NotExist() bool {
	return errors.Is(e.Err, os.ErrNotExist)
}

// ValueCoercionWarning describes a matching line whose value-bearing text
// is not a number. It never stops a scan.
type ValueCoercionWarning struct {
	Line int    // 1-based
	Text string // value-bearing text; empty when the group did not participate
	Err  error
}

func (w *ValueCoercionWarning) Error() string {
	return fmt.Sprintf("line %d: cannot convert %q to a float: %v", w.Line, w.Text, w.Err)
}

func (w *ValueCoercionWarning) Unwrap() error { return w.Err }

// UnexpectedError wraps any failure during scanning, such as a read error
// or a line longer than the configured limit.
type UnexpectedError struct {
	Path string
	Err  error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("scanning %q: %v", e.Path, e.Err)
}

func (e *UnexpectedError) Unwrap() error { return e.Err }

// errGroupNotMatched is the coercion cause when capture group 1 took no part in the match.
var errGroupNotMatched = errors.New("capture group did not participate in the match")
