package logscan

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/steveyegge/logscan/internal/config"
)

// ResultKind classifies the outcome for one input line.
type ResultKind int

const (
	// NoMatch means the pattern did not match the line.
	NoMatch ResultKind = iota
	// Matched means the line matched and yielded a value.
	Matched
	// CoercionFailed means the line matched but its text is not a number.
	CoercionFailed
)

// String returns a human-readable name for the kind.
func (k ResultKind) String() string {
	switch k {
	case NoMatch:
		return "no_match"
	case Matched:
		return "matched"
	case CoercionFailed:
		return "coercion_failed"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// LineResult is the outcome for a single line.
type LineResult struct {
	Line    int        // Line number (1-indexed)
	Kind    ResultKind // What happened on this line
	Text    string     // Value-bearing text (Matched and CoercionFailed)
	Value   float64    // Parsed value (Matched only)
	Warning *ValueCoercionWarning
}

// LineScanner walks a reader one line at a time and matches each line
// against a Pattern. Like bufio.Scanner it is single pass: call Next until
// it returns false, then check Err.
type LineScanner struct {
	pattern *Pattern
	scanner *bufio.Scanner
	maxLine int
	line    int
	result  LineResult
	err     error
}

// NewLineScanner returns a scanner reading from r. Zero fields in cfg
// take their defaults.
//
// Lines end at "\n", "\r\n" or a lone "\r"; the terminator is not part of
// the line.
func NewLineScanner(r io.Reader, p *Pattern, cfg config.ScanConfig) *LineScanner {
	cfg = cfg.WithDefaults()

	scanner := bufio.NewScanner(r)
	// room for the longest accepted line plus a "\r\n" terminator
	scanner.Buffer(make([]byte, 0, cfg.InitialBufferBytes), cfg.MaxLineBytes+2)
	scanner.Split(scanLines)

	return &LineScanner{
		pattern: p,
		scanner: scanner,
		maxLine: cfg.MaxLineBytes,
	}
}

// scanLines is a bufio.SplitFunc that breaks on "\n", "\r\n" and a lone
// "\r". A final line without a terminator is returned at EOF.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// a "\r" at the end of the buffer may be half of "\r\n"
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Next advances to the next line. It returns false at end of input, on a
// read error, on a line longer than the configured limit, or when matching
// a line times out.
func (s *LineScanner) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				err = fmt.Errorf("line %d: %w", s.line+1, err)
			}
			s.err = err
		}
		return false
	}

	if len(s.scanner.Bytes()) > s.maxLine {
		s.err = fmt.Errorf("line %d: %w", s.line+1, bufio.ErrTooLong)
		return false
	}

	s.line++
	result, err := s.evaluate(s.scanner.Text())
	if err != nil {
		s.err = fmt.Errorf("line %d: %w", s.line, err)
		return false
	}
	s.result = result
	return true
}

// Result returns the outcome of the line read by the last call to Next.
func (s *LineScanner) Result() LineResult {
	return s.result
}

// Line returns the number of lines read so far.
func (s *LineScanner) Line() int {
	return s.line
}

// Err returns the first non-EOF error encountered.
func (s *LineScanner) Err() error {
	return s.err
}

// evaluate classifies one line. The error is non-nil only when matching
// could not complete.
func (s *LineScanner) evaluate(line string) (LineResult, error) {
	text, matched, err := s.pattern.Extract(line)
	if !matched {
		return LineResult{Line: s.line, Kind: NoMatch}, err
	}

	if err == nil {
		var v float64
		v, err = ParseValue(text)
		if err == nil {
			return LineResult{Line: s.line, Kind: Matched, Text: text, Value: v}, nil
		}
	}

	return LineResult{
		Line:    s.line,
		Kind:    CoercionFailed,
		Text:    text,
		Warning: &ValueCoercionWarning{Line: s.line, Text: text, Err: err},
	}, nil
}
