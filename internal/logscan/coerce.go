package logscan

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidNumber is wrapped by ParseValue when text is not a float literal.
var ErrInvalidNumber = errors.New("invalid float literal")

// ParseValue converts value-bearing text to a float64.
//
// Accepted: surrounding whitespace, an optional sign, decimal digits with
// an optional fraction and exponent (1, -2.5, .5, 5., 6.02E+23), single
// underscores between digits (1_000), and inf/infinity/nan in any case.
// Hex floats and other Go-only literal forms are rejected. Values beyond
// the float64 range become ±Inf rather than an error.
func ParseValue(text string) (float64, error) {
	s := strings.TrimSpace(text)

	sign := 1.0
	body := s
	if body != "" && (body[0] == '+' || body[0] == '-') {
		if body[0] == '-' {
			sign = -1
		}
		body = body[1:]
	}

	switch strings.ToLower(body) {
	case "inf", "infinity":
		return math.Inf(int(sign)), nil
	case "nan":
		return math.NaN(), nil
	}

	if !isDecimalLiteral(body) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}

	v, err := strconv.ParseFloat(strings.ReplaceAll(body, "_", ""), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, text)
	}
	return sign * v, nil
}

// isDecimalLiteral reports whether s is digits[.digits][e[sign]digits]
// with at least one mantissa digit. s carries no sign.
func isDecimalLiteral(s string) bool {
	i, intDigits := digitRun(s, 0)

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		i, fracDigits = digitRun(s, i+1)
	}
	if intDigits+fracDigits == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		var expDigits int
		i, expDigits = digitRun(s, i)
		if expDigits == 0 {
			return false
		}
	}

	return i == len(s)
}

// digitRun consumes digits starting at i, allowing one underscore between
// two digits. It returns the index after the run and the digit count.
func digitRun(s string, i int) (int, int) {
	n := 0
	for i < len(s) {
		switch {
		case isDigit(s[i]):
			n++
			i++
		case s[i] == '_' && n > 0 && i+1 < len(s) && isDigit(s[i+1]):
			i++
		default:
			return i, n
		}
	}
	return i, n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
