// Package report renders scan results as the plain-text summary printed
// on standard output.
package report

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/steveyegge/logscan/internal/logscan"
)

const (
	// Header precedes the list of values.
	Header = "Caught numbers:"
	// AveragePrefix starts the final line.
	AveragePrefix = "Average: "
	// NoValues is the whole output when nothing was collected.
	NoValues = "No values found to average."
)

// Write prints r to w. With at least one value it prints the header, each
// value on its own line in scan order, and the average; otherwise it
// prints the NoValues line alone.
func Write(w io.Writer, r *logscan.Report) error {
	bw := bufio.NewWriter(w)

	if r.Empty() {
		bw.WriteString(NoValues + "\n")
		return bw.Flush()
	}

	mean, _ := r.Mean()
	bw.WriteString(Header + "\n")
	for _, v := range r.Values {
		bw.WriteString(FormatValue(v))
		bw.WriteByte('\n')
	}
	bw.WriteString(AveragePrefix + FormatValue(mean) + "\n")
	return bw.Flush()
}

// FormatValue renders v with the shortest digits that round-trip.
// Integral values keep a trailing ".0", and exponent form is used when
// the decimal exponent is below -4 or at least 16 (1e-05, 1e+16).
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	exp := decimalExponent(v)
	if v != 0 && (exp < -4 || exp >= 16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// decimalExponent returns the base-10 exponent of v's shortest
// scientific representation.
func decimalExponent(v float64) int {
	s := strconv.FormatFloat(v, 'e', -1, 64)
	i := strings.LastIndexByte(s, 'e')
	exp, _ := strconv.Atoi(s[i+1:])
	return exp
}
