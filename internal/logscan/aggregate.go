package logscan

import "context"

// Mean returns the arithmetic mean of values, summed left to right.
// ok is false when values is empty.
func Mean(values []float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// Report is the outcome of a completed scan.
type Report struct {
	Values   []float64               // Parsed values in line order
	Lines    int                     // Lines read
	Matched  int                     // Lines the pattern matched, coercible or not
	Warnings []*ValueCoercionWarning // Coercion failures in line order
}

// Mean returns the mean of the collected values; ok is false when there
// are none.
func (r *Report) Mean() (float64, bool) {
	return Mean(r.Values)
}

// Empty reports whether no values were collected.
func (r *Report) Empty() bool {
	return len(r.Values) == 0
}

// Collect drains s into a Report. onWarning, when non-nil, is called for
// each coercion failure as it is found. ctx is checked between lines. On
// error the partial report is returned alongside it.
func Collect(ctx context.Context, s *LineScanner, onWarning func(*ValueCoercionWarning)) (*Report, error) {
	report := &Report{}
	for s.Next() {
		if err := ctx.Err(); err != nil {
			report.Lines = s.Line()
			return report, err
		}

		res := s.Result()
		switch res.Kind {
		case Matched:
			report.Matched++
			report.Values = append(report.Values, res.Value)
		case CoercionFailed:
			report.Matched++
			report.Warnings = append(report.Warnings, res.Warning)
			if onWarning != nil {
				onWarning(res.Warning)
			}
		}
	}
	report.Lines = s.Line()
	return report, s.Err()
}
