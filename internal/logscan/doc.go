// Package logscan extracts numeric values from log lines with a regular
// expression and averages them.
//
// A run has three stages:
//
//   - Compile turns the user's expression into a Pattern. Nothing is read
//     if this fails.
//   - LineScanner reads the log one line at a time. Each matching line
//     yields the text of capture group 1, or the whole match when the
//     pattern has no groups, which is then parsed as a float.
//   - Collect gathers the values into a Report; Mean averages them.
//
// Lines whose value is not a number produce a ValueCoercionWarning and
// the scan continues. Run ties the stages together over a
// billy.Filesystem.
//
// Example:
//
//	report, err := logscan.Run(ctx, "/var/log/app.log", `took (\d+)ms`, logscan.Options{
//		OnWarning: func(w *logscan.ValueCoercionWarning) {
//			fmt.Fprintf(os.Stderr, "line %d skipped\n", w.Line)
//		},
//	})
//	if err != nil {
//		return err
//	}
//	if mean, ok := report.Mean(); ok {
//		fmt.Println(mean)
//	}
package logscan
