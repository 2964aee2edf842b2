package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-git/go-billy/v5"
	"github.com/spf13/cobra"
	"github.com/steveyegge/logscan/internal/logscan"
	"github.com/steveyegge/logscan/internal/report"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks bad command-line input (argument count, unknown flags)
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// newRootCmd builds the logscan command. fs is where the log file is
// opened from; nil means the native filesystem.
func newRootCmd(stdout, stderr io.Writer, fs billy.Basic) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logscan <logfile> <pattern>",
		Short: "Extract information from log files and calculate the average",
		Long: `Scan a log file line by line with a regular expression, extract one number
per matching line and print the numbers followed by their average.

The pattern uses Python-style syntax: groups (...), named groups (?P<name>...),
character classes, quantifiers, escapes such as \d, lookahead (?=...),
lookbehind (?<=...) and backreferences \1. If the pattern has capture groups
the first group is the value; otherwise the whole match is.
Matching lines whose value is not a number are reported as warnings and
skipped.

Use -- before a pattern that starts with a dash.`,
		Example: `  logscan /var/log/auth.log 'sshd\[(\d+)\]: Failed password for .+ from ([\d\.]+)'
  logscan app.log 'took (\d+(?:\.\d+)?)ms'`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(2)(cmd, args); err != nil {
				return &usageError{err: err}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			diag := newDiagnostics(stderr)

			rep, err := logscan.Run(cmd.Context(), args[0], args[1], logscan.Options{
				FS:        fs,
				OnWarning: diag.coercionWarning,
			})
			if err != nil {
				return err
			}
			return report.Write(stdout, rep)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return cmd
}

// execute runs the command with args and returns the process exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, fs billy.Basic) int {
	cmd := newRootCmd(stdout, stderr, fs)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	diag := newDiagnostics(stderr)

	var uerr *usageError
	if errors.As(err, &uerr) {
		diag.usage(uerr, cmd.CommandPath())
		return exitUsage
	}
	diag.fatal(err)
	return exitError
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr, nil)
	stop()
	os.Exit(code)
}
