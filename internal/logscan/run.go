package logscan

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/steveyegge/logscan/internal/config"
)

// Options configures Run.
type Options struct {
	// FS is where the log file is opened from. Nil means the native
	// filesystem, with paths used as given.
	FS billy.Basic

	// Config tunes line reading and, for Run, the pattern's match
	// timeout. Zero fields take defaults.
	Config config.ScanConfig

	// OnWarning is called synchronously, in line order, for each matching
	// line whose text is not a number.
	OnWarning func(*ValueCoercionWarning)
}

// Run compiles expr, scans the file at path and aggregates the values.
//
// The pattern is compiled before the file is opened, so an invalid pattern
// never touches the filesystem. Errors are *InvalidPatternError,
// *FileNotFoundError or *UnexpectedError. Coercion failures are not
// errors; they are reported through OnWarning and Report.Warnings.
func Run(ctx context.Context, path, expr string, opts Options) (*Report, error) {
	pattern, err := CompileTimeout(expr, opts.Config.WithDefaults().MatchTimeout)
	if err != nil {
		return nil, err
	}
	slog.Debug("Pattern compiled", "pattern", expr, "groups", pattern.NumGroups())

	return Scan(ctx, path, pattern, opts)
}

// Scan runs an already compiled pattern over the file at path. The
// pattern keeps the match timeout it was compiled with.
func Scan(ctx context.Context, path string, pattern *Pattern, opts Options) (*Report, error) {
	cfg := opts.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, &UnexpectedError{Path: path, Err: fmt.Errorf("invalid scan config: %w", err)}
	}

	fs := opts.FS
	if fs == nil {
		fs = osfs.Default
	}

	file, err := fs.Open(path)
	if err != nil {
		return nil, &FileNotFoundError{Path: path, Err: err}
	}
	defer file.Close()
	slog.Debug("Log file opened", "path", path)

	report, err := Collect(ctx, NewLineScanner(file, pattern, cfg), opts.OnWarning)
	if err != nil {
		return nil, &UnexpectedError{Path: path, Err: err}
	}

	slog.Debug("Scan finished",
		"path", path,
		"lines", report.Lines,
		"matched", report.Matched,
		"values", len(report.Values),
		"warnings", len(report.Warnings))

	return report, nil
}
