package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// scenario is one entry of testdata/scenarios.yaml
type scenario struct {
	Name           string   `yaml:"name"`
	Args           []string `yaml:"args"`
	Lines          []string `yaml:"lines"`
	Missing        bool     `yaml:"missing"`
	Pattern        string   `yaml:"pattern"`
	Exit           int      `yaml:"exit"`
	Stdout         *string  `yaml:"stdout"`
	Stderr         *string  `yaml:"stderr"`
	StdoutContains []string `yaml:"stdout_contains"`
	StderrContains []string `yaml:"stderr_contains"`
}

const scenarioLog = "app.log"

func loadScenarios(t *testing.T) []scenario {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "scenarios.yaml"))
	require.NoError(t, err)

	var scenarios []scenario
	require.NoError(t, yaml.Unmarshal(data, &scenarios))
	require.NotEmpty(t, scenarios)
	return scenarios
}

func (sc scenario) filesystem(t *testing.T) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	if sc.Missing {
		return fs
	}
	content := ""
	if len(sc.Lines) > 0 {
		content = strings.Join(sc.Lines, "\n") + "\n"
	}
	require.NoError(t, util.WriteFile(fs, scenarioLog, []byte(content), 0o644))
	return fs
}

func (sc scenario) args() []string {
	if sc.Args != nil {
		return sc.Args
	}
	return []string{scenarioLog, sc.Pattern}
}

func runCLI(t *testing.T, args []string, fs billy.Basic) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(context.Background(), args, &out, &errOut, fs)
	return code, out.String(), errOut.String()
}

func TestScenarios(t *testing.T) {
	for _, sc := range loadScenarios(t) {
		t.Run(sc.Name, func(t *testing.T) {
			code, stdout, stderr := runCLI(t, sc.args(), sc.filesystem(t))

			assert.Equal(t, sc.Exit, code, "stderr: %s", stderr)
			if sc.Stdout != nil {
				assert.Equal(t, *sc.Stdout, stdout)
			}
			if sc.Stderr != nil {
				assert.Equal(t, *sc.Stderr, stderr)
			}
			for _, want := range sc.StdoutContains {
				assert.Contains(t, stdout, want)
			}
			for _, want := range sc.StderrContains {
				assert.Contains(t, stderr, want)
			}
			for _, line := range strings.Split(strings.TrimSuffix(stderr, "\n"), "\n") {
				if line == "" {
					continue
				}
				assert.True(t, strings.HasPrefix(line, "Error: ") || strings.HasPrefix(line, "Warning: "),
					"stderr line without a severity prefix: %q", line)
			}
		})
	}
}

func TestIdempotentOutput(t *testing.T) {
	sc := scenario{Lines: []string{"a=0.1", "a=0.2", "a=x", "a=0.3"}, Pattern: `a=(\S+)`}
	fs := sc.filesystem(t)

	code1, out1, err1 := runCLI(t, sc.args(), fs)
	code2, out2, err2 := runCLI(t, sc.args(), fs)

	assert.Equal(t, 0, code1)
	assert.Equal(t, code1, code2)
	assert.Equal(t, out1, out2)
	assert.Equal(t, err1, err2)
	assert.Equal(t, "Caught numbers:\n0.1\n0.2\n0.3\nAverage: 0.20000000000000004\n", out1)
}

// countingFS records Open calls
type countingFS struct {
	billy.Filesystem
	opens int
}

func (c *countingFS) Open(filename string) (billy.File, error) {
	c.opens++
	return c.Filesystem.Open(filename)
}

func TestInvalidPatternDoesNotOpenFile(t *testing.T) {
	fs := &countingFS{Filesystem: scenario{Lines: []string{"v=1"}}.filesystem(t)}

	code, stdout, stderr := runCLI(t, []string{scenarioLog, `v=[`}, fs)

	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "Error: Invalid regular expression:"), stderr)
	assert.Equal(t, 0, fs.opens)
}

func TestNativeFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.log")
	require.NoError(t, os.WriteFile(path, []byte("cost: 10\ncost: foo\ncost: 20\n"), 0o644))

	code, stdout, stderr := runCLI(t, []string{path, `cost: (\w+)`}, nil)

	assert.Equal(t, exitOK, code)
	assert.Equal(t, "Caught numbers:\n10.0\n20.0\nAverage: 15.0\n", stdout)
	assert.Equal(t, "Warning: Could not convert value on line 2 to a float.\n", stderr)

	code, _, stderr = runCLI(t, []string{filepath.Join(dir, "nope.log"), `(\d+)`}, nil)
	assert.Equal(t, exitError, code)
	assert.Contains(t, stderr, "Error: Log file not found at '")
}

func TestDirectoryIsUnexpectedError(t *testing.T) {
	code, stdout, stderr := runCLI(t, []string{t.TempDir(), `(\d+)`}, nil)

	assert.Equal(t, exitError, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "Error: An unexpected error occurred:"), stderr)
}

func TestCancelledContext(t *testing.T) {
	fs := scenario{Lines: []string{"v=1"}}.filesystem(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out, errOut bytes.Buffer
	code := execute(ctx, []string{scenarioLog, `v=(\d+)`}, &out, &errOut, fs)

	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut.String(), "context canceled")
}
