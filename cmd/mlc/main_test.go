package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mlc/internal/diagfmt"
	"mlc/internal/driver"
	"mlc/internal/version"
)

const mixedSource = `x = [1,
     2]
y = [
    1,
    ]
z = (
    3
)
`

// runCLI isolates the cache and env, then runs the command line.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(append([]string{"--color", "off"}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func isolate(t *testing.T) string {
	t.Helper()
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("MLC_FORMAT", "")
	t.Setenv("MLC_JOBS", "")
	t.Setenv("MLC_CACHE", "")
	return cacheHome
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestCheckShort(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"mixed.py": mixedSource})

	code, stdout, stderr := runCLI(t, "check", "--format", "short", "--path-mode", "relative", "--cache=false", dir)
	assert.Equal(t, driver.ExitViolations, code)
	assert.Equal(t,
		"mixed.py:1:5: PL101 Multi-line container not broken after opening character\n"+
			"mixed.py:2:7: PL102 Multi-line container not broken before closing character\n"+
			"mixed.py:5:5: PL110 Multi-line container does not close on same column as opening\n",
		stdout)
	assert.Contains(t, stderr, "checked 1 file: 3 issues")
}

func TestCheckClean(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"ok.py": "x = [\n    1,\n]\n"})

	code, stdout, stderr := runCLI(t, "check", "--format", "short", "--cache=false", dir)
	assert.Equal(t, driver.ExitClean, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "all clean")
}

func TestCheckExitZeroAndQuiet(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"mixed.py": mixedSource})

	code, stdout, stderr := runCLI(t, "--quiet", "check", "--format", "short", "--exit-zero", "--cache=false", dir)
	assert.Equal(t, driver.ExitClean, code)
	assert.Equal(t, 3, strings.Count(stdout, "\n"))
	assert.Empty(t, stderr)
}

func TestCheckSelectIgnore(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"mixed.py": mixedSource})

	_, stdout, _ := runCLI(t, "check", "--format", "short", "--path-mode", "basename", "--cache=false", "--select", "PL110", dir)
	assert.Equal(t, "mixed.py:5:5: PL110 Multi-line container does not close on same column as opening\n", stdout)

	_, stdout, _ = runCLI(t, "check", "--format", "short", "--path-mode", "basename", "--cache=false", "--ignore", "PL1", dir)
	assert.Empty(t, stdout)
}

func TestCheckConfigFile(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{
		"mlc.toml": "ignore = [\"PL101\"]\nformat = \"short\"\n",
		"mixed.py": mixedSource,
	})

	code, stdout, _ := runCLI(t, "check", "--path-mode", "basename", "--cache=false", dir)
	assert.Equal(t, driver.ExitViolations, code)
	assert.NotContains(t, stdout, "PL101")
	assert.Contains(t, stdout, "mixed.py:2:7: PL102")
	assert.Contains(t, stdout, "mixed.py:5:5: PL110")
}

func TestCheckStructural(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"open.py": "x = (1,\n"})

	code, stdout, stderr := runCLI(t, "check", "--format", "short", "--path-mode", "basename", "--cache=false", dir)
	assert.Equal(t, driver.ExitFatal, code)
	assert.True(t, strings.HasPrefix(stdout, "open.py:1:5: E999 unbalanced brackets"), stdout)
	assert.Contains(t, stderr, "1 structural error")
}

func TestCheckJSON(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{
		"mixed.py": mixedSource,
		"ok.py":    "x = [1]\n",
	})

	code, stdout, stderr := runCLI(t, "check", "--format", "json", "--path-mode", "relative", "--cache=false", dir)
	assert.Equal(t, driver.ExitViolations, code)
	assert.Empty(t, stderr)

	var payload diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, 3, payload.Count)
	require.Len(t, payload.Files, 1)
	assert.Equal(t, "mixed.py", payload.Files[0].Path)
	require.Len(t, payload.Files[0].Diagnostics, 3)
	assert.Equal(t, "PL101", payload.Files[0].Diagnostics[0].Code)
}

func TestCheckSarif(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"mixed.py": mixedSource})

	code, stdout, _ := runCLI(t, "check", "--format", "sarif", "--cache=false", dir)
	assert.Equal(t, driver.ExitViolations, code)

	var report diagfmt.SarifReport
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Runs, 1)
	assert.Len(t, report.Runs[0].Results, 3)
}

func TestCheckCache(t *testing.T) {
	cacheHome := isolate(t)
	dir := writeFiles(t, map[string]string{"mixed.py": mixedSource})

	code, _, stderr := runCLI(t, "check", "--format", "short", dir)
	assert.Equal(t, driver.ExitViolations, code)
	assert.NotContains(t, stderr, "cached")

	code, stdout, stderr := runCLI(t, "check", "--format", "short", "--path-mode", "basename", dir)
	assert.Equal(t, driver.ExitViolations, code)
	assert.Contains(t, stderr, "(1 cached)")
	assert.Equal(t, 3, strings.Count(stdout, "mixed.py:"))

	code, stdout, _ = runCLI(t, "clean")
	assert.Equal(t, driver.ExitClean, code)
	assert.Equal(t, "removed "+filepath.Join(cacheHome, "mlc")+"\n", stdout)

	_, stdout, _ = runCLI(t, "clean")
	assert.Equal(t, "cache directory not found\n", stdout)
}

func TestCheckInvalidFlags(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"ok.py": "x = 1\n"})

	code, _, stderr := runCLI(t, "check", "--format", "xml", dir)
	assert.Equal(t, driver.ExitFatal, code)
	assert.Contains(t, stderr, "format must be one of")

	code, _, stderr = runCLI(t, "check", "--ui", "maybe", dir)
	assert.Equal(t, driver.ExitFatal, code)
	assert.Contains(t, stderr, "invalid --ui value")

	code, _, stderr = runCLI(t, "check", "--path-mode", "sideways", dir)
	assert.Equal(t, driver.ExitFatal, code)
	assert.Contains(t, stderr, "invalid --path-mode value")
}

func TestCheckTimingsAndTrace(t *testing.T) {
	isolate(t)
	dir := writeFiles(t, map[string]string{"mixed.py": mixedSource})
	tracePath := filepath.Join(t.TempDir(), "run.ndjson")

	code, _, stderr := runCLI(t, "--timings", "--trace", tracePath, "check", "--format", "short", "--cache=false", dir)
	assert.Equal(t, driver.ExitViolations, code)
	assert.Contains(t, stderr, "tokenize")
	assert.Contains(t, stderr, "analyze")

	data, err := os.ReadFile(tracePath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.True(t, json.Valid([]byte(line)), line)
	}
	assert.Contains(t, string(data), `"lint"`)
}

func TestTokenize(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.py": "x = [1]\n"})
	path := filepath.Join(dir, "a.py")

	code, stdout, _ := runCLI(t, "tokenize", path)
	assert.Equal(t, driver.ExitClean, code)
	assert.Contains(t, stdout, "NAME")
	assert.Contains(t, stdout, "OP")

	code, stdout, _ = runCLI(t, "tokenize", "--format", "json", path)
	assert.Equal(t, driver.ExitClean, code)
	assert.True(t, json.Valid([]byte(stdout)))

	code, _, stderr := runCLI(t, "tokenize", filepath.Join(dir, "missing.py"))
	assert.Equal(t, driver.ExitFatal, code)
	assert.Contains(t, stderr, "tokenization failed")
}

func TestSpans(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.py":    mixedSource,
		"open.py": "x = (1,\n",
	})

	code, stdout, _ := runCLI(t, "spans", "--format", "json", filepath.Join(dir, "a.py"))
	assert.Equal(t, driver.ExitClean, code)
	var spans []diagfmt.SpanOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &spans))
	assert.Len(t, spans, 3)

	code, stdout, stderr := runCLI(t, "spans", filepath.Join(dir, "open.py"))
	assert.Equal(t, driver.ExitFatal, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "E999")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	code, stdout, _ := runCLI(t, "init", dir)
	assert.Equal(t, driver.ExitClean, code)
	assert.Equal(t, "created "+filepath.Join(dir, "mlc.toml")+"\n", stdout)

	code, _, stderr := runCLI(t, "init", dir)
	assert.Equal(t, driver.ExitFatal, code)
	assert.Contains(t, stderr, "already exists")

	code, _, _ = runCLI(t, "--quiet", "init", "--force", dir)
	assert.Equal(t, driver.ExitClean, code)
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version", "--format", "json", "--full")
	assert.Equal(t, driver.ExitClean, code)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(stdout), &payload))
	assert.Equal(t, "mlc", payload.Tool)
	assert.Equal(t, version.Version, payload.Version)

	_, stdout, _ = runCLI(t, "version", "--full")
	assert.Contains(t, stdout, "mlc "+version.Version)
	assert.Contains(t, stdout, "commit:")

	code, _, _ = runCLI(t, "version", "--format", "yaml")
	assert.Equal(t, driver.ExitFatal, code)
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "checked 1 file: all clean", summaryLine(driver.Summary{Files: 1, Clean: 1}))
	assert.Equal(t, "checked 4 files (2 cached): 1 issue, 2 structural errors, 1 failed",
		summaryLine(driver.Summary{Files: 4, Diagnostics: 1, Structural: 2, Failed: 1, Cached: 2}))
}

func TestShouldUseTUI(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, shouldUseTUI(uiModeOn, &buf))
	assert.False(t, shouldUseTUI(uiModeAuto, &buf))
	assert.False(t, shouldUseTUI(uiModeOff, os.Stdout))
}
