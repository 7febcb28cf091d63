package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fooLexer = `class FooLexer(RegexLexer):
    tokens = {
        'root': [
            (r'[aa]', Text),
            (r'^$', Text),
        ],
    }
`

func resetLintFlags() {
	lintConfigPath = ""
	lintRulesInclude = ""
	lintRulesExclude = ""
	lintFormat = "human"
	lintColor = "never"
	lintIncludeHidden = false
	lintMaxFileSize = 10 * 1024 * 1024
	lintUnicodeLiterals = false
	lintNarrowBuild = false
	lintConcurrency = 0
	lintFailOn = "error"
	verbose = false
	quiet = false
}

func writeLexer(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.py"), []byte(fooLexer), 0644))
	return dir
}

func newTestCmd() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestRunLint_Human(t *testing.T) {
	dir := writeLexer(t)
	resetLintFlags()
	cmd, out, errOut := newTestCmd()

	err := runLint(cmd, []string{dir})
	assert.ErrorIs(t, err, errFindings)

	output := out.String()
	assert.Contains(t, output, "foo.py:4:18: warning: a repeats 'a' already in the class [regex.charclass.duplicate]")
	assert.Contains(t, output, "            (r'[aa]', Text),\n")
	assert.Contains(t, output, "    "+strings.Repeat(" ", 17)+"^\n")
	assert.Contains(t, output, "foo.py:5:16: error: pattern only matches the empty string [regex.zero-width]")
	assert.Contains(t, errOut.String(), "2 findings (1 errors, 1 warnings, 0 notes in 1 files)")
}

func TestRunLint_ExcludeErrors(t *testing.T) {
	dir := writeLexer(t)
	resetLintFlags()
	lintRulesExclude = `zero-width`
	quiet = true
	cmd, out, errOut := newTestCmd()

	require.NoError(t, runLint(cmd, []string{dir}))
	assert.Contains(t, out.String(), "regex.charclass.duplicate")
	assert.NotContains(t, out.String(), "regex.zero-width")
	assert.Empty(t, errOut.String())
}

func TestRunLint_ConfigFile(t *testing.T) {
	dir := writeLexer(t)
	resetLintFlags()
	config := "rules:\n  levels:\n    regex.zero-width: note\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".regexlint.yml"), []byte(config), 0644))
	lintFormat = "json"
	cmd, out, _ := newTestCmd()

	require.NoError(t, runLint(cmd, []string{filepath.Join(dir, "foo.py")}))

	var findings []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &findings))
	require.Len(t, findings, 2)
	assert.Equal(t, "note", findings[1]["Level"])
}

func TestRunLint_FailOn(t *testing.T) {
	dir := writeLexer(t)
	resetLintFlags()
	lintRulesExclude = `zero-width`
	lintFailOn = "warning"
	cmd, _, _ := newTestCmd()

	assert.ErrorIs(t, runLint(cmd, []string{dir}), errFindings)

	lintFailOn = "fatal"
	assert.ErrorContains(t, runLint(cmd, []string{dir}), "--fail-on")
}

func TestRunLint_SARIF(t *testing.T) {
	dir := writeLexer(t)
	resetLintFlags()
	lintFormat = "sarif"
	cmd, out, _ := newTestCmd()

	assert.ErrorIs(t, runLint(cmd, []string{dir}), errFindings)

	var report map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, "2.1.0", report["version"])
}

func TestRunLint_Errors(t *testing.T) {
	dir := writeLexer(t)
	resetLintFlags()

	lintFormat = "xml"
	cmd, _, _ := newTestCmd()
	assert.ErrorContains(t, runLint(cmd, []string{dir}), "unknown output format")

	resetLintFlags()
	lintConfigPath = filepath.Join(dir, "missing.yml")
	assert.ErrorContains(t, runLint(cmd, []string{dir}), "loading config")

	resetLintFlags()
	assert.Error(t, runLint(cmd, []string{filepath.Join(dir, "missing")}))
}

func TestRunLint_Verbose(t *testing.T) {
	dir := writeLexer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "setup.py"), []byte("import os\n"), 0644))
	resetLintFlags()
	verbose = true
	cmd, _, errOut := newTestCmd()

	_ = runLint(cmd, []string{dir})
	assert.Contains(t, errOut.String(), "setup.py: no lexer table, skipped")
}

func TestCaretLine(t *testing.T) {
	tests := []struct {
		text       string
		start, end int
		want       string
	}{
		{"abcdef", 2, 4, "  ^^"},
		{"\tab", 1, 2, "\t^"},
		{"abc", 1, 1, " ^"},
		{"abc", 5, 6, "   ^"},
		{"aé", 1, 3, " ^"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, caretLine(tt.text, tt.start, tt.end), "caretLine(%q, %d, %d)", tt.text, tt.start, tt.end)
	}
}
