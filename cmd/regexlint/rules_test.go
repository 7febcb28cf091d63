package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRulesList(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd, out, _ := newTestCmd()

	rulesConfigPath = ""
	rulesPath = ""
	rulesFormat = "table"

	require.NoError(t, runRulesList(cmd, []string{}))
	output := out.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "regex.charclass.duplicate")
}

func TestRunRulesListJSON(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd, out, _ := newTestCmd()

	rulesConfigPath = ""
	rulesPath = ""
	rulesFormat = "json"

	require.NoError(t, runRulesList(cmd, []string{}))

	var rules []ruleJSON
	require.NoError(t, json.Unmarshal(out.Bytes(), &rules))
	require.NotEmpty(t, rules)
	for _, r := range rules {
		assert.NotEmpty(t, r.ID)
		assert.Contains(t, []string{"error", "warning", "note"}, r.Level)
	}
}

func TestRunRulesListUnknownFormat(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd, _, _ := newTestCmd()

	rulesConfigPath = ""
	rulesPath = ""
	rulesFormat = "xml"

	assert.Error(t, runRulesList(cmd, []string{}))
}

func TestRunRulesListFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  - id: custom.rule\n    name: Custom\n    level: note\n"), 0644))
	cmd, out, _ := newTestCmd()

	rulesConfigPath = ""
	rulesPath = path
	rulesFormat = "table"
	defer func() { rulesPath = "" }()

	require.NoError(t, runRulesList(cmd, []string{}))
	assert.Contains(t, out.String(), "custom.rule")
	assert.NotContains(t, out.String(), "regex.parse")
}
