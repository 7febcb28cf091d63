package rule

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/regexlint/pkg/types"
)

func TestLoadRules_Valid(t *testing.T) {
	loader := NewLoader()

	validYAML := `rules:
  - id: custom.backslash-b
    name: Backspace in class
    level: note
    description: \b inside a class is a backspace
    examples:
      - '[\b]'
    negative_examples:
      - '\b'
    references:
      - https://docs.python.org/3/library/re.html
    categories:
      - charclass
      - style
`

	rules, err := loader.LoadRules([]byte(validYAML))
	require.NoError(t, err)
	require.Len(t, rules, 1)

	r := rules[0]
	assert.Equal(t, "custom.backslash-b", r.ID)
	assert.Equal(t, "Backspace in class", r.Name)
	assert.Equal(t, types.LevelNote, r.Level)
	assert.Equal(t, `\b inside a class is a backspace`, r.Description)
	assert.Equal(t, []string{`[\b]`}, r.Examples)
	assert.Len(t, r.NegativeExamples, 1)
	assert.Len(t, r.References, 1)
	assert.Len(t, r.Categories, 2)
}

func TestLoadRules_DefaultLevel(t *testing.T) {
	rules, err := NewLoader().LoadRules([]byte("rules:\n  - id: a.b\n    name: x\n"))
	require.NoError(t, err)
	assert.Equal(t, types.LevelWarning, rules[0].Level)
}

func TestLoadRules_Invalid(t *testing.T) {
	tests := map[string]string{
		"invalid YAML":  `this is not valid yaml: [[[`,
		"no rules":      `rules: []`,
		"missing id":    "rules:\n  - name: x\n",
		"bad level":     "rules:\n  - id: a.b\n    name: x\n    level: fatal\n",
		"bad id format": "rules:\n  - id: NoDots\n    name: x\n",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewLoader().LoadRules([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadBuiltinRules(t *testing.T) {
	rules, err := NewLoader().LoadBuiltinRules()
	require.NoError(t, err)

	ids := make(map[string]bool)
	for _, r := range rules {
		assert.NoError(t, ValidateRule(r))
		assert.False(t, ids[r.ID], "duplicate rule %s", r.ID)
		ids[r.ID] = true
	}

	// Every built-in check has metadata.
	assert.True(t, ids[ParseRuleID])
	for _, c := range BuiltinChecks() {
		assert.True(t, ids[c.ID()], "missing metadata for %s", c.ID())
	}
}

func TestLoadBuiltinRules_CustomFS(t *testing.T) {
	fsys := fstest.MapFS{
		"rules/one.yml":    {Data: []byte("rules:\n  - id: a.one\n    name: One\n")},
		"rules/two.yml":    {Data: []byte("rules:\n  - id: a.two\n    name: Two\n    level: error\n")},
		"rules/readme.txt": {Data: []byte("ignored")},
	}

	rules, err := NewLoaderWithFS(fsys).LoadBuiltinRules()
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "a.one", rules[0].ID)
	assert.Equal(t, types.LevelError, rules[1].Level)
}
