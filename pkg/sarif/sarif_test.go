package sarif

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/regexlint/pkg/types"
)

func duplicateFinding() *types.Finding {
	return &types.Finding{
		ID:      "0123456789abcdef0123456789abcdef01234567",
		RuleID:  "regex.charclass.duplicate",
		Level:   types.LevelWarning,
		Message: "duplicate character 'a' in class",
		File:    "/path/to/lexer.py",
		Class:   "FooLexer",
		State:   "root",
		Index:   2,
		Pattern: "[aa]",
		Offset:  2,
		Location: types.LineLocation{
			LineSpan: types.LineSpan{Line: 10, ColStart: 14, ColEnd: 15},
			Text:     "            (r'[aa]', Text),",
		},
	}
}

func TestNewReport(t *testing.T) {
	report := NewReport()

	assert.Equal(t, SchemaURI, report.Schema)
	assert.Equal(t, Version, report.Version)
	assert.Len(t, report.Runs, 1)
	assert.Equal(t, ToolName, report.Runs[0].Tool.Driver.Name)
	assert.Equal(t, ToolVersion, report.Runs[0].Tool.Driver.Version)
}

func TestAddRule(t *testing.T) {
	report := NewReport()

	rule := &types.Rule{
		ID:          "regex.charclass.duplicate",
		Name:        "Duplicate class member",
		Level:       types.LevelWarning,
		Description: "A character class lists the same character twice",
		References:  []string{"https://docs.python.org/3/library/re.html"},
		Categories:  []string{"charclass"},
	}

	report.AddRule(rule)
	report.AddRule(rule)

	require.Len(t, report.Runs[0].Tool.Driver.Rules, 1)
	sarifRule := report.Runs[0].Tool.Driver.Rules[0]
	assert.Equal(t, "regex.charclass.duplicate", sarifRule.ID)
	assert.Equal(t, "Duplicate class member", sarifRule.Name)
	assert.Equal(t, "warning", sarifRule.DefaultConfiguration.Level)
	assert.Equal(t, "https://docs.python.org/3/library/re.html", sarifRule.HelpURI)
	assert.Equal(t, []string{"charclass"}, sarifRule.Properties.Tags)
}

func TestAddResult(t *testing.T) {
	report := NewReport()
	report.AddRule(&types.Rule{ID: "regex.parse", Name: "Parse"})
	report.AddRule(&types.Rule{ID: "regex.charclass.duplicate", Name: "Duplicate"})

	report.AddResult(duplicateFinding())

	require.Len(t, report.Runs[0].Results, 1)
	result := report.Runs[0].Results[0]
	assert.Equal(t, "regex.charclass.duplicate", result.RuleID)
	assert.Equal(t, 1, result.RuleIndex)
	assert.Equal(t, "warning", result.Level)
	assert.Equal(t, "FooLexer", result.Properties.Class)
	assert.Equal(t, 2, result.Properties.Index)
	assert.Equal(t, "0123456789abcdef0123456789abcdef01234567", result.PartialFingerprints["regexlintFinding/v1"])

	location := result.Locations[0]
	assert.Equal(t, "file:///path/to/lexer.py", location.PhysicalLocation.ArtifactLocation.URI)
	region := location.PhysicalLocation.Region
	assert.Equal(t, 10, region.StartLine)
	assert.Equal(t, 15, region.StartColumn)
	assert.Equal(t, 10, region.EndLine)
	assert.Equal(t, 16, region.EndColumn)
	require.NotNil(t, region.Snippet)
	assert.Equal(t, "a", region.Snippet.Text)
}

func TestAddResult_LineOnly(t *testing.T) {
	report := NewReport()

	f := duplicateFinding()
	f.RuleID = "regex.parse"
	f.Location.ColStart, f.Location.ColEnd = 0, 0
	report.AddResult(f)

	result := report.Runs[0].Results[0]
	assert.Equal(t, -1, result.RuleIndex)
	region := result.Locations[0].PhysicalLocation.Region
	assert.Equal(t, 10, region.StartLine)
	assert.Zero(t, region.StartColumn)
	assert.Nil(t, region.Snippet)

	data, err := report.ToJSON()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "startColumn")
}

func TestBuild_ToJSON(t *testing.T) {
	rules := []*types.Rule{{ID: "regex.charclass.duplicate", Name: "Duplicate", Level: types.LevelError}}
	report := Build(rules, []*types.Finding{duplicateFinding()})

	jsonBytes, err := report.ToJSON()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(jsonBytes, &parsed))
	assert.Equal(t, SchemaURI, parsed["$schema"])
	assert.Equal(t, Version, parsed["version"])

	runs := parsed["runs"].([]any)
	results := runs[0].(map[string]any)["results"].([]any)
	assert.Len(t, results, 1)
}

func TestRelativePathConversion(t *testing.T) {
	report := NewReport()

	f := duplicateFinding()
	report.AddResult(f)
	assert.Equal(t, "file:///path/to/lexer.py", report.Runs[0].Results[0].Locations[0].PhysicalLocation.ArtifactLocation.URI)

	f.File = "pygments/lexers/foo.py"
	report.AddResult(f)
	assert.Equal(t, "pygments/lexers/foo.py", report.Runs[0].Results[1].Locations[0].PhysicalLocation.ArtifactLocation.URI)
}
