package sarif

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/praetorian-inc/regexlint/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI   = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version     = "2.1.0"
	ToolName    = "regexlint"
	InfoURI     = "https://github.com/praetorian-inc/regexlint"
)

// ToolVersion is reported as the driver version.
var ToolVersion = "0.1.0"

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name           string `json:"name"`
	Version        string `json:"version"`
	InformationURI string `json:"informationUri,omitempty"`
	Rules          []Rule `json:"rules,omitempty"`
}

// Rule represents a detection rule
type Rule struct {
	ID                   string               `json:"id"`
	Name                 string               `json:"name"`
	ShortDescription     ShortDescription     `json:"shortDescription"`
	HelpURI              string               `json:"helpUri,omitempty"`
	DefaultConfiguration DefaultConfiguration `json:"defaultConfiguration"`
	Properties           *RuleProperties      `json:"properties,omitempty"`
}

// DefaultConfiguration carries the rule's effective level
type DefaultConfiguration struct {
	Level string `json:"level"`
}

// RuleProperties holds rule tags
type RuleProperties struct {
	Tags []string `json:"tags,omitempty"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result represents a single finding
type Result struct {
	RuleID              string            `json:"ruleId"`
	RuleIndex           int               `json:"ruleIndex"`
	Level               string            `json:"level"`
	Message             Message           `json:"message"`
	Locations           []Location        `json:"locations"`
	PartialFingerprints map[string]string `json:"partialFingerprints,omitempty"`
	Properties          ResultProperties  `json:"properties"`
}

// ResultProperties places a result within its lexer table
type ResultProperties struct {
	Class   string `json:"class"`
	State   string `json:"state"`
	Index   int    `json:"index"`
	Pattern string `json:"pattern,omitempty"`
	Offset  int    `json:"offset"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region specifies the line/column range. Columns are 1-based.
type Region struct {
	StartLine   int      `json:"startLine"`
	StartColumn int      `json:"startColumn,omitempty"`
	EndLine     int      `json:"endLine"`
	EndColumn   int      `json:"endColumn,omitempty"`
	Snippet     *Snippet `json:"snippet,omitempty"`
}

// Snippet contains the matched text
type Snippet struct {
	Text string `json:"text"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport() *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:           ToolName,
						Version:        ToolVersion,
						InformationURI: InfoURI,
						Rules:          []Rule{},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// AddRule adds a rule to the report. Adding a rule twice is a no-op.
func (r *Report) AddRule(rule *types.Rule) {
	if _, ok := r.ruleIndex(rule.ID); ok {
		return
	}
	sarifRule := Rule{
		ID:   rule.ID,
		Name: rule.Name,
		ShortDescription: ShortDescription{
			Text: rule.Description,
		},
		DefaultConfiguration: DefaultConfiguration{Level: sarifLevel(rule.Level)},
	}

	// Add first reference as helpUri if available
	if len(rule.References) > 0 {
		sarifRule.HelpURI = rule.References[0]
	}
	if len(rule.Categories) > 0 {
		sarifRule.Properties = &RuleProperties{Tags: rule.Categories}
	}

	r.Runs[0].Tool.Driver.Rules = append(r.Runs[0].Tool.Driver.Rules, sarifRule)
}

// AddResult adds a finding to the report. The finding's rule should have
// been added first; otherwise ruleIndex is -1.
func (r *Report) AddResult(f *types.Finding) {
	region := Region{
		StartLine: f.Location.Line,
		EndLine:   f.Location.Line,
	}
	// Decode failures carry a line but no column range.
	if f.Location.ColEnd > f.Location.ColStart {
		region.StartColumn = f.Location.ColStart + 1
		region.EndColumn = f.Location.ColEnd + 1
		region.Snippet = &Snippet{Text: f.Location.Marked()}
	}

	index, ok := r.ruleIndex(f.RuleID)
	if !ok {
		index = -1
	}

	result := Result{
		RuleID:    f.RuleID,
		RuleIndex: index,
		Level:     sarifLevel(f.Level),
		Message: Message{
			Text: f.Message,
		},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{
						URI: formatFileURI(f.File),
					},
					Region: region,
				},
			},
		},
		Properties: ResultProperties{
			Class:   f.Class,
			State:   f.State,
			Index:   f.Index,
			Pattern: f.Pattern,
			Offset:  f.Offset,
		},
	}
	if f.ID != "" {
		result.PartialFingerprints = map[string]string{"regexlintFinding/v1": f.ID}
	}

	r.Runs[0].Results = append(r.Runs[0].Results, result)
}

// Build creates a report over rules and findings.
func Build(rules []*types.Rule, findings []*types.Finding) *Report {
	report := NewReport()
	for _, rule := range rules {
		report.AddRule(rule)
	}
	for _, f := range findings {
		report.AddResult(f)
	}
	return report
}

func (r *Report) ruleIndex(id string) (int, bool) {
	for i, rule := range r.Runs[0].Tool.Driver.Rules {
		if rule.ID == id {
			return i, true
		}
	}
	return 0, false
}

func sarifLevel(l types.Level) string {
	if l == "" {
		return string(types.LevelWarning)
	}
	return string(l)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if filepath.IsAbs(path) {
		// Normalize path separators for URI format
		path = filepath.ToSlash(path)
		// Ensure path starts with /
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	// Relative paths stay as-is
	return filepath.ToSlash(path)
}
