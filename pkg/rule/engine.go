package rule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/praetorian-inc/regexlint/pkg/locate"
	"github.com/praetorian-inc/regexlint/pkg/regex"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

// Logger receives progress and diagnostic messages.
type Logger interface {
	Log(format string, args ...any)
}

// NoopLogger is a no-op logger
type NoopLogger struct{}

func (NoopLogger) Log(format string, args ...any) {}

// Engine runs the enabled checks over every pattern of a module. An
// Engine is immutable after construction and safe for concurrent use.
type Engine struct {
	rules   []*types.Rule
	enabled map[string]*types.Rule
	checks  []Check
	opts    []locate.Option
	logger  Logger
}

// NewEngine builds an engine from the built-in rules and checks narrowed
// by config. A nil config enables everything at default levels.
func NewEngine(config *Config, logger Logger) (*Engine, error) {
	rules, err := NewLoader().LoadBuiltinRules()
	if err != nil {
		return nil, fmt.Errorf("loading builtin rules: %w", err)
	}
	return NewEngineWithRules(rules, BuiltinChecks(), config, logger)
}

// NewEngineWithRules builds an engine over explicit rule metadata and
// checks. Checks whose ID has no rule are never run.
func NewEngineWithRules(rules []*types.Rule, checks []Check, config *Config, logger Logger) (*Engine, error) {
	if config == nil {
		config = &Config{}
	}
	if logger == nil {
		logger = NoopLogger{}
	}

	known := make(map[string]bool, len(rules))
	for _, r := range rules {
		known[r.ID] = true
	}
	if err := ValidateConfig(config, known); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	selected, err := Filter(rules, config.FilterConfig)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		enabled: make(map[string]*types.Rule, len(selected)),
		logger:  logger,
	}
	for _, r := range selected {
		if level, ok := config.Levels[r.ID]; ok {
			copied := *r
			copied.Level = level
			r = &copied
		}
		e.rules = append(e.rules, r)
		e.enabled[r.ID] = r
	}
	for _, c := range checks {
		if e.enabled[c.ID()] != nil {
			e.checks = append(e.checks, c)
		}
	}
	if config.UnicodeLiterals {
		e.opts = append(e.opts, locate.WithUnicodeLiterals())
	}
	if config.NarrowBuild {
		e.opts = append(e.opts, locate.WithNarrowBuild())
	}
	return e, nil
}

// Rules returns the enabled rules with their effective levels.
func (e *Engine) Rules() []*types.Rule {
	return e.rules
}

// CheckPattern parses pattern and runs the enabled checks over it. A
// parse failure is reported as a regex.parse issue, not as an error.
func (e *Engine) CheckPattern(pattern string, flags regex.Flag) []Issue {
	tree, err := regex.Parse(pattern, flags)
	if err != nil {
		var pe *regex.ParseError
		offset := 0
		if errors.As(err, &pe) {
			offset = pe.Offset
		}
		if e.enabled[ParseRuleID] == nil {
			return nil
		}
		return []Issue{{RuleID: ParseRuleID, Offset: offset, Message: err.Error()}}
	}

	p := &Pattern{Tree: tree, Source: pattern, Flags: flags}
	var issues []Issue
	for _, c := range e.checks {
		issues = append(issues, c.Check(p)...)
	}
	return issues
}

// Lint scans module source src and returns its findings sorted by
// position. Only a source that cannot be tokenized is an error; a bad
// pattern becomes a finding and scanning continues.
func (e *Engine) Lint(filename, src string) ([]*types.Finding, error) {
	m, err := locate.ParseModule(src, e.opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return e.LintModule(filename, m), nil
}

// LintModule checks every pattern of an already scanned module.
func (e *Engine) LintModule(filename string, m *locate.Module) []*types.Finding {
	var findings []*types.Finding
	seen := make(map[string]bool)

	add := func(f *types.Finding) {
		f.ID = types.ComputeFindingID(f.RuleID, f)
		if seen[f.ID] {
			return
		}
		seen[f.ID] = true
		findings = append(findings, f)
	}

	for _, def := range m.Lexers {
		for _, st := range def.States {
			for _, entry := range st.Entries {
				base := types.Finding{File: filename, Class: def.Name, State: st.Name, Index: entry.Index}

				if entry.Err != nil {
					if r := e.enabled[ParseRuleID]; r != nil {
						f := base
						f.RuleID, f.Level = r.ID, r.Level
						f.Message = fmt.Sprintf("cannot decode pattern literal: %v", entry.Err)
						f.Location = types.LineLocation{LineSpan: types.LineSpan{Line: entry.Line}, Text: m.LineText(entry.Line)}
						add(&f)
					}
					continue
				}
				if entry.Pattern == nil {
					e.logger.Log("%s: %s.%s[%d]: skipping non-literal pattern %s", filename, def.Name, st.Name, entry.Index, entry.Expr)
					continue
				}

				value := entry.Pattern.Value()
				for _, issue := range e.CheckPattern(value, def.Flags) {
					r := e.enabled[issue.RuleID]
					if r == nil {
						continue
					}
					f := base
					f.RuleID, f.Level, f.Message = r.ID, r.Level, issue.Message
					f.Pattern, f.Offset = value, issue.Offset
					f.Location = e.locate(m, entry, value, issue.Offset)
					add(&f)
				}
			}
		}
	}

	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Location.Line != b.Location.Line {
			return a.Location.Line < b.Location.Line
		}
		if a.Location.ColStart != b.Location.ColStart {
			return a.Location.ColStart < b.Location.ColStart
		}
		return a.RuleID < b.RuleID
	})
	return findings
}

// locate maps a byte offset of the decoded pattern to the module. Offsets
// at the end of the pattern point at its last character; an empty
// pattern points at its first literal.
func (e *Engine) locate(m *locate.Module, entry *locate.Entry, value string, offset int) types.LineLocation {
	fallback := types.LineLocation{LineSpan: types.LineSpan{Line: entry.Line}, Text: m.LineText(entry.Line)}
	if len(entry.Pattern.Parts) > 0 {
		p := entry.Pattern.Parts[0]
		fallback.Line = p.Line
		fallback.ColStart, fallback.ColEnd = p.Column, p.Column+len(p.Literal.Raw)
		fallback.Text = m.LineText(p.Line)
	}
	if value == "" {
		return fallback
	}

	if offset >= len(value) {
		offset = len(value) - 1
	}
	unit, err := entry.Pattern.UnitIndex(offset)
	if err != nil {
		e.logger.Log("cannot map offset %d: %v", offset, err)
		return fallback
	}
	loc, err := m.Locate(entry, unit)
	if err != nil {
		e.logger.Log("cannot locate position %d: %v", unit, err)
		return fallback
	}
	return loc
}
