// Package regexlint finds defects in the regular expressions of
// pygments-style lexer definitions.
//
// A lexer definition is a class whose tokens attribute maps state names
// to lists of rule tuples, each starting with a pattern literal. The
// linter scans such modules without executing them, parses every
// pattern with a structural regex parser, runs the enabled checks and
// reports each problem at its line and columns in the source.
//
// # Basic Usage
//
//	linter, err := regexlint.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	findings, err := linter.LintPaths(ctx, []string{"pygments/lexers"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range findings {
//	    fmt.Printf("%s:%d:%d: %s\n", f.File, f.Location.Line, f.Location.ColStart+1, f.Message)
//	}
//
// # Configuration
//
// Rules are narrowed with a config, usually loaded from .regexlint.yml:
//
//	cfg, err := rule.LoadConfig(rule.DefaultConfigName)
//	linter, err := regexlint.New(regexlint.WithConfig(cfg))
package regexlint

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/praetorian-inc/regexlint/pkg/enum"
	"github.com/praetorian-inc/regexlint/pkg/locate"
	"github.com/praetorian-inc/regexlint/pkg/prefilter"
	"github.com/praetorian-inc/regexlint/pkg/regex"
	"github.com/praetorian-inc/regexlint/pkg/rule"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

// Re-export commonly used types for convenience.
type (
	// Finding is one rule violation located in a source file.
	Finding = types.Finding

	// Rule is lint rule metadata.
	Rule = types.Rule

	// Level is a rule severity.
	Level = types.Level

	// LineLocation is a located range on one source line.
	LineLocation = types.LineLocation
)

// Re-export severity levels.
const (
	LevelError   = types.LevelError
	LevelWarning = types.LevelWarning
	LevelNote    = types.LevelNote
)

// Linter lints lexer definition files. It is safe for concurrent use.
type Linter struct {
	engine    *rule.Engine
	prefilter *prefilter.Prefilter
	config    *linterConfig
}

type linterConfig struct {
	rules        *rule.Config
	logger       rule.Logger
	concurrency  int
	enum         enum.Config
	skipFiltered bool
}

// Option configures a Linter.
type Option func(*linterConfig)

// WithConfig narrows the rules and sets decoding options.
func WithConfig(c *rule.Config) Option {
	return func(lc *linterConfig) {
		lc.rules = c
	}
}

// WithLogger receives progress messages. The default discards them.
func WithLogger(l rule.Logger) Option {
	return func(lc *linterConfig) {
		lc.logger = l
	}
}

// WithConcurrency sets the number of files read and linted in parallel.
// Default is one per CPU.
func WithConcurrency(n int) Option {
	return func(lc *linterConfig) {
		lc.concurrency = n
	}
}

// WithEnumConfig sets how directories are walked. Its Root is ignored.
func WithEnumConfig(c enum.Config) Option {
	return func(lc *linterConfig) {
		lc.enum = c
	}
}

// WithoutPrefilter lints every discovered file, even ones that cannot
// contain a lexer table.
func WithoutPrefilter() Option {
	return func(lc *linterConfig) {
		lc.skipFiltered = false
	}
}

// New creates a Linter over the built-in rules.
func New(opts ...Option) (*Linter, error) {
	config := &linterConfig{
		logger:       rule.NoopLogger{},
		skipFiltered: true,
	}
	for _, opt := range opts {
		opt(config)
	}

	engine, err := rule.NewEngine(config.rules, config.logger)
	if err != nil {
		return nil, fmt.Errorf("creating engine: %w", err)
	}

	return &Linter{
		engine:    engine,
		prefilter: prefilter.Default(),
		config:    config,
	}, nil
}

// Rules returns the enabled rules with their effective levels.
func (l *Linter) Rules() []*Rule {
	rules := l.engine.Rules()
	out := make([]*Rule, len(rules))
	copy(out, rules)
	return out
}

// CheckPattern runs the enabled checks over a single pattern.
func (l *Linter) CheckPattern(pattern string, flags regex.Flag) []rule.Issue {
	return l.engine.CheckPattern(pattern, flags)
}

// LintString lints module source src reported as filename.
func (l *Linter) LintString(filename, src string) ([]*Finding, error) {
	return l.engine.Lint(filename, src)
}

// LintFile reads and lints a file.
func (l *Linter) LintFile(path string) ([]*Finding, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return l.LintString(path, string(content))
}

// LintPaths lints files and directory trees. Findings are ordered by
// file, then position. Files that cannot be tokenized are logged and
// skipped.
func (l *Linter) LintPaths(ctx context.Context, paths []string) ([]*Finding, error) {
	ec := l.config.enum
	ec.Concurrency = l.config.concurrency
	e, err := enum.ForPaths(paths, ec)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var findings []*Finding
	err = e.Enumerate(ctx, func(path string, content []byte) error {
		if l.config.skipFiltered && !l.prefilter.Matches(content) {
			l.config.logger.Log("%s: no lexer table, skipped", path)
			return nil
		}
		fs, err := l.LintString(path, string(content))
		if err != nil {
			l.config.logger.Log("%v", err)
			return nil
		}
		mu.Lock()
		findings = append(findings, fs...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Per-file order is already positional.
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].File < findings[j].File
	})
	return findings, nil
}

// FindOffendingLine locates decoded character charIndex of the pattern of
// tuple tupleIndex in state of class className within src.
func (l *Linter) FindOffendingLine(src, className, state string, tupleIndex, charIndex int) (LineLocation, error) {
	var opts []locate.Option
	if c := l.config.rules; c != nil {
		if c.UnicodeLiterals {
			opts = append(opts, locate.WithUnicodeLiterals())
		}
		if c.NarrowBuild {
			opts = append(opts, locate.WithNarrowBuild())
		}
	}
	return locate.FindOffendingLine(src, className, state, tupleIndex, charIndex, opts...)
}

// LoadBuiltinRules returns all built-in rules at their default levels.
func LoadBuiltinRules() ([]*Rule, error) {
	return rule.NewLoader().LoadBuiltinRules()
}
