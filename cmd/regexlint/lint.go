package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/regexlint"
	"github.com/praetorian-inc/regexlint/pkg/enum"
	"github.com/praetorian-inc/regexlint/pkg/rule"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

// errFindings makes the process exit non-zero without printing an error.
var errFindings = errors.New("findings at or above the failure level reported")

var (
	lintConfigPath      string
	lintRulesInclude    string
	lintRulesExclude    string
	lintFormat          string
	lintColor           string
	lintIncludeHidden   bool
	lintMaxFileSize     int64
	lintUnicodeLiterals bool
	lintNarrowBuild     bool
	lintConcurrency     int
	lintFailOn          string
)

var lintCmd = &cobra.Command{
	Use:   "lint <path>...",
	Short: "Lint lexer definition files",
	Long:  "Lint the patterns of every lexer tokens table in the given files and directories",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func init() {
	lintCmd.Flags().StringVar(&lintConfigPath, "config", "", "Config file (default "+rule.DefaultConfigName+" if present)")
	lintCmd.Flags().StringVar(&lintRulesInclude, "rules-include", "", "Include rules matching regex pattern (comma-separated)")
	lintCmd.Flags().StringVar(&lintRulesExclude, "rules-exclude", "", "Exclude rules matching regex pattern (comma-separated)")
	lintCmd.Flags().StringVar(&lintFormat, "format", "human", "Output format: human, json, sarif")
	lintCmd.Flags().StringVar(&lintColor, "color", "auto", "Color output: auto, always, never")
	lintCmd.Flags().BoolVar(&lintIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	lintCmd.Flags().Int64Var(&lintMaxFileSize, "max-file-size", 10*1024*1024, "Maximum file size to lint (bytes)")
	lintCmd.Flags().BoolVar(&lintUnicodeLiterals, "unicode-literals", false, "Treat unprefixed string literals as unicode")
	lintCmd.Flags().BoolVar(&lintNarrowBuild, "narrow-build", false, "Count characters above U+FFFF as two surrogates")
	lintCmd.Flags().StringVar(&lintFailOn, "fail-on", "error", "Exit non-zero on findings at or above this level: error, warning, note")
	lintCmd.Flags().IntVar(&lintConcurrency, "concurrency", 0, "Files linted in parallel (0 = one per CPU)")
}

func runLint(cmd *cobra.Command, args []string) error {
	switch lintFormat {
	case "human", "json", "sarif":
	default:
		return fmt.Errorf("unknown output format: %s", lintFormat)
	}
	failOn, err := types.ParseLevel(lintFailOn)
	if err != nil {
		return fmt.Errorf("--fail-on: %w", err)
	}

	config, err := loadConfig(lintConfigPath)
	if err != nil {
		return err
	}
	config.Include = append(config.Include, rule.ParsePatterns(lintRulesInclude)...)
	config.Exclude = append(config.Exclude, rule.ParsePatterns(lintRulesExclude)...)
	config.UnicodeLiterals = config.UnicodeLiterals || lintUnicodeLiterals
	config.NarrowBuild = config.NarrowBuild || lintNarrowBuild

	linter, err := regexlint.New(
		regexlint.WithConfig(config),
		regexlint.WithLogger(cmdLogger{cmd: cmd}),
		regexlint.WithConcurrency(lintConcurrency),
		regexlint.WithEnumConfig(enum.Config{
			IncludeHidden: lintIncludeHidden,
			MaxFileSize:   lintMaxFileSize,
		}),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	findings, err := linter.LintPaths(ctx, args)
	if err != nil {
		return err
	}

	switch lintFormat {
	case "json":
		err = outputFindingsJSON(cmd, findings)
	case "sarif":
		err = outputFindingsSARIF(cmd, linter.Rules(), findings)
	default:
		err = outputFindingsHuman(cmd, findings, lintColor)
	}
	if err != nil {
		return err
	}

	for _, f := range findings {
		if f.Level.Rank() >= failOn.Rank() {
			return errFindings
		}
	}
	return nil
}

// loadConfig reads path, or the default config when path is empty.
func loadConfig(path string) (*rule.Config, error) {
	if path == "" {
		path = rule.DefaultConfigName
	}
	config, err := rule.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return config, nil
}
