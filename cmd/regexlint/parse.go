package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/regexlint/pkg/regex"
	"github.com/praetorian-inc/regexlint/pkg/rule"
)

var (
	parseVerboseMode bool
	parseFlags       string
	parseCheck       bool
	parseConfigPath  string
)

var parseCmd = &cobra.Command{
	Use:   "parse <pattern>",
	Short: "Print the parse tree of a pattern",
	Long:  "Parse a regular expression and print one line per node: kind, span, parsed start and source text",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().BoolVar(&parseVerboseMode, "verbose-mode", false, "Parse with the verbose (x) flag set")
	parseCmd.Flags().StringVar(&parseFlags, "flags", "", "Inline flag letters to parse with, e.g. imx")
	parseCmd.Flags().BoolVar(&parseCheck, "check", false, "Also run the lint checks over the pattern")
	parseCmd.Flags().StringVar(&parseConfigPath, "config", "", "Config file for --check (default "+rule.DefaultConfigName+" if present)")
}

func runParse(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	out := cmd.OutOrStdout()

	flags, err := flagsFromLetters(parseFlags)
	if err != nil {
		return err
	}
	if parseVerboseMode {
		flags |= regex.FlagVerbose
	}

	tree, err := regex.Parse(pattern, flags)
	if err != nil {
		var pe *regex.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintln(out, pattern)
			fmt.Fprintln(out, caretLine(pattern, pe.Offset, pe.Offset+1))
		}
		return err
	}
	for _, line := range regex.FmtTree(tree) {
		fmt.Fprintln(out, line)
	}

	if !parseCheck {
		return nil
	}
	config, err := loadConfig(parseConfigPath)
	if err != nil {
		return err
	}
	engine, err := rule.NewEngine(config, cmdLogger{cmd: cmd})
	if err != nil {
		return err
	}
	for _, issue := range engine.CheckPattern(pattern, flags) {
		fmt.Fprintf(out, "%d: %s [%s]\n", issue.Offset, issue.Message, issue.RuleID)
	}
	return nil
}

func flagsFromLetters(letters string) (regex.Flag, error) {
	var flags regex.Flag
	for i := 0; i < len(letters); i++ {
		f, ok := regex.ParseFlag(letters[i])
		if !ok {
			return 0, fmt.Errorf("unknown flag %q in %q (want letters from %q)", letters[i], letters, "aiLmsux")
		}
		flags |= f
	}
	return flags, nil
}

