package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/regexlint/pkg/locate"
)

var (
	locateUnicodeLiterals bool
	locateNarrowBuild     bool
)

var locateCmd = &cobra.Command{
	Use:   "locate <file> <class> <state> <index> <char>",
	Short: "Show where a pattern character is written in a lexer module",
	Long: `Map character <char> of the decoded pattern of rule tuple <index> in state
<state> of lexer class <class> back to its line and columns in <file>.`,
	Args: cobra.ExactArgs(5),
	RunE: runLocate,
}

func init() {
	locateCmd.Flags().BoolVar(&locateUnicodeLiterals, "unicode-literals", false, "Treat unprefixed string literals as unicode")
	locateCmd.Flags().BoolVar(&locateNarrowBuild, "narrow-build", false, "Count characters above U+FFFF as two surrogates")
}

func runLocate(cmd *cobra.Command, args []string) error {
	path, class, state := args[0], args[1], args[2]
	index, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid tuple index %q: %w", args[3], err)
	}
	char, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("invalid character index %q: %w", args[4], err)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}

	var opts []locate.Option
	if locateUnicodeLiterals {
		opts = append(opts, locate.WithUnicodeLiterals())
	}
	if locateNarrowBuild {
		opts = append(opts, locate.WithNarrowBuild())
	}

	loc, err := locate.FindOffendingLine(string(src), class, state, index, char, opts...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:%d:%d-%d\n", path, loc.Line, loc.ColStart+1, loc.ColEnd+1)
	fmt.Fprintln(out, loc.Text)
	fmt.Fprintln(out, caretLine(loc.Text, loc.ColStart, loc.ColEnd))
	return nil
}
