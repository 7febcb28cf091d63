package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "regexlint",
	Short: "Lint the regular expressions of pygments-style lexers",
	Long: `regexlint scans lexer definition modules without executing them, parses
every pattern of every tokens table and reports suspicious or broken
regular expressions at their line and column in the source.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// cmdLogger writes library progress to stderr when --verbose is set.
type cmdLogger struct {
	cmd *cobra.Command
}

func (l cmdLogger) Log(format string, args ...any) {
	if !verbose || quiet {
		return
	}
	fmt.Fprintf(l.cmd.ErrOrStderr(), format+"\n", args...)
}
