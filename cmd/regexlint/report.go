package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/praetorian-inc/regexlint/pkg/sarif"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

// styles holds color formatters for human output
type styles struct {
	position *color.Color
	error    *color.Color
	warning  *color.Color
	note     *color.Color
	ruleID   *color.Color
	marker   *color.Color
	heading  *color.Color
}

// newStyles creates color formatters; enabled=false yields plain text
func newStyles(enabled bool) *styles {
	s := &styles{
		position: color.New(color.Bold),
		error:    color.New(color.Bold, color.FgHiRed),
		warning:  color.New(color.Bold, color.FgYellow),
		note:     color.New(color.FgHiBlue),
		ruleID:   color.New(color.FgHiBlack),
		marker:   color.New(color.Bold, color.FgHiGreen),
		heading:  color.New(color.Bold),
	}

	if !enabled {
		for _, c := range []*color.Color{s.position, s.error, s.warning, s.note, s.ruleID, s.marker, s.heading} {
			c.DisableColor()
		}
	}
	return s
}

func (s *styles) level(l types.Level) *color.Color {
	switch l {
	case types.LevelError:
		return s.error
	case types.LevelNote:
		return s.note
	}
	return s.warning
}

// colorEnabled resolves --color against the terminal and NO_COLOR.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd())) && os.Getenv("NO_COLOR") == ""
}

func outputFindingsJSON(cmd *cobra.Command, findings []*types.Finding) error {
	if findings == nil {
		findings = []*types.Finding{}
	}
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(findings)
}

func outputFindingsSARIF(cmd *cobra.Command, rules []*types.Rule, findings []*types.Finding) error {
	data, err := sarif.Build(rules, findings).ToJSON()
	if err != nil {
		return fmt.Errorf("generating SARIF: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func outputFindingsHuman(cmd *cobra.Command, findings []*types.Finding, colorMode string) error {
	out := cmd.OutOrStdout()
	s := newStyles(colorEnabled(colorMode))

	counts := make(map[types.Level]int)
	files := make(map[string]bool)
	for _, f := range findings {
		counts[f.Level]++
		files[f.File] = true
		writeFinding(out, s, f)
	}

	if quiet {
		return nil
	}
	if len(findings) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No findings.")
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s (%d errors, %d warnings, %d notes in %d files)\n",
		s.heading.Sprintf("%d findings", len(findings)),
		counts[types.LevelError], counts[types.LevelWarning], counts[types.LevelNote], len(files))
	return nil
}

// writeFinding prints one finding compiler style: position, level, rule,
// message, then the source line with the located range underlined.
func writeFinding(out io.Writer, s *styles, f *types.Finding) {
	loc := f.Location
	pos := fmt.Sprintf("%s:%d:%d:", f.File, loc.Line, loc.ColStart+1)
	fmt.Fprintf(out, "%s %s %s %s\n",
		s.position.Sprint(pos),
		s.level(f.Level).Sprint(string(f.Level)+":"),
		f.Message,
		s.ruleID.Sprintf("[%s]", f.RuleID))
	if loc.Text == "" {
		return
	}
	fmt.Fprintf(out, "    %s\n", loc.Text)
	fmt.Fprintf(out, "    %s\n", s.marker.Sprint(caretLine(loc.Text, loc.ColStart, loc.ColEnd)))
}

// caretLine underlines text[start:end]. Tabs before the range are kept so
// the marker lines up in a terminal.
func caretLine(text string, start, end int) string {
	if start > len(text) {
		start = len(text)
	}
	var b strings.Builder
	for _, r := range text[:start] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	width := 1
	if end > start {
		width = len([]rune(text[start:min(end, len(text))]))
	}
	b.WriteString(strings.Repeat("^", max(width, 1)))
	return b.String()
}
