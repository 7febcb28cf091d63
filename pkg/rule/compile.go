package rule

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/praetorian-inc/regexlint/pkg/regex"
)

type compileCheck struct{}

func (compileCheck) ID() string { return "regex.compile" }

func (c compileCheck) Check(p *Pattern) []Issue {
	if _, err := regexp2.Compile(EngineDialect(p.Tree), engineOptions(p.Flags)); err != nil {
		return []Issue{{
			RuleID:  c.ID(),
			Offset:  0,
			Message: fmt.Sprintf("rejected by backtracking engine: %v", err),
		}}
	}
	return nil
}

func engineOptions(f regex.Flag) regexp2.RegexOptions {
	var o regexp2.RegexOptions
	if f&regex.FlagIgnoreCase != 0 {
		o |= regexp2.IgnoreCase
	}
	if f&regex.FlagMultiline != 0 {
		o |= regexp2.Multiline
	}
	if f&regex.FlagDotAll != 0 {
		o |= regexp2.Singleline
	}
	if f&regex.FlagVerbose != 0 {
		o |= regexp2.IgnorePatternWhitespace
	}
	return o
}

// engineFlags keeps the inline flags regexp2 understands.
func engineFlags(f regex.Flag) string {
	var b strings.Builder
	for _, x := range []struct {
		flag   regex.Flag
		letter byte
	}{
		{regex.FlagIgnoreCase, 'i'},
		{regex.FlagMultiline, 'm'},
		{regex.FlagDotAll, 's'},
		{regex.FlagVerbose, 'x'},
	} {
		if f&x.flag != 0 {
			b.WriteByte(x.letter)
		}
	}
	return b.String()
}

// EngineDialect renders a tree in the syntax regexp2 accepts: named
// groups and named backreferences lose their P, possessive repetitions
// become atomic groups, \N{...} and \U escapes are spelled out and flags
// regexp2 lacks are dropped.
func EngineDialect(n *regex.Node) string {
	switch n.Kind {
	case regex.KindLiteral:
		if strings.HasPrefix(n.Data, `\N`) || strings.HasPrefix(n.Data, `\U`) {
			return engineLiteral(n.Code)
		}
		return n.Data
	case regex.KindBackreference:
		if strings.HasPrefix(n.Data, "(?P=") {
			return `\k<` + n.Name + `>`
		}
		return n.Data
	case regex.KindDirective:
		if f := engineFlags(n.Flags); f != "" {
			return "(?" + f + ")"
		}
		return ""
	}
	if len(n.Children) == 0 {
		return n.Data
	}

	var b strings.Builder
	atomic := false
	first, last := n.Children[0], n.Children[len(n.Children)-1]
	head := n.Data[:first.Start-n.Start]
	tail := n.Data[last.End-n.Start:]

	switch {
	case n.Kind == regex.KindGroup && n.Group == regex.GroupNamed && strings.HasPrefix(head, "(?P<"):
		head = "(?<" + head[len("(?P<"):]
	case n.Kind == regex.KindGroup && n.Group == regex.GroupScopedFlags:
		head = "(?" + engineFlags(n.Flags)
		if clear := engineFlags(n.ClearFlags); clear != "" {
			head += "-" + clear
		}
		head += ":"
	case n.Kind == regex.KindRepetition && n.Possessive:
		atomic = true
		tail = strings.TrimSuffix(tail, "+")
	}

	b.WriteString(head)
	pos := first.Start
	for _, c := range n.Children {
		b.WriteString(n.Data[pos-n.Start : c.Start-n.Start])
		b.WriteString(EngineDialect(c))
		pos = c.End
	}
	b.WriteString(tail)
	if atomic {
		return "(?>" + b.String() + ")"
	}
	return b.String()
}

// engineLiteral spells code as an escape regexp2 understands. regexp2
// has no escape for code points above the BMP, so those are written as
// the character itself.
func engineLiteral(code rune) string {
	if code <= 0xffff {
		return fmt.Sprintf(`\u%04x`, code)
	}
	return regexp2.Escape(string(code))
}
