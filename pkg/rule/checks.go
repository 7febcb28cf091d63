package rule

import (
	"fmt"

	"github.com/praetorian-inc/regexlint/pkg/escape"
	"github.com/praetorian-inc/regexlint/pkg/regex"
)

func charRepr(code int) string {
	return escape.ConsistentRepr(string(rune(code)))
}

// memberSpans lists the code spans a single class member covers.
// Ranges stay a single span however wide they are.
func memberSpans(m *regex.Node) []escape.Range {
	switch m.Kind {
	case regex.KindLiteral, regex.KindSuspicious:
		return []escape.Range{{Lo: int(m.Code), Hi: int(m.Code)}}
	case regex.KindRange:
		if m.Lo > m.Hi {
			return nil
		}
		return []escape.Range{{Lo: int(m.Lo), Hi: int(m.Hi)}}
	case regex.KindCategory:
		return escape.BuildRanges(m.MatchingCharacterCodes)
	}
	return nil
}

// firstOverlap returns the lowest code of s also covered by seen, or -1.
func firstOverlap(seen []escape.Range, s escape.Range) int {
	dup := -1
	for _, r := range seen {
		if r.Hi < s.Lo || s.Hi < r.Lo {
			continue
		}
		if lo := max(r.Lo, s.Lo); dup < 0 || lo < dup {
			dup = lo
		}
	}
	return dup
}

type duplicateCheck struct{}

func (duplicateCheck) ID() string { return "regex.charclass.duplicate" }

func (c duplicateCheck) Check(p *Pattern) []Issue {
	var issues []Issue
	for cls := range regex.FindAllByType(p.Tree, regex.KindCharClass) {
		var seen []escape.Range
		for _, m := range cls.Chars() {
			spans := memberSpans(m)
			dup := -1
			for _, s := range spans {
				if d := firstOverlap(seen, s); d >= 0 && (dup < 0 || d < dup) {
					dup = d
				}
			}
			seen = append(seen, spans...)
			if dup >= 0 {
				issues = append(issues, Issue{
					RuleID:  c.ID(),
					Offset:  m.Start,
					Message: fmt.Sprintf("%s repeats %s already in the class", m.Data, charRepr(dup)),
				})
			}
		}
	}
	return issues
}

type reversedRangeCheck struct{}

func (reversedRangeCheck) ID() string { return "regex.charclass.reversed-range" }

func (c reversedRangeCheck) Check(p *Pattern) []Issue {
	var issues []Issue
	for r := range regex.FindAllByType(p.Tree, regex.KindRange) {
		if r.Lo > r.Hi {
			issues = append(issues, Issue{
				RuleID:  c.ID(),
				Offset:  r.Start,
				Message: fmt.Sprintf("range %s is reversed and matches nothing", r.Data),
			})
		}
	}
	return issues
}

// minRun is the shortest run of single characters worth a range.
const minRun = 3

type simplifiableCheck struct{}

func (simplifiableCheck) ID() string { return "regex.charclass.simplifiable" }

func (c simplifiableCheck) Check(p *Pattern) []Issue {
	var issues []Issue
	for cls := range regex.FindAllByType(p.Tree, regex.KindCharClass) {
		members := cls.Chars()
		for i := 0; i < len(members); {
			j := i + 1
			for j < len(members) && isSingle(members[j-1]) && isSingle(members[j]) &&
				members[j].Code == members[j-1].Code+1 {
				j++
			}
			if j-i >= minRun {
				rng := escape.Range{Lo: int(members[i].Code), Hi: int(members[j-1].Code)}
				issues = append(issues, Issue{
					RuleID:  c.ID(),
					Offset:  members[i].Start,
					Message: fmt.Sprintf("%d consecutive characters can be written as %s", j-i, rng),
				})
			}
			i = j
		}
	}
	return issues
}

func isSingle(n *regex.Node) bool {
	return n.Kind == regex.KindLiteral
}

type repetitionBoundsCheck struct{}

func (repetitionBoundsCheck) ID() string { return "regex.repetition.bounds" }

func (c repetitionBoundsCheck) Check(p *Pattern) []Issue {
	var issues []Issue
	for r := range regex.FindAllByType(p.Tree, regex.KindRepetition) {
		if r.Max != regex.Unbounded && r.Min > r.Max {
			issues = append(issues, Issue{
				RuleID:  c.ID(),
				Offset:  r.Children[0].End,
				Message: fmt.Sprintf("repetition {%d,%d} has its minimum above its maximum", r.Min, r.Max),
			})
		}
	}
	return issues
}

type suspiciousEscapeCheck struct{}

func (suspiciousEscapeCheck) ID() string { return "regex.escape.suspicious" }

func (c suspiciousEscapeCheck) Check(p *Pattern) []Issue {
	var issues []Issue
	for n := range regex.FindAllByType(p.Tree, regex.KindSuspicious) {
		msg := fmt.Sprintf("unknown escape %s", n.Data)
		if n.Code == ' ' || n.Code == '\t' || n.Code == '\n' || n.Code == '\r' || n.Code == '\f' || n.Code == '\v' {
			msg = fmt.Sprintf("escaped whitespace %s", escape.ConsistentRepr(n.Data))
		}
		issues = append(issues, Issue{RuleID: c.ID(), Offset: n.Start, Message: msg})
	}
	return issues
}

type directivePositionCheck struct{}

func (directivePositionCheck) ID() string { return "regex.directive.position" }

func (c directivePositionCheck) Check(p *Pattern) []Issue {
	var issues []Issue
	leading := true
	for n := range regex.FindAll(p.Tree) {
		switch n.Kind {
		case regex.KindSequence, regex.KindAlternation, regex.KindComment:
			// Structure and comments do not end the leading directives.
		case regex.KindDirective:
			if !leading {
				issues = append(issues, Issue{
					RuleID:  c.ID(),
					Offset:  n.Start,
					Message: fmt.Sprintf("directive %s should be at the start of the pattern", n.Data),
				})
			}
		default:
			leading = false
		}
	}
	return issues
}

type emptyAlternativeCheck struct{}

func (emptyAlternativeCheck) ID() string { return "regex.alternation.empty" }

func (c emptyAlternativeCheck) Check(p *Pattern) []Issue {
	var issues []Issue
	for alt := range regex.FindAllByType(p.Tree, regex.KindAlternation) {
		for _, branch := range alt.Children {
			if len(branch.Children) == 0 {
				issues = append(issues, Issue{
					RuleID:  c.ID(),
					Offset:  branch.Start,
					Message: "empty alternative; the group also matches the empty string",
				})
			}
		}
	}
	return issues
}

type zeroWidthCheck struct{}

func (zeroWidthCheck) ID() string { return "regex.zero-width" }

func (c zeroWidthCheck) Check(p *Pattern) []Issue {
	hasNodes := false
	for n := range regex.FindAll(p.Tree) {
		switch {
		case n == p.Tree:
		case regex.Width(n.Kind), n.Kind == regex.KindBackreference:
			return nil
		case n.Kind == regex.KindGroup && n.Group.ZeroWidth():
			// Lookarounds without width are a deliberate idiom.
			return nil
		case n.Kind == regex.KindAnchor:
			hasNodes = true
		}
	}
	if !hasNodes {
		return nil
	}
	return []Issue{{
		RuleID:  c.ID(),
		Offset:  0,
		Message: "pattern only matches the empty string",
	}}
}
