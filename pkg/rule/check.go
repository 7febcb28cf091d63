package rule

import (
	"github.com/praetorian-inc/regexlint/pkg/regex"
)

// Pattern is a parsed pattern handed to checks.
type Pattern struct {
	Tree   *regex.Node
	Source string
	Flags  regex.Flag
}

// Issue is one problem a check found. Offset is a byte offset into
// Pattern.Source.
type Issue struct {
	RuleID  string
	Offset  int
	Message string
}

// Check inspects a parsed pattern. Implementations must be safe for
// concurrent use.
type Check interface {
	ID() string
	Check(p *Pattern) []Issue
}

// Rule IDs reported outside the Check interface.
const (
	ParseRuleID = "regex.parse"
)

// BuiltinChecks returns the built-in checks in reporting order.
func BuiltinChecks() []Check {
	return []Check{
		duplicateCheck{},
		reversedRangeCheck{},
		simplifiableCheck{},
		repetitionBoundsCheck{},
		suspiciousEscapeCheck{},
		directivePositionCheck{},
		emptyAlternativeCheck{},
		zeroWidthCheck{},
		compileCheck{},
	}
}

// checkFunc adapts a function to Check.
type checkFunc struct {
	id string
	fn func(p *Pattern) []Issue
}

func (c checkFunc) ID() string               { return c.id }
func (c checkFunc) Check(p *Pattern) []Issue { return c.fn(p) }

// NewCheck wraps fn as a Check with the given rule ID.
func NewCheck(id string, fn func(p *Pattern) []Issue) Check {
	return checkFunc{id: id, fn: fn}
}
