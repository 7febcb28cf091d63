package regex

import "fmt"

// Kind tags the syntactic variant of a Node.
type Kind int

const (
	KindSequence      Kind = iota // concatenation of atoms
	KindAlternation               // a|b|c; children are sequences
	KindGroup                     // (...), see GroupKind
	KindRepetition                // x*, x+, x?, x{m,n}
	KindCharClass                 // [...]
	KindRange                     // a-z inside a class
	KindLiteral                   // one literal character
	KindDot                       // .
	KindCategory                  // \d \D \s \S \w \W
	KindAnchor                    // ^ $ \A \Z \b \B
	KindBackreference             // \1, (?P=name)
	KindDirective                 // (?imx)
	KindComment                   // (?#...)
	KindSuspicious                // escaped whitespace, unknown escapes
)

var kindNames = [...]string{
	KindSequence:      "Sequence",
	KindAlternation:   "Alternation",
	KindGroup:         "Group",
	KindRepetition:    "Repetition",
	KindCharClass:     "CharClass",
	KindRange:         "Range",
	KindLiteral:       "Literal",
	KindDot:           "Dot",
	KindCategory:      "Category",
	KindAnchor:        "Anchor",
	KindBackreference: "Backreference",
	KindDirective:     "Directive",
	KindComment:       "Comment",
	KindSuspicious:    "Suspicious",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// GroupKind distinguishes the flavours of parenthesised groups.
type GroupKind int

const (
	GroupCapturing GroupKind = iota
	GroupNonCapturing
	GroupNamed
	GroupLookahead
	GroupNegativeLookahead
	GroupLookbehind
	GroupNegativeLookbehind
	GroupAtomic
	GroupConditional
	GroupScopedFlags
)

var groupNames = [...]string{
	GroupCapturing:          "capturing",
	GroupNonCapturing:       "non-capturing",
	GroupNamed:              "named",
	GroupLookahead:          "lookahead",
	GroupNegativeLookahead:  "negative-lookahead",
	GroupLookbehind:         "lookbehind",
	GroupNegativeLookbehind: "negative-lookbehind",
	GroupAtomic:             "atomic",
	GroupConditional:        "conditional",
	GroupScopedFlags:        "scoped-flags",
}

func (g GroupKind) String() string {
	if g >= 0 && int(g) < len(groupNames) {
		return groupNames[g]
	}
	return fmt.Sprintf("GroupKind(%d)", int(g))
}

// ZeroWidth reports whether the group is an assertion that never consumes input.
func (g GroupKind) ZeroWidth() bool {
	switch g {
	case GroupLookahead, GroupNegativeLookahead, GroupLookbehind, GroupNegativeLookbehind:
		return true
	}
	return false
}

// AnchorKind identifies a zero-width position assertion.
type AnchorKind int

const (
	AnchorBeginning       AnchorKind = iota // ^
	AnchorEnd                               // $
	AnchorStringStart                       // \A
	AnchorStringEnd                         // \Z
	AnchorWordBoundary                      // \b
	AnchorNonWordBoundary                   // \B
)

var anchorNames = [...]string{"beginning", "end", "string-start", "string-end", "word-boundary", "non-word-boundary"}

func (a AnchorKind) String() string {
	if a >= 0 && int(a) < len(anchorNames) {
		return anchorNames[a]
	}
	return fmt.Sprintf("AnchorKind(%d)", int(a))
}

// Unbounded is the Max of a repetition with no upper limit.
const Unbounded = -1

// Node is one syntactic unit of a parsed pattern. Nodes are built once by
// Parse and never mutated afterwards.
type Node struct {
	Kind Kind

	// Start and End are half-open byte offsets into the raw pattern.
	Start int
	End   int

	// ParsedStart is the offset of the node in the logical pattern, i.e.
	// with verbose-mode whitespace and comments removed.
	ParsedStart int

	// Data is the raw pattern text in [Start, End).
	Data string

	Children []*Node

	// Code is the decoded character of a Literal or Suspicious node.
	Code rune

	// Repetition bounds. Max is Unbounded when there is no upper limit.
	Min        int
	Max        int
	Greedy     bool
	Possessive bool

	// Group flavour; Name holds the group name of named groups, the
	// reference of backreferences and the condition of conditional groups.
	Group GroupKind
	Name  string

	// Negated is set for [^...] classes. MatchingCharacterCodes is the
	// class's final code set: the member expansion in declaration order for
	// plain classes, the ascending complement over 0-255 for negated ones.
	// Expansion keeps the raw member expansion, duplicates included.
	Negated                bool
	MatchingCharacterCodes []int
	Expansion              []int

	// Range endpoints.
	Lo rune
	Hi rune

	Category Category
	Anchor   AnchorKind

	// Flags set (and, for scoped groups, cleared) by directives.
	Flags      Flag
	ClearFlags Flag
}

// Chars returns the members of a character class.
func (n *Node) Chars() []*Node {
	if n.Kind != KindCharClass {
		return nil
	}
	return n.Children
}

// Reconstruct rebuilds the raw pattern text covered by n from the tree.
func (n *Node) Reconstruct() string {
	return Reconstruct(n)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%d:%d %q)", n.Kind, n.Start, n.End, n.Data)
}
