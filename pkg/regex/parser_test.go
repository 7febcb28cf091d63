package regex

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// descendants returns FindAll(n) without the root.
func descendants(n *Node) []*Node {
	return slices.Collect(FindAll(n))[1:]
}

func TestParse_EndSetCorrectly(t *testing.T) {
	r := MustParse(`\b(foo|bar)\b`, 0)
	assert.Equal(t, 0, r.Start)
	assert.Equal(t, 13, r.End)

	capture := r.Children[1]
	require.Equal(t, KindGroup, capture.Kind)
	alt := capture.Children[0]
	require.Equal(t, KindAlternation, alt.Kind)

	foo, bar := alt.Children[0], alt.Children[1]
	assert.Equal(t, 3, foo.Start)
	assert.Equal(t, 6, foo.End)
	assert.Equal(t, 7, bar.Start)
	assert.Equal(t, 10, bar.End)
}

func TestParse_Brackets(t *testing.T) {
	for _, p := range []string{`\(`, `\)`, `\[`, `\]`, `[^(\[\])]*`} {
		t.Run(p, func(t *testing.T) {
			r, err := Parse(p, 0)
			require.NoError(t, err)
			assert.Equal(t, p, Reconstruct(r))
		})
	}
}

func TestParse_EscapeHeavy(t *testing.T) {
	p := `\\([\\abfnrtv"\'?]|x[a-fA-F0-9]{2,4}|[0-7]{1,3})`
	r, err := Parse(p, 0)
	require.NoError(t, err)
	assert.Equal(t, p, r.Reconstruct())
}

func TestParse_Comment(t *testing.T) {
	r := MustParse(`(?#foo)`, 0)
	comments := slices.Collect(FindAllByType(r, KindComment))
	require.Len(t, comments, 1)
	assert.Equal(t, `(?#foo)`, comments[0].Data)
}

func TestParse_CommentWithEscapedParen(t *testing.T) {
	r := MustParse(`(?#a\)b)c`, 0)
	nodes := descendants(r)
	require.Len(t, nodes, 2)
	assert.Equal(t, `(?#a\)b)`, nodes[0].Data)
	assert.Equal(t, KindLiteral, nodes[1].Kind)
}

func TestParse_Width(t *testing.T) {
	r := MustParse(`\s(?#foo)\b`, 0)
	var widths []bool
	for _, n := range descendants(r) {
		widths = append(widths, Width(n.Kind))
	}
	assert.Equal(t, []bool{true, false, false}, widths)
}

func TestParse_Repetition(t *testing.T) {
	tests := []struct {
		pattern string
		min     int
		max     int
		greedy  bool
	}{
		{`x+`, 1, Unbounded, true},
		{`x*`, 0, Unbounded, true},
		{`x?`, 0, 1, true},
		{`x{5,5}?`, 5, 5, false},
		{`x{2,5}`, 2, 5, true},
		{`x{,5}?`, 0, 5, false},
		{`x{1,}`, 1, Unbounded, true},
		{`x{3}`, 3, 3, true},
		{`x{,}`, 0, Unbounded, true},
		{`x{5,2}`, 5, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			nodes := descendants(MustParse(tt.pattern, 0))
			require.Len(t, nodes, 2)
			rep := nodes[0]
			require.Equal(t, KindRepetition, rep.Kind)
			assert.Equal(t, tt.min, rep.Min)
			assert.Equal(t, tt.max, rep.Max)
			assert.Equal(t, tt.greedy, rep.Greedy)
			assert.Equal(t, KindLiteral, nodes[1].Kind)
			assert.Equal(t, 'x', nodes[1].Code)
		})
	}
}

func TestParse_Possessive(t *testing.T) {
	rep := MustParse(`a++`, 0).Children[0]
	assert.True(t, rep.Possessive)
	assert.True(t, rep.Greedy)
	assert.Equal(t, `a++`, rep.Data)
}

func TestParse_BraceLiterals(t *testing.T) {
	for _, p := range []string{`{`, `a{`, `a{}`, `a{x}`, `a{1,2`} {
		t.Run(p, func(t *testing.T) {
			r := MustParse(p, 0)
			for n := range FindAll(r) {
				assert.NotEqual(t, KindRepetition, n.Kind)
			}
			assert.Equal(t, p, r.Reconstruct())
		})
	}
}

func TestParse_Directives(t *testing.T) {
	r := MustParse(`(?mi)`, 0)
	found := slices.Collect(FindAllByType(r, KindDirective))
	require.Len(t, found, 1)
	assert.Equal(t, `(?mi)`, found[0].Data)
	assert.Equal(t, 0, found[0].Start)
	assert.Equal(t, 0, found[0].ParsedStart)
	assert.Equal(t, FlagMultiline|FlagIgnoreCase, found[0].Flags)

	r = MustParse(`(?m)(?i)`, 0)
	found = slices.Collect(FindAllByType(r, KindDirective))
	require.Len(t, found, 2)
	assert.Equal(t, `(?m)`, found[0].Data)
	assert.Equal(t, `(?i)`, found[1].Data)
}

func TestParse_Groups(t *testing.T) {
	tests := []struct {
		pattern string
		kind    GroupKind
		name    string
	}{
		{`(a)`, GroupCapturing, ""},
		{`(?:a)`, GroupNonCapturing, ""},
		{`(?P<word>a)`, GroupNamed, "word"},
		{`(?<word>a)`, GroupNamed, "word"},
		{`(?=a)`, GroupLookahead, ""},
		{`(?!a)`, GroupNegativeLookahead, ""},
		{`(?<=a)`, GroupLookbehind, ""},
		{`(?<!a)`, GroupNegativeLookbehind, ""},
		{`(?>a)`, GroupAtomic, ""},
		{`(?(1)a|b)`, GroupConditional, "1"},
		{`(?i:a)`, GroupScopedFlags, ""},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			r := MustParse(tt.pattern, 0)
			g := r.Children[0]
			require.Equal(t, KindGroup, g.Kind)
			assert.Equal(t, tt.kind, g.Group)
			assert.Equal(t, tt.name, g.Name)
			assert.Equal(t, tt.pattern, r.Reconstruct())
		})
	}
}

func TestParse_Backreferences(t *testing.T) {
	r := MustParse(`(?P<first_char>.)(?P=first_char)*`, 0)
	refs := slices.Collect(FindAllByType(r, KindBackreference))
	require.Len(t, refs, 1)
	assert.Equal(t, "first_char", refs[0].Name)

	r = MustParse(`(a)\1`, 0)
	refs = slices.Collect(FindAllByType(r, KindBackreference))
	require.Len(t, refs, 1)
	assert.Equal(t, "1", refs[0].Name)
}

func TestParse_OctalEscape(t *testing.T) {
	nodes := descendants(MustParse(`\101\0`, 0))
	require.Len(t, nodes, 2)
	assert.Equal(t, 'A', nodes[0].Code)
	assert.Equal(t, rune(0), nodes[1].Code)
}

func TestParse_Verbose(t *testing.T) {
	r := MustParse("(?x)  a   b # comment\n"+
		"                        c\n"+
		"                        d", 0)
	nodes := descendants(r)
	require.Len(t, nodes, 5)
	assert.Equal(t, 4, nodes[1].ParsedStart)
	assert.Equal(t, 6, nodes[1].Start)
	last := nodes[len(nodes)-1]
	assert.Equal(t, "d", last.Data)
	assert.Equal(t, 7, last.ParsedStart)
	assert.Equal(t, 72, last.Start)
}

func TestParse_VerboseFlagArgument(t *testing.T) {
	nodes := descendants(MustParse("a b", FlagVerbose))
	require.Len(t, nodes, 2)
	assert.Equal(t, 1, nodes[1].ParsedStart)
	assert.Equal(t, 2, nodes[1].Start)
}

func TestParse_VerboseIsNotRetroactive(t *testing.T) {
	nodes := descendants(MustParse("a (?x) b", 0))
	kinds := make([]Kind, 0, len(nodes))
	for _, n := range nodes {
		kinds = append(kinds, n.Kind)
	}
	assert.Equal(t, []Kind{KindLiteral, KindLiteral, KindDirective, KindLiteral}, kinds)
}

func TestParse_ScopedVerboseEndsWithGroup(t *testing.T) {
	nodes := slices.Collect(FindAllByType(MustParse("(?x: a ) b", 0), KindLiteral))
	require.Len(t, nodes, 3)
	assert.Equal(t, "a", nodes[0].Data)
	assert.Equal(t, " ", nodes[1].Data)
	assert.Equal(t, "b", nodes[2].Data)
}

func TestParse_EscapedSpace(t *testing.T) {
	nodes := descendants(MustParse(`\ a`, 0))
	require.Len(t, nodes, 2)
	assert.Equal(t, `\ `, nodes[0].Data)
	assert.Equal(t, KindSuspicious, nodes[0].Kind)
	assert.Equal(t, ' ', nodes[0].Code)
}

func TestParse_UnknownLetterEscapeIsSuspicious(t *testing.T) {
	nodes := descendants(MustParse(`\q`, 0))
	require.Len(t, nodes, 1)
	assert.Equal(t, KindSuspicious, nodes[0].Kind)
	assert.Equal(t, 'q', nodes[0].Code)
}

func TestParse_CharClassMembers(t *testing.T) {
	nodes := descendants(MustParse(`[ a]`, 0))
	require.Len(t, nodes, 3)
	assert.Equal(t, " ", nodes[1].Data)
	assert.Equal(t, "a", nodes[2].Data)

	cls := slices.Collect(FindAllByType(MustParse(`[a-z]`, 0), KindCharClass))
	require.Len(t, cls, 1)
	assert.Len(t, cls[0].Chars(), 1)
	rng := cls[0].Chars()[0]
	assert.Equal(t, KindRange, rng.Kind)
	assert.Equal(t, 'a', rng.Lo)
	assert.Equal(t, 'z', rng.Hi)
}

func TestParse_ComplexCharClass(t *testing.T) {
	p := `[]\[:_@\".{}()|;,]`
	r := MustParse(p, 0)
	cls := r.Children[0]
	require.Equal(t, KindCharClass, cls.Kind)
	assert.Equal(t, []int{']', '[', ':', '_', '@', '"', '.', '{', '}', '(', ')', '|', ';', ','}, cls.MatchingCharacterCodes)
	assert.Equal(t, p, r.Reconstruct())
}

func TestParse_ReversedRangeExpandsToNothing(t *testing.T) {
	cls := MustParse(`[z-a]`, 0).Children[0]
	assert.Empty(t, cls.MatchingCharacterCodes)
	assert.Equal(t, 'z', cls.Children[0].Lo)
}

var samplePatterns = []string{
	`a|b|`,
	`((a(?:b))|)`,
	`[a-bb]`,
	`x*`,
	`x{1,}`,
	`x{,5}?`,
	`(?P<first_char>.)(?P=first_char)*`,
	"(?x) a  # trailing\n b",
	`\N{LATIN SMALL LETTER A}é\x41`,
	`^(?i)[^\W\d_]+$`,
}

func TestReconstruct_RoundTrip(t *testing.T) {
	for _, p := range samplePatterns {
		t.Run(p, func(t *testing.T) {
			r, err := Parse(p, 0)
			require.NoError(t, err)
			assert.Equal(t, p, Reconstruct(r))
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		pattern string
		kind    ErrorKind
	}{
		{`(a`, ErrMissingParenthesis},
		{`a)`, ErrUnbalancedParenthesis},
		{`[a`, ErrUnterminatedClass},
		{`[]`, ErrUnterminatedClass},
		{`a\`, ErrTrailingBackslash},
		{`*a`, ErrNothingToRepeat},
		{`^*`, ErrNothingToRepeat},
		{`(?i)+`, ErrNothingToRepeat},
		{`a**`, ErrMultipleRepeat},
		{`a{99999999999}`, ErrBadRepetition},
		{`(?Q)`, ErrUnknownExtension},
		{`(?iq)`, ErrUnknownFlag},
		{`(?<a`, ErrBadGroupName},
		{`(?P<1a>x)`, ErrBadGroupName},
		{`[z-\d]`, ErrBadCharacterRange},
		{`\x4`, ErrBadEscape},
		{`\xZZ`, ErrBadEscape},
		{`\u12`, ErrBadEscape},
		{`(?#unterminated`, ErrMissingParenthesis},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			r, err := Parse(tt.pattern, 0)
			require.Error(t, err)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tt.kind)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.kind, pe.Kind)
		})
	}
}

func TestFindAll_EarlyStopAndRestart(t *testing.T) {
	r := MustParse(`ab(c)`, 0)
	seq := FindAll(r)

	var first []*Node
	for n := range seq {
		first = append(first, n)
		if len(first) == 2 {
			break
		}
	}
	assert.Len(t, first, 2)

	all := slices.Collect(seq)
	assert.Len(t, all, 6)
	assert.Same(t, first[1], all[1])
}

func TestFmtTree(t *testing.T) {
	lines := FmtTree(MustParse(`x{5,5}?`, 0))
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "Repetition")
	assert.Contains(t, lines[1], "{5,5} greedy=false")
	assert.Contains(t, lines[2], `  Literal`)
}
