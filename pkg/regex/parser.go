package regex

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/praetorian-inc/regexlint/pkg/escape"
)

// maxRepeat bounds {m,n} counts the way the host engine does.
const maxRepeat = 1<<32 - 1

// verboseWhitespace is the set of characters elided in verbose mode.
const verboseWhitespace = " \t\n\r\f\v"

// parser scans a pattern left to right. pos is the raw byte cursor,
// logical advances only over significant input.
type parser struct {
	src     string
	pos     int
	logical int
	verbose bool
}

// Parse builds the tree for pattern. Verbose mode is enabled by
// FlagVerbose or by an inline directive containing x, from the directive
// onwards. Parse fails with a *ParseError on structurally invalid input
// and never returns a partial tree.
func Parse(pattern string, flags Flag) (*Node, error) {
	p := &parser{
		src:     pattern,
		verbose: flags&FlagVerbose != 0,
	}

	root, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.fail(ErrUnbalancedParenthesis, p.pos, "")
	}
	return root, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level pattern tables.
func MustParse(pattern string, flags Flag) *Node {
	n, err := Parse(pattern, flags)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) (byte, bool) {
	if p.pos+off >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos+off], true
}

func (p *parser) advance(n int) {
	p.pos += n
	p.logical += n
}

func (p *parser) fail(kind ErrorKind, offset int, detail string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Detail: detail}
}

// leaf finishes a terminal node that started at start/lstart and spans
// width bytes.
func (p *parser) leaf(kind Kind, start, lstart, width int) *Node {
	p.advance(width)
	return &Node{
		Kind:        kind,
		Start:       start,
		End:         p.pos,
		ParsedStart: lstart,
		Data:        p.src[start:p.pos],
	}
}

func (p *parser) finish(n *Node) *Node {
	n.End = p.pos
	n.Data = p.src[n.Start:n.End]
	return n
}

// skipInsignificant steps over verbose-mode whitespace and # comments
// without advancing the logical cursor.
func (p *parser) skipInsignificant() {
	if !p.verbose {
		return
	}
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case strings.IndexByte(verboseWhitespace, c) >= 0:
			p.pos++
		case c == '#':
			if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}
		default:
			return
		}
	}
}

func (p *parser) parseAlternation() (*Node, error) {
	start, lstart := p.pos, p.logical

	first, err := p.parseSequence()
	if err != nil {
		return nil, err
	}
	if p.peek() != '|' {
		return first, nil
	}

	alt := &Node{Kind: KindAlternation, Start: start, ParsedStart: lstart}
	alt.Children = append(alt.Children, first)
	for p.peek() == '|' {
		p.advance(1)
		seq, err := p.parseSequence()
		if err != nil {
			return nil, err
		}
		alt.Children = append(alt.Children, seq)
	}
	return p.finish(alt), nil
}

func (p *parser) parseSequence() (*Node, error) {
	seq := &Node{Kind: KindSequence, Start: p.pos, ParsedStart: p.logical}

	for {
		p.skipInsignificant()
		if p.eof() {
			break
		}
		c := p.src[p.pos]
		if c == '|' || c == ')' {
			break
		}

		if c == '*' || c == '+' || c == '?' || c == '{' {
			ok, err := p.parseRepetition(seq)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
		}

		atom, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		seq.Children = append(seq.Children, atom)
	}

	return p.finish(seq), nil
}

// parseRepetition wraps the last atom of seq in a Repetition. It returns
// false without consuming input when a '{' does not start a valid bound,
// in which case the brace is a literal.
func (p *parser) parseRepetition(seq *Node) (bool, error) {
	here := p.pos
	min, max, width := 0, Unbounded, 1

	switch p.src[p.pos] {
	case '*':
	case '+':
		min = 1
	case '?':
		max = 1
	case '{':
		var ok bool
		var err error
		min, max, width, ok, err = p.scanBounds()
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	if len(seq.Children) == 0 {
		return false, p.fail(ErrNothingToRepeat, here, "")
	}
	last := len(seq.Children) - 1
	item := seq.Children[last]
	switch item.Kind {
	case KindRepetition:
		return false, p.fail(ErrMultipleRepeat, here, "")
	case KindAnchor, KindDirective, KindComment:
		return false, p.fail(ErrNothingToRepeat, here, "")
	}

	p.advance(width)
	rep := &Node{
		Kind:        KindRepetition,
		Start:       item.Start,
		ParsedStart: item.ParsedStart,
		Min:         min,
		Max:         max,
		Greedy:      true,
		Children:    []*Node{item},
	}
	switch p.peek() {
	case '?':
		rep.Greedy = false
		p.advance(1)
	case '+':
		rep.Possessive = true
		p.advance(1)
	}

	seq.Children[last] = p.finish(rep)
	return true, nil
}

// scanBounds reads {m,n} at the cursor without consuming it. A missing m
// is 0 and a missing n after the comma is Unbounded. m > n is reported
// as written.
func (p *parser) scanBounds() (min, max, width int, ok bool, err error) {
	i := p.pos + 1
	loDigits := scanDigits(p.src, i)
	i += len(loDigits)

	hiDigits := loDigits
	comma := i < len(p.src) && p.src[i] == ','
	if comma {
		i++
		hiDigits = scanDigits(p.src, i)
		i += len(hiDigits)
	}
	if i >= len(p.src) || p.src[i] != '}' {
		return 0, 0, 0, false, nil
	}
	if loDigits == "" && !comma {
		// "{}" is two literals.
		return 0, 0, 0, false, nil
	}

	if min, err = parseCount(loDigits, p.pos); err != nil {
		return 0, 0, 0, false, err
	}
	max = Unbounded
	if hiDigits != "" {
		if max, err = parseCount(hiDigits, p.pos); err != nil {
			return 0, 0, 0, false, err
		}
	}
	return min, max, i + 1 - p.pos, true, nil
}

func scanDigits(s string, i int) string {
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	return s[i:j]
}

func parseCount(digits string, offset int) (int, error) {
	if digits == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(digits, 10, 64)
	if err != nil || v >= maxRepeat {
		return 0, &ParseError{Kind: ErrBadRepetition, Offset: offset, Detail: "(the repetition number is too large)"}
	}
	return int(v), nil
}

func (p *parser) parseAtom() (*Node, error) {
	start, lstart := p.pos, p.logical

	switch c := p.src[p.pos]; c {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseClass()
	case '\\':
		return p.parseEscape(false)
	case '.':
		return p.leaf(KindDot, start, lstart, 1), nil
	case '^', '$':
		n := p.leaf(KindAnchor, start, lstart, 1)
		if c == '$' {
			n.Anchor = AnchorEnd
		}
		return n, nil
	}

	r, width := utf8.DecodeRuneInString(p.src[p.pos:])
	n := p.leaf(KindLiteral, start, lstart, width)
	n.Code = r
	return n, nil
}

func (p *parser) parseGroup() (*Node, error) {
	start, lstart := p.pos, p.logical
	p.advance(1)

	g := &Node{Kind: KindGroup, Start: start, ParsedStart: lstart, Group: GroupCapturing}
	restoreVerbose := p.verbose

	if p.peek() == '?' {
		p.advance(1)
		if p.eof() {
			return nil, p.fail(ErrUnknownExtension, start, "(unexpected end of pattern)")
		}

		switch c := p.src[p.pos]; c {
		case ':':
			p.advance(1)
			g.Group = GroupNonCapturing
		case '=':
			p.advance(1)
			g.Group = GroupLookahead
		case '!':
			p.advance(1)
			g.Group = GroupNegativeLookahead
		case '>':
			p.advance(1)
			g.Group = GroupAtomic
		case '#':
			return p.parseComment(start, lstart)
		case 'P':
			p.advance(1)
			switch p.peek() {
			case '<':
				p.advance(1)
				name, err := p.scanName('>', false)
				if err != nil {
					return nil, err
				}
				g.Group = GroupNamed
				g.Name = name
			case '=':
				p.advance(1)
				name, err := p.scanName(')', false)
				if err != nil {
					return nil, err
				}
				ref := p.finish(&Node{Kind: KindBackreference, Start: start, ParsedStart: lstart, Name: name})
				return ref, nil
			default:
				return nil, p.fail(ErrUnknownExtension, start, "?P"+string(p.peek()))
			}
		case '<':
			p.advance(1)
			switch p.peek() {
			case '=':
				p.advance(1)
				g.Group = GroupLookbehind
			case '!':
				p.advance(1)
				g.Group = GroupNegativeLookbehind
			default:
				name, err := p.scanName('>', false)
				if err != nil {
					return nil, err
				}
				g.Group = GroupNamed
				g.Name = name
			}
		case '(':
			p.advance(1)
			cond, err := p.scanName(')', true)
			if err != nil {
				return nil, err
			}
			g.Group = GroupConditional
			g.Name = cond
		default:
			if _, ok := ParseFlag(c); !ok && c != '-' {
				return nil, p.fail(ErrUnknownExtension, start, "?"+string(c))
			}
			add, del, scoped, err := p.scanFlags(start)
			if err != nil {
				return nil, err
			}
			if !scoped {
				d := p.finish(&Node{Kind: KindDirective, Start: start, ParsedStart: lstart, Flags: add})
				if add&FlagVerbose != 0 {
					p.verbose = true
				}
				return d, nil
			}
			g.Group = GroupScopedFlags
			g.Flags, g.ClearFlags = add, del
			if add&FlagVerbose != 0 {
				p.verbose = true
			}
			if del&FlagVerbose != 0 {
				p.verbose = false
			}
		}
	}

	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if p.peek() != ')' {
		return nil, p.fail(ErrMissingParenthesis, start, "")
	}
	p.advance(1)
	if g.Group == GroupScopedFlags {
		p.verbose = restoreVerbose
	}

	g.Children = []*Node{body}
	return p.finish(g), nil
}

// parseComment consumes (?#...) up to the first unescaped ')'.
func (p *parser) parseComment(start, lstart int) (*Node, error) {
	for i := p.pos; i < len(p.src); i++ {
		switch p.src[i] {
		case '\\':
			i++
		case ')':
			p.advance(i + 1 - p.pos)
			return p.finish(&Node{Kind: KindComment, Start: start, ParsedStart: lstart}), nil
		}
	}
	return nil, p.fail(ErrMissingParenthesis, start, "(unterminated comment)")
}

// scanName reads a group name up to term and consumes the terminator.
// Conditional groups may also reference a group by number.
func (p *parser) scanName(term byte, allowNumber bool) (string, error) {
	at := p.pos
	i := strings.IndexByte(p.src[p.pos:], term)
	if i < 0 {
		return "", p.fail(ErrBadGroupName, at, "(missing "+string(term)+")")
	}
	name := p.src[p.pos : p.pos+i]
	if !isIdentifier(name) && !(allowNumber && name != "" && scanDigits(name, 0) == name) {
		return "", p.fail(ErrBadGroupName, at, strconv.Quote(name))
	}
	p.advance(i + 1)
	return name, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= 0x80:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// scanFlags reads "aiLmsux-imsx" letters followed by ')' (a directive) or
// ':' (a scoped group).
func (p *parser) scanFlags(start int) (add, del Flag, scoped bool, err error) {
	target := &add
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == ')':
			p.advance(1)
			return add, del, false, nil
		case c == ':':
			p.advance(1)
			return add, del, true, nil
		case c == '-' && target == &add:
			target = &del
			p.advance(1)
		default:
			f, ok := ParseFlag(c)
			if !ok {
				return 0, 0, false, p.fail(ErrUnknownFlag, p.pos, strconv.QuoteRune(rune(c)))
			}
			*target |= f
			p.advance(1)
		}
	}
	return 0, 0, false, p.fail(ErrMissingParenthesis, start, "")
}

func (p *parser) parseClass() (*Node, error) {
	start, lstart := p.pos, p.logical
	p.advance(1)

	cls := &Node{Kind: KindCharClass, Start: start, ParsedStart: lstart}
	if p.peek() == '^' {
		cls.Negated = true
		p.advance(1)
	}

	for {
		if p.eof() {
			return nil, p.fail(ErrUnterminatedClass, start, "")
		}
		if p.src[p.pos] == ']' && len(cls.Children) > 0 {
			p.advance(1)
			break
		}

		item, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}

		next, ok := p.peekAt(1)
		if p.peek() != '-' || !ok || next == ']' {
			cls.Children = append(cls.Children, item)
			continue
		}

		p.advance(1)
		hi, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		if !rangeEndpoint(item) || !rangeEndpoint(hi) {
			return nil, p.fail(ErrBadCharacterRange, item.Start, strconv.Quote(p.src[item.Start:p.pos]))
		}
		rng := &Node{
			Kind:        KindRange,
			Start:       item.Start,
			ParsedStart: item.ParsedStart,
			Lo:          item.Code,
			Hi:          hi.Code,
			Children:    []*Node{item, hi},
		}
		cls.Children = append(cls.Children, p.finish(rng))
	}

	expansion, err := expandMembers(cls.Children)
	if err != nil {
		return nil, &ParseError{Kind: ErrBadCharacterRange, Offset: start, Err: err}
	}
	cls.Expansion = expansion
	cls.MatchingCharacterCodes = expansion
	if cls.Negated {
		cls.MatchingCharacterCodes = complement(expansion)
	}
	return p.finish(cls), nil
}

func rangeEndpoint(n *Node) bool {
	return n.Kind == KindLiteral || n.Kind == KindSuspicious
}

func (p *parser) parseClassMember() (*Node, error) {
	if p.src[p.pos] == '\\' {
		return p.parseEscape(true)
	}
	start, lstart := p.pos, p.logical
	r, width := utf8.DecodeRuneInString(p.src[p.pos:])
	n := p.leaf(KindLiteral, start, lstart, width)
	n.Code = r
	return n, nil
}

// parseEscape handles a backslash sequence. Inside a class \b is a
// backspace and anchors do not exist.
func (p *parser) parseEscape(inClass bool) (*Node, error) {
	start, lstart := p.pos, p.logical
	c, ok := p.peekAt(1)
	if !ok {
		return nil, p.fail(ErrTrailingBackslash, start, "")
	}

	switch {
	case strings.IndexByte(verboseWhitespace, c) >= 0:
		return p.decoded(KindSuspicious, start, lstart, 2)

	case !inClass && strings.IndexByte("AZbB", c) >= 0:
		n := p.leaf(KindAnchor, start, lstart, 2)
		n.Anchor = map[byte]AnchorKind{
			'A': AnchorStringStart,
			'Z': AnchorStringEnd,
			'b': AnchorWordBoundary,
			'B': AnchorNonWordBoundary,
		}[c]
		return n, nil

	case strings.IndexByte("dDsSwW", c) >= 0:
		n := p.leaf(KindCategory, start, lstart, 2)
		n.Category = categoryByLetter[c]
		n.MatchingCharacterCodes = categoryTable[n.Category]
		return n, nil

	case c == 'x':
		return p.hexEscape(start, lstart, 2)
	case c == 'u':
		return p.hexEscape(start, lstart, 4)
	case c == 'U':
		return p.hexEscape(start, lstart, 8)

	case c == 'N':
		if next, _ := p.peekAt(2); next != '{' {
			return nil, p.fail(ErrBadEscape, start, `\N`)
		}
		end := strings.IndexByte(p.src[p.pos:], '}')
		if end < 0 {
			return nil, p.fail(ErrBadEscape, start, `\N`)
		}
		return p.decoded(KindLiteral, start, lstart, end+1)

	case c == '0':
		return p.decoded(KindLiteral, start, lstart, 2+escape.OctalPrefixLen(p.src[p.pos+2:], 2))

	case c >= '1' && c <= '9':
		rest := p.src[p.pos+1:]
		if n := escape.OctalPrefixLen(rest, 3); n == 3 || (inClass && n > 0) {
			v, _ := strconv.ParseUint(rest[:n], 8, 32)
			if v > 0o377 {
				return nil, p.fail(ErrBadEscape, start, fmt.Sprintf("(octal escape value %s outside of range 0-0o377)", p.src[start:p.pos+1+n]))
			}
			return p.decoded(KindLiteral, start, lstart, 1+n)
		}
		if inClass {
			return p.decoded(KindSuspicious, start, lstart, 2)
		}
		digits := scanDigits(rest, 0)
		if len(digits) > 2 {
			digits = digits[:2]
		}
		n := p.leaf(KindBackreference, start, lstart, 1+len(digits))
		n.Name = digits
		return n, nil

	case strings.IndexByte("abfnrtv", c) >= 0:
		return p.decoded(KindLiteral, start, lstart, 2)

	case c < utf8.RuneSelf && (isASCIILetter(c) || (c >= '0' && c <= '9')):
		return p.decoded(KindSuspicious, start, lstart, 2)
	}

	_, width := utf8.DecodeRuneInString(p.src[p.pos+1:])
	return p.decoded(KindLiteral, start, lstart, 1+width)
}

func (p *parser) hexEscape(start, lstart, digits int) (*Node, error) {
	end := p.pos + 2 + digits
	if end > len(p.src) {
		return nil, p.fail(ErrBadEscape, start, strconv.Quote(p.src[start:]))
	}
	for i := p.pos + 2; i < end; i++ {
		if !escape.IsHexDigit(p.src[i]) {
			return nil, p.fail(ErrBadEscape, start, strconv.Quote(p.src[start:end]))
		}
	}
	return p.decoded(KindLiteral, start, lstart, 2+digits)
}

// decoded emits a terminal whose Code comes from decoding its raw text.
func (p *parser) decoded(kind Kind, start, lstart, width int) (*Node, error) {
	code, err := escape.EvalChar(p.src[start : start+width])
	if err != nil {
		pe := &ParseError{Kind: ErrBadEscape, Offset: start, Detail: strconv.Quote(p.src[start : start+width]), Err: err}
		var unsupported *escape.UnsupportedError
		if errors.As(err, &unsupported) {
			pe.Detail = ""
		}
		return nil, pe
	}
	n := p.leaf(kind, start, lstart, width)
	n.Code = code
	return n, nil
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
