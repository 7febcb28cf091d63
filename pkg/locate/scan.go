package locate

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/praetorian-inc/regexlint/pkg/regex"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

// Entry is one element of a state's rule list.
type Entry struct {
	Index int
	Line  int // 1-based

	// Pattern is set when the element is a tuple whose first item is one
	// or more adjacent string literals. Otherwise Expr holds the source
	// text of the element or of its first item.
	Pattern *Concat
	Expr    string

	Action string // source text of the second tuple item
	Err    error  // literal decode failure; Pattern is nil when set
}

// State is one key of a tokens table.
type State struct {
	Name    string
	Line    int
	Entries []*Entry
}

// LexerDef is a class with a tokens table.
type LexerDef struct {
	Name   string
	Line   int
	Flags  regex.Flag // class flags attribute, multiline when absent
	States []*State
}

// State returns the named state or nil.
func (d *LexerDef) State(name string) *State {
	for _, s := range d.States {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Module is a scanned source file.
type Module struct {
	Source  string
	Lexers  []*LexerDef
	Unicode bool // the module imports unicode_literals from __future__

	lines *types.LineIndex
}

// Lexer returns the first class named name or nil.
func (m *Module) Lexer(name string) *LexerDef {
	for _, d := range m.Lexers {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// LineText returns the text of 1-based line n.
func (m *Module) LineText(n int) string {
	return m.lines.Line(n - 1)
}

// ParseModule tokenizes src and collects every class that assigns a
// tokens table in its body, with the states and rule tuples it defines.
func ParseModule(src string, opts ...Option) (*Module, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	m := &Module{Source: src, lines: types.NewLineIndex(src)}
	if importsUnicodeLiterals(toks) {
		m.Unicode = true
		opts = append(append([]Option(nil), opts...), WithUnicodeLiterals())
	}

	s := &scanner{src: src, toks: toks, lines: m.lines, opts: opts}
	m.Lexers = s.scan()
	return m, nil
}

// ScanModule returns the lexer definitions of src.
func ScanModule(src string, opts ...Option) ([]*LexerDef, error) {
	m, err := ParseModule(src, opts...)
	if err != nil {
		return nil, err
	}
	return m.Lexers, nil
}

var flagNames = map[string]regex.Flag{
	"A": regex.FlagASCII, "ASCII": regex.FlagASCII,
	"I": regex.FlagIgnoreCase, "IGNORECASE": regex.FlagIgnoreCase,
	"L": regex.FlagLocale, "LOCALE": regex.FlagLocale,
	"M": regex.FlagMultiline, "MULTILINE": regex.FlagMultiline,
	"S": regex.FlagDotAll, "DOTALL": regex.FlagDotAll,
	"U": regex.FlagUnicode, "UNICODE": regex.FlagUnicode,
	"X": regex.FlagVerbose, "VERBOSE": regex.FlagVerbose,
}

type classCtx struct {
	def    *LexerDef
	indent int
	body   int // indentation of the class body, -1 until seen
}

type scanner struct {
	src   string
	toks  []lexer.Token
	pos   int
	lines *types.LineIndex
	opts  []Option
}

func (s *scanner) cur() lexer.Token {
	if s.pos >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos]
}

func (s *scanner) advance() {
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
}

func (s *scanner) peek(k int) lexer.Token {
	if s.pos+k >= len(s.toks) {
		return s.toks[len(s.toks)-1]
	}
	return s.toks[s.pos+k]
}

// sig skips newlines, which are insignificant inside brackets.
func (s *scanner) sig() lexer.Token {
	for s.cur().Type == tokNewline {
		s.advance()
	}
	return s.cur()
}

func (s *scanner) point(t lexer.Token) types.SourcePoint {
	return s.lines.Point(t.Pos.Offset)
}

func (s *scanner) textFrom(start int) string {
	end := s.cur().Pos.Offset
	if t := s.cur(); t.Type == tokEOF || end > len(s.src) {
		end = len(s.src)
	}
	if start > end {
		return ""
	}
	return strings.TrimSpace(s.src[start:end])
}

func isName(t lexer.Token, v string) bool  { return t.Type == tokName && t.Value == v }
func isPunct(t lexer.Token, v string) bool { return t.Type == tokPunct && t.Value == v }
func isOp(t lexer.Token, v string) bool    { return t.Type == tokOp && t.Value == v }

func isOpener(t lexer.Token) bool {
	return t.Type == tokPunct && strings.Contains("([{", t.Value)
}

func isCloser(t lexer.Token) bool {
	return t.Type == tokPunct && strings.Contains(")]}", t.Value)
}

func (s *scanner) scan() []*LexerDef {
	var defs []*LexerDef
	var stack []*classCtx

	for s.cur().Type != tokEOF {
		t := s.cur()
		if t.Type == tokNewline {
			s.advance()
			continue
		}

		_, indent := s.lines.Position(t.Pos.Offset)
		for len(stack) > 0 && indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		var top *classCtx
		if len(stack) > 0 {
			top = stack[len(stack)-1]
			if top.body < 0 {
				top.body = indent
			}
		}
		inBody := top != nil && indent == top.body

		switch {
		case isName(t, "class") && s.peek(1).Type == tokName:
			def := &LexerDef{
				Name:  s.peek(1).Value,
				Line:  s.point(t).Line,
				Flags: regex.FlagMultiline,
			}
			defs = append(defs, def)
			stack = append(stack, &classCtx{def: def, indent: indent, body: -1})

		case inBody && isName(t, "tokens") && isOp(s.peek(1), "="):
			s.advance()
			s.advance()
			if isPunct(s.sig(), "{") {
				top.def.States = s.parseStates()
			}

		case inBody && isName(t, "flags") && isOp(s.peek(1), "="):
			s.advance()
			s.advance()
			top.def.Flags = s.parseFlags()
		}

		s.skipLine()
	}

	return defs
}

// skipLine advances past the newline ending the current logical line.
func (s *scanner) skipLine() {
	depth := 0
	for {
		t := s.cur()
		switch {
		case t.Type == tokEOF:
			return
		case t.Type == tokNewline && depth == 0:
			s.advance()
			return
		case isOpener(t):
			depth++
		case isCloser(t) && depth > 0:
			depth--
		}
		s.advance()
	}
}

func (s *scanner) parseFlags() regex.Flag {
	var flags regex.Flag
	depth := 0
	for {
		t := s.cur()
		switch {
		case t.Type == tokEOF, t.Type == tokNewline && depth == 0:
			return flags
		case isOpener(t):
			depth++
		case isCloser(t) && depth > 0:
			depth--
		case t.Type == tokName:
			flags |= flagNames[t.Value]
		}
		s.advance()
	}
}

// skipItem advances to the ',' or closing bracket that ends the current
// container element, without consuming it.
func (s *scanner) skipItem() {
	depth := 0
	for {
		t := s.sig()
		switch {
		case t.Type == tokEOF:
			return
		case depth == 0 && (isPunct(t, ",") || isCloser(t)):
			return
		case isOpener(t):
			depth++
		case isCloser(t):
			depth--
		}
		s.advance()
	}
}

// literals consumes adjacent string tokens. Every token is consumed even
// when one of them fails to decode; the first failure is returned.
func (s *scanner) literals() ([]Part, error) {
	var parts []Part
	var firstErr error
	for t := s.sig(); t.Type == tokString; t = s.sig() {
		lit, err := DecodeLiteral(t.Value, s.opts...)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		if err == nil {
			p := s.point(t)
			parts = append(parts, Part{Literal: lit, Offset: t.Pos.Offset, Line: p.Line, Column: p.Column})
		}
		s.advance()
	}
	return parts, firstErr
}

func (s *scanner) parseStates() []*State {
	var states []*State
	s.advance() // {
	for {
		t := s.sig()
		switch {
		case t.Type == tokEOF, isPunct(t, ")"), isPunct(t, "]"):
			return states
		case isPunct(t, "}"):
			s.advance()
			return states
		case isPunct(t, ","):
			s.advance()
			continue
		case t.Type != tokString:
			s.skipItem()
			continue
		}

		parts, err := s.literals()
		if err != nil || !isPunct(s.sig(), ":") {
			s.skipItem()
			continue
		}
		s.advance() // :

		st := &State{Name: NewConcat(parts).Value(), Line: s.point(t).Line}
		states = append(states, st)
		if isPunct(s.sig(), "[") {
			s.parseEntries(st)
		} else {
			s.skipItem()
		}
	}
}

func (s *scanner) parseEntries(st *State) {
	s.advance() // [
	for index := 0; ; {
		t := s.sig()
		switch {
		case t.Type == tokEOF, isPunct(t, ")"), isPunct(t, "}"):
			return
		case isPunct(t, "]"):
			s.advance()
			return
		case isPunct(t, ","):
			s.advance()
			continue
		}

		e := &Entry{Index: index, Line: s.point(t).Line}
		st.Entries = append(st.Entries, e)
		index++

		if !isPunct(t, "(") {
			s.skipItem()
			e.Expr = s.textFrom(t.Pos.Offset)
			continue
		}
		s.parseTuple(e)
	}
}

func (s *scanner) parseTuple(e *Entry) {
	s.advance() // (

	first := s.sig()
	if first.Type == tokString {
		parts, err := s.literals()
		if next := s.sig(); isPunct(next, ",") || isPunct(next, ")") {
			if err != nil {
				e.Err = err
			} else {
				e.Pattern = NewConcat(parts)
			}
		} else {
			s.skipItem()
			e.Expr = s.textFrom(first.Pos.Offset)
		}
	} else {
		s.skipItem()
		e.Expr = s.textFrom(first.Pos.Offset)
	}

	if isPunct(s.sig(), ",") {
		s.advance()
		if a := s.sig(); !isCloser(a) && a.Type != tokEOF {
			s.skipItem()
			e.Action = s.textFrom(a.Pos.Offset)
		}
	}

	for {
		t := s.sig()
		switch {
		case isPunct(t, ")"):
			s.advance()
			return
		case t.Type == tokEOF, isCloser(t):
			return
		case isPunct(t, ","):
			s.advance()
		default:
			s.skipItem()
		}
	}
}

// importsUnicodeLiterals reports whether the token stream contains
// "from __future__ import ... unicode_literals". A parenthesized name
// list may span lines.
func importsUnicodeLiterals(toks []lexer.Token) bool {
	for i := 0; i+2 < len(toks); i++ {
		if !isName(toks[i], "from") || !isName(toks[i+1], "__future__") || !isName(toks[i+2], "import") {
			continue
		}
		depth := 0
	names:
		for _, t := range toks[i+3:] {
			switch {
			case t.Type == tokEOF:
				break names
			case t.Type == tokNewline && depth == 0:
				break names
			case isPunct(t, "("):
				depth++
			case isPunct(t, ")"):
				depth--
			case isName(t, "unicode_literals"):
				return true
			}
		}
	}
	return false
}
