package locate

import (
	"github.com/praetorian-inc/regexlint/pkg/escape"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

// Locate maps decoded position charIndex of e's pattern to its place in
// the module: the 1-based line, byte columns on that line and the line's
// text. Positions inside a multi-line literal land on the line they are
// written on, with columns counted from that line's start.
func (m *Module) Locate(e *Entry, charIndex int) (types.LineLocation, error) {
	if e.Err != nil {
		return types.LineLocation{}, e.Err
	}
	if e.Pattern == nil {
		return types.LineLocation{}, &escape.UnsupportedError{Construct: "pattern expression", Value: e.Expr}
	}

	part, local, err := e.Pattern.Locate(charIndex)
	if err != nil {
		return types.LineLocation{}, err
	}
	p := e.Pattern.Parts[part]

	span, err := p.Literal.Position(local)
	if err != nil {
		return types.LineLocation{}, err
	}

	loc := types.LineLocation{LineSpan: span}
	loc.Line = p.Line + span.Line
	if span.Line == 0 {
		loc.ColStart += p.Column
		loc.ColEnd += p.Column
	}
	loc.Text = m.lines.Line(loc.Line - 1)
	return loc, nil
}

// Entry finds the tuple at index in state of class className.
func (m *Module) Entry(className, state string, index int) (*Entry, error) {
	def := m.Lexer(className)
	if def == nil {
		return nil, &LocatorError{What: "class", Name: className}
	}
	st := def.State(state)
	if st == nil {
		return nil, &LocatorError{What: "state", Name: state}
	}
	if index < 0 || index >= len(st.Entries) {
		return nil, &LocatorError{What: "tuple", Name: className + "." + state, Requested: index, Available: len(st.Entries)}
	}
	return st.Entries[index], nil
}

// FindOffendingLine locates decoded position charIndex of the pattern of
// tuple tupleIndex in state of class className within module source src.
func FindOffendingLine(src, className, state string, tupleIndex, charIndex int, opts ...Option) (types.LineLocation, error) {
	m, err := ParseModule(src, opts...)
	if err != nil {
		return types.LineLocation{}, err
	}
	e, err := m.Entry(className, state, tupleIndex)
	if err != nil {
		return types.LineLocation{}, err
	}
	return m.Locate(e, charIndex)
}
