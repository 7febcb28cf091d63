package types

import "fmt"

// OffsetSpan is byte range [Start, End) - half-open interval.
type OffsetSpan struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s OffsetSpan) Len() int {
	return s.End - s.Start
}

// LineSpan is a byte-column range [ColStart, ColEnd) on one line.
//
// Line is a 0-based line offset relative to whatever text the span was
// computed over; the locator returns absolute 1-based lines only through
// LineLocation.
type LineSpan struct {
	Line     int
	ColStart int
	ColEnd   int
}

func (s LineSpan) String() string {
	return fmt.Sprintf("%d:%d-%d", s.Line, s.ColStart, s.ColEnd)
}

// LineLocation is a located range within a module source together with
// the full text of the line it sits on. Line is 1-based.
type LineLocation struct {
	LineSpan
	Text string
}

// Marked returns the located substring of Text.
func (l LineLocation) Marked() string {
	if l.ColStart < 0 || l.ColEnd > len(l.Text) || l.ColStart > l.ColEnd {
		return ""
	}
	return l.Text[l.ColStart:l.ColEnd]
}

// SourcePoint is a 1-based line and 0-based byte column.
type SourcePoint struct {
	Line   int
	Column int
}
