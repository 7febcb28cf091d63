package types

import (
	"sort"
	"strings"
)

// LineIndex answers offset-to-line questions over a fixed text.
type LineIndex struct {
	text   string
	starts []int // byte offset of the first character of each line
}

// NewLineIndex indexes the line starts of text.
func NewLineIndex(text string) *LineIndex {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{text: text, starts: starts}
}

// LineCount returns the number of lines; a trailing newline opens an
// empty final line.
func (x *LineIndex) LineCount() int {
	return len(x.starts)
}

// Position returns the 0-based line and byte column of offset. Offsets
// past the end clamp to the end of the text.
func (x *LineIndex) Position(offset int) (line, column int) {
	if offset > len(x.text) {
		offset = len(x.text)
	}
	if offset < 0 {
		offset = 0
	}
	line = sort.Search(len(x.starts), func(i int) bool { return x.starts[i] > offset }) - 1
	return line, offset - x.starts[line]
}

// Point converts offset to a SourcePoint with a 1-based line.
func (x *LineIndex) Point(offset int) SourcePoint {
	line, col := x.Position(offset)
	return SourcePoint{Line: line + 1, Column: col}
}

// Line returns the text of 0-based line i without its line terminator.
func (x *LineIndex) Line(i int) string {
	if i < 0 || i >= len(x.starts) {
		return ""
	}
	end := len(x.text)
	if i+1 < len(x.starts) {
		end = x.starts[i+1] - 1
	}
	return strings.TrimSuffix(x.text[x.starts[i]:end], "\r")
}

// ComputeLineColumn computes a 0-based line and byte column from a byte
// offset in content.
func ComputeLineColumn(content string, byteOffset int) (line, column int) {
	for i := 0; i < byteOffset && i < len(content); i++ {
		if content[i] == '\n' {
			line++
			column = 0
		} else {
			column++
		}
	}
	return line, column
}
