package locate

import (
	"sort"
	"strings"
)

// Part is one literal of an implicitly concatenated pattern expression
// together with where its text starts in the module source.
type Part struct {
	Literal *Literal
	Offset  int // byte offset of the literal in the module
	Line    int // 1-based
	Column  int // 0-based byte column
}

// Concat is the decoded value of adjacent literals such as r'baz' u'\x00hi'.
// Decoded positions are numbered across all parts in source order.
type Concat struct {
	Parts []Part

	value string
	// unitStart[k] is the byte offset in value of decoded position k. Both
	// halves of a surrogate pair share the offset of the combined rune.
	unitStart []int
	// unitBase[p] is the index of the first decoded position of part p.
	unitBase []int
	total    int
}

// NewConcat builds the concatenation of parts.
func NewConcat(parts []Part) *Concat {
	c := &Concat{Parts: parts}

	var b strings.Builder
	for _, p := range parts {
		c.unitBase = append(c.unitBase, c.total)

		var owners []int
		runes := combineUnits(p.Literal.Units, &owners)
		for j, r := range runes {
			first := owners[j]
			last := len(p.Literal.Units)
			if j+1 < len(owners) {
				last = owners[j+1]
			}
			for k := first; k < last; k++ {
				c.unitStart = append(c.unitStart, b.Len())
			}
			b.WriteRune(r)
		}
		c.total += p.Literal.Len()
	}
	c.value = b.String()
	return c
}

// Value returns the decoded pattern.
func (c *Concat) Value() string {
	return c.value
}

// Len returns the number of decoded positions across all parts.
func (c *Concat) Len() int {
	return c.total
}

// UnitIndex maps a byte offset into Value to a decoded position. An
// offset inside a multi-byte rune maps to the rune's first position.
func (c *Concat) UnitIndex(byteOffset int) (int, error) {
	if byteOffset < 0 || byteOffset >= len(c.value) {
		return 0, &LocatorError{What: "character", Requested: byteOffset, Available: len(c.value)}
	}
	k := sort.Search(len(c.unitStart), func(i int) bool { return c.unitStart[i] > byteOffset }) - 1
	for k > 0 && c.unitStart[k-1] == c.unitStart[k] {
		k--
	}
	return k, nil
}

// Locate finds the part holding decoded position index and the position
// within that part.
func (c *Concat) Locate(index int) (part, local int, err error) {
	if index < 0 || index >= c.total {
		return 0, 0, &LocatorError{What: "character", Requested: index, Available: c.total}
	}
	// The last part starting at or before index; empty parts never win
	// because a later part shares their base.
	part = sort.Search(len(c.unitBase), func(i int) bool { return c.unitBase[i] > index }) - 1
	return part, index - c.unitBase[part], nil
}
