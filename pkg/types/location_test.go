package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetSpan(t *testing.T) {
	span := OffsetSpan{Start: 10, End: 20}
	assert.Equal(t, 10, span.Len())
}

func TestLineSpan_String(t *testing.T) {
	assert.Equal(t, "6:15-16", LineSpan{Line: 6, ColStart: 15, ColEnd: 16}.String())
}

func TestLineLocation_Marked(t *testing.T) {
	loc := LineLocation{
		LineSpan: LineSpan{Line: 11, ColStart: 15, ColEnd: 19},
		Text:     `             u'\x00hi', Other),`,
	}
	assert.Equal(t, `\x00`, loc.Marked())

	loc.ColEnd = 99
	assert.Empty(t, loc.Marked())
}
