package locate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func concatOf(t *testing.T, opts []Option, raws ...string) *Concat {
	t.Helper()
	var parts []Part
	for _, raw := range raws {
		lit, err := DecodeLiteral(raw, opts...)
		require.NoError(t, err)
		parts = append(parts, Part{Literal: lit})
	}
	return NewConcat(parts)
}

func TestConcat_Locate(t *testing.T) {
	c := concatOf(t, nil, `r'baz'`, `u'\x00hi'`)
	assert.Equal(t, "baz\x00hi", c.Value())
	assert.Equal(t, 6, c.Len())

	part, local, err := c.Locate(2)
	require.NoError(t, err)
	assert.Equal(t, 0, part)
	assert.Equal(t, 2, local)

	part, local, err = c.Locate(3)
	require.NoError(t, err)
	assert.Equal(t, 1, part)
	assert.Equal(t, 0, local)

	_, _, err = c.Locate(6)
	var le *LocatorError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 6, le.Requested)
	assert.Equal(t, 6, le.Available)
}

func TestConcat_SkipsEmptyParts(t *testing.T) {
	c := concatOf(t, nil, `'ab'`, `''`, `'c'`)
	part, local, err := c.Locate(2)
	require.NoError(t, err)
	assert.Equal(t, 2, part)
	assert.Equal(t, 0, local)
}

func TestConcat_UnitIndex(t *testing.T) {
	c := concatOf(t, nil, `u'a\u00e9b'`)
	require.Equal(t, "aéb", c.Value())

	for offset, want := range map[int]int{0: 0, 1: 1, 2: 1, 3: 2} {
		got, err := c.UnitIndex(offset)
		require.NoError(t, err)
		assert.Equal(t, want, got, "offset %d", offset)
	}

	_, err := c.UnitIndex(4)
	assert.Error(t, err)
}

func TestConcat_UnitIndexNarrow(t *testing.T) {
	c := concatOf(t, []Option{WithNarrowBuild()}, `u'\U00010000'`, `'b'`)
	require.Equal(t, "\U00010000b", c.Value())
	assert.Equal(t, 3, c.Len())

	got, err := c.UnitIndex(0)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = c.UnitIndex(4)
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}
