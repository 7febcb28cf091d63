package escape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRanges_Disjoint(t *testing.T) {
	got := BuildRanges([]int{65, 67, 69})
	assert.Equal(t, []Range{{65, 65}, {67, 67}, {69, 69}}, got)
	for _, r := range got {
		assert.True(t, r.Single())
	}
}

func TestBuildRanges_Joint(t *testing.T) {
	assert.Equal(t, []Range{{65, 66}, {69, 69}}, BuildRanges([]int{65, 66, 69}))
}

func TestBuildRanges_Edges(t *testing.T) {
	assert.Nil(t, BuildRanges(nil))
	assert.Equal(t, []Range{{0, 255}}, BuildRanges(seq(0, 255)))
	assert.Equal(t, []Range{{1, 3}}, BuildRanges([]int{1, 2, 2, 3}))
}

func TestRange_String(t *testing.T) {
	assert.Equal(t, "a", Range{'a', 'a'}.String())
	assert.Equal(t, "a-f", Range{'a', 'f'}.String())
	assert.Equal(t, `\--\]`, Range{'-', ']'}.String())
	assert.Equal(t, `\x00-\x1f`, Range{0, 0x1f}.String())
}

func seq(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, i)
	}
	return out
}
