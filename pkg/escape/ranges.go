package escape

// Range is an inclusive run of code points. Lo == Hi for a single code.
type Range struct {
	Lo int
	Hi int
}

// Single reports whether the range covers exactly one code point.
func (r Range) Single() bool {
	return r.Lo == r.Hi
}

// String renders the range as a character-class fragment, e.g. "a" or "a-f".
func (r Range) String() string {
	lo := classRepr(r.Lo)
	if r.Single() {
		return lo
	}
	return lo + "-" + classRepr(r.Hi)
}

func classRepr(code int) string {
	return ConsistentRepr(string(rune(code)), WithoutQuotes(), WithEscape("[]-^"))
}

// BuildRanges compacts a sorted sequence of code points into singles and
// runs. Any run of two or more consecutive codes becomes one Range;
// repeated codes are folded into the run they belong to.
func BuildRanges(codes []int) []Range {
	if len(codes) == 0 {
		return nil
	}

	var out []Range
	cur := Range{Lo: codes[0], Hi: codes[0]}
	for _, c := range codes[1:] {
		switch {
		case c == cur.Hi:
		case c == cur.Hi+1:
			cur.Hi = c
		default:
			out = append(out, cur)
			cur = Range{Lo: c, Hi: c}
		}
	}
	return append(out, cur)
}
