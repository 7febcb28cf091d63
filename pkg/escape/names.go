package escape

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

var (
	nameOnce  sync.Once
	nameIndex map[string]rune
)

const cjkPrefix = "CJK UNIFIED IDEOGRAPH-"

// LookupName resolves a Unicode character name, as used by \N{...}
// escapes, to its code point. Matching is case-insensitive.
func LookupName(name string) (rune, bool) {
	key := strings.ToUpper(strings.TrimSpace(name))
	if key == "" {
		return 0, false
	}

	// Ideographs are named algorithmically rather than listed.
	if hex, ok := strings.CutPrefix(key, cjkPrefix); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, false
		}
		return rune(v), true
	}

	nameOnce.Do(buildNameIndex)
	r, ok := nameIndex[key]
	return r, ok
}

// buildNameIndex inverts runenames.Name over every scalar value. It runs
// once per process, on the first named escape.
func buildNameIndex() {
	nameIndex = make(map[string]rune, 1<<15)
	for r := rune(0); r <= utf8.MaxRune; r++ {
		if r >= 0xD800 && r <= 0xDFFF {
			continue
		}
		n := runenames.Name(r)
		if n == "" || n[0] == '<' {
			continue
		}
		if _, dup := nameIndex[n]; !dup {
			nameIndex[n] = r
		}
	}
}
