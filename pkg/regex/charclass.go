package regex

import (
	"strings"

	"github.com/praetorian-inc/regexlint/pkg/escape"
)

// Category is one of the backslash character categories.
type Category int

const (
	CategoryDigit Category = iota + 1
	CategoryNotDigit
	CategorySpace
	CategoryNotSpace
	CategoryWord
	CategoryNotWord
)

var categoryNames = map[Category]string{
	CategoryDigit:    `\d`,
	CategoryNotDigit: `\D`,
	CategorySpace:    `\s`,
	CategoryNotSpace: `\S`,
	CategoryWord:     `\w`,
	CategoryNotWord:  `\W`,
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "Category(?)"
}

// Negated reports whether c is an upper-case complement category.
func (c Category) Negated() bool {
	return c == CategoryNotDigit || c == CategoryNotSpace || c == CategoryNotWord
}

// ASCII membership of the positive categories.
const (
	Word       = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789_"
	Digits     = "0123456789"
	Whitespace = "\t\n\v\f\r "
)

// byteRange is the universe complements are taken over.
const byteRange = 256

var categoryByLetter = map[byte]Category{
	'd': CategoryDigit,
	'D': CategoryNotDigit,
	's': CategorySpace,
	'S': CategoryNotSpace,
	'w': CategoryWord,
	'W': CategoryNotWord,
}

var categoryTable = map[Category][]int{
	CategoryDigit:    codesOf(Digits),
	CategoryNotDigit: complement(codesOf(Digits)),
	CategorySpace:    codesOf(Whitespace),
	CategoryNotSpace: complement(codesOf(Whitespace)),
	CategoryWord:     codesOf(Word),
	CategoryNotWord:  complement(codesOf(Word)),
}

// CategoryCodes returns the code list of c. Positive categories list
// their members in table order; negated ones ascend over 0-255.
func CategoryCodes(c Category) ([]int, error) {
	codes, ok := categoryTable[c]
	if !ok {
		return nil, &escape.UnsupportedError{Construct: "category", Value: c.String()}
	}
	return append([]int(nil), codes...), nil
}

func codesOf(s string) []int {
	out := make([]int, 0, len(s))
	for i := 0; i < len(s); i++ {
		out = append(out, int(s[i]))
	}
	return out
}

// complement returns the ascending codes in 0-255 not present in codes.
func complement(codes []int) []int {
	var seen [byteRange]bool
	for _, c := range codes {
		if c >= 0 && c < byteRange {
			seen[c] = true
		}
	}
	out := make([]int, 0, byteRange)
	for c := 0; c < byteRange; c++ {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// expandMembers lists the codes contributed by each class member in
// declaration order, duplicates included. Reversed ranges contribute
// nothing and ranges are clipped to the byte universe.
func expandMembers(members []*Node) ([]int, error) {
	var out []int
	for _, m := range members {
		switch m.Kind {
		case KindLiteral, KindSuspicious:
			out = append(out, int(m.Code))
		case KindRange:
			for c := int(m.Lo); c <= min(int(m.Hi), byteRange-1); c++ {
				out = append(out, c)
			}
		case KindCategory:
			codes, err := CategoryCodes(m.Category)
			if err != nil {
				return nil, err
			}
			out = append(out, codes...)
		default:
			return nil, &escape.UnsupportedError{Construct: "class member", Value: m.Kind.String()}
		}
	}
	return out, nil
}

// Contains reports whether a class or category node matches code.
func (n *Node) Contains(code int) bool {
	for _, c := range n.MatchingCharacterCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ClassText renders an ascending code set as a bracketed class.
func ClassText(codes []int, negated bool) string {
	var b strings.Builder
	b.WriteByte('[')
	if negated {
		b.WriteByte('^')
	}
	for _, r := range escape.BuildRanges(codes) {
		b.WriteString(r.String())
	}
	b.WriteByte(']')
	return b.String()
}
