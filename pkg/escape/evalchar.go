package escape

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EvalChar decodes a single character or a single backslash escape
// sequence to its code point.
//
// Accepted forms:
//
//	x            any single character
//	\a \b \f \n \r \t \v
//	\xNN         exactly two hex digits
//	\NNN         one to three octal digits
//	\uNNNN       exactly four hex digits
//	\UNNNNNNNN   exactly eight hex digits
//	\N{NAME}     Unicode character name, case-insensitive
//	\c           any other character c stands for itself
func EvalChar(s string) (rune, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty input", ErrBadEscape)
	}

	r, n := utf8.DecodeRuneInString(s)
	if r != '\\' {
		if n != len(s) {
			return 0, fmt.Errorf("%w: %q is not a single character", ErrBadEscape, s)
		}
		return r, nil
	}
	if len(s) == 1 {
		return 0, fmt.Errorf("%w: trailing backslash", ErrBadEscape)
	}

	body := s[1:]
	switch c := body[0]; {
	case strings.IndexByte("abfnrtv", c) >= 0 && len(body) == 1:
		return controlEscapes[c], nil
	case c == 'x':
		return parseHex(s, body[1:], 2)
	case c == 'u':
		return parseHex(s, body[1:], 4)
	case c == 'U':
		return parseHex(s, body[1:], 8)
	case c == 'N' && len(body) > 1:
		if len(body) < 3 || body[1] != '{' || body[len(body)-1] != '}' {
			return 0, fmt.Errorf("%w: malformed named escape %q", ErrBadEscape, s)
		}
		name := body[2 : len(body)-1]
		code, ok := LookupName(name)
		if !ok {
			return 0, &UnsupportedError{Construct: "character name", Value: name}
		}
		return code, nil
	case isOctal(c):
		if len(body) > 3 {
			return 0, fmt.Errorf("%w: octal escape %q too long", ErrBadEscape, s)
		}
		v, err := strconv.ParseUint(body, 8, 32)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrBadEscape, s, err)
		}
		return rune(v), nil
	}

	r, n = utf8.DecodeRuneInString(body)
	if n != len(body) {
		return 0, fmt.Errorf("%w: %q is not a single escape", ErrBadEscape, s)
	}
	return r, nil
}

var controlEscapes = map[byte]rune{
	'a': '\a',
	'b': '\b',
	'f': '\f',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'v': '\v',
}

func parseHex(orig, digits string, width int) (rune, error) {
	if len(digits) != width || !isHexString(digits) {
		return 0, fmt.Errorf("%w: %q needs exactly %d hex digits", ErrBadEscape, orig, width)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil || v > utf8.MaxRune {
		return 0, fmt.Errorf("%w: %q is out of range", ErrBadEscape, orig)
	}
	return rune(v), nil
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

// IsHexDigit reports whether c is an ASCII hexadecimal digit.
func IsHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func isHexString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !IsHexDigit(s[i]) {
			return false
		}
	}
	return true
}

// OctalPrefixLen returns how many leading bytes of s (at most max) are
// octal digits.
func OctalPrefixLen(s string, max int) int {
	n := 0
	for n < len(s) && n < max && isOctal(s[n]) {
		n++
	}
	return n
}
