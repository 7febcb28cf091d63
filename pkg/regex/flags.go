package regex

import "strings"

// Flag is a set of regex compilation flags.
type Flag uint32

const (
	FlagASCII Flag = 1 << iota
	FlagIgnoreCase
	FlagLocale
	FlagMultiline
	FlagDotAll
	FlagUnicode
	FlagVerbose
)

// flagLetters lists directive letters in canonical order.
const flagLetters = "aiLmsux"

var flagByLetter = map[byte]Flag{
	'a': FlagASCII,
	'i': FlagIgnoreCase,
	'L': FlagLocale,
	'm': FlagMultiline,
	's': FlagDotAll,
	'u': FlagUnicode,
	'x': FlagVerbose,
}

// ParseFlag maps a directive letter to its flag.
func ParseFlag(c byte) (Flag, bool) {
	f, ok := flagByLetter[c]
	return f, ok
}

// String renders the set as directive letters, e.g. "imx".
func (f Flag) String() string {
	var b strings.Builder
	for i := 0; i < len(flagLetters); i++ {
		if f&flagByLetter[flagLetters[i]] != 0 {
			b.WriteByte(flagLetters[i])
		}
	}
	return b.String()
}
