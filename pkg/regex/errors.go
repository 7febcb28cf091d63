package regex

import "fmt"

// ErrorKind classifies structural parse failures. Each kind is usable as
// an errors.Is target against a *ParseError.
type ErrorKind int

const (
	ErrUnbalancedParenthesis ErrorKind = iota + 1
	ErrMissingParenthesis
	ErrUnterminatedClass
	ErrBadEscape
	ErrTrailingBackslash
	ErrNothingToRepeat
	ErrMultipleRepeat
	ErrBadRepetition
	ErrUnknownExtension
	ErrUnknownFlag
	ErrBadGroupName
	ErrBadCharacterRange
)

var errorKindText = map[ErrorKind]string{
	ErrUnbalancedParenthesis: "unbalanced parenthesis",
	ErrMissingParenthesis:    "missing ), unterminated subpattern",
	ErrUnterminatedClass:     "unterminated character set",
	ErrBadEscape:             "bad escape",
	ErrTrailingBackslash:     "trailing backslash",
	ErrNothingToRepeat:       "nothing to repeat",
	ErrMultipleRepeat:        "multiple repeat",
	ErrBadRepetition:         "bad repetition",
	ErrUnknownExtension:      "unknown extension",
	ErrUnknownFlag:           "unknown flag",
	ErrBadGroupName:          "bad group name",
	ErrBadCharacterRange:     "bad character range",
}

func (k ErrorKind) Error() string {
	if s, ok := errorKindText[k]; ok {
		return s
	}
	return fmt.Sprintf("parse error %d", int(k))
}

// ParseError reports a pattern that cannot be decomposed into the grammar.
// Offset is the raw byte offset of the failure.
type ParseError struct {
	Kind   ErrorKind
	Offset int
	Detail string
	Err    error // underlying decode error, if any
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += " " + e.Detail
	}
	return fmt.Sprintf("%s at position %d", msg, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is matches an ErrorKind target.
func (e *ParseError) Is(target error) bool {
	k, ok := target.(ErrorKind)
	return ok && k == e.Kind
}
