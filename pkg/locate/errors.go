package locate

import (
	"errors"
	"fmt"
)

// ErrMalformedLiteral is returned for text that is not a complete string
// literal (unknown prefix, missing or mismatched quotes, bad \x escape).
var ErrMalformedLiteral = errors.New("malformed string literal")

// LocatorError reports a lookup that asked for something that does not
// exist: a class or state name that is not defined, or an index past the
// end of a tuple list or decoded value. Requested and Available are only
// meaningful for index lookups.
type LocatorError struct {
	What      string // "class", "state", "tuple" or "character"
	Name      string
	Requested int
	Available int
}

func (e *LocatorError) Error() string {
	switch e.What {
	case "class", "state":
		return fmt.Sprintf("%s %q not found", e.What, e.Name)
	}
	if e.Name != "" {
		return fmt.Sprintf("%s index %d out of range in %s (have %d)", e.What, e.Requested, e.Name, e.Available)
	}
	return fmt.Sprintf("%s index %d out of range (have %d)", e.What, e.Requested, e.Available)
}
