package escape

import (
	"errors"
	"fmt"
)

// ErrBadEscape is returned for escape sequences that are malformed
// (truncated hex digits, out of range code points, trailing backslash).
var ErrBadEscape = errors.New("bad escape")

// UnsupportedError reports a construct whose decode or category table is
// not known to this package, such as an unknown Unicode character name.
type UnsupportedError struct {
	Construct string // e.g. "character name", "category"
	Value     string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported %s: %s", e.Construct, e.Value)
}
