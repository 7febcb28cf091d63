package escape

import (
	"fmt"
	"strings"
)

type reprConfig struct {
	escape string
	quotes bool
}

// ReprOption configures ConsistentRepr.
type ReprOption func(*reprConfig)

// WithEscape backslash-escapes every character in chars in addition to
// the default set.
func WithEscape(chars string) ReprOption {
	return func(c *reprConfig) {
		c.escape = chars
	}
}

// WithoutQuotes omits the surrounding quotes and the u prefix.
func WithoutQuotes() ReprOption {
	return func(c *reprConfig) {
		c.quotes = false
	}
}

// ConsistentRepr renders s as a single-quoted literal whose spelling does
// not depend on the platform: printable ASCII is emitted as-is, \n \r \t
// use their short names and every other character uses the shortest of
// \xNN, \uNNNN or \UNNNNNNNN. Strings holding any code point above 0xFF
// get a u prefix.
func ConsistentRepr(s string, opts ...ReprOption) string {
	cfg := reprConfig{quotes: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	if cfg.quotes {
		for _, r := range s {
			if r > 0xff {
				b.WriteByte('u')
				break
			}
		}
		b.WriteByte('\'')
	}

	for _, r := range s {
		switch {
		case r == '\\' || r == '\'':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r < 0x80 && strings.ContainsRune(cfg.escape, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r >= 0x20 && r < 0x7f:
			b.WriteRune(r)
		case r < 0x100:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x10000:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}

	if cfg.quotes {
		b.WriteByte('\'')
	}
	return b.String()
}
