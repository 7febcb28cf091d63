package locate

// config controls how host string literals are decoded.
type config struct {
	unicodeLiterals bool
	narrowBuild     bool
}

// Option configures literal decoding.
type Option func(*config)

// WithUnicodeLiterals treats unprefixed literals as unicode, as a module
// with "from __future__ import unicode_literals" does.
func WithUnicodeLiterals() Option {
	return func(c *config) {
		c.unicodeLiterals = true
	}
}

// WithNarrowBuild makes code points above U+FFFF occupy two decoded
// positions, the way a UTF-16 host stores them.
func WithNarrowBuild() Option {
	return func(c *config) {
		c.narrowBuild = true
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}
