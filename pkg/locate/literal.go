package locate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/praetorian-inc/regexlint/pkg/escape"
	"github.com/praetorian-inc/regexlint/pkg/types"
)

// Unit is one decoded position of a literal together with the raw byte
// span of the literal text that produced it.
type Unit struct {
	Code rune
	Span types.OffsetSpan
}

// Literal is a decoded host string literal.
type Literal struct {
	Raw     string // full literal text, prefix and quotes included
	Prefix  string
	Quote   string // ', ", ''' or """
	Unicode bool   // \u, \U and \N escapes are active
	RawMode bool   // r prefix: backslashes are inert
	Units   []Unit
}

// controlCodes are the single-letter escapes of a non-raw literal.
var controlCodes = map[byte]rune{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// DecodeLiteral decodes the text of one string literal and records, for
// every decoded position, the raw span it came from.
//
// Unprefixed literals are byte strings unless WithUnicodeLiterals is
// given; \u, \U and \N{...} are only escapes in unicode literals and
// otherwise leave the backslash as a position of its own. Raw literals
// map every character to itself, except that a raw unicode literal still
// decodes \uXXXX and \UXXXXXXXX after an odd run of backslashes.
func DecodeLiteral(raw string, opts ...Option) (*Literal, error) {
	cfg := newConfig(opts)

	lit, err := splitLiteral(raw, cfg)
	if err != nil {
		return nil, err
	}

	d := &decoder{lit: lit, narrow: cfg.narrowBuild}
	start := len(lit.Prefix) + len(lit.Quote)
	end := len(raw) - len(lit.Quote)
	if lit.RawMode {
		err = d.decodeRaw(start, end)
	} else {
		err = d.decodeEscaped(start, end)
	}
	if err != nil {
		return nil, err
	}
	return lit, nil
}

func splitLiteral(raw string, cfg config) (*Literal, error) {
	i := 0
	for i < len(raw) && strings.IndexByte("rRbBuUfF", raw[i]) >= 0 {
		i++
	}
	prefix := strings.ToLower(raw[:i])
	if len(prefix) > 2 || (strings.Contains(prefix, "u") && strings.Contains(prefix, "b")) ||
		(len(prefix) == 2 && prefix[0] == prefix[1]) {
		return nil, fmt.Errorf("%w: bad prefix %q", ErrMalformedLiteral, raw[:i])
	}

	rest := raw[i:]
	var quote string
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(rest, q) {
			quote = q
			break
		}
	}
	if quote == "" || len(rest) < 2*len(quote) || !strings.HasSuffix(rest, quote) {
		return nil, fmt.Errorf("%w: %s", ErrMalformedLiteral, strconv.Quote(raw))
	}

	unicode := strings.Contains(prefix, "u")
	if !strings.Contains(prefix, "b") && !unicode && cfg.unicodeLiterals {
		unicode = true
	}
	return &Literal{
		Raw:     raw,
		Prefix:  raw[:i],
		Quote:   quote,
		Unicode: unicode,
		RawMode: strings.Contains(prefix, "r"),
	}, nil
}

type decoder struct {
	lit    *Literal
	narrow bool
}

func (d *decoder) emit(code rune, start, end int) {
	span := types.OffsetSpan{Start: start, End: end}
	if d.narrow && code > 0xFFFF {
		hi, lo := utf16.EncodeRune(code)
		d.lit.Units = append(d.lit.Units, Unit{Code: hi, Span: span}, Unit{Code: lo, Span: span})
		return
	}
	d.lit.Units = append(d.lit.Units, Unit{Code: code, Span: span})
}

func (d *decoder) emitRune(i int) int {
	r, w := utf8.DecodeRuneInString(d.lit.Raw[i:])
	d.emit(r, i, i+w)
	return i + w
}

func (d *decoder) decodeRaw(i, end int) error {
	raw := d.lit.Raw
	for i < end {
		if raw[i] != '\\' || !d.lit.Unicode {
			i = d.emitRune(i)
			continue
		}

		run := i
		for run < end && raw[run] == '\\' {
			run++
		}
		if run < end && (raw[run] == 'u' || raw[run] == 'U') && (run-i)%2 == 1 {
			for ; i < run-1; i++ {
				d.emit('\\', i, i+1)
			}
			next, err := d.hexEscape(i, end)
			if err != nil {
				return err
			}
			i = next
			continue
		}
		for ; i < run; i++ {
			d.emit('\\', i, i+1)
		}
	}
	return nil
}

func (d *decoder) decodeEscaped(i, end int) error {
	raw := d.lit.Raw
	for i < end {
		if raw[i] != '\\' || i+1 >= end {
			i = d.emitRune(i)
			continue
		}

		c := raw[i+1]
		switch {
		case c == '\n':
			i += 2
		case c == '\r' && i+2 < end && raw[i+2] == '\n':
			i += 3
		case controlCodes[c] != 0:
			d.emit(controlCodes[c], i, i+2)
			i += 2
		case c >= '0' && c <= '7':
			n := escape.OctalPrefixLen(raw[i+1:end], 3)
			v, _ := strconv.ParseUint(raw[i+1:i+1+n], 8, 32)
			if !d.lit.Unicode {
				v &= 0xff
			}
			d.emit(rune(v), i, i+1+n)
			i += 1 + n
		case c == 'x':
			if i+4 > end || !escape.IsHexDigit(raw[i+2]) || !escape.IsHexDigit(raw[i+3]) {
				return fmt.Errorf("%w: invalid \\x escape at %d", ErrMalformedLiteral, i)
			}
			v, _ := strconv.ParseUint(raw[i+2:i+4], 16, 32)
			d.emit(rune(v), i, i+4)
			i += 4
		case d.lit.Unicode && (c == 'u' || c == 'U'):
			next, err := d.hexEscape(i, end)
			if err != nil {
				return err
			}
			i = next
		case d.lit.Unicode && c == 'N':
			brace := strings.IndexByte(raw[i:end], '}')
			if i+2 >= end || raw[i+2] != '{' || brace < 0 {
				return fmt.Errorf("%w: malformed \\N escape at %d", ErrMalformedLiteral, i)
			}
			code, err := escape.EvalChar(raw[i : i+brace+1])
			if err != nil {
				return err
			}
			d.emit(code, i, i+brace+1)
			i += brace + 1
		default:
			// Not an escape: the backslash stands for itself and the
			// next character is decoded on its own.
			d.emit('\\', i, i+1)
			i++
		}
	}
	return nil
}

// hexEscape decodes \uXXXX or \UXXXXXXXX starting at the backslash at i.
func (d *decoder) hexEscape(i, end int) (int, error) {
	raw := d.lit.Raw
	width := 4
	if raw[i+1] == 'U' {
		width = 8
	}
	stop := i + 2 + width
	if stop > end {
		return 0, fmt.Errorf("%w: truncated \\%c escape at %d", ErrMalformedLiteral, raw[i+1], i)
	}
	code, err := escape.EvalChar(raw[i:stop])
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedLiteral, err)
	}
	d.emit(code, i, stop)
	return stop, nil
}

// Len returns the number of decoded positions.
func (l *Literal) Len() int {
	return len(l.Units)
}

// Value returns the decoded text. Surrogate pairs produced by a narrow
// build are recombined.
func (l *Literal) Value() string {
	var b strings.Builder
	for _, r := range combineUnits(l.Units, nil) {
		b.WriteRune(r)
	}
	return b.String()
}

// combineUnits returns the runes of units, recombining surrogate pairs.
// When owners is non-nil it receives, for every rune, the index of the
// first unit it came from.
func combineUnits(units []Unit, owners *[]int) []rune {
	out := make([]rune, 0, len(units))
	for k := 0; k < len(units); k++ {
		r := units[k].Code
		if utf16.IsSurrogate(r) && k+1 < len(units) {
			if c := utf16.DecodeRune(r, units[k+1].Code); c != utf8.RuneError {
				out = append(out, c)
				if owners != nil {
					*owners = append(*owners, k)
				}
				k++
				continue
			}
		}
		out = append(out, r)
		if owners != nil {
			*owners = append(*owners, k)
		}
	}
	return out
}

// Position returns the raw location of decoded position index as a line
// offset into the literal text and byte columns on that line. Columns on
// the first line count from the start of the literal, including its
// prefix and opening quote.
func (l *Literal) Position(index int) (types.LineSpan, error) {
	if index < 0 || index >= len(l.Units) {
		return types.LineSpan{}, &LocatorError{What: "character", Name: l.Raw, Requested: index, Available: len(l.Units)}
	}
	span := l.Units[index].Span
	line, col := types.ComputeLineColumn(l.Raw, span.Start)
	return types.LineSpan{Line: line, ColStart: col, ColEnd: col + span.Len()}, nil
}

// FindSubstrPos decodes the literal text raw and returns the raw location
// of decoded position index; see Literal.Position.
func FindSubstrPos(raw string, index int, opts ...Option) (types.LineSpan, error) {
	lit, err := DecodeLiteral(raw, opts...)
	if err != nil {
		return types.LineSpan{}, err
	}
	return lit.Position(index)
}
