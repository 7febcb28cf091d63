package locate

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// stringPattern matches one string literal with its prefix. Escaped
// characters are consumed in pairs so an escaped quote never closes it.
const stringPattern = `(?i:[rbuf]{0,2})(?:` +
	`"""(?s:\\.|.)*?"""|` +
	`'''(?s:\\.|.)*?'''|` +
	`"(?:\\(?s:.)|[^"\\\n])*"|` +
	`'(?:\\(?s:.)|[^'\\\n])*')`

// sourceLexer tokenizes module source. It is only as precise as the
// table scanner needs: strings, names, brackets and line structure.
var sourceLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `#[^\n]*`, Action: nil},
		{Name: "String", Pattern: stringPattern, Action: nil},
		{Name: "Name", Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Action: nil},
		{Name: "Number", Pattern: `[0-9][0-9A-Za-z_]*(?:\.[0-9A-Za-z_]*)?`, Action: nil},
		{Name: "Newline", Pattern: `\r?\n`, Action: nil},
		{Name: "Continuation", Pattern: `\\\r?\n`, Action: nil},
		{Name: "Whitespace", Pattern: `[ \t\f]+`, Action: nil},
		{Name: "Op", Pattern: `\*\*=?|//=?|<<=?|>>=?|->|[-+*/%&|^~<>!=]=?`, Action: nil},
		{Name: "Punct", Pattern: `[()\[\]{},:;.@]`, Action: nil},
		{Name: "Other", Pattern: `(?s:.)`, Action: nil},
	},
})

var (
	symbols = sourceLexer.Symbols()

	tokString  = symbols["String"]
	tokName    = symbols["Name"]
	tokNewline = symbols["Newline"]
	tokOp      = symbols["Op"]
	tokPunct   = symbols["Punct"]
	tokEOF     = lexer.EOF

	insignificant = map[lexer.TokenType]bool{
		symbols["Comment"]:      true,
		symbols["Continuation"]: true,
		symbols["Whitespace"]:   true,
	}
)

// tokenize returns the significant tokens of src, Newline included, and
// a trailing EOF token.
func tokenize(src string) ([]lexer.Token, error) {
	lex, err := sourceLexer.LexString("", src)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize module: %w", err)
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize module: %w", err)
	}

	out := all[:0]
	for _, t := range all {
		if !insignificant[t.Type] {
			out = append(out, t)
		}
	}
	return out, nil
}
