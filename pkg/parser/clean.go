package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// cleanLexer recognises just enough of SQL to strip comments without touching
// string literals. Rules are tried in order; Other catches any single character.
var cleanLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `'(?:[^'\\]|\\.)*'?|"(?:[^"\\]|\\.)*"?`},
	{Name: "Comment", Pattern: `--[^\n]*`},
	{Name: "MultilineComment", Pattern: `/\*(?s:.*?)(?:\*/|$)`},
	{Name: "Newline", Pattern: `\r?\n`},
	{Name: "Blank", Pattern: `[ \t\f\v\r]+`},
	{Name: "Text", Pattern: `[^'"\-/\s]+`},
	{Name: "Other", Pattern: `(?s:.)`},
})

// Clean removes line and block comments that sit outside string literals and
// normalises whitespace: a run of blanks and comments becomes a single space, or a
// single newline when the run crossed a line break. The result is trimmed.
//
// Example:
//
//	parser.Clean("SELECT a, -- id\n\n   b /* name */ FROM t")
//	// "SELECT a,\nb FROM t"
func Clean(query string) string {
	lex, err := cleanLexer.LexString("", query)
	if err != nil {
		return strings.TrimSpace(query)
	}

	var (
		symbols = cleanLexer.Symbols()
		out     strings.Builder
		space   bool
		newline bool
	)

	for {
		tok, err := lex.Next()
		if err != nil {
			return strings.TrimSpace(query)
		}

		if tok.EOF() {
			return out.String()
		}

		switch tok.Type {
		case symbols["Newline"]:
			newline = true
		case symbols["Blank"], symbols["Comment"], symbols["MultilineComment"]:
			space = true
		default:
			if out.Len() > 0 {
				switch {
				case newline:
					out.WriteByte('\n')
				case space:
					out.WriteByte(' ')
				}
			}

			out.WriteString(tok.Value)
			space, newline = false, false
		}
	}
}
