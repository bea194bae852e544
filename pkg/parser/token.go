package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// TokenKind classifies a lexical unit.
type TokenKind int

const (
	TokenWord TokenKind = iota
	TokenNumber
	TokenString
	TokenParenthesis
	TokenPunctuation
	TokenKeyword
)

func (k TokenKind) String() string {
	switch k {
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenParenthesis:
		return "parenthesis"
	case TokenPunctuation:
		return "punctuation"
	case TokenKeyword:
		return "keyword"
	default:
		return "word"
	}
}

// Token is a single lexical unit of a query. Value keeps the original casing and Pos
// is the byte offset of the token in the tokenized text.
type Token struct {
	Value string
	Kind  TokenKind
	Pos   int
}

// End returns the byte offset just past the token.
func (t Token) End() int {
	return t.Pos + len(t.Value)
}

var (
	// sqlLexer splits query text into tokens. Rules are tried in order and the
	// lowercase whitespace rule is elided. String literals are greedy and unterminated
	// ones run to the end of the input.
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "String", Pattern: `'[^']*'?|"[^"]*"?`},
		{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?`},
		{Name: "Paren", Pattern: `[()]`},
		{Name: "Punct", Pattern: `[,;.]`},
		{Name: "Other", Pattern: `\S`},
		{Name: "whitespace", Pattern: `\s+`},
	})

	tokenKinds = map[lexer.TokenType]TokenKind{
		sqlLexer.Symbols()["String"]: TokenString,
		sqlLexer.Symbols()["Ident"]:  TokenWord,
		sqlLexer.Symbols()["Number"]: TokenNumber,
		sqlLexer.Symbols()["Paren"]:  TokenParenthesis,
		sqlLexer.Symbols()["Punct"]:  TokenPunctuation,
		sqlLexer.Symbols()["Other"]:  TokenWord,
	}
)

// Tokenize splits text into classified tokens. Whitespace is not emitted. Identifiers
// found in the keyword vocabulary are classified as keywords regardless of case.
//
// Tokenize never fails: every non-whitespace character of text ends up in exactly one
// token, so concatenating the token values reproduces text without its whitespace.
//
// Example:
//
//	tokens := parser.Tokenize("select a, 'x y' from t")
//	// select(keyword) a(word) ,(punctuation) 'x y'(string) from(keyword) t(word)
func Tokenize(text string) []Token {
	lex, err := sqlLexer.LexString("", text)
	if err != nil {
		return remainder(nil, text, 0)
	}

	var (
		tokens []Token
		end    int
	)

	for {
		tok, err := lex.Next()
		if err != nil {
			return remainder(tokens, text, end)
		}

		if tok.EOF() {
			return tokens
		}

		kind := tokenKinds[tok.Type]
		if kind == TokenWord && IsKeyword(tok.Value) {
			kind = TokenKeyword
		}

		tokens = append(tokens, Token{Value: tok.Value, Kind: kind, Pos: tok.Pos.Offset})
		end = tok.Pos.Offset + len(tok.Value)
	}
}

// remainder keeps whatever the lexer could not consume as a single word token.
func remainder(tokens []Token, text string, from int) []Token {
	rest := text[from:]
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	if trimmed = strings.TrimRight(trimmed, " \t\r\n"); trimmed == "" {
		return tokens
	}

	pos := from + strings.Index(rest, trimmed)
	return append(tokens, Token{Value: trimmed, Kind: TokenWord, Pos: pos})
}
