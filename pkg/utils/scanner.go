package utils

import "strings"

// Scanner tracks parenthesis depth and quote state while walking raw SQL text one
// character at a time. It is the single state machine shared by the query cleaner,
// the parenthesis balance check, the field extractor and the condition splitter.
//
// A single or double quote opens a literal unless it is immediately preceded by a
// backslash. A literal is closed by the next unescaped quote of the same kind.
// Parentheses only count outside literals.
//
// Example:
//
//	var s utils.Scanner
//	for _, ch := range "SUM(a, b), 'x,y'" {
//		s.Step(ch)
//		if ch == ',' && s.TopLevel() {
//			// split here
//		}
//	}
type Scanner struct {
	depth int
	quote rune
	prev  rune
}

// Step advances the scanner past ch.
func (s *Scanner) Step(ch rune) {
	defer func() { s.prev = ch }()

	if (ch == '\'' || ch == '"') && s.prev != '\\' {
		switch s.quote {
		case 0:
			s.quote = ch
			return
		case ch:
			s.quote = 0
			return
		}
	}

	if s.quote != 0 {
		return
	}

	switch ch {
	case '(':
		s.depth++
	case ')':
		s.depth--
	}
}

// Depth returns the current parenthesis depth. It goes negative when a closing
// parenthesis has no opening partner.
func (s *Scanner) Depth() int {
	return s.depth
}

// InQuote reports whether the scanner is inside a quoted literal.
func (s *Scanner) InQuote() bool {
	return s.quote != 0
}

// TopLevel reports whether the scanner is outside any literal at depth zero.
func (s *Scanner) TopLevel() bool {
	return s.quote == 0 && s.depth == 0
}

// ParenDepth returns the parenthesis depth at the end of sql, counting only
// parentheses outside quoted literals. A balanced query returns zero.
//
// Examples:
//   - "SELECT (a)" -> 0
//   - "WHERE (a > 1" -> 1
//   - "SELECT ')'" -> 0
func ParenDepth(sql string) int {
	var s Scanner
	for _, ch := range sql {
		s.Step(ch)
	}

	return s.depth
}

// SplitTopLevel splits text on every occurrence of sep that sits at depth zero and
// outside quoted literals. The pieces are returned untrimmed and the separators are
// dropped.
//
// Examples:
//   - ("a, SUM(b, c), 'x,y'", ',') -> ["a", " SUM(b, c)", " 'x,y'"]
//   - ("", ',') -> [""]
func SplitTopLevel(text string, sep rune) []string {
	var (
		parts   []string
		current strings.Builder
		s       Scanner
	)

	for _, ch := range text {
		s.Step(ch)
		if ch == sep && s.TopLevel() {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}

		current.WriteRune(ch)
	}

	return append(parts, current.String())
}
