package parser

import "strings"

type (
	// Clause is one top-level clause of a statement: the keyword that opened it and the
	// raw text that followed, up to the next top-level clause keyword.
	Clause struct {
		// Kind is the resolved (possibly compound) keyword that opened the clause.
		Kind ClauseKind

		// Content is the clause text with whitespace normalised: tokens that were
		// separated by whitespace in the source are joined by a single space.
		Content string

		// FieldContainer is true for clauses whose content is a comma separated field list.
		FieldContainer bool

		// Level is the subquery nesting level, zero for the outermost statement.
		Level int

		// Subqueries lists the parenthesised SELECT statements found inside Content.
		Subqueries []*Subquery
	}

	// Subquery is a parenthesised SELECT statement inside a clause's content. Start and
	// End are byte offsets into the enclosing Clause.Content: Start points at the opening
	// parenthesis and End just past the closing one (or the end of the content when the
	// parenthesis is never closed).
	Subquery struct {
		Start    int
		End      int
		Clauses  []*Clause
		Unclosed bool
	}
)

// Text returns the clause keyword followed by its content.
func (c *Clause) Text() string {
	switch {
	case c.Kind == ClauseNone:
		return c.Content
	case c.Content == "":
		return string(c.Kind)
	default:
		return string(c.Kind) + " " + c.Content
	}
}

// Segment partitions a token stream into its top-level clauses.
//
// The segmenter walks the tokens once, tracking parenthesis depth. A keyword token
// starts a new clause only at depth zero, so keywords inside parentheses stay part of
// the enclosing clause's content. Compound keywords (GROUP BY, ORDER BY, UNION ALL,
// MINUS ALL) are resolved by lookahead before the bare UNION and MINUS fallbacks.
//
// Every parenthesised group whose first token is SELECT is segmented recursively with
// the same rules and recorded as a Subquery on the enclosing clause.
//
// Tokens that precede the first clause keyword are kept in a leading ClauseNone clause.
// When tokens contain no top-level clause keyword at all, Segment returns nil.
//
// Example:
//
//	clauses := parser.Segment(parser.Tokenize("SELECT a, b FROM t WHERE a > 1"))
//	// SELECT "a, b" | FROM "t" | WHERE "a > 1"
func Segment(tokens []Token) []*Clause {
	return segment(tokens, 0)
}

func segment(tokens []Token, level int) []*Clause {
	var (
		clauses []*Clause
		current *clauseBuilder
		found   bool
		depth   int
	)

	flush := func() {
		if current != nil {
			clauses = append(clauses, current.build())
		}
	}

	open := func(kind ClauseKind) {
		flush()
		current = &clauseBuilder{clause: &Clause{
			Kind:           kind,
			FieldContainer: kind.IsFieldContainer(),
			Level:          level,
		}}
	}

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if depth == 0 && tok.Kind == TokenKeyword {
			if kind, n, ok := detectClause(tokens, i); ok {
				open(kind)
				found = true
				i += n - 1
				continue
			}
		}

		if current == nil {
			open(ClauseNone)
		}

		if tok.Kind == TokenParenthesis {
			if tok.Value == ")" {
				depth--
			} else if isSubqueryStart(tokens, i) {
				i = current.addSubquery(tokens, i, level)
				continue
			} else {
				depth++
			}
		}

		current.add(tok)
	}

	if !found {
		return nil
	}

	flush()
	return clauses
}

// isSubqueryStart reports whether tokens[i] is an opening parenthesis directly
// followed by SELECT.
func isSubqueryStart(tokens []Token, i int) bool {
	return tokens[i].Value == "(" &&
		i+1 < len(tokens) &&
		tokens[i+1].Kind == TokenKeyword &&
		strings.EqualFold(tokens[i+1].Value, "SELECT")
}

// matchingParen returns the index of the parenthesis closing the one at tokens[open],
// or -1 when it is never closed.
func matchingParen(tokens []Token, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		if tokens[i].Kind != TokenParenthesis {
			continue
		}

		if tokens[i].Value == "(" {
			depth++
		} else {
			depth--
		}

		if depth == 0 {
			return i
		}
	}

	return -1
}

// clauseBuilder accumulates the content of a clause from its tokens.
type clauseBuilder struct {
	clause  *Clause
	content strings.Builder
	prevEnd int
}

// add appends tok to the content and returns the offset at which it was written.
func (b *clauseBuilder) add(tok Token) int {
	if b.content.Len() > 0 && tok.Pos > b.prevEnd {
		b.content.WriteByte(' ')
	}

	offset := b.content.Len()
	b.content.WriteString(tok.Value)
	b.prevEnd = tok.End()
	return offset
}

// addSubquery appends the parenthesised group starting at tokens[open], segments the
// tokens inside it and returns the index of the last token consumed.
func (b *clauseBuilder) addSubquery(tokens []Token, open, level int) int {
	closing := matchingParen(tokens, open)
	last, inner := closing, tokens[open+1:]
	if closing < 0 {
		last = len(tokens) - 1
	} else {
		inner = tokens[open+1 : closing]
	}

	sub := &Subquery{
		Start:    b.add(tokens[open]),
		Clauses:  segment(inner, level+1),
		Unclosed: closing < 0,
	}

	for _, tok := range tokens[open+1 : last+1] {
		b.add(tok)
	}

	sub.End = b.content.Len()
	b.clause.Subqueries = append(b.clause.Subqueries, sub)
	return last
}

func (b *clauseBuilder) build() *Clause {
	b.clause.Content = b.content.String()
	return b.clause
}
