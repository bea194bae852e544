package parser

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Query is a segmented SQL statement.
type Query struct {
	// Original is the query text exactly as it was supplied.
	Original string

	// Cleaned is Original with comments removed and whitespace runs collapsed.
	Cleaned string

	// Tokens are the tokens of Cleaned.
	Tokens []Token

	// Clauses are the top-level clauses of Cleaned, nil when it has no clause keyword.
	Clauses []*Clause
}

// HasSubqueries reports whether any top-level clause contains a parenthesised SELECT.
func (q *Query) HasSubqueries() bool {
	for _, clause := range q.Clauses {
		if len(clause.Subqueries) > 0 {
			return true
		}
	}

	return false
}

// Clause returns the first top-level clause of the given kind, or nil.
func (q *Query) Clause(kind ClauseKind) *Clause {
	for _, clause := range q.Clauses {
		if clause.Kind == kind {
			return clause
		}
	}

	return nil
}

// ParseString cleans, tokenizes and segments sql. It never fails; a query without any
// top-level clause keyword yields a Query with no clauses.
//
// Example:
//
//	query := parser.ParseString("SELECT id, name -- who\nFROM users WHERE active = 1")
//	for _, clause := range query.Clauses {
//		fmt.Printf("%s: %s\n", clause.Kind, clause.Content)
//	}
//	// SELECT: id, name
//	// FROM: users
//	// WHERE: active = 1
func ParseString(sql string) *Query {
	cleaned := Clean(sql)
	tokens := Tokenize(cleaned)

	return &Query{
		Original: sql,
		Cleaned:  cleaned,
		Tokens:   tokens,
		Clauses:  Segment(tokens),
	}
}

// Parse reads the whole of reader and parses it with ParseString.
func Parse(reader io.Reader) (*Query, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SQL")
	}

	return ParseString(string(data)), nil
}

// ParseFile parses the SQL query stored in path.
func ParseFile(path string) (*Query, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	return ParseString(string(data)), nil
}
