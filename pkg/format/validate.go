package format

import (
	"fmt"
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/parser"
	"github.com/pseudomuto/sqlpack/pkg/utils"
)

const (
	// queries longer than this are flagged as slow to process
	maxQueryWidth = 50000

	// queries with more SELECTs than this are flagged as complex
	maxSelectCount = 10
)

// clauseOrder is the order top-level clauses must appear in within one SELECT.
var clauseOrder = map[parser.ClauseKind]int{
	parser.ClauseSelect:  0,
	parser.ClauseFrom:    1,
	parser.ClauseWhere:   2,
	parser.ClauseGroupBy: 3,
	parser.ClauseHaving:  4,
	parser.ClauseOrderBy: 5,
	parser.ClauseLimit:   6,
}

// Validation lists the problems found in a query before formatting it.
type Validation struct {
	Errors   []string
	Warnings []string
}

// Valid reports whether no errors were found.
func (v Validation) Valid() bool {
	return len(v.Errors) == 0
}

// Validate checks query for problems that prevent or complicate formatting.
//
// Errors: the query is empty, has no SELECT, or its parentheses do not balance.
// Warnings: the query is longer than 50000 characters, or has more than 10 SELECTs.
// Comments are ignored by every check.
func Validate(query string) Validation {
	var v Validation

	if strings.TrimSpace(query) == "" {
		v.Errors = append(v.Errors, "query is empty")
		return v
	}

	cleaned := parser.Clean(query)

	selects := 0
	for _, tok := range parser.Tokenize(cleaned) {
		if tok.Kind == parser.TokenKeyword && strings.EqualFold(tok.Value, "SELECT") {
			selects++
		}
	}

	if selects == 0 {
		v.Errors = append(v.Errors, "query has no SELECT clause")
	}

	if depth := utils.ParenDepth(cleaned); depth != 0 {
		v.Errors = append(v.Errors, fmt.Sprintf("unbalanced parentheses (off by %d)", depth))
	}

	if utils.Width(strings.TrimSpace(query)) > maxQueryWidth {
		v.Warnings = append(v.Warnings, fmt.Sprintf("query is longer than %d characters, formatting may be slow", maxQueryWidth))
	}

	if selects > maxSelectCount {
		v.Warnings = append(v.Warnings, fmt.Sprintf("query has %d SELECTs, subqueries may not format well", selects))
	}

	return v
}

// CheckClauseOrder returns a warning for every clause that appears before a clause it
// should follow, and one when there is no SELECT at all. A set operator (UNION, MINUS)
// starts a new SELECT, so ordering restarts after it.
func CheckClauseOrder(clauses []*parser.Clause) []string {
	var (
		warnings  []string
		last      = -1
		hasSelect bool
	)

	for _, clause := range clauses {
		switch clause.Kind {
		case parser.ClauseUnion, parser.ClauseUnionAll, parser.ClauseMinus, parser.ClauseMinusAll:
			last = -1
			continue
		case parser.ClauseSelect:
			hasSelect = true
		}

		idx, ok := clauseOrder[clause.Kind]
		if !ok {
			continue
		}

		if idx < last {
			warnings = append(warnings, fmt.Sprintf("%s clause is out of order", clause.Kind))
		}

		last = idx
	}

	if !hasSelect {
		warnings = append(warnings, "query has no SELECT clause")
	}

	return warnings
}
