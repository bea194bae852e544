package parser

import "strings"

// ClauseKind identifies the keyword that opens a top-level clause.
type ClauseKind string

const (
	// ClauseNone marks text that precedes the first clause keyword of a statement.
	ClauseNone     ClauseKind = ""
	ClauseSelect   ClauseKind = "SELECT"
	ClauseFrom     ClauseKind = "FROM"
	ClauseWhere    ClauseKind = "WHERE"
	ClauseGroupBy  ClauseKind = "GROUP BY"
	ClauseHaving   ClauseKind = "HAVING"
	ClauseOrderBy  ClauseKind = "ORDER BY"
	ClauseLimit    ClauseKind = "LIMIT"
	ClauseOffset   ClauseKind = "OFFSET"
	ClauseUnion    ClauseKind = "UNION"
	ClauseUnionAll ClauseKind = "UNION ALL"
	ClauseMinus    ClauseKind = "MINUS"
	ClauseMinusAll ClauseKind = "MINUS ALL"
	ClauseWith     ClauseKind = "WITH"
	ClauseFilter   ClauseKind = "FILTER"
)

// IsFieldContainer reports whether the clause content is a comma separated list of
// fields that should be packed horizontally.
func (k ClauseKind) IsFieldContainer() bool {
	return k == ClauseSelect || k == ClauseGroupBy || k == ClauseOrderBy
}

func (k ClauseKind) String() string {
	return string(k)
}

// Keywords is the fixed keyword vocabulary. Identifiers whose uppercase form appears
// here are classified as keywords by the tokenizer.
var Keywords = map[string]bool{
	"SELECT": true, "DISTINCT": true, "FROM": true, "WHERE": true, "GROUP": true,
	"ORDER": true, "BY": true, "HAVING": true, "LIMIT": true, "OFFSET": true,
	"UNION": true, "ALL": true, "INTERSECT": true, "EXCEPT": true, "MINUS": true,
	"WITH": true, "INSERT": true, "UPDATE": true, "DELETE": true, "CREATE": true,
	"ALTER": true, "DROP": true, "JOIN": true, "LEFT": true, "RIGHT": true,
	"INNER": true, "OUTER": true, "FULL": true, "CROSS": true, "ON": true,
	"USING": true, "AS": true, "CASE": true, "WHEN": true, "THEN": true,
	"ELSE": true, "END": true, "AND": true, "OR": true, "NOT": true, "IN": true,
	"EXISTS": true, "BETWEEN": true, "FILTER": true, "LIKE": true, "IS": true,
	"NULL": true,
}

// IsKeyword reports whether word belongs to the keyword vocabulary, ignoring case.
func IsKeyword(word string) bool {
	return Keywords[strings.ToUpper(word)]
}

var (
	// clause keywords that open a clause on their own
	singleClauses = map[string]ClauseKind{
		"SELECT": ClauseSelect,
		"FROM":   ClauseFrom,
		"WHERE":  ClauseWhere,
		"HAVING": ClauseHaving,
		"LIMIT":  ClauseLimit,
		"OFFSET": ClauseOffset,
		"WITH":   ClauseWith,
		"FILTER": ClauseFilter,
	}

	// first word of a compound clause keyword -> required second word
	compoundClauses = map[string]string{
		"GROUP": "BY",
		"ORDER": "BY",
		"UNION": "ALL",
		"MINUS": "ALL",
	}

	// compound heads that are clauses even without their second word
	bareClauses = map[string]ClauseKind{
		"UNION": ClauseUnion,
		"MINUS": ClauseMinus,
	}
)

// detectClause checks whether tokens[i] opens a clause. It returns the resolved clause
// kind and the number of tokens the keyword consumes. Compound keywords are matched
// before their bare fallback.
func detectClause(tokens []Token, i int) (ClauseKind, int, bool) {
	word := strings.ToUpper(tokens[i].Value)

	if kind, ok := singleClauses[word]; ok {
		return kind, 1, true
	}

	if second, ok := compoundClauses[word]; ok {
		if i+1 < len(tokens) && strings.ToUpper(tokens[i+1].Value) == second {
			return ClauseKind(word + " " + second), 2, true
		}
	}

	if kind, ok := bareClauses[word]; ok {
		return kind, 1, true
	}

	return ClauseNone, 0, false
}
