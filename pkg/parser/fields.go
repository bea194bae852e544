package parser

import (
	"regexp"
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/utils"
)

// ExtractFields splits the content of a field-container clause into its fields.
//
// Commas split fields only at parenthesis depth zero and outside quoted literals, so
// function arguments and literals containing commas stay intact. Fields are trimmed
// and empty fields are dropped.
//
// Example:
//
//	parser.ExtractFields("id, SUM(a, b) AS total, 'x,y' AS label,,")
//	// ["id", "SUM(a, b) AS total", "'x,y' AS label"]
func ExtractFields(content string) []string {
	var fields []string
	for _, part := range utils.SplitTopLevel(content, ',') {
		if field := strings.TrimSpace(part); field != "" {
			fields = append(fields, field)
		}
	}

	return fields
}

const (
	identPart = "(?:[a-zA-Z_][a-zA-Z0-9_]*|`[^`]+`|\"[^\"]+\")"
	qualified = identPart + `(?:\.` + identPart + `)*`
	bareAlias = `[a-zA-Z_][a-zA-Z0-9_]*`
)

var (
	// keyword fragments that never start a field
	nonFieldKeywords = []string{
		"FROM", "WHERE", "GROUP BY", "HAVING", "ORDER BY", "LIMIT",
		"OFFSET", "UNION", "UNION ALL", "MINUS", "MINUS ALL", "INTERSECT",
		"EXCEPT", "WITH", "JOIN", "LEFT JOIN", "RIGHT JOIN", "INNER JOIN",
		"OUTER JOIN", "FULL JOIN", "CROSS JOIN", "ON", "USING", "AND",
		"OR", "NOT", "IN", "EXISTS", "BETWEEN", "LIKE", "IS", "NULL",
		"TRUE", "FALSE", "DISTINCT", "ALL", "FILTER",
	}

	fieldShapes = []*regexp.Regexp{
		// column, table.column, optionally aliased
		regexp.MustCompile(`(?i)^` + qualified + `(?:\s+AS\s+` + identPart + `)?$`),
		// aggregate functions
		regexp.MustCompile(`(?i)^(?:SUM|COUNT|AVG|MIN|MAX|STDDEV|VARIANCE)\s*\(`),
		// date functions
		regexp.MustCompile(`(?i)^(?:TO_DATE|TO_CHAR|EXTRACT|DATE_TRUNC|ADD_MONTHS|MONTHS_BETWEEN)\s*\(`),
		// string functions
		regexp.MustCompile(`(?i)^(?:SUBSTR|SUBSTRING|CONCAT|TRIM|LTRIM|RTRIM|UPPER|LOWER|INITCAP|LENGTH|INSTR)\s*\(`),
		// window functions
		regexp.MustCompile(`(?i)^(?:ROW_NUMBER|RANK|DENSE_RANK|LAG|LEAD|FIRST_VALUE|LAST_VALUE)\s*\(`),
		// CASE expressions
		regexp.MustCompile(`(?i)^CASE\s+`),
		// arithmetic next to an identifier
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.\s]*[+\-*/%]`),
		regexp.MustCompile(`[+\-*/%][a-zA-Z_][a-zA-Z0-9_.\s]*`),
		// aliased literals
		regexp.MustCompile(`(?i)^(?:['"].*['"]|\d+(?:\.\d+)?)\s+AS\s+[a-zA-Z_]`),
		// scalar subqueries
		regexp.MustCompile(`(?i)^\s*\(\s*SELECT\s+`),
		// *, table.*
		regexp.MustCompile(`^(?:` + identPart + `\.)*\*$`),
		// ORDER BY items
		regexp.MustCompile(`(?i)^` + qualified + `(?:\s+(?:ASC|DESC))?(?:\s+NULLS\s+(?:FIRST|LAST))?$`),
	}

	implicitAlias = regexp.MustCompile(`^` + qualified + `\s+(` + bareAlias + `)$`)
)

// IsField reports whether field looks like a genuine field expression rather than a
// stray keyword fragment left over by segmentation.
//
// Fields starting with a bare clause or operator keyword (FROM, WHERE, AND, ...) are
// always rejected. Otherwise a field is accepted when it is an identifier (optionally
// qualified and aliased), a call to a known aggregate, date, string or window
// function, a CASE expression, arithmetic next to an identifier, an aliased literal, a
// scalar subquery, a star, an ORDER BY item, an identifier with an implicit alias or,
// as a catch-all, any expression containing a balanced pair of parentheses.
//
// Examples:
//   - "customers.name AS customer" -> true
//   - "COUNT(*)" -> true
//   - "price * qty" -> true
//   - "created_at DESC" -> true
//   - "FROM orders" -> false
//   - "42" -> false
func IsField(field string) bool {
	field = strings.TrimSpace(field)
	if field == "" {
		return false
	}

	upper := strings.ToUpper(field)
	for _, keyword := range nonFieldKeywords {
		if upper == keyword || strings.HasPrefix(upper, keyword+" ") {
			return false
		}
	}

	for _, shape := range fieldShapes {
		if shape.MatchString(field) {
			return true
		}
	}

	if m := implicitAlias.FindStringSubmatch(field); m != nil && !IsKeyword(m[1]) {
		return true
	}

	return strings.Contains(field, "(") &&
		strings.Contains(field, ")") &&
		utils.ParenDepth(field) == 0
}

// AcceptFields filters fields through IsField, returning the accepted fields in order
// and the rejected ones separately.
func AcceptFields(fields []string) (accepted, rejected []string) {
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		if IsField(field) {
			accepted = append(accepted, field)
		} else {
			rejected = append(rejected, field)
		}
	}

	return accepted, rejected
}
