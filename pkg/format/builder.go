package format

import (
	"strings"
	"unicode/utf8"

	"github.com/kr/text"
	"github.com/pseudomuto/sqlpack/pkg/parser"
	"github.com/pseudomuto/sqlpack/pkg/utils"
)

const (
	// conditional clauses longer than this are never kept on one line
	maxSimpleConditionWidth = 100

	// set operator clauses longer than this are never kept on one line
	maxSimpleSetOperatorWidth = 50
)

// majorClauses are preceded by a blank line when AddBlankLines is set.
var majorClauses = map[parser.ClauseKind]bool{
	parser.ClauseSelect:   true,
	parser.ClauseFrom:     true,
	parser.ClauseWhere:    true,
	parser.ClauseGroupBy:  true,
	parser.ClauseHaving:   true,
	parser.ClauseOrderBy:  true,
	parser.ClauseUnion:    true,
	parser.ClauseUnionAll: true,
	parser.ClauseMinus:    true,
	parser.ClauseMinusAll: true,
	parser.ClauseWith:     true,
	parser.ClauseFilter:   true,
}

// BlockFunc returns the packed field block for a field-container clause, or "" when the
// clause's fields could not be formatted.
type BlockFunc func(clause *parser.Clause) string

// Builder assembles clauses into the final query text.
type Builder struct {
	// Indent prefixes condition lines, complex clause content and expanded subqueries.
	Indent string

	// AddBlankLines inserts an empty line before each major clause whose kind differs from
	// the previous clause.
	AddBlankLines bool

	// ExpandSubqueries lays out subqueries found in non-field clauses over several lines.
	ExpandSubqueries bool

	// Fields formats field-container clauses. When nil, their content is kept as is.
	Fields BlockFunc
}

// Build joins clauses into text, one or more lines per clause:
//
//   - a field container with a field block renders its keyword alone, then the block
//   - FROM, LIMIT and OFFSET stay on one line with their content
//   - short WHERE, HAVING and FILTER clauses without parentheses or AND/OR stay on one line
//   - short set operators (UNION, MINUS and their ALL variants) stay on one line
//   - anything else renders its keyword alone followed by the indented content, with
//     WHERE and HAVING conditions broken at top-level AND/OR
func (b *Builder) Build(clauses []*parser.Clause) string {
	var (
		lines []string
		prev  parser.ClauseKind
	)

	for i, clause := range clauses {
		if b.AddBlankLines && i > 0 && prev != parser.ClauseNone && prev != clause.Kind && majorClauses[clause.Kind] {
			lines = append(lines, "")
		}

		lines = append(lines, b.clauseLines(clause)...)
		prev = clause.Kind
	}

	return strings.Join(lines, "\n")
}

func (b *Builder) clauseLines(clause *parser.Clause) []string {
	if clause.FieldContainer && b.Fields != nil {
		if block := b.Fields(clause); block != "" {
			keyword, _ := fieldList(clause)
			return append([]string{keyword}, strings.Split(block, "\n")...)
		}
	}

	keyword := clause.Kind.String()
	content := strings.TrimSpace(clause.Content)

	if b.ExpandSubqueries && len(clause.Subqueries) > 0 {
		return strings.Split(joinKeyword(keyword, b.expand(clause)), "\n")
	}

	switch {
	case content == "":
		return []string{keyword}
	case clause.Kind == parser.ClauseNone:
		return []string{content}
	case isSimpleClause(clause.Kind, content):
		return []string{keyword + " " + content}
	}

	lines := []string{keyword}
	if clause.Kind == parser.ClauseWhere || clause.Kind == parser.ClauseHaving {
		for _, cond := range SplitConditions(content) {
			lines = append(lines, b.Indent+cond.String())
		}

		return lines
	}

	return append(lines, b.Indent+content)
}

// expand renders the clause content with every subquery rebuilt on its own indented
// lines between its parentheses.
func (b *Builder) expand(clause *parser.Clause) string {
	var (
		out  strings.Builder
		last int
	)

	for _, sub := range clause.Subqueries {
		out.WriteString(clause.Content[last:sub.Start])
		out.WriteString("(\n")
		out.WriteString(strings.TrimRight(text.Indent(b.Build(sub.Clauses), b.Indent), "\n"))
		out.WriteString("\n")
		if !sub.Unclosed {
			out.WriteString(")")
		}

		last = sub.End
	}

	out.WriteString(clause.Content[last:])
	return strings.TrimSpace(out.String())
}

func joinKeyword(keyword, content string) string {
	if keyword == "" {
		return content
	}

	return keyword + " " + content
}

// isSimpleClause reports whether a clause is rendered on a single line.
func isSimpleClause(kind parser.ClauseKind, content string) bool {
	switch kind {
	case parser.ClauseFrom, parser.ClauseLimit, parser.ClauseOffset:
		return true
	case parser.ClauseWhere, parser.ClauseHaving, parser.ClauseFilter:
		upper := strings.ToUpper(content)
		return utils.Width(content) <= maxSimpleConditionWidth &&
			!strings.Contains(content, "(") &&
			!strings.Contains(upper, " AND ") &&
			!strings.Contains(upper, " OR ")
	case parser.ClauseUnion, parser.ClauseUnionAll, parser.ClauseMinus, parser.ClauseMinusAll:
		return utils.Width(content) <= maxSimpleSetOperatorWidth
	default:
		return false
	}
}

// fieldList returns the header line of a field-container clause and the field list it
// introduces. A leading DISTINCT in a SELECT list moves into the header.
func fieldList(clause *parser.Clause) (string, string) {
	keyword := clause.Kind.String()
	content := strings.TrimSpace(clause.Content)

	if clause.Kind != parser.ClauseSelect {
		return keyword, content
	}

	head, rest, _ := strings.Cut(content, " ")
	if strings.EqualFold(head, "DISTINCT") {
		return keyword + " DISTINCT", strings.TrimSpace(rest)
	}

	return keyword, content
}

// Condition is one operand of a top-level AND/OR chain.
type Condition struct {
	// Operator is the uppercased operator that precedes the condition, "" for the first.
	Operator string
	Text     string
}

func (c Condition) String() string {
	if c.Operator == "" {
		return c.Text
	}

	return c.Operator + " " + c.Text
}

// SplitConditions breaks content at every AND/OR that sits at parenthesis depth zero and
// outside quoted literals. Each condition carries the operator that precedes it. The AND
// that belongs to a BETWEEN ... AND ... range does not split.
//
// Example:
//
//	format.SplitConditions("a = 1 and (b = 2 OR c = 3) or d BETWEEN 1 AND 5")
//	// [{"" "a = 1"} {"AND" "(b = 2 OR c = 3)"} {"OR" "d BETWEEN 1 AND 5"}]
func SplitConditions(content string) []Condition {
	var (
		conditions []Condition
		current    strings.Builder
		operator   string
		between    bool
		s          utils.Scanner
	)

	push := func() {
		if cond := strings.TrimSpace(current.String()); cond != "" {
			conditions = append(conditions, Condition{Operator: operator, Text: cond})
		}

		current.Reset()
	}

	for i := 0; i < len(content); {
		ch, size := utf8.DecodeRuneInString(content[i:])
		s.Step(ch)

		if s.TopLevel() && ch == ' ' {
			rest := strings.ToUpper(content[i:min(i+len(" BETWEEN "), len(content))])

			switch {
			case strings.HasPrefix(rest, " BETWEEN "):
				between = true
			case strings.HasPrefix(rest, " AND ") && between:
				between = false
			case strings.HasPrefix(rest, " AND "), strings.HasPrefix(rest, " OR "):
				push()
				operator = strings.Fields(rest)[0]

				// step over the operator itself; the space after it starts the next condition
				n := len(operator) + 1
				for _, skipped := range content[i+1 : i+n] {
					s.Step(skipped)
				}

				i += n
				continue
			}
		}

		current.WriteRune(ch)
		i += size
	}

	push()
	return conditions
}
