package format

import (
	"fmt"
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/parser"
	"github.com/pseudomuto/sqlpack/pkg/utils"
)

type (
	// Formatter packs the field lists of SQL queries. A Formatter never changes after New
	// and is safe for concurrent use.
	Formatter struct {
		opts Options
	}

	// Result is a successfully formatted query.
	Result struct {
		Text     string
		Stats    Stats
		Warnings []string

		// Query is the segmented form of the input.
		Query *parser.Query
	}
)

// New creates a Formatter. Unset budgets and separators in opts fall back to Defaults.
func New(opts Options) *Formatter {
	return &Formatter{opts: opts.withDefaults()}
}

// Options returns the options the Formatter was created with, defaults applied.
func (f *Formatter) Options() Options {
	return f.opts
}

// Format reformats query for target.
//
// Comments outside string literals are removed and whitespace is normalised. The query
// is split into its top-level clauses, the fields of every SELECT, GROUP BY and ORDER BY
// list are packed into as few lines as the target's budget allows, and the clauses are
// reassembled.
//
// Format fails with ErrEmptyInput, ErrUnbalancedParentheses or ErrNoClausesFound (see
// Error); no partial output is returned. Problems that only affect part of the output,
// such as fields that do not look like field expressions, or clauses appearing out of
// order, are reported in Result.Warnings instead.
//
// Example:
//
//	result, err := format.New(format.Defaults).Format(`
//	    SELECT id,
//	           name,
//	           email
//	    FROM users
//	`, format.Document)
//	if err != nil {
//		return err
//	}
//
//	fmt.Println(result.Text)
//	// SELECT
//	//     id,    name,    email
//	//
//	// FROM users
func (f *Formatter) Format(query string, target Target) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, newError(EmptyInput, "query is empty")
	}

	parsed := parser.ParseString(query)
	if parsed.Cleaned == "" {
		return nil, newError(EmptyInput, "query contains only comments")
	}

	if depth := utils.ParenDepth(parsed.Cleaned); depth != 0 {
		return nil, newError(UnbalancedParentheses, "parentheses are off by %d", depth)
	}

	if len(parsed.Clauses) == 0 {
		return nil, newError(NoClausesFound, "no SQL clause keyword found at the top level")
	}

	p := &pass{
		opts:     f.opts,
		budget:   f.opts.Budget(target),
		indent:   f.opts.Indent(),
		warnings: CheckClauseOrder(parsed.Clauses),
	}

	builder := &Builder{
		Indent:           p.indent,
		AddBlankLines:    f.opts.AddBlankLines,
		ExpandSubqueries: f.opts.ExpandSubqueries,
		Fields:           p.block,
	}

	text := builder.Build(parsed.Clauses)

	return &Result{
		Text:     text,
		Stats:    computeStats(parsed, text, p.fields, p.clauses, p.budget, target),
		Warnings: p.warnings,
		Query:    parsed,
	}, nil
}

// Format formats query for documents with a new Formatter built from opts.
func Format(query string, opts Options) (*Result, error) {
	return New(opts).Format(query, Document)
}

// pass holds the state of a single Format call.
type pass struct {
	opts     Options
	budget   int
	indent   string
	warnings []string
	fields   int
	clauses  []ClauseStats
}

// block packs the fields of a field-container clause. It returns "" when no field
// survives, in which case the clause keeps its original content.
func (p *pass) block(clause *parser.Clause) string {
	_, content := fieldList(clause)
	fields := parser.ExtractFields(content)

	accepted, rejected := parser.AcceptFields(fields)
	for _, field := range rejected {
		p.warn(clause, dropReason(field))
	}

	if len(accepted) == 0 {
		if content != "" {
			p.warn(clause, "no formattable fields, keeping the original content")
		}
		return ""
	}

	lines := Pack(accepted, p.budget, p.indent, p.opts.Mode(), p.opts.FieldSeparator)
	if clause.Level == 0 {
		p.fields += len(fields)
		p.clauses = append(p.clauses, newClauseStats(clause.Kind, len(fields), len(lines)))
	}

	return RenderLines(lines, p.indent)
}

func (p *pass) warn(clause *parser.Clause, msg string) {
	where := clause.Kind.String()
	if clause.Level > 0 {
		where = fmt.Sprintf("%s (subquery level %d)", where, clause.Level)
	}

	p.warnings = append(p.warnings, where+": "+msg)
}

func dropReason(field string) string {
	if utils.IsNumericLiteral(field) || utils.IsQuotedLiteral(field) {
		return fmt.Sprintf("dropped unaliased literal %q", field)
	}

	return fmt.Sprintf("dropped %q, it does not look like a field", field)
}
