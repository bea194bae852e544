// Package parser splits SQL SELECT statements into the pieces sqlpack formats.
//
// It is deliberately not a SQL grammar. The parser understands just enough of the
// language to find the top-level clauses of a statement and the fields inside them:
//
//   - Clean strips comments that sit outside string literals and collapses whitespace.
//   - Tokenize turns the cleaned text into words, numbers, string literals,
//     parentheses, punctuation and keywords using a participle lexer.
//   - Segment partitions the tokens into clauses (SELECT, FROM, WHERE, GROUP BY, ...)
//     at parenthesis depth zero, recursing into parenthesised subqueries.
//   - ExtractFields and AcceptFields split a field-container clause into fields and
//     drop fragments that are not field expressions.
//
// Basic usage:
//
//	query := parser.ParseString(`
//	    SELECT id, customer_name, SUM(amount) AS total
//	    FROM orders
//	    GROUP BY id, customer_name
//	`)
//
//	for _, clause := range query.Clauses {
//		if clause.FieldContainer {
//			fields, _ := parser.AcceptFields(parser.ExtractFields(clause.Content))
//			fmt.Println(clause.Kind, fields)
//		}
//	}
//
// Anything that is not a recognised clause keyword at depth zero is carried through
// verbatim as clause content, so unsupported syntax degrades to less compact output
// rather than an error.
package parser
