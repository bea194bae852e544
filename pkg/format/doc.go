// Package format packs the field lists of SQL queries into as few lines as possible.
//
// A query is split into its top-level clauses by the parser package. The comma
// separated fields of every SELECT, GROUP BY and ORDER BY list are then packed
// greedily onto lines that stay within a character budget, and the clauses are
// reassembled into readable text, or into rows that fit spreadsheet cells.
//
// Key features:
//   - Greedy line packing that never splits or drops a field's text
//   - Document and spreadsheet budgets, with long lines spread over several rows
//   - One-line rendering of simple clauses, AND/OR breaking of complex conditions
//   - Optional recursive layout of subqueries
//   - Formatting statistics and a budget optimizer
//   - Typed errors for empty input, missing clauses and unbalanced parentheses
//
// Usage:
//
//	// Object-oriented API with default options
//	formatter := format.New(format.Defaults)
//	result, err := formatter.Format(query, format.Document)
//
//	// Custom options
//	opts := format.Defaults
//	opts.MaxCharsPerLine = 120
//	opts.AggressivePacking = false
//	result, err := format.New(opts).Format(query, format.Document)
//
//	// Functional API
//	result, err := format.Format(query, format.Defaults)
//
//	// Spreadsheet rows
//	rows, err := format.FormatRows(query, format.Defaults)
//
// Example output for a 40 character budget:
//
//	SELECT
//	    id,    customer_name,
//	    SUM(amount) AS total
//
//	FROM orders
//
//	GROUP BY
//	    id,    customer_name
//
// Formatters hold nothing but their options and are safe for concurrent use.
package format
