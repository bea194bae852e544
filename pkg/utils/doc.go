// Package utils provides common utility functions used throughout the sqlpack codebase.
//
// This package contains shared utilities that are used by multiple packages to avoid
// code duplication and ensure consistent behavior across the application.
//
// # Quote and Parenthesis Scanning (scanner.go)
//
// Several parts of sqlpack need to know whether a character sits inside a quoted
// literal or inside parentheses: the field extractor only splits on top-level commas,
// the condition splitter only breaks on top-level AND/OR, and the formatter rejects
// queries whose parentheses do not balance. They all share one state machine:
//
//	var s utils.Scanner
//	for _, ch := range "SUM(a, ',') AS x" {
//		s.Step(ch)
//		if ch == ',' && s.TopLevel() {
//			// split here
//		}
//	}
//
// A quote character opens a literal unless it is preceded by a backslash, and only
// the same kind of quote closes it. Parentheses are counted outside literals only.
//
//	depth := utils.ParenDepth("SELECT a FROM t WHERE (a > 1")
//	// Result: 1
//
//	parts := utils.SplitTopLevel("a, SUM(b, c), 'x,y'", ',')
//	// Result: ["a", " SUM(b, c)", " 'x,y'"]
//
// # Literal Utilities (literal.go)
//
//	utils.IsNumericLiteral("123.45") // true
//	utils.IsQuotedLiteral("'abc'")   // true
//	utils.Width("héllo")             // 5
//
// Width counts characters rather than bytes and is used for every character budget.
package utils
