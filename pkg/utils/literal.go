package utils

import (
	"regexp"
	"unicode/utf8"
)

var numericLiteral = regexp.MustCompile(`^\d+(\.\d+)?$`)

// IsNumericLiteral checks if a string is an unsigned SQL numeric literal, the same
// shape the tokenizer classifies as a number.
//
// Examples:
//   - "123" -> true
//   - "123.45" -> true
//   - "-1" -> false (a sign is a separate token)
//   - "1e5" -> false
//   - "" -> false
func IsNumericLiteral(value string) bool {
	return numericLiteral.MatchString(value)
}

// IsQuotedLiteral checks if a string is wrapped in a matching pair of single or
// double quotes.
//
// Examples:
//   - "'abc'" -> true
//   - `"abc"` -> true
//   - "'abc\"" -> false
//   - "'" -> false
func IsQuotedLiteral(value string) bool {
	if len(value) < 2 {
		return false
	}

	first, last := value[0], value[len(value)-1]
	return (first == '\'' || first == '"') && first == last
}

// Width returns the number of characters in s. Character budgets (line lengths,
// spreadsheet cell limits) are measured in characters rather than bytes.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}
