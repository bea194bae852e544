package utils_test

import (
	"testing"

	"github.com/pseudomuto/sqlpack/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestIsNumericLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "integer", input: "123", expected: true},
		{name: "decimal", input: "123.45", expected: true},
		{name: "zero", input: "0", expected: true},
		{name: "negative", input: "-1", expected: false},
		{name: "trailing period", input: "123.", expected: false},
		{name: "scientific notation", input: "1e5", expected: false},
		{name: "letters", input: "abc", expected: false},
		{name: "empty", input: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.IsNumericLiteral(tt.input))
		})
	}
}

func TestIsQuotedLiteral(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "single quoted", input: "'abc'", expected: true},
		{name: "double quoted", input: `"abc"`, expected: true},
		{name: "empty literal", input: "''", expected: true},
		{name: "mismatched", input: `'abc"`, expected: false},
		{name: "lone quote", input: "'", expected: false},
		{name: "bare word", input: "abc", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, utils.IsQuotedLiteral(tt.input))
		})
	}
}

func TestWidth(t *testing.T) {
	require.Equal(t, 0, utils.Width(""))
	require.Equal(t, 5, utils.Width("hello"))
	require.Equal(t, 4, utils.Width("añño"))
}
