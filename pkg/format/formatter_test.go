package format_test

import (
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/sqlpack/pkg/format"
	"github.com/pseudomuto/sqlpack/pkg/parser"
	"github.com/stretchr/testify/require"
)

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected error
	}{
		{name: "empty", query: "", expected: ErrEmptyInput},
		{name: "blank", query: "   \n\t", expected: ErrEmptyInput},
		{name: "only comments", query: "-- nothing\n/* here */", expected: ErrEmptyInput},
		{name: "unbalanced", query: "SELECT a FROM t WHERE (a > 1", expected: ErrUnbalancedParentheses},
		{name: "extra closing", query: "SELECT a) FROM t", expected: ErrUnbalancedParentheses},
		{name: "no clauses", query: "hello world", expected: ErrNoClausesFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New(Defaults).Format(tt.query, Document)
			require.Nil(t, result)
			require.Error(t, err)
			require.True(t, errors.Is(err, tt.expected))

			var formatErr *Error
			require.True(t, errors.As(err, &formatErr))
			require.NotEmpty(t, formatErr.Message)
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := errors.Wrap(&Error{Kind: NoClausesFound, Message: "nothing"}, "formatting query.sql")
	require.True(t, errors.Is(err, ErrNoClausesFound))
	require.False(t, errors.Is(err, ErrEmptyInput))
	require.Equal(t, "formatting query.sql: NoClausesFound: nothing", err.Error())
	require.Equal(t, "EmptyInput", ErrEmptyInput.Error())
}

func TestFormat(t *testing.T) {
	query := `
    SELECT id,
           name,
           email
    FROM users
`

	result, err := New(Defaults).Format(query, Document)
	require.NoError(t, err)
	require.Equal(t, "SELECT\n    id,    name,    email\n\nFROM users", result.Text)
	require.Empty(t, result.Warnings)

	require.Equal(t, Stats{
		FieldCount:        3,
		LineCount:         3,
		CharCount:         44,
		OriginalLineCount: 6,
		ReductionPercent:  50,
		ClauseCount:       2,
		Clauses: []ClauseStats{
			{Clause: parser.ClauseSelect, OriginalFields: 3, FormattedLines: 1, FieldsPerLine: 3},
		},
		MaxCharsUsed:      30000,
		Target:            Document,
		CompressionRatio:  50,
		AverageLineLength: 15,
	}, result.Stats)
}

func TestFormatPacksWithinBudget(t *testing.T) {
	opts := Defaults
	opts.MaxCharsPerLine = 40

	result, err := Format("SELECT id, customer_name, SUM(amount) AS total FROM orders GROUP BY id, customer_name", opts)
	require.NoError(t, err)

	expected := `SELECT
    id,    customer_name,
    SUM(amount) AS total

FROM orders

GROUP BY
    id,    customer_name`
	require.Equal(t, expected, result.Text)
	require.Len(t, result.Stats.Clauses, 2)
	require.Equal(t, 1.5, result.Stats.Clauses[0].FieldsPerLine)
}

func TestFormatConservative(t *testing.T) {
	opts := Defaults
	opts.MaxCharsPerLine = 20
	opts.AggressivePacking = false
	opts.FieldSeparator = " "

	result, err := Format("SELECT a, b, c FROM t", opts)
	require.NoError(t, err)
	require.Equal(t, "SELECT\n    a, b, c\n\nFROM t", result.Text)
}

func TestFormatWarnings(t *testing.T) {
	t.Run("dropped fields", func(t *testing.T) {
		result, err := Format("SELECT a, 42, b FROM t", Defaults)
		require.NoError(t, err)
		require.Equal(t, "SELECT\n    a,    b\n\nFROM t", result.Text)
		require.Equal(t, []string{`SELECT: dropped unaliased literal "42"`}, result.Warnings)
	})

	t.Run("fallback to original content", func(t *testing.T) {
		result, err := Format("SELECT 42 FROM t", Defaults)
		require.NoError(t, err)
		require.Equal(t, "SELECT\n    42\n\nFROM t", result.Text)
		require.Equal(t, []string{
			`SELECT: dropped unaliased literal "42"`,
			"SELECT: no formattable fields, keeping the original content",
		}, result.Warnings)
	})

	t.Run("clause order", func(t *testing.T) {
		result, err := Format("SELECT a WHERE x = 1 FROM t", Defaults)
		require.NoError(t, err)
		require.Contains(t, result.Warnings, "FROM clause is out of order")
	})
}

func TestFormatSpreadsheetBudget(t *testing.T) {
	result, err := New(Defaults).Format("SELECT a FROM t WHERE a IN (SELECT b FROM u)", Spreadsheet)
	require.NoError(t, err)
	require.Equal(t, 32500, result.Stats.MaxCharsUsed)
	require.Equal(t, Spreadsheet, result.Stats.Target)
	require.True(t, result.Stats.HasSubqueries)
}

func TestFormatExpandSubqueries(t *testing.T) {
	opts := Defaults
	opts.ExpandSubqueries = true
	opts.AddBlankLines = false

	result, err := Format("SELECT a, b FROM t WHERE a IN (SELECT DISTINCT x, y FROM u)", opts)
	require.NoError(t, err)

	expected := `SELECT
    a,    b
FROM t
WHERE a IN (
    SELECT DISTINCT
        x,    y
    FROM u
)`
	require.Equal(t, expected, result.Text)

	// subquery fields are not part of the top-level stats
	require.Equal(t, 2, result.Stats.FieldCount)
	require.Len(t, result.Stats.Clauses, 1)
}

func TestFormatIsDeterministic(t *testing.T) {
	query := "SELECT a, b, c FROM t WHERE a = 1 OR b = 2 ORDER BY a"
	formatter := New(Defaults)

	first, err := formatter.Format(query, Document)
	require.NoError(t, err)

	for range 5 {
		again, err := formatter.Format(query, Document)
		require.NoError(t, err)
		require.Equal(t, first.Text, again.Text)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	opts := New(Options{IndentSize: 2}).Options()
	require.Equal(t, Defaults.MaxCharsPerLine, opts.MaxCharsPerLine)
	require.Equal(t, Defaults.HardCellCharLimit, opts.HardCellCharLimit)
	require.Equal(t, Defaults.FieldSeparator, opts.FieldSeparator)
	require.Equal(t, 2, opts.IndentSize)
	require.Equal(t, Conservative, opts.Mode())
	require.Equal(t, "  ", opts.Indent())
}
