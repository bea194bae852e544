package format

import (
	"math"
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/parser"
	"github.com/pseudomuto/sqlpack/pkg/utils"
)

type (
	// Stats describes the outcome of a formatting pass.
	Stats struct {
		// FieldCount is the number of fields found in the top-level field-container clauses.
		FieldCount int

		// LineCount is the number of non-blank lines of the formatted text.
		LineCount int

		// CharCount is the number of characters of the formatted text.
		CharCount int

		// OriginalLineCount is the number of lines of the query as supplied.
		OriginalLineCount int

		// ReductionPercent is the share of lines saved, never negative.
		ReductionPercent int

		ClauseCount   int
		HasSubqueries bool

		// Clauses breaks down the field-container clauses that were packed.
		Clauses []ClauseStats

		// MaxCharsUsed is the per-line budget the query was packed with.
		MaxCharsUsed int
		Target       Target

		// CompressionRatio is LineCount as a percentage of OriginalLineCount.
		CompressionRatio int

		// AverageLineLength is CharCount divided by LineCount.
		AverageLineLength int
	}

	// ClauseStats describes how one field-container clause was packed.
	ClauseStats struct {
		Clause         parser.ClauseKind
		OriginalFields int
		FormattedLines int
		FieldsPerLine  float64
	}
)

func computeStats(query *parser.Query, text string, fieldCount int, clauses []ClauseStats, budget int, target Target) Stats {
	stats := Stats{
		FieldCount:        fieldCount,
		LineCount:         countLines(text),
		CharCount:         utils.Width(text),
		OriginalLineCount: strings.Count(query.Original, "\n") + 1,
		ClauseCount:       len(query.Clauses),
		HasSubqueries:     query.HasSubqueries(),
		Clauses:           clauses,
		MaxCharsUsed:      budget,
		Target:            target,
	}

	orig := float64(stats.OriginalLineCount)
	stats.ReductionPercent = max(0, int(math.Round((orig-float64(stats.LineCount))/orig*100)))
	stats.CompressionRatio = int(math.Round(float64(stats.LineCount) / orig * 100))

	if stats.LineCount > 0 {
		stats.AverageLineLength = int(math.Round(float64(stats.CharCount) / float64(stats.LineCount)))
	}

	return stats
}

func newClauseStats(kind parser.ClauseKind, fields, lines int) ClauseStats {
	stats := ClauseStats{Clause: kind, OriginalFields: fields, FormattedLines: lines}
	if lines > 0 {
		stats.FieldsPerLine = math.Round(float64(fields)/float64(lines)*10) / 10
	}

	return stats
}

// countLines returns the number of non-blank lines of text.
func countLines(text string) int {
	n := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}

	return n
}
