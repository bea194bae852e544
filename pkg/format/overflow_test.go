package format_test

import (
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlpack/pkg/format"
	"github.com/pseudomuto/sqlpack/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestSplitForHardLimit(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		hardLimit int
		indent    string
		expected  []string
	}{
		{
			name:      "splits at delimiters",
			line:      "alpha, beta, gamma",
			hardLimit: 12,
			indent:    "  ",
			expected:  []string{"  alpha, ", "beta, gamma"},
		},
		{
			name:      "fits in one chunk",
			line:      "  a, b  ",
			hardLimit: 100,
			indent:    "    ",
			expected:  []string{"    a, b"},
		},
		{
			name:      "oversized span stands alone",
			line:      "supercalifragilistic tiny",
			hardLimit: 10,
			expected:  []string{"supercalifragilistic", " tiny"},
		},
		{
			name:      "blank line",
			line:      "   ",
			hardLimit: 10,
			expected:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, SplitForHardLimit(tt.line, tt.hardLimit, tt.indent))
		})
	}
}

func TestSplitForHardLimitReproducesLine(t *testing.T) {
	line := "id,    customer_name,    SUM(amount) AS total,    'a literal with spaces',    x"
	indent := "    "

	for _, limit := range []int{5, 12, 20, 40, 200} {
		chunks := SplitForHardLimit(line, limit, indent)
		require.Equal(t, indent+line, strings.Join(chunks, ""))

		for _, chunk := range chunks {
			if utils.Width(chunk) > limit {
				// only a single span may exceed the limit
				require.NotContains(t, strings.TrimSpace(strings.TrimLeft(chunk, ", ")), " ")
			}
		}
	}
}
