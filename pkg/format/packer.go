package format

import (
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/consts"
	"github.com/pseudomuto/sqlpack/pkg/utils"
)

// PackedLine is a group of fields sharing one output line. Fields already carry their
// trailing comma.
type PackedLine struct {
	Fields    []string
	Separator string
}

// String joins the fields with the line's separator.
func (l PackedLine) String() string {
	return strings.Join(l.Fields, l.Separator)
}

// Width returns the number of characters of the line, without indentation.
func (l PackedLine) Width() int {
	return utils.Width(l.String())
}

// Pack arranges fields over as few lines as possible so that indent plus line stays
// within maxChars.
//
// Every field except the last gets a trailing comma unless it already ends with one.
// Fields are added greedily: a field joins the current line when it fits and starts a
// new line otherwise. Fields are never split or truncated, so a field that is wider
// than the budget on its own sits alone on its line. Aggressive mode joins fields with
// consts.MinimalFieldSeparator, Conservative mode with separator.
//
// Example:
//
//	lines := format.Pack([]string{"id", "customer_name", "SUM(amount) AS total"}, 40, "    ", format.Aggressive, "")
//	fmt.Println(format.RenderLines(lines, "    "))
//	// Output:
//	//     id,    customer_name,
//	//     SUM(amount) AS total
func Pack(fields []string, maxChars int, indent string, mode Mode, separator string) []PackedLine {
	if mode == Aggressive || separator == "" {
		separator = consts.MinimalFieldSeparator
	}

	var trimmed []string
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			trimmed = append(trimmed, field)
		}
	}

	var (
		available = maxChars - utils.Width(indent)
		sepWidth  = utils.Width(separator)
		lines     []PackedLine
		current   []string
		width     int
	)

	for i, field := range trimmed {
		if i < len(trimmed)-1 && !strings.HasSuffix(field, ",") {
			field += ","
		}

		fieldWidth := utils.Width(field)
		if len(current) > 0 && width+sepWidth+fieldWidth > available {
			lines = append(lines, PackedLine{Fields: current, Separator: separator})
			current, width = nil, 0
		}

		if len(current) > 0 {
			width += sepWidth
		}

		current = append(current, field)
		width += fieldWidth
	}

	if len(current) > 0 {
		lines = append(lines, PackedLine{Fields: current, Separator: separator})
	}

	return lines
}

// RenderLines prefixes indent to every line and joins them with newlines.
func RenderLines(lines []PackedLine, indent string) string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, indent+line.String())
	}

	return strings.Join(rendered, "\n")
}
