package format

import (
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/utils"
)

// Rows is a query formatted as spreadsheet rows, one cell per row.
type Rows struct {
	Rows     []string
	Stats    Stats
	Warnings []string
}

// Rows formats query for the Spreadsheet target and turns every non-blank line into a
// row. A line longer than HardCellCharLimit is spread over several rows with
// SplitForHardLimit, keeping its indentation on the first of them.
func (f *Formatter) Rows(query string) (*Rows, error) {
	result, err := f.Format(query, Spreadsheet)
	if err != nil {
		return nil, err
	}

	rows := &Rows{Stats: result.Stats, Warnings: result.Warnings}
	for _, line := range strings.Split(result.Text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if utils.Width(line) <= f.opts.HardCellCharLimit {
			rows.Rows = append(rows.Rows, line)
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		rows.Rows = append(rows.Rows, SplitForHardLimit(line, f.opts.HardCellCharLimit, indent)...)
	}

	return rows, nil
}

// FormatRows formats query as spreadsheet rows with a new Formatter built from opts.
func FormatRows(query string, opts Options) (*Rows, error) {
	return New(opts).Rows(query)
}
