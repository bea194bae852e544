package format

import (
	"strings"

	"github.com/pseudomuto/sqlpack/pkg/consts"
)

// Mode selects the separator strategy used when packing fields onto a line.
type Mode int

const (
	// Aggressive packs fields with the fixed minimal separator to maximise fields per line.
	Aggressive Mode = iota

	// Conservative packs fields with the configured FieldSeparator.
	Conservative
)

func (m Mode) String() string {
	if m == Conservative {
		return "conservative"
	}

	return "aggressive"
}

// Target selects the character budget a query is formatted for.
type Target int

const (
	// Document formats for plain text output, packing lines up to MaxCharsPerLine.
	Document Target = iota

	// Spreadsheet formats for spreadsheet cells, packing lines up to HardCellCharLimit.
	Spreadsheet
)

func (t Target) String() string {
	if t == Spreadsheet {
		return "spreadsheet"
	}

	return "document"
}

// Options controls formatting behavior. Options are passed by value; a Formatter keeps
// its own copy and never changes it.
type Options struct {
	// MaxCharsPerLine is the character budget of a packed field line for documents,
	// indentation included.
	MaxCharsPerLine int

	// HardCellCharLimit is the character budget for spreadsheet output. Lines longer than
	// this are split over several rows.
	HardCellCharLimit int

	// IndentSize is the number of spaces prefixed to field and condition lines.
	IndentSize int

	// FieldSeparator separates fields sharing a line in conservative mode.
	FieldSeparator string

	// AggressivePacking packs with the fixed minimal separator instead of FieldSeparator.
	AggressivePacking bool

	// AddBlankLines inserts an empty line before each major clause.
	AddBlankLines bool

	// ExpandSubqueries lays out parenthesised subqueries over several indented lines
	// instead of keeping them inline.
	ExpandSubqueries bool
}

// Defaults are the standard formatting options.
var Defaults = Options{
	MaxCharsPerLine:   consts.DefaultMaxCharsPerLine,
	HardCellCharLimit: consts.DefaultHardCellCharLimit,
	IndentSize:        consts.DefaultIndentSize,
	FieldSeparator:    consts.DefaultFieldSeparator,
	AggressivePacking: true,
	AddBlankLines:     true,
}

// withDefaults replaces unset (non-positive or empty) budgets and separators with the
// values from Defaults. Boolean options are kept as given.
func (o Options) withDefaults() Options {
	if o.MaxCharsPerLine <= 0 {
		o.MaxCharsPerLine = Defaults.MaxCharsPerLine
	}

	if o.HardCellCharLimit <= 0 {
		o.HardCellCharLimit = Defaults.HardCellCharLimit
	}

	if o.IndentSize <= 0 {
		o.IndentSize = Defaults.IndentSize
	}

	if o.FieldSeparator == "" {
		o.FieldSeparator = Defaults.FieldSeparator
	}

	return o
}

// Mode returns the packing mode selected by AggressivePacking.
func (o Options) Mode() Mode {
	if o.AggressivePacking {
		return Aggressive
	}

	return Conservative
}

// Indent returns the indentation prefix for field and condition lines.
func (o Options) Indent() string {
	return strings.Repeat(" ", o.IndentSize)
}

// Budget returns the per-line character budget for target.
func (o Options) Budget(target Target) int {
	if target == Spreadsheet {
		return o.HardCellCharLimit
	}

	return o.MaxCharsPerLine
}
