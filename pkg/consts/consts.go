package consts

import "os"

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ConfigFile is the name of the optional project configuration file
	ConfigFile = "sqlpack.yaml"
)

const (
	// DefaultMaxCharsPerLine is the character budget for a packed field line in documents
	DefaultMaxCharsPerLine = 30000

	// DefaultHardCellCharLimit is the character budget for spreadsheet output. It stays below
	// SpreadsheetCellCeiling to leave some margin.
	DefaultHardCellCharLimit = 32500

	// SpreadsheetCellCeiling is the maximum number of characters a spreadsheet cell can hold
	SpreadsheetCellCeiling = 32767

	// DefaultIndentSize is the number of spaces prefixed to every field line
	DefaultIndentSize = 4

	// DefaultFieldSeparator separates fields sharing a line in conservative packing
	DefaultFieldSeparator = "    "

	// MinimalFieldSeparator is the fixed separator used by aggressive packing
	MinimalFieldSeparator = "    "

	// DefaultTargetReduction is the line reduction percentage the optimizer aims for
	DefaultTargetReduction = 80
)

// DefaultExtensions are the file extensions formatted when a directory is given
var DefaultExtensions = []string{".sql"}
