package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlpack/pkg/consts"
	"github.com/pseudomuto/sqlpack/pkg/format"
	"github.com/pseudomuto/sqlpack/pkg/utils"
	"gopkg.in/yaml.v3"
)

type (
	// Format holds the formatting settings of a project. Unset values fall back to
	// format.Defaults.
	Format struct {
		// MaxCharsPerLine is the character budget of a packed field line in documents
		MaxCharsPerLine int `yaml:"max_chars_per_line,omitempty"`

		// HardCellCharLimit is the character budget of spreadsheet cells. It may not exceed
		// consts.SpreadsheetCellCeiling.
		HardCellCharLimit int `yaml:"hard_cell_char_limit,omitempty"`

		// IndentSize is the number of spaces prefixed to field lines
		IndentSize int `yaml:"indent_size,omitempty"`

		// FieldSeparator separates fields sharing a line when packing conservatively
		FieldSeparator string `yaml:"field_separator,omitempty"`

		AggressivePacking *bool `yaml:"aggressive_packing,omitempty"`
		AddBlankLines     *bool `yaml:"add_blank_lines,omitempty"`
		ExpandSubqueries  *bool `yaml:"expand_subqueries,omitempty"`
	}

	// Config represents the sqlpack project configuration.
	Config struct {
		// Format contains the formatting settings
		Format Format `yaml:"format"`

		// Extensions lists the file extensions formatted when a directory is given.
		// Defaults to consts.DefaultExtensions.
		Extensions []string `yaml:"extensions,omitempty"`
	}
)

// LoadConfig parses a project configuration from the provided io.Reader.
//
// The reader must hold a YAML document. Budgets that are not set fall back to
// format.Defaults, and the result is validated: budgets may not be negative and the
// spreadsheet budget may not exceed the spreadsheet cell ceiling.
//
// Example:
//
//	yamlData := `
//	format:
//	  max_chars_per_line: 120
//	  aggressive_packing: false
//	`
//
//	cfg, err := config.LoadConfig(strings.NewReader(yamlData))
//	if err != nil {
//		panic(err)
//	}
//
//	formatter := format.New(cfg.Options())
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if len(cfg.Extensions) == 0 {
		cfg.Extensions = consts.DefaultExtensions
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigFile loads a project configuration from the specified file path.
// This is a convenience function that opens the file and calls LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}

	return cfg, nil
}

// Default returns the configuration used when a project has no config file.
func Default() *Config {
	return &Config{Extensions: consts.DefaultExtensions}
}

// Load replaces c with the configuration stored at path. c is left untouched when
// the file cannot be loaded.
func (c *Config) Load(path string) error {
	loaded, err := LoadConfigFile(path)
	if err != nil {
		return err
	}

	*c = *loaded
	return nil
}

// Validate checks the configured budgets.
func (c *Config) Validate() error {
	f := c.Format

	if f.MaxCharsPerLine < 0 {
		return errors.Errorf("max_chars_per_line must be positive, got %d", f.MaxCharsPerLine)
	}

	if f.HardCellCharLimit < 0 {
		return errors.Errorf("hard_cell_char_limit must be positive, got %d", f.HardCellCharLimit)
	}

	if f.HardCellCharLimit > consts.SpreadsheetCellCeiling {
		return errors.Errorf(
			"hard_cell_char_limit must not exceed %d, got %d",
			consts.SpreadsheetCellCeiling,
			f.HardCellCharLimit,
		)
	}

	if f.IndentSize < 0 {
		return errors.Errorf("indent_size must be positive, got %d", f.IndentSize)
	}

	if f.FieldSeparator != "" && strings.TrimSpace(f.FieldSeparator) != "" {
		return errors.Errorf("field_separator must only contain whitespace, got %q", f.FieldSeparator)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Errorf("extension %q must start with a dot", ext)
		}
	}

	return nil
}

// Options returns the formatting options described by the configuration.
func (c *Config) Options() format.Options {
	opts := format.Defaults
	f := c.Format

	if f.MaxCharsPerLine > 0 {
		opts.MaxCharsPerLine = f.MaxCharsPerLine
	}

	if f.HardCellCharLimit > 0 {
		opts.HardCellCharLimit = f.HardCellCharLimit
	}

	if f.IndentSize > 0 {
		opts.IndentSize = f.IndentSize
	}

	if f.FieldSeparator != "" {
		opts.FieldSeparator = f.FieldSeparator
	}

	opts.AggressivePacking = utils.ValueOr(f.AggressivePacking, opts.AggressivePacking)
	opts.AddBlankLines = utils.ValueOr(f.AddBlankLines, opts.AddBlankLines)
	opts.ExpandSubqueries = utils.ValueOr(f.ExpandSubqueries, opts.ExpandSubqueries)

	return opts
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}

	return false
}
