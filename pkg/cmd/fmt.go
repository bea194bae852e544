package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlpack/pkg/config"
	"github.com/pseudomuto/sqlpack/pkg/consts"
	"github.com/pseudomuto/sqlpack/pkg/format"
	"github.com/urfave/cli/v3"
)

// fmtSettings collects the flags of a single fmt invocation.
type fmtSettings struct {
	WriteBack       bool
	Spreadsheet     bool
	Optimize        bool
	Stats           bool
	TargetReduction int
	Options         format.Options
}

// fmtCmd creates a CLI command that packs the field lists of SQL queries.
//
// The command formats a single file, every matching file under a directory, or a
// query read from standard input when the path is "-". Formatted text is written to
// standard output unless -w is given, in which case files are rewritten in place.
//
// Formatting settings come from sqlpack.yaml when the project has one and can be
// overridden per invocation:
//   - --max-chars: character budget of a packed line
//   - --indent: number of spaces prefixed to field lines
//   - --conservative: separate fields with the configured separator
//   - --expand-subqueries: lay out parenthesised SELECTs recursively
//
// Output modes:
//   - --spreadsheet: write CSV with one cell per row, each cell within the hard limit
//   - --optimize: try several budgets and keep the best scoring layout
//   - --stats: print formatting statistics to standard error
//
// Examples:
//
//	# Format a query to stdout
//	sqlpack fmt report.sql
//
//	# Format every query under queries/ in place
//	sqlpack fmt -w queries/
//
//	# Prepare a query for pasting into a spreadsheet
//	cat report.sql | sqlpack fmt --spreadsheet -
func fmtCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "Format SQL files",
		ArgsUsage: "<path|->",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Write result to source files instead of stdout",
			},
			&cli.BoolFlag{
				Name:  "spreadsheet",
				Usage: "Write spreadsheet rows as CSV instead of text",
			},
			&cli.BoolFlag{
				Name:  "optimize",
				Usage: "Try several line budgets and keep the best layout",
			},
			&cli.IntFlag{
				Name:  "target-reduction",
				Usage: "Percentage of lines the optimizer aims to save",
				Value: consts.DefaultTargetReduction,
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print formatting statistics to stderr",
			},
			&cli.IntFlag{
				Name:  "max-chars",
				Usage: "Character budget of a packed line",
			},
			&cli.IntFlag{
				Name:  "indent",
				Usage: "Number of spaces before field lines",
			},
			&cli.BoolFlag{
				Name:  "conservative",
				Usage: "Separate fields with the configured field separator",
			},
			&cli.BoolFlag{
				Name:  "expand-subqueries",
				Usage: "Format subqueries recursively",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			settings, err := newFmtSettings(cmd, cfg)
			if err != nil {
				return err
			}

			root := cmd.Root()
			sources, err := readSources(cmd.Args().First(), cfg, root.Reader)
			if err != nil {
				return err
			}

			for _, src := range sources {
				if err := formatSource(src, settings, root.Writer, root.ErrWriter); err != nil {
					return errors.Wrapf(err, "failed to format SQL in file: %s", src.Name())
				}
			}

			return nil
		},
	}
}

func newFmtSettings(cmd *cli.Command, cfg *config.Config) (fmtSettings, error) {
	s := fmtSettings{
		WriteBack:       cmd.Bool("write"),
		Spreadsheet:     cmd.Bool("spreadsheet"),
		Optimize:        cmd.Bool("optimize"),
		Stats:           cmd.Bool("stats"),
		TargetReduction: cmd.Int("target-reduction"),
		Options:         cfg.Options(),
	}

	if s.WriteBack && s.Spreadsheet {
		return s, errors.New("--write cannot be combined with --spreadsheet")
	}

	if s.Optimize && s.Spreadsheet {
		return s, errors.New("--optimize cannot be combined with --spreadsheet")
	}

	if s.WriteBack && cmd.Args().First() == stdinPath {
		return s, errors.New("--write cannot be used with stdin")
	}

	if cmd.IsSet("max-chars") {
		if cmd.Int("max-chars") <= 0 {
			return s, errors.Errorf("--max-chars must be positive, got %d", cmd.Int("max-chars"))
		}

		s.Options.MaxCharsPerLine = cmd.Int("max-chars")
	}

	if cmd.IsSet("indent") {
		if cmd.Int("indent") <= 0 {
			return s, errors.Errorf("--indent must be positive, got %d", cmd.Int("indent"))
		}

		s.Options.IndentSize = cmd.Int("indent")
	}

	if cmd.IsSet("conservative") {
		s.Options.AggressivePacking = !cmd.Bool("conservative")
	}

	if cmd.IsSet("expand-subqueries") {
		s.Options.ExpandSubqueries = cmd.Bool("expand-subqueries")
	}

	return s, nil
}

// formatSource formats a single query and writes it to out, or back to its file. Files
// that hold nothing but whitespace are left alone.
func formatSource(src source, s fmtSettings, out, errOut io.Writer) error {
	if strings.TrimSpace(src.SQL) == "" {
		slog.Debug("Skipping empty file", "path", src.Name())
		return nil
	}

	formatter := format.New(s.Options)

	if s.Spreadsheet {
		rows, err := formatter.Rows(src.SQL)
		if err != nil {
			return err
		}

		logWarnings(src, rows.Warnings)
		if s.Stats {
			writeStats(errOut, src.Name(), rows.Stats)
		}

		return writeRows(out, rows.Rows)
	}

	var result *format.Result
	if s.Optimize {
		opt, err := formatter.Optimize(src.SQL, s.TargetReduction)
		if err != nil {
			return err
		}

		slog.Debug("Optimized line budget", "path", src.Name(), "max_chars", opt.MaxCharsPerLine, "score", opt.Score)
		result = opt.Result
	} else {
		res, err := formatter.Format(src.SQL, format.Document)
		if err != nil {
			return err
		}

		result = res
	}

	logWarnings(src, result.Warnings)
	if s.Stats {
		writeStats(errOut, src.Name(), result.Stats)
	}

	formatted := result.Text + "\n"

	if s.WriteBack {
		if err := os.WriteFile(src.Path, []byte(formatted), consts.ModeFile); err != nil {
			return errors.Wrapf(err, "failed to write formatted content to file: %s", src.Path)
		}

		return nil
	}

	if _, err := fmt.Fprint(out, formatted); err != nil {
		return errors.Wrap(err, "failed to write formatted content to output")
	}

	return nil
}

// writeRows writes one CSV record per row so every row lands in its own cell.
func writeRows(w io.Writer, rows []string) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		if err := cw.Write([]string{row}); err != nil {
			return errors.Wrap(err, "failed to write spreadsheet row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "failed to write spreadsheet rows")
}

func logWarnings(src source, warnings []string) {
	for _, w := range warnings {
		slog.Warn("Formatting warning", "path", src.Name(), "warning", w)
	}
}

// writeStats prints stats as a summary table, followed by a table of the packed
// field-container clauses when there are any.
func writeStats(w io.Writer, name string, stats format.Stats) {
	fmt.Fprintf(w, "%s:\n", name)

	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.SetStyle(table.StyleLight)
	summary.AppendRows([]table.Row{
		{"Target", stats.Target},
		{"Max chars per line", stats.MaxCharsUsed},
		{"Fields", stats.FieldCount},
		{"Lines", fmt.Sprintf("%d (was %d)", stats.LineCount, stats.OriginalLineCount)},
		{"Reduction", fmt.Sprintf("%d%%", stats.ReductionPercent)},
		{"Characters", stats.CharCount},
		{"Average line length", stats.AverageLineLength},
		{"Clauses", stats.ClauseCount},
		{"Subqueries", stats.HasSubqueries},
	})
	summary.Render()

	if len(stats.Clauses) == 0 {
		return
	}

	clauses := table.NewWriter()
	clauses.SetOutputMirror(w)
	clauses.SetStyle(table.StyleLight)
	clauses.AppendHeader(table.Row{"Clause", "Fields", "Lines", "Fields/Line"})
	for _, c := range stats.Clauses {
		clauses.AppendRow(table.Row{c.Clause, c.OriginalFields, c.FormattedLines, fmt.Sprintf("%.1f", c.FieldsPerLine)})
	}
	clauses.Render()
}
