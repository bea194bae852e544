package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlpack/pkg/config"
	"github.com/pseudomuto/sqlpack/pkg/format"
	"github.com/pseudomuto/sqlpack/pkg/parser"
	"github.com/urfave/cli/v3"
)

// checkCmd creates a CLI command that reports the problems found in SQL queries before
// they are formatted. Every source is checked and its errors and warnings are printed;
// the command fails when at least one source has errors. Warnings alone never fail it.
//
// Example:
//
//	sqlpack check queries/
//	queries/broken.sql: error: unbalanced parentheses (off by 1)
//	queries/report.sql: warning: WHERE clause is out of order
//	queries/users.sql: ok
func checkCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Validate SQL files",
		ArgsUsage: "<path|->",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("exactly one path argument is required")
			}

			root := cmd.Root()
			sources, err := readSources(cmd.Args().First(), cfg, root.Reader)
			if err != nil {
				return err
			}

			failed := 0
			for _, src := range sources {
				v := checkSource(src)
				if !v.Valid() {
					failed++
				}

				if err := writeValidation(root.Writer, src.Name(), v); err != nil {
					return err
				}
			}

			if failed > 0 {
				return errors.Errorf("%d of %d file(s) failed validation", failed, len(sources))
			}

			return nil
		},
	}
}

// checkSource validates src and, when it is valid, adds the clause order warnings the
// formatter would report.
func checkSource(src source) format.Validation {
	v := format.Validate(src.SQL)
	if !v.Valid() {
		return v
	}

	query := parser.ParseString(src.SQL)
	v.Warnings = append(v.Warnings, format.CheckClauseOrder(query.Clauses)...)

	return v
}

func writeValidation(w io.Writer, name string, v format.Validation) error {
	var err error
	write := func(layout string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, layout, args...)
		}
	}

	for _, msg := range v.Errors {
		write("%s: error: %s\n", name, msg)
	}

	for _, msg := range v.Warnings {
		write("%s: warning: %s\n", name, msg)
	}

	if len(v.Errors) == 0 && len(v.Warnings) == 0 {
		write("%s: ok\n", name)
	}

	return errors.Wrap(err, "failed to write validation results")
}
