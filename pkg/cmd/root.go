package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pseudomuto/sqlpack/pkg/config"
	"github.com/pseudomuto/sqlpack/pkg/consts"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

type (
	Params struct {
		fx.In

		Args       []string
		Commands   []*cli.Command `group:"commands"`
		Config     *config.Config
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}
)

// Run registers the sqlpack CLI application with the fx lifecycle. The application runs
// once the fx app starts and shuts the app down with the command's exit code.
//
// Global Flags:
//   - --dir, -d: Project directory (defaults to current directory)
//   - --config, -c: Config file, relative to the project directory (defaults to sqlpack.yaml)
//
// The process changes to the project directory before any command runs, then loads the
// config file. A missing config file is only an error when --config was given
// explicitly; otherwise the default configuration is used.
//
// Example usage:
//
//	sqlpack fmt report.sql
//	sqlpack --dir ./analytics fmt -w queries/
//	sqlpack -c team.yaml check queries/
func Run(p Params) {
	cli.VersionPrinter = func(cmd *cli.Command) {
		fmt.Fprintln(cmd.Writer, "Version:", p.Version.Version)
		fmt.Fprintln(cmd.Writer, "Commit:", p.Version.Commit)
		fmt.Fprintln(cmd.Writer, "Date:", p.Version.Timestamp)
	}

	app := newApp(p.Version.Version, p.Config, p.Commands)

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Error("Error running command", "err", err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

func newApp(version string, cfg *config.Config, commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  "sqlpack",
		Usage: "Pack the field lists of SQL queries into as few lines as possible",
		Description: `sqlpack reformats SQL queries so that SELECT, GROUP BY and ORDER BY
field lists fill each line up to a character budget, making long queries
shorter to read in documents and safe to paste into spreadsheet cells.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "dir",
				Aliases:     []string{"d"},
				Usage:       "the project directory",
				Value:       ".",
				DefaultText: "Current directory",
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "the sqlpack config file",
				Sources: cli.EnvVars("SQLPACK_CONFIG"),
				Value:   consts.ConfigFile,
				Config: cli.StringConfig{
					TrimSpace: true,
				},
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := os.Chdir(cmd.String("dir")); err != nil {
				return ctx, err
			}

			path := cmd.String("config")
			if _, err := os.Stat(path); os.IsNotExist(err) && !cmd.IsSet("config") {
				*cfg = *config.Default()
				return ctx, nil
			}

			return ctx, cfg.Load(path)
		},
		Commands: commands,
	}
}
