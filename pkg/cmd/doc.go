// Package cmd provides the CLI commands of the sqlpack tool.
//
// # Available Commands
//
//   - fmt: Pack the field lists of SQL files, directories or stdin
//   - check: Report problems that prevent or complicate formatting
//
// # Command Structure
//
// Each command is built by a function returning a *cli.Command, following the
// urfave/cli/v3 pattern. The functions are provided to an fx application through
// Module and collected in the "commands" value group, and Run registers the root
// application with the fx lifecycle.
//
// # Global Options
//
//   - --dir, -d: Specify project directory (defaults to current directory)
//   - --config, -c: Config file within the project (defaults to sqlpack.yaml)
//   - --help, -h: Display command help
//   - --version: Display version information
//
// # Example Usage
//
//	sqlpack fmt report.sql                      # Format to stdout
//	sqlpack fmt -w queries/                     # Format a directory in place
//	sqlpack fmt --max-chars 120 --stats q.sql   # Custom budget with statistics
//	sqlpack fmt --spreadsheet - < q.sql         # CSV rows for spreadsheets
//	sqlpack check queries/                      # Validate before formatting
//
// # Configuration
//
// Formatting settings are read from sqlpack.yaml in the project directory when it
// exists. Flags given to a command override the file for that invocation.
package cmd
