package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pseudomuto/sqlpack/pkg/config"
	"github.com/pseudomuto/sqlpack/pkg/consts"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

const (
	unformattedSQL = "SELECT id, name, email FROM users"
	formattedSQL   = "SELECT\n    id,    name,    email\n\nFROM users\n"
)

// runFmt runs the fmt command as the root of a test app and returns stdout and stderr.
func runFmt(t *testing.T, cfg *config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()

	command := fmtCmd(cfg)

	var out, errOut bytes.Buffer
	app := &cli.Command{
		Name:      "test",
		Flags:     command.Flags,
		Action:    command.Action,
		Reader:    strings.NewReader(stdin),
		Writer:    &out,
		ErrWriter: &errOut,
	}

	err := app.Run(context.Background(), append([]string{"test"}, args...))
	return out.String(), errOut.String(), err
}

func writeSQL(t *testing.T, path, sql string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
	require.NoError(t, os.WriteFile(path, []byte(sql), consts.ModeFile))
}

func TestFmtCommand_RequiresPath(t *testing.T) {
	_, _, err := runFmt(t, config.Default(), "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one path argument is required")
}

func TestFmtCommand_MultipleArguments(t *testing.T) {
	_, _, err := runFmt(t, config.Default(), "", "file1.sql", "file2.sql")
	require.Error(t, err)
	require.Contains(t, err.Error(), "exactly one path argument is required")
}

func TestFmtCommand_SingleFile(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "users.sql")
	writeSQL(t, sqlFile, unformattedSQL)

	out, _, err := runFmt(t, config.Default(), "", sqlFile)
	require.NoError(t, err)
	require.Equal(t, formattedSQL, out)

	// the source is untouched
	content, err := os.ReadFile(sqlFile)
	require.NoError(t, err)
	require.Equal(t, unformattedSQL, string(content))
}

func TestFmtCommand_SingleFileWriteBack(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "users.sql")
	writeSQL(t, sqlFile, unformattedSQL)

	originalInfo, err := os.Stat(sqlFile)
	require.NoError(t, err)

	out, _, err := runFmt(t, config.Default(), "", "-w", sqlFile)
	require.NoError(t, err)
	require.Empty(t, out)

	content, err := os.ReadFile(sqlFile)
	require.NoError(t, err)
	require.Equal(t, formattedSQL, string(content))

	newInfo, err := os.Stat(sqlFile)
	require.NoError(t, err)
	require.Equal(t, originalInfo.Mode(), newInfo.Mode())

	// formatting is idempotent
	_, _, err = runFmt(t, config.Default(), "", "-w", sqlFile)
	require.NoError(t, err)

	content, err = os.ReadFile(sqlFile)
	require.NoError(t, err)
	require.Equal(t, formattedSQL, string(content))
}

func TestFmtCommand_Stdin(t *testing.T) {
	out, _, err := runFmt(t, config.Default(), unformattedSQL, "-")
	require.NoError(t, err)
	require.Equal(t, formattedSQL, out)

	_, _, err = runFmt(t, config.Default(), unformattedSQL, "-w", "-")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--write cannot be used with stdin")
}

func TestFmtCommand_Directory(t *testing.T) {
	tmpDir := t.TempDir()
	writeSQL(t, filepath.Join(tmpDir, "a.sql"), "SELECT a1, a2 FROM first")
	writeSQL(t, filepath.Join(tmpDir, "nested", "b.sql"), "SELECT b1, b2 FROM second")
	writeSQL(t, filepath.Join(tmpDir, "readme.txt"), "Not SQL")

	out, _, err := runFmt(t, config.Default(), "", tmpDir)
	require.NoError(t, err)

	expected := "SELECT\n    a1,    a2\n\nFROM first\n" +
		"SELECT\n    b1,    b2\n\nFROM second\n"
	require.Equal(t, expected, out)
}

func TestFmtCommand_DirectoryWriteBack(t *testing.T) {
	tmpDir := t.TempDir()
	file1 := filepath.Join(tmpDir, "a.sql")
	file2 := filepath.Join(tmpDir, "nested", "b.sql")
	writeSQL(t, file1, unformattedSQL)
	writeSQL(t, file2, unformattedSQL)

	_, _, err := runFmt(t, config.Default(), "", "-w", tmpDir)
	require.NoError(t, err)

	for _, file := range []string{file1, file2} {
		content, err := os.ReadFile(file)
		require.NoError(t, err)
		require.Equal(t, formattedSQL, string(content))
	}
}

func TestFmtCommand_ConfiguredExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	writeSQL(t, filepath.Join(tmpDir, "job.hql"), unformattedSQL)
	writeSQL(t, filepath.Join(tmpDir, "skipped.sql"), "SELECT skipped FROM nowhere")

	cfg, err := config.LoadConfig(strings.NewReader("extensions: [.hql]"))
	require.NoError(t, err)

	out, _, err := runFmt(t, cfg, "", tmpDir)
	require.NoError(t, err)
	require.Equal(t, formattedSQL, out)
}

func TestFmtCommand_EmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeSQL(t, filepath.Join(tmpDir, "readme.txt"), "Not SQL")

	_, _, err := runFmt(t, config.Default(), "", tmpDir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no SQL files found")
}

func TestFmtCommand_NonexistentPath(t *testing.T) {
	_, _, err := runFmt(t, config.Default(), "", "/nonexistent/path")
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to access path")
}

func TestFmtCommand_EmptyFile(t *testing.T) {
	sqlFile := filepath.Join(t.TempDir(), "empty.sql")
	writeSQL(t, sqlFile, "  \n")

	out, _, err := runFmt(t, config.Default(), "", sqlFile)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFmtCommand_FormatErrors(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		err  string
	}{
		{name: "unbalanced", sql: "SELECT a FROM t WHERE (a > 1", err: "UnbalancedParentheses"},
		{name: "no clauses", sql: "hello world", err: "NoClausesFound"},
		{name: "only comments", sql: "-- nothing to see", err: "EmptyInput"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sqlFile := filepath.Join(t.TempDir(), "invalid.sql")
			writeSQL(t, sqlFile, tt.sql)

			_, _, err := runFmt(t, config.Default(), "", sqlFile)
			require.Error(t, err)
			require.Contains(t, err.Error(), "failed to format SQL in file: "+sqlFile)
			require.Contains(t, err.Error(), tt.err)
		})
	}
}

func TestFmtCommand_Overrides(t *testing.T) {
	t.Run("max chars", func(t *testing.T) {
		out, _, err := runFmt(t, config.Default(), unformattedSQL, "--max-chars", "16", "-")
		require.NoError(t, err)
		require.Equal(t, "SELECT\n    id,    name,\n    email\n\nFROM users\n", out)
	})

	t.Run("indent", func(t *testing.T) {
		out, _, err := runFmt(t, config.Default(), unformattedSQL, "--indent", "2", "-")
		require.NoError(t, err)
		require.Equal(t, "SELECT\n  id,    name,    email\n\nFROM users\n", out)
	})

	t.Run("conservative", func(t *testing.T) {
		cfg, err := config.LoadConfig(strings.NewReader("format:\n  field_separator: \" \"\n"))
		require.NoError(t, err)

		out, _, err := runFmt(t, cfg, unformattedSQL, "--conservative", "-")
		require.NoError(t, err)
		require.Equal(t, "SELECT\n    id, name, email\n\nFROM users\n", out)
	})

	t.Run("config values", func(t *testing.T) {
		cfg, err := config.LoadConfig(strings.NewReader("format:\n  indent_size: 2\n  add_blank_lines: false\n"))
		require.NoError(t, err)

		out, _, err := runFmt(t, cfg, unformattedSQL, "-")
		require.NoError(t, err)
		require.Equal(t, "SELECT\n  id,    name,    email\nFROM users\n", out)
	})

	t.Run("invalid values", func(t *testing.T) {
		_, _, err := runFmt(t, config.Default(), unformattedSQL, "--max-chars", "0", "-")
		require.EqualError(t, err, "--max-chars must be positive, got 0")

		_, _, err = runFmt(t, config.Default(), unformattedSQL, "--indent=-1", "-")
		require.EqualError(t, err, "--indent must be positive, got -1")
	})
}

func TestFmtCommand_Spreadsheet(t *testing.T) {
	out, _, err := runFmt(t, config.Default(), unformattedSQL, "--spreadsheet", "-")
	require.NoError(t, err)
	require.Equal(t, "SELECT\n\"    id,    name,    email\"\nFROM users\n", out)

	_, _, err = runFmt(t, config.Default(), unformattedSQL, "--spreadsheet", "-w", "q.sql")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--write cannot be combined with --spreadsheet")

	_, _, err = runFmt(t, config.Default(), unformattedSQL, "--spreadsheet", "--optimize", "-")
	require.Error(t, err)
	require.Contains(t, err.Error(), "--optimize cannot be combined with --spreadsheet")
}

func TestFmtCommand_Optimize(t *testing.T) {
	out, _, err := runFmt(t, config.Default(), unformattedSQL, "--optimize", "-")
	require.NoError(t, err)
	require.Equal(t, formattedSQL, out)
}

func TestFmtCommand_Stats(t *testing.T) {
	out, errOut, err := runFmt(t, config.Default(), unformattedSQL, "--stats", "-")
	require.NoError(t, err)
	require.Equal(t, formattedSQL, out)

	require.True(t, strings.HasPrefix(errOut, "<stdin>:\n"))
	require.Contains(t, errOut, "Target")
	require.Contains(t, errOut, "document")
	require.Contains(t, errOut, "Lines")
	require.Contains(t, errOut, "3 (was 1)")
	require.Contains(t, errOut, "CLAUSE")
	require.Contains(t, errOut, "SELECT")
	require.Contains(t, errOut, "3.0")

	// clause table is omitted when nothing was packed
	_, errOut, err = runFmt(t, config.Default(), "SELECT FROM t", "--stats", "-")
	require.NoError(t, err)
	require.Contains(t, errOut, "Fields")
	require.NotContains(t, errOut, "CLAUSE")
}

func TestFmtCommand_FlagConfiguration(t *testing.T) {
	command := fmtCmd(config.Default())

	require.Equal(t, "fmt", command.Name)
	require.Equal(t, "Format SQL files", command.Usage)
	require.Equal(t, "<path|->", command.ArgsUsage)

	writeFlag := command.Flags[0].(*cli.BoolFlag)
	require.Equal(t, "write", writeFlag.Name)
	require.Equal(t, []string{"w"}, writeFlag.Aliases)

	names := make([]string, 0, len(command.Flags))
	for _, flag := range command.Flags {
		names = append(names, flag.Names()[0])
	}

	require.Equal(t, []string{
		"write",
		"spreadsheet",
		"optimize",
		"target-reduction",
		"stats",
		"max-chars",
		"indent",
		"conservative",
		"expand-subqueries",
	}, names)
}
