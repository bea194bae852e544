package cmd

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlpack/pkg/config"
)

const (
	// stdinPath is the path argument that selects standard input.
	stdinPath = "-"

	// stdinName names standard input in messages.
	stdinName = "<stdin>"
)

// source is a query read from a file or from standard input.
type source struct {
	Path string
	SQL  string
}

// Name returns the name used for the source in output and errors.
func (s source) Name() string {
	if s.Path == stdinPath {
		return stdinName
	}

	return s.Path
}

// IsStdin reports whether the source was read from standard input.
func (s source) IsStdin() bool {
	return s.Path == stdinPath
}

// readSources loads the queries named by path. A path of "-" reads r, a directory is
// walked recursively for files matching the configured extensions (in lexicographical
// order) and anything else is read as a single file.
func readSources(path string, cfg *config.Config, r io.Reader) ([]source, error) {
	if path == stdinPath {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read SQL from stdin")
		}

		return []source{{Path: stdinPath, SQL: string(data)}}, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to access path: %s", path)
	}

	if !info.IsDir() {
		src, err := readSource(path)
		if err != nil {
			return nil, err
		}

		return []source{src}, nil
	}

	var sources []source
	err = filepath.WalkDir(path, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !cfg.Matches(file) {
			return nil
		}

		src, err := readSource(file)
		if err != nil {
			return err
		}

		sources = append(sources, src)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk directory: %s", path)
	}

	if len(sources) == 0 {
		return nil, errors.Errorf("no SQL files found in directory: %s", path)
	}

	return sources, nil
}

func readSource(path string) (source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return source{}, errors.Wrapf(err, "failed to read file: %s", path)
	}

	return source{Path: path, SQL: string(data)}, nil
}
