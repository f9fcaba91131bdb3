package file

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

var ErrOutsideBaseDir = errors.New("source path escapes the import directory")

// LocalSource opens import files below a fixed directory on the server.
type LocalSource struct {
	BaseDir string
}

func NewLocalSource(baseDir string) *LocalSource {
	if baseDir == "" {
		baseDir = "."
	}
	return &LocalSource{BaseDir: baseDir}
}

func (s *LocalSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	_ = ctx

	path, err := s.resolve(sourcePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open file %s", path)
	}
	return file, nil
}

func (s *LocalSource) resolve(sourcePath string) (string, error) {
	if filepath.IsAbs(sourcePath) {
		return "", ErrOutsideBaseDir
	}
	base, err := filepath.Abs(s.BaseDir)
	if err != nil {
		return "", errors.Wrap(err, "resolve import directory")
	}
	path := filepath.Join(base, sourcePath)
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideBaseDir
	}
	return path, nil
}
