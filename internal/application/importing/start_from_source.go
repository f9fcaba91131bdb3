package importing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// SourceOpener opens a file that already lives on the server side.
type SourceOpener interface {
	Open(ctx context.Context, sourcePath string) (io.ReadCloser, error)
}

type StartFromSourceInput struct {
	Entity     string
	SourcePath string
}

// StartFromSource begins an import session from a server-side file instead of
// an upload.
type StartFromSource interface {
	Execute(ctx context.Context, in StartFromSourceInput) (PreviewReport, error)
}

type startFromSource struct {
	registry *Registry
	source   SourceOpener
}

func NewStartFromSource(registry *Registry, source SourceOpener) StartFromSource {
	return &startFromSource{registry: registry, source: source}
}

func (uc *startFromSource) Execute(ctx context.Context, in StartFromSourceInput) (PreviewReport, error) {
	sourcePath := strings.TrimSpace(in.SourcePath)
	if sourcePath == "" || !SupportedFile(sourcePath) {
		return PreviewReport{}, ErrInvalidImportSource
	}

	importer, err := uc.registry.Get(in.Entity)
	if err != nil {
		return PreviewReport{}, err
	}

	rc, err := uc.source.Open(ctx, sourcePath)
	if err != nil {
		return PreviewReport{}, fmt.Errorf("%w: %v", ErrInvalidImportSource, err)
	}
	defer rc.Close()

	return importer.Start(ctx, filepath.Base(sourcePath), rc)
}

// SupportedFile reports whether name has an extension the readers accept.
func SupportedFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".csv":
		return true
	default:
		return false
	}
}
