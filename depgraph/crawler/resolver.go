package crawler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/LegacyCodeHQ/crawlgraph/source"
)

// Resolver turns a path into an Outcome by consulting the filesystem.
type Resolver struct {
	fsys     source.FileSystem
	classify Classifier
	logger   *slog.Logger
}

// NewResolver creates a Resolver. A nil classifier falls back to ClassifyMIMEType
// and a nil logger to slog.Default().
func NewResolver(fsys source.FileSystem, classify Classifier, logger *slog.Logger) (*Resolver, error) {
	if fsys == nil {
		return nil, ErrNilFileSystem
	}
	if classify == nil {
		classify = ClassifyMIMEType
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{fsys: fsys, classify: classify, logger: logger}, nil
}

// Resolve reports whether path is a readable module file and returns its content.
// Missing paths, directories and non-module files are outcomes, not errors.
// Any other filesystem failure is returned as an error.
func (r *Resolver) Resolve(ctx context.Context, path string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	info, err := r.fsys.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r.reject(path, StatusNotFound), nil
		}
		return Outcome{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		return r.reject(path, StatusDirectory), nil
	}

	if r.classify(path) != ModuleMIMEType {
		return r.reject(path, StatusUnsupportedType), nil
	}

	r.logger.Info("processing file", "path", path)
	content, err := r.fsys.ReadFile(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Outcome{Status: StatusFound, Content: string(content)}, nil
}

func (r *Resolver) reject(path string, status Status) Outcome {
	outcome := Outcome{Status: status}
	r.logger.Warn("skipping unresolved import", "path", path, "status", status.String(), "reason", outcome.Reason())
	return outcome
}
