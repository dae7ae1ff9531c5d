// Package store reads metadata and content bodies from a filesystem.
package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nishantarora/portfolio/internal/adapters/clients/acl"
	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/ports"
)

// FS is a ports.ContentStore over an afero filesystem. Every call reads
// the files again, so edits show up on the next request.
type FS struct {
	fs     afero.Fs
	layout ports.ContentLayout
}

// New creates a store reading layout paths from fsys.
func New(fsys afero.Fs, layout ports.ContentLayout) *FS {
	return &FS{fs: fsys, layout: layout}
}

// NewOS creates a store confined to root on the local disk. Paths that
// resolve outside root are rejected.
func NewOS(root string, layout ports.ContentLayout) *FS {
	return New(afero.NewBasePathFs(afero.NewOsFs(), root), layout)
}

// Records implements ports.MetadataSource.
func (s *FS) Records(_ context.Context, kind domain.Kind) ([]domain.Record, error) {
	p := s.layout.MetadataPath(kind)

	f, err := s.fs.Open(filepath.FromSlash(p))
	if err != nil {
		return nil, domain.WrapFetchError(p, err)
	}
	defer func() { _ = f.Close() }()

	records, err := acl.DecodeRecords(f, kind)
	if err != nil {
		return nil, domain.WrapFetchError(p, err)
	}

	return records, nil
}

// Content implements ports.ContentSource.
func (s *FS) Content(_ context.Context, rec *domain.Record) (string, error) {
	p := s.layout.ContentPath(rec)

	data, err := afero.ReadFile(s.fs, filepath.FromSlash(p))
	if err != nil {
		return "", domain.WrapFetchError(p, err)
	}

	return string(data), nil
}

// Name implements ports.HealthChecker.
func (s *FS) Name() string {
	return "content-store"
}

// Check implements ports.HealthChecker. Both metadata lists must exist.
func (s *FS) Check(_ context.Context) error {
	for _, kind := range domain.Kinds {
		p := s.layout.MetadataPath(kind)
		if _, err := s.fs.Stat(filepath.FromSlash(p)); err != nil {
			return fmt.Errorf("%s metadata: %w", kind, err)
		}
	}

	return nil
}

// Watched returns the directories whose changes affect rendered output.
func (s *FS) Watched() []string {
	dirs := []string{
		filepath.Dir(filepath.FromSlash(s.layout.PostsMetadata)),
		filepath.Dir(filepath.FromSlash(s.layout.ProjectsMetadata)),
		filepath.FromSlash(s.layout.PostsDir),
		filepath.FromSlash(s.layout.ProjectsDir),
	}

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]

	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	return out
}
