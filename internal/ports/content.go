// Package ports defines the contracts between the pipeline and its adapters.
//
// The application layer depends only on these interfaces. Adapters
// return domain types and domain errors (ErrNotFound, ErrFetchFailed),
// never transport or filesystem errors.
package ports

import (
	"context"
	"path"

	"github.com/nishantarora/portfolio/internal/domain"
)

// MetadataSource lists the authored records for a kind.
type MetadataSource interface {
	// Records returns every record of kind in authored order.
	// A missing or unparsable list wraps domain.ErrFetchFailed.
	Records(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
}

// ContentSource reads content bodies named by Record.File.
type ContentSource interface {
	// Content returns the raw body of rec.
	// A missing or unreadable body wraps domain.ErrFetchFailed.
	Content(ctx context.Context, rec *domain.Record) (string, error)
}

// ContentStore is a source for both metadata and content bodies.
type ContentStore interface {
	MetadataSource
	ContentSource
}

// Renderer turns a content body into an HTML fragment.
type Renderer interface {
	Render(rec *domain.Record, content string) (*domain.Fragment, error)
}

// ContentLayout locates metadata lists and content bodies. Paths are
// slash-separated and relative to the content root or base URL.
type ContentLayout struct {
	PostsMetadata    string
	ProjectsMetadata string
	PostsDir         string
	ProjectsDir      string
}

// MetadataPath returns the metadata list path for kind.
func (l ContentLayout) MetadataPath(kind domain.Kind) string {
	if kind == domain.KindProject {
		return l.ProjectsMetadata
	}

	return l.PostsMetadata
}

// ContentPath returns the body path for rec.
func (l ContentLayout) ContentPath(rec *domain.Record) string {
	dir := l.PostsDir
	if rec.Kind == domain.KindProject {
		dir = l.ProjectsDir
	}

	return path.Join(dir, rec.File)
}
