package app

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/ports"
)

// Tag page messages.
const (
	MsgNoTag        = "Please select a valid tag."
	MsgNoTaggedPost = "No posts found with this tag."
)

// Catalog lists records for index and tag pages.
type Catalog struct {
	source ports.MetadataSource
}

// NewCatalog creates a Catalog over source.
func NewCatalog(source ports.MetadataSource) *Catalog {
	return &Catalog{source: source}
}

// Posts returns every post, newest first.
func (c *Catalog) Posts(ctx context.Context) ([]domain.Record, error) {
	posts, err := c.source.Records(ctx, domain.KindPost)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	return SortByDate(posts), nil
}

// Projects returns every project in authored order.
func (c *Catalog) Projects(ctx context.Context) ([]domain.Record, error) {
	projects, err := c.source.Records(ctx, domain.KindProject)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	return projects, nil
}

// List returns the listing for kind.
func (c *Catalog) List(ctx context.Context, kind domain.Kind) ([]domain.Record, error) {
	if kind == domain.KindProject {
		return c.Projects(ctx)
	}

	return c.Posts(ctx)
}

// Overview is the home page summary: every post and project.
type Overview struct {
	Posts    []domain.Record
	Projects []domain.Record
}

// Overview lists posts and projects concurrently.
func (c *Catalog) Overview(ctx context.Context) (*Overview, error) {
	posts, projects, err := Parallel2(ctx, c.Posts, c.Projects)
	if err != nil {
		return nil, err
	}

	return &Overview{Posts: posts, Projects: projects}, nil
}

// TagListing is the result of filtering posts by one tag.
type TagListing struct {
	Tag         string
	DisplayName string
	Posts       []domain.Record

	// Message replaces the list when there is nothing to show.
	Message string
}

// Tagged returns the posts carrying tag, newest first.
// An empty tag yields MsgNoTag without reading metadata.
func (c *Catalog) Tagged(ctx context.Context, tag string) (*TagListing, error) {
	if tag == "" {
		return &TagListing{Message: MsgNoTag}, nil
	}

	posts, err := c.Posts(ctx)
	if err != nil {
		return nil, err
	}

	listing := &TagListing{
		Tag:         tag,
		DisplayName: TagDisplayName(tag),
		Posts:       FilterByTag(posts, tag),
	}

	if len(listing.Posts) == 0 {
		listing.Message = MsgNoTaggedPost
	}

	return listing, nil
}

// SortByDate returns a copy of records ordered by date, newest first.
// Records with equal or unparsable dates keep their relative order;
// undated records sort last.
func SortByDate(records []domain.Record) []domain.Record {
	sorted := slices.Clone(records)

	slices.SortStableFunc(sorted, func(a, b domain.Record) int {
		return publishedAt(&b).Compare(publishedAt(&a))
	})

	return sorted
}

func publishedAt(rec *domain.Record) time.Time {
	t, _ := rec.Published()
	return t
}

// FilterByTag keeps the records whose tags contain tag exactly.
func FilterByTag(records []domain.Record, tag string) []domain.Record {
	var out []domain.Record
	for i := range records {
		if records[i].HasTag(tag) {
			out = append(out, records[i])
		}
	}

	return out
}

// TagDisplayName turns a tag slug into a heading, e.g. "data-engineering" into "data engineering".
func TagDisplayName(tag string) string {
	return strings.ReplaceAll(tag, "-", " ")
}
