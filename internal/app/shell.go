package app

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/nishantarora/portfolio/internal/domain"
)

// GeneratorMarker is written into every generated shell. Reconciliation
// only ever removes directories whose index.html carries it.
const GeneratorMarker = `<meta name="generator" content="portfolio">`

// APIPrefix is where the preview server mounts its JSON API.
const APIPrefix = "/api/v1"

//go:embed templates/shell.html.tmpl
var shellSource string

// CollectionPath is the API path listing records of kind, e.g. /api/v1/posts.
// Fragments live below it at {path}/{id}/fragment.
func CollectionPath(kind domain.Kind) string {
	if kind == domain.KindProject {
		return APIPrefix + "/projects"
	}

	return APIPrefix + "/posts"
}

// Shells renders the static index.html written for each record. A shell
// carries the record's id, title and summary for crawlers; the article
// body is fetched from the fragment API when the page is viewed.
type Shells struct {
	tmpl *template.Template
	site domain.Site
}

// NewShells parses the shell template for site.
func NewShells(site domain.Site) (*Shells, error) {
	tmpl, err := template.New("shell").Parse(shellSource)
	if err != nil {
		return nil, fmt.Errorf("parsing shell template: %w", err)
	}

	return &Shells{tmpl: tmpl, site: site}, nil
}

type shellData struct {
	Site         domain.Site
	Section      string
	SectionTitle string
	API          string
	ArticleID    string
	OGType       string
	Title        string
	Summary      string
	URL          string
	FeedURL      string
	NotFound     string
	Failed       string
}

// Render writes the shell for rec to w. Output depends only on the site
// and the record's kind, id, title and summary.
func (s *Shells) Render(w io.Writer, rec *domain.Record) error {
	data := shellData{
		Site:         s.site,
		Section:      rec.Kind.Section(),
		SectionTitle: "Blog",
		API:          CollectionPath(rec.Kind),
		ArticleID:    "post-content",
		OGType:       "article",
		Title:        rec.Title,
		Summary:      rec.Summary(),
		URL:          s.site.Permalink(rec),
		FeedURL:      s.site.URL(s.site.FeedPath),
		NotFound:     domain.Placeholder(rec.Kind, domain.ErrNotFound),
		Failed:       domain.Placeholder(rec.Kind, domain.ErrFetchFailed),
	}

	if rec.Kind == domain.KindProject {
		data.SectionTitle = "Projects"
		data.ArticleID = "project-content"
		data.OGType = "website"
	}

	if err := s.tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering %s shell %q: %w", rec.Kind, rec.ID, err)
	}

	return nil
}

// Bytes renders the shell for rec into memory.
func (s *Shells) Bytes(rec *domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Render(&buf, rec); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// IsGenerated reports whether content is a shell written by this program.
func IsGenerated(content []byte) bool {
	return bytes.Contains(content, []byte(GeneratorMarker))
}
