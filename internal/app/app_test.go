package app

import (
	"io"
	"log/slog"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/nishantarora/portfolio/internal/adapters/render"
	"github.com/nishantarora/portfolio/internal/adapters/store"
	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/ports"
)

var testLayout = ports.ContentLayout{
	PostsMetadata:    "posts/posts.json",
	ProjectsMetadata: "projects/projects.json",
	PostsDir:         "posts",
	ProjectsDir:      "projects-content",
}

var testSite = domain.Site{
	Title:        "Nishant Arora",
	Author:       "Nishant Arora",
	Description:  "Data Engineer / Builder / Learner",
	BaseURL:      "https://example.com",
	DefaultImage: "https://example.com/images/og-default.png",
	Language:     "en-us",
	FeedPath:     "/feed.xml",
}

const testPosts = `[
  {"id": "hello-world", "title": "Hello", "excerpt": "First post", "date": "2024-01-15", "file": "hello.md", "tags": ["go", "data-engineering"]},
  {"id": "older", "title": "Older", "excerpt": "Second post", "date": "2023-06-01", "file": "older.html", "tags": ["data-engineering"]},
  {"id": "newest", "title": "Newest", "excerpt": "Third post", "date": "2024-03-02", "file": "newest.md"}
]`

const testProjects = `[
  {"id": "pipeline", "title": "Pipeline", "description": "An ETL pipeline", "file": "pipeline.md", "tech": ["Python", "Apache Airflow"]},
  {"id": "site", "title": "Site", "description": "This site", "file": "site.md", "tech": ["Go"]}
]`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// contentFS returns an in-memory filesystem holding files.
func contentFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o644))
	}

	return fsys
}

// siteFiles is a complete content tree for both kinds.
func siteFiles() map[string]string {
	return map[string]string{
		"posts/posts.json":             testPosts,
		"posts/hello.md":               "# Hi\n\nWorld",
		"posts/older.html":             "<p>Raw <em>html</em></p>",
		"posts/newest.md":              "Fresh words here.",
		"projects/projects.json":       testProjects,
		"projects-content/pipeline.md": "Loss is $x^2$.",
		"projects-content/site.md":     "Static shells.",
	}
}

func newTestStore(t *testing.T, files map[string]string) *store.FS {
	t.Helper()
	return store.New(contentFS(t, files), testLayout)
}

func newTestRenderer() *render.Renderer {
	return render.New(render.Config{})
}
