package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/nishantarora/portfolio/internal/adapters/render"
	"github.com/nishantarora/portfolio/internal/adapters/store"
	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/ports"
)

var testSite = domain.Site{
	Title:        "Nishant Arora",
	Author:       "Nishant Arora",
	Description:  "Data Engineer / Builder / Learner",
	BaseURL:      "https://example.com",
	DefaultImage: "https://example.com/images/og-default.png",
	Language:     "en-us",
	FeedPath:     "/feed.xml",
}

var testLayout = ports.ContentLayout{
	PostsMetadata:    "posts/posts.json",
	ProjectsMetadata: "projects/projects.json",
	PostsDir:         "posts",
	ProjectsDir:      "projects-content",
}

func siteFiles() map[string]string {
	return map[string]string{
		"posts/posts.json": `[
  {"id": "hello-world", "title": "Hello", "excerpt": "First post", "date": "2024-01-15", "file": "hello.md", "tags": ["go", "data-engineering"]},
  {"id": "older", "title": "Older", "excerpt": "Second post", "date": "2023-06-01", "file": "older.html", "tags": ["data-engineering"]}
]`,
		"posts/hello.md":               "# Hi\n\nWorld",
		"posts/older.html":             "<p>Raw <em>html</em></p>",
		"projects/projects.json":       `[{"id": "pipeline", "title": "Pipeline", "description": "An ETL pipeline", "file": "pipeline.md", "tech": ["Python"]}]`,
		"projects-content/pipeline.md": "Loss is $x^2$.",
	}
}

func memFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fsys, name, []byte(body), 0o644))
	}

	return fsys
}

type fixture struct {
	loader  *app.Loader
	catalog *app.Catalog
	views   *app.Views
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()

	st := store.New(memFS(t, files), testLayout)

	views, err := app.NewViews(testSite)
	require.NoError(t, err)

	return &fixture{
		loader: app.NewLoader(app.LoaderConfig{
			Store:    st,
			Renderer: render.New(render.Config{}),
			Site:     testSite,
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		}),
		catalog: app.NewCatalog(st),
		views:   views,
	}
}

// engine registers the content and view routes of f.
func (f *fixture) engine() *gin.Engine {
	engine := gin.New()
	NewContentHandler(f.loader, f.catalog, testSite).RegisterContentRoutes(engine.Group(app.APIPrefix))
	NewViewHandler(f.loader, f.catalog, f.views).RegisterViewRoutes(engine)

	return engine
}

func get(engine http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}
