package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishantarora/portfolio/internal/domain"
)

func newTestViews(t *testing.T) *Views {
	t.Helper()

	views, err := NewViews(testSite)
	require.NoError(t, err)

	return views
}

func TestViews_RenderPage(t *testing.T) {
	l := NewLoader(LoaderConfig{
		Store:    newTestStore(t, siteFiles()),
		Renderer: newTestRenderer(),
		Site:     testSite,
		Logger:   discardLogger(),
	})

	var buf bytes.Buffer
	require.NoError(t, newTestViews(t).RenderPage(&buf, domain.KindPost, l.View(context.Background(), domain.KindPost, "hello-world")))

	html := buf.String()
	assert.Contains(t, html, "<title>Hello - Nishant Arora</title>")
	assert.Contains(t, html, `<meta property="og:type" content="article">`)
	assert.Contains(t, html, `<meta name="twitter:card" content="summary_large_image">`)
	assert.Contains(t, html, `<meta property="article:tag" content="data-engineering">`)
	assert.Contains(t, html, `<h1 id="hi">Hi</h1>`, "fragment is inlined unescaped")
	assert.Contains(t, html, `<article id="post-content"`)
	assert.NotContains(t, html, "placeholder")
}

func TestViews_RenderPage_Placeholder(t *testing.T) {
	view := &View{Placeholder: "Project not found.", Err: domain.NewNotFoundError(domain.KindProject, "nope")}

	var buf bytes.Buffer
	require.NoError(t, newTestViews(t).RenderPage(&buf, domain.KindProject, view))

	html := buf.String()
	assert.Contains(t, html, "<title>Nishant Arora</title>")
	assert.Contains(t, html, `<p class="placeholder">Project not found.</p>`)
	assert.Contains(t, html, `<a href="/projects/" class="back-link">&larr; Back to Projects</a>`)
}

func TestViews_RenderListing(t *testing.T) {
	records := []domain.Record{
		{Kind: domain.KindPost, ID: "a", Title: "<Alpha>", Excerpt: "first", Date: "2024-01-15"},
		{Kind: domain.KindPost, ID: "b", Title: "Beta"},
	}

	var buf bytes.Buffer
	require.NoError(t, newTestViews(t).RenderListing(&buf, domain.KindPost, records))

	html := buf.String()
	assert.Contains(t, html, "<title>Blog - Nishant Arora</title>")
	assert.Contains(t, html, `<a href="/blog/a/"><h2>&lt;Alpha&gt;</h2></a>`)
	assert.Contains(t, html, `<span class="post-date">January 15, 2024</span>`)
	assert.Contains(t, html, `<a href="/blog/b/"><h2>Beta</h2></a>`)
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("post-date")), "undated posts show no date")
}

func TestViews_RenderTagListing(t *testing.T) {
	views := newTestViews(t)

	t.Run("matches", func(t *testing.T) {
		listing := &TagListing{
			Tag:         "data-engineering",
			DisplayName: "data engineering",
			Posts:       []domain.Record{{Kind: domain.KindPost, ID: "a", Title: "A"}},
		}

		var buf bytes.Buffer
		require.NoError(t, views.RenderTagListing(&buf, listing))
		assert.Contains(t, buf.String(), "<h1>Posts tagged data engineering</h1>")
		assert.Contains(t, buf.String(), `href="/blog/a/"`)
	})

	t.Run("missing tag", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, views.RenderTagListing(&buf, &TagListing{Message: MsgNoTag}))
		assert.Contains(t, buf.String(), "<h1>Tags</h1>")
		assert.Contains(t, buf.String(), `<p class="placeholder">Please select a valid tag.</p>`)
		assert.NotContains(t, buf.String(), "<ul")
	})
}

func TestCollectionPath(t *testing.T) {
	assert.Equal(t, "/api/v1/posts", CollectionPath(domain.KindPost))
	assert.Equal(t, "/api/v1/projects", CollectionPath(domain.KindProject))
}
