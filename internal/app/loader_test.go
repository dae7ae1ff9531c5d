package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/mocks"
)

func newMockLoader(t *testing.T, cacheSize int) (*Loader, *mocks.MockContentStore, *mocks.MockRenderer) {
	t.Helper()

	st := mocks.NewMockContentStore(t)
	r := mocks.NewMockRenderer(t)

	l := NewLoader(LoaderConfig{
		Store:     st,
		Renderer:  r,
		Site:      testSite,
		CacheSize: cacheSize,
		Logger:    discardLogger(),
	})

	return l, st, r
}

func TestNewLoader_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewLoader(LoaderConfig{Renderer: mocks.NewMockRenderer(t)}) })
	assert.Panics(t, func() { NewLoader(LoaderConfig{Store: mocks.NewMockContentStore(t)}) })
}

func TestLoader_Load_Scenario(t *testing.T) {
	l := NewLoader(LoaderConfig{
		Store:    newTestStore(t, siteFiles()),
		Renderer: newTestRenderer(),
		Site:     testSite,
		Logger:   discardLogger(),
	})

	page, err := l.Load(context.Background(), domain.KindPost, "hello-world")
	require.NoError(t, err)

	assert.Equal(t, "Hello - Nishant Arora", page.Head.Title)
	assert.Contains(t, page.Fragment.HTML, "<h1>Hello</h1>")
	assert.Contains(t, page.Fragment.HTML, "January 15, 2024 · 1 min read")
	assert.Contains(t, page.Fragment.Body, `<h1 id="hi">Hi</h1>`)
	assert.Contains(t, page.Fragment.Body, "<p>World</p>")

	ogType, _ := page.Head.Get(domain.AttrProperty, "og:type")
	assert.Equal(t, "article", ogType)

	image, _ := page.Head.Get(domain.AttrProperty, "og:image")
	assert.Equal(t, testSite.DefaultImage, image)

	assert.Equal(t, []string{"go", "data-engineering"}, page.Head.Values(domain.AttrProperty, "article:tag"))
}

func TestLoader_Load_Errors(t *testing.T) {
	boom := domain.NewFetchError("posts/posts.json", "status 500 Internal Server Error")

	tests := []struct {
		name     string
		id       string
		setup    func(*mocks.MockContentStore)
		errCheck func(error) bool
	}{
		{
			name:     "empty id is not found without reading metadata",
			id:       "",
			setup:    func(*mocks.MockContentStore) {},
			errCheck: domain.IsNotFound,
		},
		{
			name: "unknown id",
			id:   "missing",
			setup: func(st *mocks.MockContentStore) {
				st.EXPECT().Records(mock.Anything, domain.KindPost).
					Return([]domain.Record{{Kind: domain.KindPost, ID: "hello-world"}}, nil)
			},
			errCheck: domain.IsNotFound,
		},
		{
			name: "id match is exact",
			id:   "Hello-World",
			setup: func(st *mocks.MockContentStore) {
				st.EXPECT().Records(mock.Anything, domain.KindPost).
					Return([]domain.Record{{Kind: domain.KindPost, ID: "hello-world"}}, nil)
			},
			errCheck: domain.IsNotFound,
		},
		{
			name: "metadata unavailable",
			id:   "hello-world",
			setup: func(st *mocks.MockContentStore) {
				st.EXPECT().Records(mock.Anything, domain.KindPost).Return(nil, boom)
			},
			errCheck: domain.IsFetchFailure,
		},
		{
			name: "content unavailable",
			id:   "hello-world",
			setup: func(st *mocks.MockContentStore) {
				st.EXPECT().Records(mock.Anything, domain.KindPost).
					Return([]domain.Record{{Kind: domain.KindPost, ID: "hello-world", File: "hello.md"}}, nil)
				st.EXPECT().Content(mock.Anything, mock.Anything).
					Return("", domain.NewFetchError("posts/hello.md", "status 404 Not Found"))
			},
			errCheck: domain.IsFetchFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, st, _ := newMockLoader(t, 0)
			tt.setup(st)

			page, err := l.Load(context.Background(), domain.KindPost, tt.id)
			require.Error(t, err)
			assert.Nil(t, page)
			assert.True(t, tt.errCheck(err), "unexpected error: %v", err)
		})
	}
}

func TestLoader_Load_ContentNotFoundIsFetchFailure(t *testing.T) {
	files := siteFiles()
	delete(files, "posts/hello.md")

	l := NewLoader(LoaderConfig{Store: newTestStore(t, files), Renderer: newTestRenderer(), Site: testSite})

	_, err := l.Load(context.Background(), domain.KindPost, "hello-world")
	require.Error(t, err)
	assert.True(t, domain.IsFetchFailure(err))
	assert.False(t, domain.IsNotFound(err))
}

func TestLoader_Load_RendererError(t *testing.T) {
	l, st, r := newMockLoader(t, 0)

	st.EXPECT().Records(mock.Anything, domain.KindPost).
		Return([]domain.Record{{Kind: domain.KindPost, ID: "a", File: "a.md"}}, nil)
	st.EXPECT().Content(mock.Anything, mock.Anything).Return("body", nil)
	r.EXPECT().Render(mock.Anything, "body").Return(nil, errors.New("converter exploded"))

	_, err := l.Load(context.Background(), domain.KindPost, "a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "converter exploded")
}

func TestLoader_Load_CachesFragments(t *testing.T) {
	l, st, r := newMockLoader(t, 8)

	rec := domain.Record{Kind: domain.KindPost, ID: "a", Title: "A", File: "a.md"}
	st.EXPECT().Records(mock.Anything, domain.KindPost).Return([]domain.Record{rec}, nil)
	st.EXPECT().Content(mock.Anything, mock.Anything).Return("first", nil).Times(2)
	st.EXPECT().Content(mock.Anything, mock.Anything).Return("edited", nil).Once()

	r.EXPECT().Render(mock.Anything, "first").Return(&domain.Fragment{HTML: "<p>first</p>"}, nil).Once()
	r.EXPECT().Render(mock.Anything, "edited").Return(&domain.Fragment{HTML: "<p>edited</p>"}, nil).Once()

	for range 2 {
		page, err := l.Load(context.Background(), domain.KindPost, "a")
		require.NoError(t, err)
		assert.Equal(t, "<p>first</p>", page.Fragment.HTML)
	}

	page, err := l.Load(context.Background(), domain.KindPost, "a")
	require.NoError(t, err)
	assert.Equal(t, "<p>edited</p>", page.Fragment.HTML)
}

func TestLoader_Purge(t *testing.T) {
	l, st, r := newMockLoader(t, 8)

	rec := domain.Record{Kind: domain.KindProject, ID: "p", Title: "P", File: "p.md"}
	st.EXPECT().Records(mock.Anything, domain.KindProject).Return([]domain.Record{rec}, nil)
	st.EXPECT().Content(mock.Anything, mock.Anything).Return("same", nil)
	r.EXPECT().Render(mock.Anything, "same").Return(&domain.Fragment{HTML: "x"}, nil).Times(2)

	_, err := l.Load(context.Background(), domain.KindProject, "p")
	require.NoError(t, err)

	l.Purge()

	_, err = l.Load(context.Background(), domain.KindProject, "p")
	require.NoError(t, err)
}

func TestFragmentKey(t *testing.T) {
	rec := domain.Record{Kind: domain.KindPost, ID: "a", Title: "A", Tags: []string{"x"}}
	key := fragmentKey(&rec, "body")

	assert.Equal(t, key, fragmentKey(&rec, "body"))
	assert.NotEqual(t, key, fragmentKey(&rec, "body!"))

	retitled := rec
	retitled.Title = "B"
	assert.NotEqual(t, key, fragmentKey(&retitled, "body"))

	retagged := rec
	retagged.Tags = []string{"y"}
	assert.NotEqual(t, key, fragmentKey(&retagged, "body"))
}

func TestLoader_View(t *testing.T) {
	l := NewLoader(LoaderConfig{
		Store:    newTestStore(t, siteFiles()),
		Renderer: newTestRenderer(),
		Site:     testSite,
		Logger:   discardLogger(),
	})

	t.Run("page", func(t *testing.T) {
		v := l.View(context.Background(), domain.KindProject, "pipeline")
		require.True(t, v.OK())
		assert.Empty(t, v.Placeholder)
		assert.Contains(t, v.Page.Fragment.HTML, `<i class="devicon-python-plain colored"></i> Python`)
	})

	t.Run("unknown id shows not found", func(t *testing.T) {
		v := l.View(context.Background(), domain.KindPost, "does-not-exist")
		assert.False(t, v.OK())
		assert.Equal(t, "Post not found.", v.Placeholder)
		assert.True(t, domain.IsNotFound(v.Err))
	})

	t.Run("fetch failure asks to retry", func(t *testing.T) {
		files := siteFiles()
		delete(files, "projects/projects.json")

		broken := NewLoader(LoaderConfig{Store: newTestStore(t, files), Renderer: newTestRenderer(), Site: testSite})

		v := broken.View(context.Background(), domain.KindProject, "pipeline")
		assert.False(t, v.OK())
		assert.Equal(t, "Error loading project. Please try again later.", v.Placeholder)
	})
}
