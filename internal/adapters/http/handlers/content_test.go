package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishantarora/portfolio/internal/adapters/http/dto"
)

func TestContentHandler_List(t *testing.T) {
	engine := newFixture(t, siteFiles()).engine()

	w := get(engine, "/api/v1/posts")
	require.Equal(t, http.StatusOK, w.Code)

	posts := decode[dto.ListResponse](t, w)
	require.Equal(t, 2, posts.Count)
	assert.Equal(t, "hello-world", posts.Items[0].ID, "newest first")
	assert.Equal(t, "January 15, 2024", posts.Items[0].DisplayDate)
	assert.Equal(t, "https://example.com/blog/hello-world/", posts.Items[0].URL)
	assert.Equal(t, "First post", posts.Items[0].Summary)

	w = get(engine, "/api/v1/projects")
	require.Equal(t, http.StatusOK, w.Code)

	projects := decode[dto.ListResponse](t, w)
	require.Equal(t, 1, projects.Count)
	assert.Equal(t, "An ETL pipeline", projects.Items[0].Summary)
	assert.Equal(t, []string{"Python"}, projects.Items[0].Tech)
}

func TestContentHandler_List_Tagged(t *testing.T) {
	engine := newFixture(t, siteFiles()).engine()

	tests := []struct {
		name        string
		target      string
		wantStatus  int
		wantIDs     []string
		wantMessage string
	}{
		{name: "matching tag", target: "/api/v1/posts?tag=go", wantStatus: http.StatusOK, wantIDs: []string{"hello-world"}},
		{name: "no matches", target: "/api/v1/posts?tag=rust", wantStatus: http.StatusOK, wantMessage: "No posts found with this tag."},
		{name: "empty tag", target: "/api/v1/posts?tag=", wantStatus: http.StatusOK, wantMessage: "Please select a valid tag."},
		{name: "malformed tag", target: "/api/v1/posts?tag=%3Cscript%3E", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(engine, tt.target)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantStatus != http.StatusOK {
				resp := decode[dto.ErrorResponse](t, w)
				assert.Equal(t, dto.ErrorCodeValidation, resp.Error.Code)
				assert.Contains(t, resp.Error.Details, "tag")

				return
			}

			listing := decode[dto.TagListingResponse](t, w)
			assert.Equal(t, tt.wantMessage, listing.Message)

			ids := make([]string, 0, len(listing.Items))
			for _, item := range listing.Items {
				ids = append(ids, item.ID)
			}

			if tt.wantIDs == nil {
				assert.Empty(t, ids)
			} else {
				assert.Equal(t, tt.wantIDs, ids)
			}
		})
	}
}

func TestContentHandler_List_MetadataUnavailable(t *testing.T) {
	files := siteFiles()
	delete(files, "projects/projects.json")

	w := get(newFixture(t, files).engine(), "/api/v1/projects")
	require.Equal(t, http.StatusBadGateway, w.Code)

	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeUnavailable, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "projects.json", "paths stay in logs")
}

func TestContentHandler_Overview(t *testing.T) {
	w := get(newFixture(t, siteFiles()).engine(), "/api/v1/overview")
	require.Equal(t, http.StatusOK, w.Code)

	overview := decode[dto.OverviewResponse](t, w)
	require.NotNil(t, overview.Posts)
	require.NotNil(t, overview.Projects)
	assert.Equal(t, 2, overview.Posts.Count)
	assert.Equal(t, "hello-world", overview.Posts.Items[0].ID)
	assert.Equal(t, 1, overview.Projects.Count)
}

func TestContentHandler_Overview_MetadataUnavailable(t *testing.T) {
	files := siteFiles()
	delete(files, "posts/posts.json")

	w := get(newFixture(t, files).engine(), "/api/v1/overview")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestContentHandler_Fragment(t *testing.T) {
	w := get(newFixture(t, siteFiles()).engine(), "/api/v1/posts/hello-world/fragment")
	require.Equal(t, http.StatusOK, w.Code)

	frag := decode[dto.FragmentResponse](t, w)
	assert.Equal(t, "Hello - Nishant Arora", frag.Title)
	assert.Contains(t, frag.HTML, `<h1 id="hi">Hi</h1>`)
	assert.Equal(t, "1 min read", frag.ReadingTime)

	var tags []string
	for _, m := range frag.Meta {
		if m.Key == "article:tag" {
			assert.Equal(t, "property", m.Attr)
			tags = append(tags, m.Content)
		}
	}

	assert.Equal(t, []string{"go", "data-engineering"}, tags)
}

func TestContentHandler_Fragment_Failures(t *testing.T) {
	broken := siteFiles()
	delete(broken, "posts/hello.md")

	tests := []struct {
		name            string
		files           map[string]string
		target          string
		wantStatus      int
		wantCode        string
		wantPlaceholder string
	}{
		{
			name:            "unknown post",
			files:           siteFiles(),
			target:          "/api/v1/posts/nope/fragment",
			wantStatus:      http.StatusNotFound,
			wantCode:        dto.ErrorCodeNotFound,
			wantPlaceholder: "Post not found.",
		},
		{
			name:            "id that cannot exist",
			files:           siteFiles(),
			target:          "/api/v1/projects/bad%20id/fragment",
			wantStatus:      http.StatusNotFound,
			wantCode:        dto.ErrorCodeNotFound,
			wantPlaceholder: "Project not found.",
		},
		{
			name:            "content file missing",
			files:           broken,
			target:          "/api/v1/posts/hello-world/fragment",
			wantStatus:      http.StatusBadGateway,
			wantCode:        dto.ErrorCodeUnavailable,
			wantPlaceholder: "Error loading post. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newFixture(t, tt.files).engine(), tt.target)
			require.Equal(t, tt.wantStatus, w.Code)

			resp := decode[dto.FragmentErrorResponse](t, w)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantPlaceholder, resp.Placeholder)
		})
	}
}
