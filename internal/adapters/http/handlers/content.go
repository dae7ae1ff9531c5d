package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nishantarora/portfolio/internal/adapters/http/dto"
	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/domain"
)

// PageViewer loads a record for viewing. *app.Loader implements it.
type PageViewer interface {
	View(ctx context.Context, kind domain.Kind, id string) *app.View
}

// Listings lists records. *app.Catalog implements it.
type Listings interface {
	List(ctx context.Context, kind domain.Kind) ([]domain.Record, error)
	Tagged(ctx context.Context, tag string) (*app.TagListing, error)
	Overview(ctx context.Context) (*app.Overview, error)
}

// ContentHandler serves the JSON content API.
type ContentHandler struct {
	pages   PageViewer
	catalog Listings
	site    domain.Site
}

// NewContentHandler creates a content handler.
func NewContentHandler(pages PageViewer, catalog Listings, site domain.Site) *ContentHandler {
	return &ContentHandler{pages: pages, catalog: catalog, site: site}
}

// List handles GET /api/v1/posts and /api/v1/projects.
// Posts accept ?tag= to filter by one tag.
func (h *ContentHandler) List(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if kind == domain.KindPost {
			if _, ok := c.GetQuery("tag"); ok {
				h.tagged(c)
				return
			}
		}

		records, err := h.catalog.List(ctx, kind)
		if err != nil {
			dto.HandleError(c, err)
			return
		}

		c.JSON(http.StatusOK, dto.NewListResponse(h.site, records))
	}
}

func (h *ContentHandler) tagged(c *gin.Context) {
	var q dto.TagQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		dto.AbortWithValidation(c, err)
		return
	}

	listing, err := h.catalog.Tagged(c.Request.Context(), q.Tag)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTagListingResponse(h.site, dto.TagListing{
		Tag:         listing.Tag,
		DisplayName: listing.DisplayName,
		Posts:       listing.Posts,
		Message:     listing.Message,
	}))
}

// Overview handles GET /api/v1/overview: both listings in one response.
func (h *ContentHandler) Overview(c *gin.Context) {
	overview, err := h.catalog.Overview(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOverviewResponse(h.site, overview.Posts, overview.Projects))
}

// Fragment handles GET /api/v1/{posts|projects}/:id/fragment, the call a
// generated shell makes to fill its article. Failures carry the
// placeholder the shell shows instead.
func (h *ContentHandler) Fragment(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri dto.RecordURI
		if err := dto.BindURIAndValidate(c, &uri); err != nil {
			// An id that cannot exist reads as not found to the shell.
			status, resp := dto.NewFragmentErrorResponse(
				domain.NewNotFoundError(kind, c.Param("id")),
				domain.Placeholder(kind, domain.ErrNotFound),
			)
			c.JSON(status, resp)

			return
		}

		view := h.pages.View(c.Request.Context(), kind, uri.ID)
		if !view.OK() {
			status, resp := dto.NewFragmentErrorResponse(view.Err, view.Placeholder)
			resp.TraceID = dto.GetTraceID(c)
			c.JSON(status, resp)

			return
		}

		c.JSON(http.StatusOK, dto.NewFragmentResponse(view.Page))
	}
}

// RegisterContentRoutes registers the API routes for both kinds.
func (h *ContentHandler) RegisterContentRoutes(rg *gin.RouterGroup) {
	rg.GET("/overview", h.Overview)

	for _, kind := range domain.Kinds {
		group := rg.Group(collectionSegment(kind))
		group.GET("", h.List(kind))
		group.GET("/:id/fragment", h.Fragment(kind))
	}
}

// collectionSegment is the path of kind below the API prefix.
func collectionSegment(kind domain.Kind) string {
	return app.CollectionPath(kind)[len(app.APIPrefix):]
}
