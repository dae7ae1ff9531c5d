package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nishantarora/portfolio/internal/adapters/http/dto"
	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/domain"
)

const contentTypeHTML = "text/html; charset=utf-8"

// ViewHandler serves server-rendered HTML: listings, the tag page and the
// legacy ?id= record links. Clean record URLs are served from the
// generated shells instead.
type ViewHandler struct {
	pages   PageViewer
	catalog Listings
	views   *app.Views
}

// NewViewHandler creates a view handler.
func NewViewHandler(pages PageViewer, catalog Listings, views *app.Views) *ViewHandler {
	return &ViewHandler{pages: pages, catalog: catalog, views: views}
}

// Listing handles GET /blog/ and /projects/.
func (h *ViewHandler) Listing(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := h.catalog.List(c.Request.Context(), kind)
		if err != nil {
			status, _ := dto.MapDomainError(err)
			h.placeholder(c, status, kind, domain.Placeholder(kind, err))

			return
		}

		var buf bytes.Buffer
		if err := h.views.RenderListing(&buf, kind, records); err != nil {
			dto.HandleError(c, err)
			return
		}

		c.Data(http.StatusOK, contentTypeHTML, buf.Bytes())
	}
}

// Tags handles GET /blog/tags/?tag=. A missing or unmatched tag still
// renders the page with its message.
func (h *ViewHandler) Tags(c *gin.Context) {
	var q dto.TagQuery
	if err := dto.BindQueryAndValidate(c, &q); err != nil {
		q.Tag = ""
	}

	listing, err := h.catalog.Tagged(c.Request.Context(), q.Tag)
	if err != nil {
		status, _ := dto.MapDomainError(err)
		h.placeholder(c, status, domain.KindPost, domain.Placeholder(domain.KindPost, err))

		return
	}

	var buf bytes.Buffer
	if err := h.views.RenderTagListing(&buf, listing); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, contentTypeHTML, buf.Bytes())
}

// Legacy handles GET /post.html?id= and /project.html?id=, rendering the
// record the same way its clean URL does.
func (h *ViewHandler) Legacy(kind domain.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.RecordQuery

		view := &app.View{
			Placeholder: domain.Placeholder(kind, domain.ErrNotFound),
			Err:         domain.NewNotFoundError(kind, c.Query("id")),
		}

		if err := dto.BindQueryAndValidate(c, &q); err == nil {
			view = h.pages.View(c.Request.Context(), kind, q.ID)
		}

		status := http.StatusOK
		if !view.OK() {
			status, _ = dto.MapDomainError(view.Err)
		}

		var buf bytes.Buffer
		if err := h.views.RenderPage(&buf, kind, view); err != nil {
			dto.HandleError(c, err)
			return
		}

		c.Data(status, contentTypeHTML, buf.Bytes())
	}
}

func (h *ViewHandler) placeholder(c *gin.Context, status int, kind domain.Kind, message string) {
	var buf bytes.Buffer
	if err := h.views.RenderPage(&buf, kind, &app.View{Placeholder: message}); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(status, contentTypeHTML, buf.Bytes())
}

// RegisterViewRoutes registers the HTML routes on rg.
func (h *ViewHandler) RegisterViewRoutes(rg gin.IRoutes) {
	for _, kind := range domain.Kinds {
		rg.GET("/"+kind.Section()+"/", h.Listing(kind))
		rg.GET("/"+string(kind)+".html", h.Legacy(kind))
	}

	rg.GET("/blog/tags/", h.Tags)
}
