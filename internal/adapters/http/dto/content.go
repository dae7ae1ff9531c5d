package dto

import (
	"github.com/nishantarora/portfolio/internal/domain"
)

// RecordResponse is one entry of a post or project listing.
type RecordResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     string   `json:"summary,omitempty"`
	Date        string   `json:"date,omitempty"`
	DisplayDate string   `json:"displayDate,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Tech        []string `json:"tech,omitempty"`
	URL         string   `json:"url"`
}

// ListResponse wraps a listing of one kind.
type ListResponse struct {
	Items []RecordResponse `json:"items"`
	Count int              `json:"count"`
}

// TagListingResponse is the result of GET /api/v1/posts?tag=.
type TagListingResponse struct {
	Tag         string           `json:"tag,omitempty"`
	DisplayName string           `json:"displayName,omitempty"`
	Items       []RecordResponse `json:"items"`
	Count       int              `json:"count"`
	Message     string           `json:"message,omitempty"`
}

// MetaTagResponse is one head tag the shell applies after loading a fragment.
type MetaTagResponse struct {
	Attr    string `json:"attr"`
	Key     string `json:"key"`
	Content string `json:"content"`
}

// FragmentResponse is a rendered record ready to be injected into its shell.
type FragmentResponse struct {
	Title       string            `json:"title"`
	HTML        string            `json:"html"`
	Meta        []MetaTagResponse `json:"meta"`
	Words       int               `json:"words"`
	ReadingTime string            `json:"readingTime,omitempty"`
}

// FragmentErrorResponse carries the placeholder a shell shows instead of
// the article when loading fails.
type FragmentErrorResponse struct {
	ErrorResponse

	Placeholder string `json:"placeholder"`
}

// NewRecordResponse converts a record, resolving its permalink against site.
func NewRecordResponse(site domain.Site, rec *domain.Record) RecordResponse {
	resp := RecordResponse{
		ID:      rec.ID,
		Title:   rec.Title,
		Summary: rec.Summary(),
		Date:    rec.Date,
		Tags:    rec.Tags,
		Tech:    rec.Tech,
		URL:     site.Permalink(rec),
	}

	if rec.Date != "" {
		resp.DisplayDate = domain.FormatDate(rec.Date)
	}

	return resp
}

// NewListResponse converts a listing.
func NewListResponse(site domain.Site, records []domain.Record) *ListResponse {
	items := make([]RecordResponse, len(records))
	for i := range records {
		items[i] = NewRecordResponse(site, &records[i])
	}

	return &ListResponse{Items: items, Count: len(items)}
}

// OverviewResponse is the result of GET /api/v1/overview.
type OverviewResponse struct {
	Posts    *ListResponse `json:"posts"`
	Projects *ListResponse `json:"projects"`
}

// NewOverviewResponse converts both listings.
func NewOverviewResponse(site domain.Site, posts, projects []domain.Record) *OverviewResponse {
	return &OverviewResponse{
		Posts:    NewListResponse(site, posts),
		Projects: NewListResponse(site, projects),
	}
}

// TagListing is the input of NewTagListingResponse.
type TagListing struct {
	Tag         string
	DisplayName string
	Posts       []domain.Record
	Message     string
}

// NewTagListingResponse converts a tag listing.
func NewTagListingResponse(site domain.Site, listing TagListing) *TagListingResponse {
	list := NewListResponse(site, listing.Posts)

	return &TagListingResponse{
		Tag:         listing.Tag,
		DisplayName: listing.DisplayName,
		Items:       list.Items,
		Count:       list.Count,
		Message:     listing.Message,
	}
}

// NewFragmentResponse converts a loaded page.
func NewFragmentResponse(page *domain.Page) *FragmentResponse {
	meta := make([]MetaTagResponse, len(page.Head.Meta))
	for i, m := range page.Head.Meta {
		meta[i] = MetaTagResponse{Attr: m.Attr, Key: m.Key, Content: m.Content}
	}

	return &FragmentResponse{
		Title:       page.Head.Title,
		HTML:        page.Fragment.HTML,
		Meta:        meta,
		Words:       page.Fragment.Words,
		ReadingTime: page.Fragment.ReadingTime,
	}
}

// NewFragmentErrorResponse pairs the mapped error with the placeholder
// text the page shows instead of the fragment.
func NewFragmentErrorResponse(err error, placeholder string) (int, *FragmentErrorResponse) {
	status, resp := MapDomainError(err)

	return status, &FragmentErrorResponse{ErrorResponse: *resp, Placeholder: placeholder}
}
