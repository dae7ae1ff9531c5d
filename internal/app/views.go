package app

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/nishantarora/portfolio/internal/domain"
)

//go:embed templates/views.html.tmpl
var viewsSource string

// Views renders complete HTML documents on the server: a record with its
// fragment inlined, and the post, project and tag listings. The preview
// server uses them for URLs that have no generated shell.
type Views struct {
	tmpl *template.Template
	site domain.Site
}

// NewViews parses the view templates for site.
func NewViews(site domain.Site) (*Views, error) {
	tmpl, err := template.New("views").Parse(viewsSource)
	if err != nil {
		return nil, fmt.Errorf("parsing view templates: %w", err)
	}

	return &Views{tmpl: tmpl, site: site}, nil
}

type viewHead struct {
	Site    domain.Site
	Section string
	Title   string
	Meta    []domain.MetaTag
	FeedURL string
}

type pageData struct {
	viewHead

	SectionTitle string
	ArticleID    string
	Placeholder  string

	// HTML is renderer output, trusted like the authored content it came from.
	HTML template.HTML
}

type listingItem struct {
	Title   string
	URL     string
	Date    string
	Summary string
}

type listingData struct {
	viewHead

	Heading string
	Items   []listingItem
	Message string
}

func (v *Views) head(kind domain.Kind, title string) viewHead {
	return viewHead{
		Site:    v.site,
		Section: kind.Section(),
		Title:   title,
		FeedURL: v.site.URL(v.site.FeedPath),
	}
}

// RenderPage writes the document for view: the page with its head tags,
// or the placeholder when loading failed.
func (v *Views) RenderPage(w io.Writer, kind domain.Kind, view *View) error {
	data := pageData{
		viewHead:     v.head(kind, v.site.Title),
		SectionTitle: "Blog",
		ArticleID:    "post-content",
	}

	if kind == domain.KindProject {
		data.SectionTitle = "Projects"
		data.ArticleID = "project-content"
	}

	if view.OK() {
		data.Title = view.Page.Head.Title
		data.Meta = view.Page.Head.Meta
		data.HTML = template.HTML(view.Page.Fragment.HTML) //nolint:gosec // renderer output
	} else {
		data.Placeholder = view.Placeholder
	}

	return v.execute(w, "page", data)
}

// RenderListing writes the listing page of kind. Records are shown in
// the order given.
func (v *Views) RenderListing(w io.Writer, kind domain.Kind, records []domain.Record) error {
	heading := "Blog"
	if kind == domain.KindProject {
		heading = "Projects"
	}

	data := listingData{
		viewHead: v.head(kind, heading+" - "+v.site.Author),
		Heading:  heading,
		Items:    listingItems(kind, records),
	}

	return v.execute(w, "listing", data)
}

// RenderTagListing writes the tag page for listing.
func (v *Views) RenderTagListing(w io.Writer, listing *TagListing) error {
	heading := "Posts tagged " + listing.DisplayName
	if listing.Tag == "" {
		heading = "Tags"
	}

	data := listingData{
		viewHead: v.head(domain.KindPost, heading+" - "+v.site.Author),
		Heading:  heading,
		Items:    listingItems(domain.KindPost, listing.Posts),
		Message:  listing.Message,
	}

	return v.execute(w, "listing", data)
}

func (v *Views) execute(w io.Writer, name string, data any) error {
	if err := v.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s view: %w", name, err)
	}

	return nil
}

func listingItems(kind domain.Kind, records []domain.Record) []listingItem {
	items := make([]listingItem, len(records))
	for i := range records {
		rec := &records[i]
		items[i] = listingItem{
			Title:   rec.Title,
			URL:     "/" + kind.Section() + "/" + rec.ID + "/",
			Summary: rec.Summary(),
		}

		if rec.Date != "" {
			items[i].Date = domain.FormatDate(rec.Date)
		}
	}

	return items
}
