package domain

import "strings"

// Meta tag attribute kinds. Open Graph and article tags are keyed by
// property, Twitter cards by name.
const (
	AttrProperty = "property"
	AttrName     = "name"
)

// Site is the identity shared by every generated page and the feed.
type Site struct {
	Title        string
	Author       string
	Description  string
	BaseURL      string
	DefaultImage string
	Language     string
	FeedPath     string
}

// URL joins path onto the site base URL.
func (s Site) URL(path string) string {
	return strings.TrimRight(s.BaseURL, "/") + path
}

// Permalink is the canonical view URL of a record, e.g. https://host/blog/my-post/.
func (s Site) Permalink(rec *Record) string {
	return s.URL("/" + rec.Kind.Section() + "/" + rec.ID + "/")
}

// MetaTag is one <meta> element in a document head.
type MetaTag struct {
	Attr    string
	Key     string
	Content string
}

// Head is the mutable document head of a rendered page.
type Head struct {
	Title string
	Meta  []MetaTag
}

// Upsert sets the content of the tag identified by attr and key, adding it
// when absent. Existing tags are updated in place, never duplicated.
// Empty content is ignored.
func (h *Head) Upsert(attr, key, content string) {
	if content == "" {
		return
	}

	for i := range h.Meta {
		if h.Meta[i].Attr == attr && h.Meta[i].Key == key {
			h.Meta[i].Content = content
			return
		}
	}

	h.Meta = append(h.Meta, MetaTag{Attr: attr, Key: key, Content: content})
}

// ReplaceAll drops every tag with attr and key and appends one per value.
// Used for repeated tags such as article:tag so reapplying stays stable.
func (h *Head) ReplaceAll(attr, key string, values []string) {
	kept := h.Meta[:0]
	for _, m := range h.Meta {
		if m.Attr != attr || m.Key != key {
			kept = append(kept, m)
		}
	}

	h.Meta = kept

	for _, v := range values {
		if v != "" {
			h.Meta = append(h.Meta, MetaTag{Attr: attr, Key: key, Content: v})
		}
	}
}

// Get returns the content of the first tag matching attr and key.
func (h *Head) Get(attr, key string) (string, bool) {
	for _, m := range h.Meta {
		if m.Attr == attr && m.Key == key {
			return m.Content, true
		}
	}

	return "", false
}

// Values returns the contents of every tag matching attr and key, in order.
func (h *Head) Values(attr, key string) []string {
	var out []string
	for _, m := range h.Meta {
		if m.Attr == attr && m.Key == key {
			out = append(out, m.Content)
		}
	}

	return out
}

// ApplyRecord sets the page title and social preview tags for rec.
// Applying the same record twice leaves the head unchanged.
func (h *Head) ApplyRecord(site Site, rec *Record) {
	h.Title = rec.Title + " - " + site.Author

	url := site.Permalink(rec)
	summary := rec.Summary()

	image := site.DefaultImage
	if rec.Image != "" {
		image = site.URL(rec.Image)
	}

	ogType := "website"
	if rec.Kind == KindPost {
		ogType = "article"
	}

	h.Upsert(AttrProperty, "og:type", ogType)
	h.Upsert(AttrProperty, "og:url", url)
	h.Upsert(AttrProperty, "og:title", rec.Title)
	h.Upsert(AttrProperty, "og:description", summary)
	h.Upsert(AttrProperty, "og:image", image)
	h.Upsert(AttrProperty, "og:site_name", site.Title)

	if rec.Kind == KindPost {
		h.Upsert(AttrProperty, "article:published_time", rec.Date)
		h.ReplaceAll(AttrProperty, "article:tag", rec.Tags)
	}

	h.Upsert(AttrName, "twitter:card", "summary_large_image")
	h.Upsert(AttrName, "twitter:url", url)
	h.Upsert(AttrName, "twitter:title", rec.Title)
	h.Upsert(AttrName, "twitter:description", summary)
	h.Upsert(AttrName, "twitter:image", image)
}
