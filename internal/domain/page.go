package domain

import (
	"strings"
	"time"
)

// DisplayDateLayout is the long US form used in post headers.
const DisplayDateLayout = "January 2, 2006"

// Fragment is the rendered, self-contained HTML for one record.
type Fragment struct {
	// HTML is the complete fragment: heading, meta line, badges and body.
	HTML string

	// Body is the rendered content body alone.
	Body string

	Words       int
	ReadingTime string
}

// Page is a record prepared for viewing.
type Page struct {
	Record   Record
	Head     Head
	Fragment Fragment
}

// FormatDate renders an ISO date string for display. Unparsable input is
// returned unchanged.
func FormatDate(raw string) string {
	t, err := ParseDate(raw)
	if err != nil {
		return raw
	}

	return t.Format(DisplayDateLayout)
}

// FormatTime renders t in the display layout, in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(DisplayDateLayout)
}

// Placeholder is the message shown in place of a page that could not be
// loaded. Not-found errors get the short form; anything else asks the
// reader to retry.
func Placeholder(kind Kind, err error) string {
	if IsNotFound(err) {
		return kind.Title() + " not found."
	}

	return "Error loading " + strings.ToLower(kind.Title()) + ". Please try again later."
}
