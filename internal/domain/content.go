package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind distinguishes the two record variants sharing one shape.
type Kind string

const (
	// KindPost is a blog post, listed under /blog/.
	KindPost Kind = "post"

	// KindProject is a portfolio project, listed under /projects/.
	KindProject Kind = "project"
)

// Kinds lists every record kind in build order.
var Kinds = []Kind{KindPost, KindProject}

// ParseKind converts a string such as "post" or "projects" into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "post", "posts", "blog":
		return KindPost, nil
	case "project", "projects":
		return KindProject, nil
	default:
		return "", NewValidationErrorWithValue("kind", "must be post or project", s)
	}
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindPost || k == KindProject
}

// Section is the URL path segment and output directory for the kind.
func (k Kind) Section() string {
	if k == KindProject {
		return "projects"
	}

	return "blog"
}

// Title is the display name used in page titles and log output.
func (k Kind) Title() string {
	if k == KindProject {
		return "Project"
	}

	return "Post"
}

// Record is one entry of a metadata list.
// Records are authored by hand and never modified by this module.
type Record struct {
	Kind Kind

	// ID is the URL segment and output directory name. Unique per kind.
	ID string

	Title string

	// Excerpt summarizes a post. Projects use Description instead.
	Excerpt     string
	Description string

	// Date is the ISO date string as authored. Posts only.
	Date string

	// File names the content body, relative to the kind's content directory.
	File string

	// Tags label posts; Tech lists a project's stack.
	Tags []string
	Tech []string

	// Image is an optional social-preview image path.
	Image string
}

// idPattern matches URL-safe unreserved characters.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// ValidID reports whether id can be used as a URL path segment and directory name.
func ValidID(id string) bool {
	return idPattern.MatchString(id) && id != "." && id != ".."
}

// Summary returns the excerpt for posts and the description for projects.
func (r *Record) Summary() string {
	if r.Kind == KindProject {
		if r.Description != "" {
			return r.Description
		}

		return r.Excerpt
	}

	if r.Excerpt != "" {
		return r.Excerpt
	}

	return r.Description
}

// Labels returns tags for posts and tech for projects.
func (r *Record) Labels() []string {
	if r.Kind == KindProject {
		return r.Tech
	}

	return r.Tags
}

// IsMarkdown reports whether the content file should go through the Markdown renderer.
func (r *Record) IsMarkdown() bool {
	return strings.HasSuffix(r.File, ".md")
}

// HasTag reports whether the record carries tag exactly.
func (r *Record) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}

	return false
}

// Published parses Date. Unparsable or empty dates yield the zero time and false.
func (r *Record) Published() (time.Time, bool) {
	t, err := ParseDate(r.Date)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

// Validate checks the record invariants that do not depend on other records.
func (r *Record) Validate() error {
	switch {
	case !r.Kind.Valid():
		return NewValidationErrorWithValue("kind", "must be post or project", r.Kind)
	case r.ID == "":
		return NewValidationError("id", "is required")
	case !ValidID(r.ID):
		return NewValidationErrorWithValue("id", "must contain URL-safe characters only", r.ID)
	case strings.TrimSpace(r.Title) == "":
		return NewValidationErrorWithValue("title", "is required", r.ID)
	case r.File == "":
		return NewValidationErrorWithValue("file", "is required", r.ID)
	}

	if r.Date != "" {
		if _, err := ParseDate(r.Date); err != nil {
			return NewValidationErrorWithValue("date", err.Error(), r.Date)
		}
	}

	return nil
}

// ValidateRecords validates each record and checks ids are unique per kind.
func ValidateRecords(records []Record) error {
	seen := make(map[Kind]map[string]struct{}, len(Kinds))

	for i := range records {
		r := &records[i]
		if err := r.Validate(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		ids, ok := seen[r.Kind]
		if !ok {
			ids = make(map[string]struct{})
			seen[r.Kind] = ids
		}

		if _, dup := ids[r.ID]; dup {
			return NewConflictError(r.Kind, r.ID)
		}

		ids[r.ID] = struct{}{}
	}

	return nil
}

// dateLayouts are the accepted authoring formats for Record.Date.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO date string. Dates without a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
