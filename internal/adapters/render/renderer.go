// Package render turns content bodies into HTML fragments.
//
// Markdown goes through goldmark with GFM, hard line breaks and chroma
// highlighting for fenced code. Math is shielded from the Markdown parser
// and optionally marked up afterwards. Raw HTML bodies pass through
// untouched unless sanitizing is enabled.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/url"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/nishantarora/portfolio/internal/domain"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// Config controls rendering.
type Config struct {
	// ProtectPostMath extends math protection to posts. Projects always get it.
	ProtectPostMath bool

	// Typesetter marks up math in the rendered fragment. Nil disables the pass.
	Typesetter Typesetter

	// SanitizeHTML runs raw HTML bodies through a UGC policy.
	SanitizeHTML bool

	// Emoji enables :shortcode: replacement.
	Emoji bool

	HighlightStyle string
	WordsPerMinute int
}

// Renderer converts records and their content into fragments.
// It is safe for concurrent use.
type Renderer struct {
	cfg      Config
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

// New creates a Renderer.
func New(cfg Config) *Renderer {
	if cfg.HighlightStyle == "" {
		cfg.HighlightStyle = DefaultHighlightStyle
	}

	if cfg.WordsPerMinute <= 0 {
		cfg.WordsPerMinute = domain.WordsPerMinute
	}

	extensions := []goldmark.Extender{
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle(cfg.HighlightStyle),
			highlighting.WithGuessLanguage(true),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		),
	}
	if cfg.Emoji {
		extensions = append(extensions, emoji.Emoji)
	}

	md := goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithUnsafe()),
	)

	r := &Renderer{cfg: cfg, md: md}

	if cfg.SanitizeHTML {
		r.sanitize = bluemonday.UGCPolicy()
		r.sanitize.AllowAttrs("class").Globally()
	}

	return r
}

// Body renders content. Non-Markdown content is returned as is, or
// sanitized when configured. protectMath shields $..$ and $$..$$ spans
// from the Markdown parser.
func (r *Renderer) Body(content string, isMarkdown, protectMath bool) (string, error) {
	if !isMarkdown {
		if r.sanitize != nil {
			return r.sanitize.Sanitize(content), nil
		}

		return content, nil
	}

	var spans mathSpans
	if protectMath {
		content, spans = extractMath(content)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	out := spans.restore(buf.String())

	if r.cfg.Typesetter != nil {
		out = typesetHTML(out, r.cfg.Typesetter)
	}

	return out, nil
}

// Render builds the complete fragment for rec. It has no side effects.
func (r *Renderer) Render(rec *domain.Record, content string) (*domain.Fragment, error) {
	if rec.IsMarkdown() {
		content = stripFrontMatter(content)
	}

	protect := rec.Kind == domain.KindProject || r.cfg.ProtectPostMath

	body, err := r.Body(content, rec.IsMarkdown(), protect)
	if err != nil {
		return nil, fmt.Errorf("rendering %s %q: %w", rec.Kind, rec.ID, err)
	}

	words := domain.WordCount(content)
	reading := domain.FormatReadingTime(domain.ReadingMinutes(words, r.cfg.WordsPerMinute))

	var b strings.Builder

	b.WriteString("<h1>" + html.EscapeString(rec.Title) + "</h1>\n")

	if rec.Kind == domain.KindPost {
		b.WriteString(`<div class="post-meta">`)

		if date := strings.TrimSpace(domain.FormatDate(rec.Date)); date != "" {
			b.WriteString(html.EscapeString(date) + " · ")
		}

		b.WriteString(reading + "</div>\n")
		b.WriteString(TagBadges(rec.Tags))
	} else {
		b.WriteString(TechStack(rec.Tech))
	}

	b.WriteString(`<div class="post-body">` + body + "</div>\n")

	return &domain.Fragment{
		HTML:        b.String(),
		Body:        body,
		Words:       words,
		ReadingTime: reading,
	}, nil
}

// TagBadges renders post tags as links to the tag page. Empty input yields "".
func TagBadges(tags []string) string {
	if len(tags) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(`<div class="post-tags">`)

	for _, tag := range tags {
		href := "/blog/tags/?tag=" + url.QueryEscape(tag)
		b.WriteString(`<a href="` + html.EscapeString(href) + `" class="tag-link">` + html.EscapeString(tag) + "</a>")
	}

	b.WriteString("</div>\n")

	return b.String()
}

// TechStack renders project tech labels with their icons. Empty input yields "".
func TechStack(tech []string) string {
	if len(tech) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString(`<div class="tech-stack">`)

	for _, label := range tech {
		b.WriteString(TechBadge(label))
	}

	b.WriteString("</div>\n")

	return b.String()
}

// TechBadge renders one tech label.
func TechBadge(label string) string {
	return `<span class="tech-tag"><i class="` + domain.TechIcon(label) + `"></i> ` + html.EscapeString(label) + "</span>"
}

// WriteCSS writes the stylesheet for highlighted code blocks.
func (r *Renderer) WriteCSS(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(w, styles.Get(r.cfg.HighlightStyle)); err != nil {
		return fmt.Errorf("writing highlight css: %w", err)
	}

	return nil
}
