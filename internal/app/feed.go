package app

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/antchfx/xmlquery"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/platform/telemetry"
	"github.com/nishantarora/portfolio/internal/ports"
)

// PubDateLayout is RFC 1123 with a literal GMT zone, as RSS readers expect.
const PubDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

const atomNamespace = "http://www.w3.org/2005/Atom"

type rssDocument struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	Language      string    `xml:"language"`
	LastBuildDate string    `xml:"lastBuildDate"`
	AtomLink      atomLink  `xml:"atom:link"`
	Items         []rssItem `xml:"item"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate,omitempty"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// FeedBuilder serializes posts into an RSS 2.0 document.
type FeedBuilder struct {
	site     domain.Site
	source   ports.MetadataSource
	output   afero.Fs
	feedFile string
	logger   *slog.Logger
}

// FeedBuilderConfig holds the feed builder's dependencies.
type FeedBuilderConfig struct {
	Site domain.Site

	// Source and Output are only needed by Run.
	Source ports.MetadataSource
	Output afero.Fs

	// FeedFile is the output path relative to the output root.
	FeedFile string

	Logger *slog.Logger
}

// NewFeedBuilder creates a FeedBuilder.
func NewFeedBuilder(cfg FeedBuilderConfig) *FeedBuilder {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	feedFile := cfg.FeedFile
	if feedFile == "" {
		feedFile = "feed.xml"
	}

	return &FeedBuilder{
		site:     cfg.Site,
		source:   cfg.Source,
		output:   cfg.Output,
		feedFile: feedFile,
		logger:   logger.With(slog.String("component", "app.FeedBuilder")),
	}
}

// Build renders the feed for posts. Posts are ordered newest first; posts
// sharing a date keep their input order. lastBuildDate is the newest post
// date, or now when there are no dated posts. The output depends only on
// its inputs.
func (b *FeedBuilder) Build(posts []domain.Record, now time.Time) ([]byte, error) {
	sorted := SortByDate(posts)

	lastBuild := now
	if len(sorted) > 0 {
		if t, ok := sorted[0].Published(); ok {
			lastBuild = t
		}
	}

	doc := rssDocument{
		Version: "2.0",
		AtomNS:  atomNamespace,
		Channel: rssChannel{
			Title:         b.site.Title,
			Link:          b.site.URL(""),
			Description:   b.site.Description,
			Language:      b.site.Language,
			LastBuildDate: lastBuild.UTC().Format(PubDateLayout),
			AtomLink: atomLink{
				Href: b.site.URL(b.site.FeedPath),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: make([]rssItem, 0, len(sorted)),
		},
	}

	for i := range sorted {
		doc.Channel.Items = append(doc.Channel.Items, b.item(&sorted[i]))
	}

	var buf bytes.Buffer

	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "    ")

	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func (b *FeedBuilder) item(post *domain.Record) rssItem {
	link := b.Permalink(post)

	it := rssItem{
		Title:       post.Title,
		Link:        link,
		GUID:        rssGUID{IsPermaLink: true, Value: link},
		Description: post.Summary(),
		Categories:  post.Tags,
	}

	if t, ok := post.Published(); ok {
		it.PubDate = t.Format(PubDateLayout)
	}

	return it
}

// Permalink is the feed link and guid of a post: {base}/blog/{id}.
func (b *FeedBuilder) Permalink(post *domain.Record) string {
	return b.site.URL("/" + domain.KindPost.Section() + "/" + post.ID)
}

// FeedReport summarizes a feed run.
type FeedReport struct {
	Path  string
	Items int
	Bytes int
}

// Run reads every post, builds the feed and writes it over the previous
// one. The new document is parsed back before it is written, so a failed
// run leaves the old feed in place. A missing or invalid post list is fatal.
func (b *FeedBuilder) Run(ctx context.Context, now time.Time) (report *FeedReport, err error) {
	ctx, span := telemetry.StartSpan(ctx, "feed.build")
	defer func() { telemetry.EndSpan(span, err) }()

	start := time.Now()

	var posts []domain.Record

	job := Job[time.Time, []byte]{
		Name: "feed",
		Validate: func(ctx context.Context, _ time.Time) error {
			records, err := b.source.Records(ctx, domain.KindPost)
			if err != nil {
				return err
			}

			if err := domain.ValidateRecords(records); err != nil {
				return err
			}

			posts = records

			return nil
		},
		Perform: func(_ context.Context, now time.Time) ([]byte, error) {
			return b.Build(posts, now)
		},
		Verify: func(_ context.Context, _ time.Time, feed []byte) error {
			return verifyFeed(feed, len(posts))
		},
		Archive: func(_ context.Context, _ time.Time, feed []byte) error {
			return afero.WriteFile(b.output, b.feedFile, feed, 0o644)
		},
	}

	feed, err := Run(ctx, b.logger, job, now)
	if err != nil {
		return nil, domain.NewBuildError(domain.KindPost, err)
	}

	span.SetAttributes(attribute.Int("feed.items", len(posts)))
	telemetry.Builds().Record(ctx, "feed", string(domain.KindPost), len(posts), 0, time.Since(start))

	b.logger.InfoContext(ctx, "feed written",
		slog.String("path", b.feedFile),
		slog.Int("items", len(posts)),
	)

	return &FeedReport{Path: b.feedFile, Items: len(posts), Bytes: len(feed)}, nil
}

// verifyFeed parses feed and checks it carries one item per post.
func verifyFeed(feed []byte, want int) error {
	doc, err := xmlquery.Parse(bytes.NewReader(feed))
	if err != nil {
		return fmt.Errorf("feed is not well-formed: %w", err)
	}

	if xmlquery.FindOne(doc, "/rss/channel") == nil {
		return errors.New("feed has no channel")
	}

	if got := len(xmlquery.Find(doc, "/rss/channel/item")); got != want {
		return fmt.Errorf("feed has %d items, want %d", got, want)
	}

	return nil
}
