// Package app contains the pipeline's use cases: loading a record for
// viewing, listing records, and the batch page and feed builds.
//
// It coordinates domain logic and adapters through ports. Nothing here
// knows about HTTP, the CLI or where content is stored.
package app

import (
	"context"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/platform/logging"
	"github.com/nishantarora/portfolio/internal/ports"
)

// Loader resolves a record by id, fetches its content and renders it.
// It is safe for concurrent use; every call re-reads the content store.
type Loader struct {
	store    ports.ContentStore
	renderer ports.Renderer
	site     domain.Site
	cache    *lru.Cache[string, *domain.Fragment]
	logger   *slog.Logger
}

// LoaderConfig holds the loader's dependencies.
type LoaderConfig struct {
	Store    ports.ContentStore
	Renderer ports.Renderer
	Site     domain.Site

	// CacheSize bounds the rendered fragment cache. Zero disables it.
	// Entries are keyed by record and content, so edits are never served stale.
	CacheSize int

	Logger *slog.Logger
}

// NewLoader creates a Loader. It panics if Store or Renderer is nil.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.Store == nil {
		panic("app: NewLoader requires a content store")
	}

	if cfg.Renderer == nil {
		panic("app: NewLoader requires a renderer")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	l := &Loader{
		store:    cfg.Store,
		renderer: cfg.Renderer,
		site:     cfg.Site,
		logger:   logger.With(slog.String("component", "app.Loader")),
	}

	if cfg.CacheSize > 0 {
		// lru.New fails only for non-positive sizes.
		l.cache, _ = lru.New[string, *domain.Fragment](cfg.CacheSize)
	}

	return l
}

// Find returns the record of kind whose id equals id exactly.
func (l *Loader) Find(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	if id == "" {
		return nil, domain.NewNotFoundError(kind, id)
	}

	records, err := l.store.Records(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("loading %s metadata: %w", kind, err)
	}

	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}

	return nil, domain.NewNotFoundError(kind, id)
}

// Load finds the record, fetches and renders its content, and prepares
// the page head. Errors wrap domain.ErrNotFound or domain.ErrFetchFailed.
func (l *Loader) Load(ctx context.Context, kind domain.Kind, id string) (*domain.Page, error) {
	ctx, logger := recordContext(ctx, l.logger, kind, id)

	rec, err := l.Find(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	content, err := l.store.Content(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("loading %s content: %w", kind, err)
	}

	frag, err := l.render(rec, content)
	if err != nil {
		return nil, err
	}

	page := &domain.Page{Record: *rec, Fragment: *frag}
	page.Head.ApplyRecord(l.site, rec)

	logger.Log(ctx, logging.LevelTrace, "page loaded",
		slog.Int("words", frag.Words),
		slog.String("reading_time", frag.ReadingTime),
	)

	return page, nil
}

// View is what a reader gets for a URL: a page, or a placeholder message
// standing in for it.
type View struct {
	Page        *domain.Page
	Placeholder string
	Err         error
}

// OK reports whether the view carries a page.
func (v *View) OK() bool {
	return v.Page != nil
}

// View loads a page and converts failures into placeholders. It never
// returns an error; fetch failures are logged.
func (l *Loader) View(ctx context.Context, kind domain.Kind, id string) *View {
	page, err := l.Load(ctx, kind, id)
	if err == nil {
		return &View{Page: page}
	}

	_, logger := recordContext(ctx, l.logger, kind, id)
	if domain.IsNotFound(err) {
		logger.InfoContext(ctx, "record not found")
	} else {
		logger.ErrorContext(ctx, "loading page failed", slog.Any("error", err))
	}

	return &View{Placeholder: domain.Placeholder(kind, err), Err: err}
}

func (l *Loader) render(rec *domain.Record, content string) (*domain.Fragment, error) {
	if l.cache == nil {
		return l.renderer.Render(rec, content)
	}

	key := fragmentKey(rec, content)
	if frag, ok := l.cache.Get(key); ok {
		return frag, nil
	}

	frag, err := l.renderer.Render(rec, content)
	if err != nil {
		return nil, err
	}

	l.cache.Add(key, frag)

	return frag, nil
}

// Purge drops every cached fragment.
func (l *Loader) Purge() {
	if l.cache != nil {
		l.cache.Purge()
	}
}

// fragmentKey covers every record field the renderer reads, plus the body.
func fragmentKey(rec *domain.Record, content string) string {
	h := fnv.New64a()
	for _, s := range []string{rec.Title, rec.Date, rec.File, strings.Join(rec.Tags, "\x1f"), strings.Join(rec.Tech, "\x1f"), content} {
		_, _ = h.Write([]byte(s))
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%s/%s/%x", rec.Kind, rec.ID, h.Sum64())
}

// recordContext tags the context logger, or fallback, with the record being handled.
func recordContext(ctx context.Context, fallback *slog.Logger, kind domain.Kind, id string) (context.Context, *slog.Logger) {
	ctx = logging.WithContext(ctx, logging.FromContextOr(ctx, fallback))
	ctx = logging.WithRecord(ctx, string(kind), id)

	return ctx, logging.FromContext(ctx)
}
