package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/nishantarora/portfolio/internal/domain"
)

// Publisher regenerates the whole output tree: the shells of every kind,
// then the feed. Each kind's batch and the feed fail independently.
type Publisher struct {
	pages  *PageBuilder
	feed   *FeedBuilder
	now    func() time.Time
	logger *slog.Logger

	mu   sync.RWMutex
	last *PublishReport
}

// NewPublisher creates a Publisher. Either builder may be nil to skip it.
func NewPublisher(pages *PageBuilder, feed *FeedBuilder, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}

	return &Publisher{
		pages:  pages,
		feed:   feed,
		now:    time.Now,
		logger: logger.With(slog.String("component", "app.Publisher")),
	}
}

// PublishReport summarizes one Publish run.
type PublishReport struct {
	StartedAt time.Time
	Duration  time.Duration
	Pages     []*BuildReport
	Feed      *FeedReport
	Errors    []string
}

// OK reports whether everything was written.
func (r *PublishReport) OK() bool {
	return len(r.Errors) == 0
}

// Publish rebuilds every kind's shells and the feed. The returned error
// joins every failure; the report is always non-nil.
func (p *Publisher) Publish(ctx context.Context) (*PublishReport, error) {
	report := &PublishReport{StartedAt: p.now().UTC()}

	var errs []error

	if p.pages != nil {
		for _, kind := range domain.Kinds {
			pages, err := p.pages.Build(ctx, kind)
			if pages != nil {
				report.Pages = append(report.Pages, pages)
			}

			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	if p.feed != nil {
		feed, err := p.feed.Run(ctx, p.now())
		report.Feed = feed

		if err != nil {
			errs = append(errs, err)
		}
	}

	for _, err := range errs {
		report.Errors = append(report.Errors, err.Error())
	}

	report.Duration = time.Since(report.StartedAt)

	p.mu.Lock()
	p.last = report
	p.mu.Unlock()

	err := errors.Join(errs...)
	if err != nil {
		p.logger.WarnContext(ctx, "publish incomplete", slog.Any("error", err))
	} else {
		p.logger.InfoContext(ctx, "publish completed", slog.Duration("duration", report.Duration))
	}

	return report, err
}

// Last returns the report of the most recent Publish, or nil.
func (p *Publisher) Last() *PublishReport {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.last
}
