package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"time"

	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"

	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/platform/telemetry"
	"github.com/nishantarora/portfolio/internal/ports"
)

// IndexFile is the name of the shell written into each record directory.
const IndexFile = "index.html"

// PageBuilder writes one index.html shell per record under
// {output}/{section}/{id}/.
type PageBuilder struct {
	source    ports.MetadataSource
	output    afero.Fs
	shells    *Shells
	reconcile bool
	logger    *slog.Logger
}

// PageBuilderConfig holds the page builder's dependencies.
type PageBuilderConfig struct {
	Source ports.MetadataSource

	// Output is rooted at the site's output directory.
	Output afero.Fs

	Shells *Shells

	// Reconcile removes generated directories that no longer match a record.
	Reconcile bool

	Logger *slog.Logger
}

// NewPageBuilder creates a PageBuilder. It panics on missing dependencies.
func NewPageBuilder(cfg PageBuilderConfig) *PageBuilder {
	if cfg.Source == nil || cfg.Output == nil || cfg.Shells == nil {
		panic("app: NewPageBuilder requires a source, an output filesystem and shells")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PageBuilder{
		source:    cfg.Source,
		output:    cfg.Output,
		shells:    cfg.Shells,
		reconcile: cfg.Reconcile,
		logger:    logger.With(slog.String("component", "app.PageBuilder")),
	}
}

// RecordFailure is one record the batch could not write.
type RecordFailure struct {
	ID  string
	Err error
}

// BuildReport summarizes one batch.
type BuildReport struct {
	Kind      domain.Kind
	Total     int
	Succeeded int

	// Written lists output paths relative to the output root.
	Written []string

	// Removed lists stale record directories deleted by reconciliation.
	Removed []string

	Failed   []RecordFailure
	Duration time.Duration
}

// OK reports whether every record was written.
func (r *BuildReport) OK() bool {
	return r.Succeeded == r.Total
}

// Err returns a PartialBuildError when any record failed, else nil.
func (r *BuildReport) Err() error {
	if r.OK() {
		return nil
	}

	return &domain.PartialBuildError{Kind: r.Kind, Succeeded: r.Succeeded, Total: r.Total}
}

// Build writes the shells for every record of kind.
//
// A missing, unparsable or invalid metadata list aborts the batch before
// anything is written and returns a BuildError. Otherwise each record is
// written independently; failures are logged, counted, and reported as a
// PartialBuildError alongside the report.
func (b *PageBuilder) Build(ctx context.Context, kind domain.Kind) (report *BuildReport, err error) {
	ctx, span := telemetry.StartSpan(ctx, "pages.build", attribute.String("build.kind", string(kind)))
	defer func() { telemetry.EndSpan(span, err) }()

	logger := b.logger.With(slog.String("kind", string(kind)))
	start := time.Now()

	records, err := b.source.Records(ctx, kind)
	if err != nil {
		logger.ErrorContext(ctx, "metadata unavailable", slog.Any("error", err))
		return nil, domain.NewBuildError(kind, err)
	}

	if err := domain.ValidateRecords(records); err != nil {
		logger.ErrorContext(ctx, "metadata invalid", slog.Any("error", err))
		return nil, domain.NewBuildError(kind, err)
	}

	logger.InfoContext(ctx, "building pages", slog.Int("records", len(records)))

	report = &BuildReport{Kind: kind, Total: len(records)}
	section := kind.Section()

	if b.reconcile {
		report.Removed = b.removeStale(ctx, logger, section, records)
	}

	for i := range records {
		rec := &records[i]

		_, recLogger := recordContext(ctx, logger, kind, rec.ID)

		written, err := b.writeShell(section, rec)
		if err != nil {
			recLogger.ErrorContext(ctx, "writing page failed", slog.Any("error", err))
			report.Failed = append(report.Failed, RecordFailure{ID: rec.ID, Err: err})

			continue
		}

		recLogger.DebugContext(ctx, "page written", slog.String("path", written))
		report.Written = append(report.Written, written)
		report.Succeeded++
	}

	report.Duration = time.Since(start)
	telemetry.Builds().Record(ctx, "pages", string(kind), report.Succeeded, len(report.Failed), report.Duration)

	logger.InfoContext(ctx, "pages built",
		slog.Int("succeeded", report.Succeeded),
		slog.Int("total", report.Total),
		slog.Int("removed", len(report.Removed)),
		slog.Duration("duration", report.Duration),
	)

	return report, report.Err()
}

// writeShell ensures the record directory exists and overwrites its index.html.
func (b *PageBuilder) writeShell(section string, rec *domain.Record) (string, error) {
	dir := path.Join(section, rec.ID)
	if err := b.output.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	content, err := b.shells.Bytes(rec)
	if err != nil {
		return "", err
	}

	file := path.Join(dir, IndexFile)
	if err := afero.WriteFile(b.output, file, content, 0o644); err != nil {
		return "", err
	}

	return file, nil
}

// removeStale deletes generated record directories under section that match
// no current record. Directories without a generated index.html are left
// alone. Removal failures are logged and do not fail the batch.
func (b *PageBuilder) removeStale(ctx context.Context, logger *slog.Logger, section string, records []domain.Record) []string {
	entries, err := afero.ReadDir(b.output, section)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.WarnContext(ctx, "listing output failed", slog.String("dir", section), slog.Any("error", err))
		}

		return nil
	}

	current := make(map[string]struct{}, len(records))
	for i := range records {
		current[records[i].ID] = struct{}{}
	}

	var removed []string

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		if _, ok := current[entry.Name()]; ok {
			continue
		}

		dir := path.Join(section, entry.Name())

		index, err := afero.ReadFile(b.output, path.Join(dir, IndexFile))
		if err != nil || !IsGenerated(index) {
			continue
		}

		if err := b.output.RemoveAll(dir); err != nil {
			logger.WarnContext(ctx, "removing stale page failed", slog.String("dir", dir), slog.Any("error", err))
			continue
		}

		logger.InfoContext(ctx, "removed stale page", slog.String("dir", dir))
		removed = append(removed, dir)
	}

	return removed
}
