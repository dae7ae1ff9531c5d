// Package watch rebuilds the generated site when content changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/nishantarora/portfolio/internal/app"
)

// DefaultDebounce is how long the watcher waits for a burst of changes to
// settle before rebuilding.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoDirectories is returned by Run when none of the configured
// directories could be watched.
var ErrNoDirectories = errors.New("no directories to watch")

// Publisher rebuilds the output tree. *app.Publisher implements it.
type Publisher interface {
	Publish(ctx context.Context) (*app.PublishReport, error)
}

// Purger drops cached renders so a rebuild sees edited content.
// *app.Loader implements it.
type Purger interface {
	Purge()
}

// Config configures a Watcher.
type Config struct {
	// Dirs are the directories to watch. Subdirectories are not followed.
	Dirs []string

	Debounce  time.Duration
	Publisher Publisher

	// Cache is purged before every rebuild. Optional.
	Cache Purger

	Logger *slog.Logger
}

// Watcher triggers a debounced rebuild for every burst of changes.
type Watcher struct {
	dirs      []string
	debounce  time.Duration
	publisher Publisher
	cache     Purger
	logger    *slog.Logger
}

// New creates a Watcher. It panics without a publisher.
func New(cfg Config) *Watcher {
	if cfg.Publisher == nil {
		panic("watch: publisher is required")
	}

	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Watcher{
		dirs:      cfg.Dirs,
		debounce:  cfg.Debounce,
		publisher: cfg.Publisher,
		cache:     cfg.Cache,
		logger:    cfg.Logger.With(slog.String("component", "watch")),
	}
}

// Run watches until ctx is cancelled. Rebuild failures are logged and do
// not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	watched := 0

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			w.logger.WarnContext(ctx, "cannot watch directory",
				slog.String("dir", dir),
				slog.Any("error", err),
			)

			continue
		}

		watched++
	}

	if watched == 0 {
		return ErrNoDirectories
	}

	w.logger.InfoContext(ctx, "watching content",
		slog.Any("dirs", fsw.WatchList()),
		slog.Duration("debounce", w.debounce),
	)

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if !relevant(event) {
				continue
			}

			w.logger.DebugContext(ctx, "content changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)

			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := fsw.Add(event.Name); err != nil {
					w.logger.WarnContext(ctx, "cannot watch new directory",
						slog.String("dir", event.Name),
						slog.Any("error", err),
					)
				}
			}

			timer.Reset(w.debounce)

		case <-timer.C:
			w.rebuild(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			w.logger.WarnContext(ctx, "watcher error", slog.Any("error", err))
		}
	}
}

// rebuild purges cached renders and republishes the site.
func (w *Watcher) rebuild(ctx context.Context) {
	if w.cache != nil {
		w.cache.Purge()
	}

	start := time.Now()

	report, err := w.publisher.Publish(ctx)
	if err != nil {
		w.logger.ErrorContext(ctx, "rebuild failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.Any("error", err),
		)

		return
	}

	attrs := []any{slog.Duration("elapsed", time.Since(start))}
	if report != nil {
		attrs = append(attrs, slog.Int("kinds", len(report.Pages)))
	}

	w.logger.InfoContext(ctx, "rebuilt site", attrs...)
}

// relevant filters out attribute-only changes, which editors emit on save
// without touching content.
func relevant(event fsnotify.Event) bool {
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
