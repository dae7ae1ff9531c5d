package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nishantarora/portfolio/internal/adapters/http"
	"github.com/nishantarora/portfolio/internal/adapters/http/handlers"
	"github.com/nishantarora/portfolio/internal/adapters/watch"
	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/platform/config"
	"github.com/nishantarora/portfolio/internal/ports"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Preview the site with its content API",
		Long: "serve publishes the site once, then serves the output tree, the JSON content API the\n" +
			"shell pages call, and server-rendered listings. With watch.enabled it republishes\n" +
			"whenever local content changes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env := envFrom(cmd)
			return runServe(cmd.Context(), env.cfg, env.logger)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	comps, err := newComponents(cfg, logger)
	if err != nil {
		return err
	}

	registry := ports.NewHealthRegistry()
	if err := registry.Register(comps.store); err != nil {
		return fmt.Errorf("registering content store health check: %w", err)
	}

	pages, err := comps.pageBuilder(cfg, logger)
	if err != nil {
		return err
	}

	publisher := app.NewPublisher(pages, comps.feedBuilder(cfg, logger), logger)

	// A failed first publish still leaves the API usable, so it only logs.
	if _, err := publisher.Publish(ctx); err != nil {
		logger.WarnContext(ctx, "initial publish incomplete", slog.Any("error", err))
	}

	loader := comps.loader(cfg, logger)
	catalog := app.NewCatalog(comps.store)

	views, err := app.NewViews(comps.site)
	if err != nil {
		return fmt.Errorf("loading view templates: %w", err)
	}

	server := http.New(&cfg.Server, logger)
	http.SetupRouter(server.Engine(), http.RouterConfig{
		Logger:      logger,
		ServiceName: cfg.Telemetry.ServiceName,
		Health:      handlers.NewHealthHandler(registry, handlers.NewBuildInfo(Version, Commit, BuildTime), publisher),
		Content:     handlers.NewContentHandler(loader, catalog, comps.site),
		Views:       handlers.NewViewHandler(loader, catalog, views),
		Stylesheet:  comps.renderer,
		Output:      comps.output,
		Timeout:     cfg.Server.RequestTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(gctx)
	})

	switch {
	case !cfg.Watch.Enabled:
	case len(comps.watchDirs) == 0:
		logger.WarnContext(ctx, "watch mode needs a local content source; not watching",
			slog.String("source", cfg.Content.Source),
		)
	default:
		watcher := watch.New(watch.Config{
			Dirs:      comps.watchDirs,
			Debounce:  cfg.Watch.Debounce,
			Publisher: publisher,
			Cache:     loader,
			Logger:    logger,
		})

		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}

	return g.Wait()
}
