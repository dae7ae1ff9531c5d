package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nishantarora/portfolio/internal/adapters/clients"
	"github.com/nishantarora/portfolio/internal/adapters/clients/acl"
	"github.com/nishantarora/portfolio/internal/adapters/render"
	"github.com/nishantarora/portfolio/internal/adapters/store"
	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/domain"
	"github.com/nishantarora/portfolio/internal/platform/config"
	"github.com/nishantarora/portfolio/internal/ports"
)

// contentStore is a content source that can also report its health.
type contentStore interface {
	ports.ContentStore
	ports.HealthChecker
}

// components are the pipeline pieces shared by every command.
type components struct {
	site     domain.Site
	store    contentStore
	renderer *render.Renderer
	output   afero.Fs

	// watchDirs is empty for remote sources.
	watchDirs []string
}

func siteFromConfig(cfg *config.SiteConfig) domain.Site {
	return domain.Site{
		Title:        cfg.Title,
		Author:       cfg.Author,
		Description:  cfg.Description,
		BaseURL:      cfg.BaseURL,
		DefaultImage: cfg.DefaultImage,
		Language:     cfg.Language,
		FeedPath:     cfg.FeedPath,
	}
}

func layoutFromConfig(cfg *config.ContentConfig) ports.ContentLayout {
	return ports.ContentLayout{
		PostsMetadata:    cfg.PostsMetadata,
		ProjectsMetadata: cfg.ProjectsMetadata,
		PostsDir:         cfg.PostsDir,
		ProjectsDir:      cfg.ProjectsDir,
	}
}

func rendererFromConfig(cfg *config.RenderConfig) *render.Renderer {
	rc := render.Config{
		ProtectPostMath: cfg.ProtectPostMath,
		SanitizeHTML:    cfg.SanitizeHTML,
		Emoji:           cfg.Emoji,
		HighlightStyle:  cfg.HighlightStyle,
		WordsPerMinute:  cfg.WordsPerMinute,
	}

	if cfg.TypesetMath {
		rc.Typesetter = render.MarkupTypesetter{}
	}

	return render.New(rc)
}

// newStore selects the content source named by content.source.
func newStore(cfg *config.Config, logger *slog.Logger) (contentStore, []string, error) {
	layout := layoutFromConfig(&cfg.Content)

	switch cfg.Content.Source {
	case config.SourceHTTP:
		client, err := clients.New(&clients.Config{
			BaseURL:     cfg.Content.RemoteBaseURL,
			ServiceName: "remote-content",
			Timeout:     cfg.Client.Timeout,
			Retry:       cfg.Client.Retry,
			Circuit:     cfg.Client.CircuitBreaker,
			Transport:   cfg.Client.Transport,
			UserAgent:   cfg.App.Name + "/" + cfg.App.Version,
			Logger:      logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("creating content client: %w", err)
		}

		return acl.NewRemoteStore(client, layout), nil, nil

	default:
		root, err := filepath.Abs(cfg.Content.Root)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving content root: %w", err)
		}

		fsStore := store.NewOS(root, layout)

		dirs := fsStore.Watched()
		for i, d := range dirs {
			dirs[i] = filepath.Join(root, d)
		}

		return fsStore, dirs, nil
	}
}

func newComponents(cfg *config.Config, logger *slog.Logger) (*components, error) {
	st, dirs, err := newStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	// BasePathFs rejects every name under a relative base such as ".".
	outRoot, err := filepath.Abs(cfg.Output.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving output root: %w", err)
	}

	return &components{
		site:      siteFromConfig(&cfg.Site),
		store:     st,
		renderer:  rendererFromConfig(&cfg.Render),
		output:    afero.NewBasePathFs(afero.NewOsFs(), outRoot),
		watchDirs: dirs,
	}, nil
}

func (c *components) pageBuilder(cfg *config.Config, logger *slog.Logger) (*app.PageBuilder, error) {
	shells, err := app.NewShells(c.site)
	if err != nil {
		return nil, fmt.Errorf("loading shell template: %w", err)
	}

	return app.NewPageBuilder(app.PageBuilderConfig{
		Source:    c.store,
		Output:    c.output,
		Shells:    shells,
		Reconcile: cfg.Output.Reconcile,
		Logger:    logger,
	}), nil
}

func (c *components) feedBuilder(cfg *config.Config, logger *slog.Logger) *app.FeedBuilder {
	return app.NewFeedBuilder(app.FeedBuilderConfig{
		Site:     c.site,
		Source:   c.store,
		Output:   c.output,
		FeedFile: cfg.Output.FeedFile,
		Logger:   logger,
	})
}

func (c *components) loader(cfg *config.Config, logger *slog.Logger) *app.Loader {
	return app.NewLoader(app.LoaderConfig{
		Store:     c.store,
		Renderer:  c.renderer,
		Site:      c.site,
		CacheSize: cfg.Render.CacheSize,
		Logger:    logger,
	})
}
