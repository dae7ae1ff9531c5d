package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"

	"github.com/nishantarora/portfolio/internal/adapters/http/handlers"
	"github.com/nishantarora/portfolio/internal/adapters/http/middleware"
	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds API and view requests.
const DefaultRequestTimeout = 15 * time.Second

// RouterConfig wires the preview server's handlers. Nil handlers leave
// their routes unregistered.
type RouterConfig struct {
	Logger *slog.Logger

	// ServiceName names the server in traces.
	ServiceName string

	Health  *handlers.HealthHandler
	Content *handlers.ContentHandler
	Views   *handlers.ViewHandler

	// Stylesheet serves /assets/highlight.css.
	Stylesheet handlers.CSSWriter

	// Output is the generated site, served for every unmatched GET.
	Output afero.Fs

	Timeout time.Duration
}

// SetupRouter configures middleware and routes on engine.
// Middleware runs in this order:
//  1. Recovery
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing, then request metrics
//  5. Logging (skips /-/ probes)
//  6. Timeout (API and views only)
//
// Routes:
//   - /-/ probes and status, no timeout
//   - /api/v1/overview, /api/v1/posts, /api/v1/projects and their /:id/fragment endpoints
//   - /blog/, /projects/, /blog/tags/, /post.html, /project.html
//   - /assets/highlight.css
//   - everything else from the output tree
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.ServiceName),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	if cfg.Health != nil {
		cfg.Health.RegisterHealthRoutesOnEngine(engine)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	if cfg.Content != nil {
		api := engine.Group(app.APIPrefix, middleware.Timeout(timeout))
		cfg.Content.RegisterContentRoutes(api)
	}

	if cfg.Views != nil {
		views := engine.Group("", middleware.Timeout(timeout))
		cfg.Views.RegisterViewRoutes(views)
	}

	if cfg.Stylesheet != nil {
		engine.GET("/assets/highlight.css", handlers.Stylesheet(cfg.Stylesheet))
	}

	if cfg.Output != nil {
		engine.NoRoute(handlers.Static(cfg.Output))
	}
}
