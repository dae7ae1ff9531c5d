// Package handlers provides the HTTP handlers of the preview server.
package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nishantarora/portfolio/internal/app"
	"github.com/nishantarora/portfolio/internal/ports"
)

// BuildInfo describes the running binary. Values are injected with ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

// NewBuildInfo creates a BuildInfo with the Go version filled in.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// PublishStatus exposes the most recent output rebuild. *app.Publisher
// implements it.
type PublishStatus interface {
	Last() *app.PublishReport
}

// HealthHandler serves the /-/ probe and status endpoints.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	publishes PublishStatus
}

// NewHealthHandler creates a health handler. publishes may be nil when
// the server never rebuilds output.
func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo, publishes PublishStatus) *HealthHandler {
	return &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		publishes: publishes,
	}
}

type livenessResponse struct {
	Status string `json:"status"`
}

// Liveness handles /-/live. It reports only that the process runs.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, livenessResponse{Status: "ok"})
}

type readinessResponse struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Readiness handles /-/ready: 200 while the content store is readable,
// 503 otherwise.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	status := http.StatusOK
	if result.Status == ports.HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, readinessResponse{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

type kindSummary struct {
	Kind      string   `json:"kind"`
	Total     int      `json:"total"`
	Succeeded int      `json:"succeeded"`
	Removed   []string `json:"removed,omitempty"`
	Failed    []string `json:"failed,omitempty"`
}

type publishSummary struct {
	StartedAt  time.Time     `json:"startedAt"`
	DurationMS int64         `json:"durationMs"`
	Pages      []kindSummary `json:"pages"`
	FeedItems  *int          `json:"feedItems,omitempty"`
	Errors     []string      `json:"errors,omitempty"`
}

type buildResponse struct {
	BuildInfo

	LastPublish *publishSummary `json:"lastPublish,omitempty"`
}

// BuildInfoHandler handles /-/build: binary build information and the
// outcome of the last output rebuild.
func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	resp := buildResponse{BuildInfo: h.buildInfo}

	if h.publishes != nil {
		if last := h.publishes.Last(); last != nil {
			resp.LastPublish = summarizePublish(last)
		}
	}

	c.JSON(http.StatusOK, resp)
}

func summarizePublish(r *app.PublishReport) *publishSummary {
	s := &publishSummary{
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
		Pages:      make([]kindSummary, 0, len(r.Pages)),
		Errors:     r.Errors,
	}

	for _, p := range r.Pages {
		k := kindSummary{
			Kind:      string(p.Kind),
			Total:     p.Total,
			Succeeded: p.Succeeded,
			Removed:   p.Removed,
		}

		for _, f := range p.Failed {
			k.Failed = append(k.Failed, f.ID)
		}

		s.Pages = append(s.Pages, k)
	}

	if r.Feed != nil {
		items := r.Feed.Items
		s.FeedItems = &items
	}

	return s
}

// MetricsHandler returns the Prometheus scrape handler.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RegisterHealthRoutes registers the probe routes on rg:
//   - GET /live
//   - GET /ready
//   - GET /build
//   - GET /metrics
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(MetricsHandler()))
}

// RegisterHealthRoutesOnEngine registers the probe routes under /-/.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}
