package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nishantarora/portfolio/internal/platform/logging"
)

// Logging returns middleware that logs each completed request.
//
// Probe paths under /-/ are skipped. API calls log at INFO; static files
// (shells, stylesheets, images) log at DEBUG because a single page view
// pulls many of them. Failures always log at WARN or ERROR.
func Logging(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		latency := time.Since(start)

		if c.Request.URL.RawQuery != "" {
			path += "?" + c.Request.URL.RawQuery
		}

		logging.FromContextOr(ctx, logger).Log(ctx, requestLevel(c.Request.URL.Path, status), "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}

func requestLevel(path string, status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case strings.HasPrefix(path, "/api/"):
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
