package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nishantarora/portfolio/internal/adapters/http/dto"
	"github.com/nishantarora/portfolio/internal/platform/logging"
)

// Timeout returns middleware that puts a deadline on the request context.
//
// Content fetches and renders honor the deadline themselves. When the
// deadline passed and the handler wrote nothing, a 504 error envelope is
// sent; a handler that already responded is left alone.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) || c.Writer.Written() {
			return
		}

		logging.FromContext(ctx).WarnContext(ctx, "request timeout",
			slog.String("path", c.Request.URL.Path),
			slog.Duration("timeout", timeout),
		)

		dto.AbortWithCode(c, dto.ErrorCodeTimeout, "request timeout exceeded")
	}
}
