package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/nishantarora/portfolio/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID. Unlike
	// the request ID it is kept when a caller already set one, so the
	// remote content fetches of one page view share it.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the gin.Context key for the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates or starts a correlation ID.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderCorrelationID,
		contextKey: ContextKeyCorrelationID,
		enrichers: []func(context.Context, string) context.Context{
			ContextWithCorrelationID,
			logging.WithCorrelationID,
		},
	})
}

// GetCorrelationID extracts the correlation ID from the gin.Context.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}
