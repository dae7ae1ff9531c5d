package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/nishantarora/portfolio/internal/platform/logging"
)

const (
	// HeaderRequestID is the header name for request ID.
	HeaderRequestID = "X-Request-ID"

	// ContextKeyRequestID is the gin.Context key for the request ID.
	ContextKeyRequestID = "request_id"
)

// RequestID returns middleware that extracts or generates a request ID.
// The id is echoed in the response and carried by the request context,
// both for the context logger and for outbound content fetches.
func RequestID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName: HeaderRequestID,
		contextKey: ContextKeyRequestID,
		enrichers: []func(context.Context, string) context.Context{
			ContextWithRequestID,
			logging.WithRequestID,
		},
	})
}

// GetRequestID extracts the request ID from the gin.Context.
func GetRequestID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyRequestID)
}
