package middleware

import (
	"context"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxIDLength bounds caller-supplied ids before they reach logs.
const maxIDLength = 128

// idPattern accepts the characters seen in UUIDs and common tracing ids.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

type idMiddlewareConfig struct {
	headerName string
	contextKey string

	// enrichers store the id on the request context, in order.
	enrichers []func(ctx context.Context, id string) context.Context
}

// createIDMiddleware extracts an id header, or generates a UUID when the
// header is missing or malformed, and propagates it to the response,
// the gin.Context and the request context.
func createIDMiddleware(cfg idMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cfg.headerName)
		if !validID(id) {
			id = uuid.New().String()
		}

		c.Set(cfg.contextKey, id)
		c.Header(cfg.headerName, id)

		ctx := c.Request.Context()
		for _, enrich := range cfg.enrichers {
			ctx = enrich(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func validID(id string) bool {
	return id != "" && len(id) <= maxIDLength && idPattern.MatchString(id)
}

func getIDFromContext(c *gin.Context, key string) string {
	if id, exists := c.Get(key); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}
