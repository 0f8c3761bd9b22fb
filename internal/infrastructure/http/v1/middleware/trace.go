package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "stockpos/internal/core/context"
)

// HeaderRequestID is the inbound/outbound request id header.
const HeaderRequestID = "X-Request-ID"

// Trace middleware attaches a request id to the context so log lines
// of one request can be correlated.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = appctx.NewRequestID()
		}

		ctx := appctx.WithTrace(c.Request.Context(), &appctx.TraceInfo{RequestID: requestID})
		c.Request = c.Request.WithContext(ctx)

		c.Set("request_id", requestID)
		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}
