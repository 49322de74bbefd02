package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/rimas-backend/internal/platform/requestid"
)

const headerTraceID = "X-Trace-Id"

// AttachRequestContext propagates (or mints) a request id and echoes it,
// together with the active trace id, in the response headers.
func AttachRequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader(requestid.Header))
		if reqID == "" {
			reqID = requestid.New()
		}
		c.Request = c.Request.WithContext(requestid.With(c.Request.Context(), reqID))
		c.Set("request_id", reqID)
		c.Writer.Header().Set(requestid.Header, reqID)

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Set("trace_id", sc.TraceID().String())
			c.Writer.Header().Set(headerTraceID, sc.TraceID().String())
		}
		c.Next()
	}
}
