package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"nps/pkg/logger"
)

const TraceHeader = "X-Trace-ID"

// TraceIDMiddleware reuses a caller supplied X-Trace-ID or mints one, and
// exposes it to handlers, responses and logs.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceHeader)
		if traceID == "" || len(traceID) > 64 {
			traceID = uuid.New().String()
		}
		c.Set("trace_id", traceID)
		c.Writer.Header().Set(TraceHeader, traceID)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{RequestID: &traceID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
