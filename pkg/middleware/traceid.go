package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const traceIDKey = "trace_id"

// TraceIDMiddleware tags every request with a fresh id. The response helpers
// echo it inside the API envelope, and the header lets clients quote it when
// reporting a failed course generation.
func TraceIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := uuid.NewString()
		c.Set(traceIDKey, traceID)
		c.Writer.Header().Set("X-Trace-ID", traceID)
		c.Next()
	}
}
