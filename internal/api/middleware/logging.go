package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// StructuredLogging emits one structured log line per handled request.
// Health probes are not logged; they would dominate the output.
func StructuredLogging(logger *slog.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		if param.Path == "/health" {
			return ""
		}

		requestID := ""
		if id, ok := param.Keys["request_id"].(string); ok {
			requestID = id
		}

		logger.Info("request handled",
			"request_id", requestID,
			"method", param.Method,
			"path", param.Path,
			"status", param.StatusCode,
			"latency_ms", param.Latency.Milliseconds(),
			"bytes", param.BodySize,
			"client_ip", param.ClientIP,
			"error", param.ErrorMessage,
		)

		return ""
	})
}
