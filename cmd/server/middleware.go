package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"travelagg/pkg/logger"
)

// TraceLoggerMiddleware logs every request, with trace_id and span_id when
// the request carries a span.
func TraceLoggerMiddleware(log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		fields := []logger.Field{
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.Request.URL.Path},
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			traceID := span.SpanContext().TraceID().String()
			spanID := span.SpanContext().SpanID().String()

			c.Set("trace_id", traceID)
			c.Set("span_id", spanID)

			fields = append(fields,
				logger.Field{Key: "trace_id", Value: traceID},
				logger.Field{Key: "span_id", Value: spanID},
			)
		}

		c.Next()

		fields = append(fields,
			logger.Field{Key: "status", Value: c.Writer.Status()},
			logger.Field{Key: "duration", Value: time.Since(start)},
		)
		if len(c.Errors) > 0 {
			fields = append(fields, logger.Field{Key: "errors", Value: c.Errors.String()})
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request completed", fields...)
		case status >= 400:
			log.Warn("request completed", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}
