package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MaxRequestIDLength caps header-supplied request IDs
const MaxRequestIDLength = 128

// Span attributes added to the HTTP server span
const (
	attrRequestID      = "request_id"
	attrIdempotencyKey = "http.idempotency_key_present"
)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "rentdesk-ledger",
		Enabled:     true,
	}
}

// Tracing returns OpenTelemetry tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig returns the otelgin server middleware, or a pass-through
// when tracing is disabled. Pair it with SpanEnricher.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return otelgin.Middleware(cfg.ServiceName)
}

// SpanEnricher tags the active span and marks error statuses. It must run
// after TracingWithConfig so the server span is already in the context.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.IsRecording() {
			enrichSpan(c, span)
		}

		c.Next()

		if span.IsRecording() {
			markSpanStatus(span, c.Writer.Status())
		}
	}
}

func enrichSpan(c *gin.Context, span trace.Span) {
	if requestID := GetRequestID(c); requestID != "" {
		span.SetAttributes(attribute.String(attrRequestID, requestID))
	}
	if tenantID := routeTenantID(c); tenantID != "" {
		span.SetAttributes(attribute.String(telemetry.SpanAttrTenantID, tenantID))
	}
	if c.GetHeader(HeaderIdempotencyKey) != "" {
		span.SetAttributes(attribute.Bool(attrIdempotencyKey, true))
	}
}

// routeTenantID returns the tenant_id path parameter when it is a UUID.
// Anything else is dropped so arbitrary path text never lands in traces.
func routeTenantID(c *gin.Context) string {
	raw := c.Param("tenant_id")
	if raw == "" {
		return ""
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return ""
	}
	return id.String()
}

func markSpanStatus(span trace.Span, statusCode int) {
	if statusCode < http.StatusBadRequest {
		return
	}
	msg := "Client Error"
	switch {
	case statusCode >= http.StatusInternalServerError:
		msg = "Internal Server Error"
	case statusCode == http.StatusNotFound:
		msg = "Not Found"
	case statusCode == http.StatusConflict:
		msg = "Conflict"
	}
	span.SetStatus(codes.Error, msg)
	span.SetAttributes(attribute.Int("http.status_code", statusCode))
}
