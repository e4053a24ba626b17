package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// HTTP server metric names
const (
	MetricHTTPRequestTotal    = "http_server_request_total"
	MetricHTTPRequestDuration = "http_server_request_duration_seconds"
	MetricHTTPResponseSize    = "http_server_response_size_bytes"
	MetricHTTPActiveRequests  = "http_server_active_requests"
)

// httpDurationBuckets covers fast reads up to slow report exports
var httpDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

var responseSizeBuckets = []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 1000000, 5000000}

// HTTPMetricsConfig holds configuration for HTTP metrics middleware.
type HTTPMetricsConfig struct {
	MeterProvider *telemetry.MeterProvider
	Enabled       bool
}

// httpMetrics holds the HTTP server instruments
type httpMetrics struct {
	requestTotal    *telemetry.Counter
	requestDuration *telemetry.Histogram
	responseSize    *telemetry.Histogram
	activeRequests  metric.Int64UpDownCounter
}

func newHTTPMetrics(meter metric.Meter) (*httpMetrics, error) {
	requestTotal, err := telemetry.NewCounter(meter, MetricHTTPRequestTotal, "Total number of HTTP requests", "{request}")
	if err != nil {
		return nil, err
	}
	requestDuration, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        MetricHTTPRequestDuration,
		Description: "HTTP request latency distribution in seconds",
		Unit:        "s",
		Boundaries:  httpDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	responseSize, err := telemetry.NewHistogram(meter, telemetry.HistogramOpts{
		Name:        MetricHTTPResponseSize,
		Description: "HTTP response body size distribution in bytes",
		Unit:        "By",
		Boundaries:  responseSizeBuckets,
	})
	if err != nil {
		return nil, err
	}
	activeRequests, err := meter.Int64UpDownCounter(
		MetricHTTPActiveRequests,
		metric.WithDescription("Number of currently active HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	return &httpMetrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		responseSize:    responseSize,
		activeRequests:  activeRequests,
	}, nil
}

// HTTPMetrics returns a Gin middleware that records request count, latency,
// response size and in-flight requests. It is a pass-through when metrics
// are disabled.
func HTTPMetrics(cfg HTTPMetricsConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.MeterProvider == nil || !cfg.MeterProvider.IsEnabled() {
		return passThrough
	}
	return HTTPMetricsWithMeter(cfg.MeterProvider.Meter("http.server"))
}

// HTTPMetricsWithMeter returns HTTP metrics middleware on an existing meter.
func HTTPMetricsWithMeter(meter metric.Meter) gin.HandlerFunc {
	metrics, err := newHTTPMetrics(meter)
	if err != nil {
		return passThrough
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		metrics.activeRequests.Add(ctx, 1)
		c.Next()
		metrics.activeRequests.Add(ctx, -1)

		metrics.record(ctx, c.Request.Method, routePattern(c), c.Writer.Status(), time.Since(start), c.Writer.Size())
	}
}

func (m *httpMetrics) record(ctx context.Context, method, route string, status int, elapsed time.Duration, size int) {
	base := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(method),
		semconv.HTTPRouteKey.String(route),
	}
	m.requestTotal.Inc(ctx, append(base,
		semconv.HTTPResponseStatusCodeKey.Int(status),
		attribute.String("http.status_class", StatusClass(status)),
	)...)
	m.requestDuration.RecordDuration(ctx, elapsed, base...)
	if size > 0 {
		m.responseSize.Record(ctx, float64(size), base...)
	}
}

// routePattern returns the matched route ("/api/v1/payments/:id") rather
// than the raw path to keep cardinality bounded.
func routePattern(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unknown"
}

// StatusClass groups a status code as 2xx, 3xx, 4xx or 5xx
func StatusClass(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "other"
	}
}

func passThrough(c *gin.Context) {
	c.Next()
}
