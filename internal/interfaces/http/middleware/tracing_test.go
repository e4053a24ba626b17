package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

// setupTestTracer installs a recording tracer provider for the test
func setupTestTracer(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		_ = tp.Shutdown(t.Context())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return sr
}

func tracedRouter() *gin.Engine {
	router := gin.New()
	router.Use(RequestID(), TracingWithConfig(TracingConfig{Enabled: true, ServiceName: "test"}), SpanEnricher())
	router.GET("/tenants/:tenant_id/arrears", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.POST("/payments", func(c *gin.Context) {
		c.Status(http.StatusConflict)
	})
	return router
}

func serverSpan(t *testing.T, sr *tracetest.SpanRecorder) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.SpanKind() == trace.SpanKindServer {
			return span
		}
	}
	require.FailNow(t, "server span not found")
	return nil
}

func spanAttrs(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := make(map[attribute.Key]attribute.Value)
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestTracingWithConfig_Disabled(t *testing.T) {
	sr := setupTestTracer(t)

	router := gin.New()
	router.Use(TracingWithConfig(TracingConfig{Enabled: false}), SpanEnricher())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sr.Ended())
}

func TestSpanEnricher_TagsLedgerRequest(t *testing.T) {
	sr := setupTestTracer(t)
	router := tracedRouter()

	tenantID := "6f1c1a4e-2c4b-4d5e-9a7b-0c1d2e3f4a5b"
	req := httptest.NewRequest(http.MethodGet, "/tenants/"+tenantID+"/arrears", nil)
	req.Header.Set(HeaderRequestID, "req-7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	span := serverSpan(t, sr)
	attrs := spanAttrs(span)
	assert.Equal(t, "req-7", attrs[attrRequestID].AsString())
	assert.Equal(t, tenantID, attrs[telemetry.SpanAttrTenantID].AsString())
	assert.NotEqual(t, codes.Error, span.Status().Code)
}

func TestSpanEnricher_IgnoresMalformedTenant(t *testing.T) {
	sr := setupTestTracer(t)
	router := tracedRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tenants/not-a-uuid/arrears", nil))

	_, ok := spanAttrs(serverSpan(t, sr))[telemetry.SpanAttrTenantID]
	assert.False(t, ok)
}

func TestSpanEnricher_MarksConflict(t *testing.T) {
	sr := setupTestTracer(t)
	router := tracedRouter()

	req := httptest.NewRequest(http.MethodPost, "/payments", nil)
	req.Header.Set(HeaderIdempotencyKey, "key-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	span := serverSpan(t, sr)
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "Conflict", span.Status().Description)
	attrs := spanAttrs(span)
	assert.True(t, attrs[attrIdempotencyKey].AsBool())
	assert.Equal(t, int64(http.StatusConflict), attrs["http.status_code"].AsInt64())
}

func TestMarkSpanStatus(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusBadRequest, "Client Error"},
		{http.StatusNotFound, "Not Found"},
		{http.StatusConflict, "Conflict"},
		{http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			sr := setupTestTracer(t)
			_, span := otel.Tracer("test").Start(t.Context(), "op")
			markSpanStatus(span, tt.status)
			span.End()

			ended := sr.Ended()
			require.Len(t, ended, 1)
			assert.Equal(t, tt.want, ended[0].Status().Description)
		})
	}
}
