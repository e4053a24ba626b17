package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// TenantIDKey carries the renter the request is about
	TenantIDKey contextKey = "tenant_id"
	// PaymentIDKey carries the payment being allocated
	PaymentIDKey contextKey = "payment_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, a no-op logger if absent
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, RequestIDKey, requestID)
}

// WithTenantID adds the renter's ID to context and returns enriched logger
func WithTenantID(ctx context.Context, logger *zap.Logger, tenantID string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, TenantIDKey, tenantID)
}

// WithPaymentID adds a payment ID to context and returns enriched logger
func WithPaymentID(ctx context.Context, logger *zap.Logger, paymentID string) (context.Context, *zap.Logger) {
	return withField(ctx, logger, PaymentIDKey, paymentID)
}

func withField(ctx context.Context, logger *zap.Logger, key contextKey, value string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, key, value)
	enriched := logger.With(zap.String(string(key), value))
	return WithContext(ctx, enriched), enriched
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string { return stringValue(ctx, RequestIDKey) }

// GetTenantID retrieves the renter's ID from context
func GetTenantID(ctx context.Context) string { return stringValue(ctx, TenantIDKey) }

// GetPaymentID retrieves the payment ID from context
func GetPaymentID(ctx context.Context) string { return stringValue(ctx, PaymentIDKey) }

// GetTraceID extracts the trace ID of the active span, "" when there is none
func GetTraceID(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}

// WithTraceContext adds trace_id and span_id from the context's span.
// Without a valid span the logger is returned unchanged.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}

// ContextLogger logs with trace and ledger identifiers pulled from ctx.
//
// Usage: logger.L(ctx).Info("payment allocated", zap.String("amount", amt))
type ContextLogger struct {
	ctx    context.Context
	logger *zap.Logger
	// stored is true when logger came from ctx and already carries its fields
	stored bool
}

// L returns a ContextLogger for the logger stored in ctx
func L(ctx context.Context) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: FromContext(ctx), stored: true}
}

// WithLogger returns a ContextLogger using the provided logger instead of
// the one stored in ctx.
func WithLogger(ctx context.Context, logger *zap.Logger) *ContextLogger {
	return &ContextLogger{ctx: ctx, logger: logger}
}

func (cl *ContextLogger) enriched() *zap.Logger {
	l := cl.logger
	if l == nil {
		l = zap.NewNop()
	}
	l = WithTraceContext(cl.ctx, l)

	if !cl.stored {
		for _, key := range []contextKey{RequestIDKey, TenantIDKey, PaymentIDKey} {
			if v := stringValue(cl.ctx, key); v != "" {
				l = l.With(zap.String(string(key), v))
			}
		}
	}
	return l
}

// With creates a child ContextLogger with additional fields.
func (cl *ContextLogger) With(fields ...zap.Field) *ContextLogger {
	base := cl.logger
	if base == nil {
		base = zap.NewNop()
	}
	return &ContextLogger{ctx: cl.ctx, logger: base.With(fields...), stored: cl.stored}
}

// Debug logs at debug level
func (cl *ContextLogger) Debug(msg string, fields ...zap.Field) { cl.enriched().Debug(msg, fields...) }

// Info logs at info level
func (cl *ContextLogger) Info(msg string, fields ...zap.Field) { cl.enriched().Info(msg, fields...) }

// Warn logs at warn level
func (cl *ContextLogger) Warn(msg string, fields ...zap.Field) { cl.enriched().Warn(msg, fields...) }

// Error logs at error level
func (cl *ContextLogger) Error(msg string, fields ...zap.Field) { cl.enriched().Error(msg, fields...) }

// Zap returns the enriched *zap.Logger
func (cl *ContextLogger) Zap() *zap.Logger {
	return cl.enriched()
}
