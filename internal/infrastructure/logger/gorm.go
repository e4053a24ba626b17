package logger

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowStatement = 200 * time.Millisecond

// GormLogger routes gorm output through zap. Statement logs carry the request,
// tenant and payment IDs found in the context, and a version-guarded UPDATE that
// matches no rows is reported as a lost optimistic lock.
type GormLogger struct {
	log         *zap.Logger
	level       gormlogger.LogLevel
	slow        time.Duration
	logNotFound bool
}

// GormLoggerOption configures a GormLogger
type GormLoggerOption func(*GormLogger)

// WithSlowThreshold sets the duration above which statements are logged as slow.
// Zero disables slow statement logging.
func WithSlowThreshold(d time.Duration) GormLoggerOption {
	return func(l *GormLogger) { l.slow = d }
}

// WithRecordNotFound makes gorm.ErrRecordNotFound log as an error. Lookups of
// unknown leases and payments are routine, so it is off by default.
func WithRecordNotFound(enabled bool) GormLoggerOption {
	return func(l *GormLogger) { l.logNotFound = enabled }
}

// NewGormLogger returns a gorm logger writing to the "gorm" child of log
func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, opts ...GormLoggerOption) *GormLogger {
	gl := &GormLogger{
		log:   log.Named("gorm"),
		level: level,
		slow:  defaultSlowStatement,
	}
	for _, opt := range opts {
		opt(gl)
	}
	return gl
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	l.printf(gormlogger.Info, msg, data)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	l.printf(gormlogger.Warn, msg, data)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	l.printf(gormlogger.Error, msg, data)
}

func (l *GormLogger) printf(at gormlogger.LogLevel, msg string, data []any) {
	if l.level < at {
		return
	}
	s := l.log.Sugar()
	switch at {
	case gormlogger.Error:
		s.Errorf(msg, data...)
	case gormlogger.Warn:
		s.Warnf(msg, data...)
	default:
		s.Infof(msg, data...)
	}
}

// Trace implements gormlogger.Interface
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := append(statementFields(ctx),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	)

	switch {
	case err != nil:
		if l.level < gormlogger.Error || (!l.logNotFound && errors.Is(err, gormlogger.ErrRecordNotFound)) {
			return
		}
		l.log.Error("statement failed", append(fields, zap.Error(err))...)
	case rows == 0 && isVersionGuardedUpdate(sql) && l.level >= gormlogger.Warn:
		l.log.Warn("optimistic lock lost", fields...)
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		l.log.Warn("slow statement", append(fields, zap.Duration("threshold", l.slow))...)
	case l.level >= gormlogger.Info:
		l.log.Debug("statement", fields...)
	}
}

func statementFields(ctx context.Context) []zap.Field {
	var fields []zap.Field
	ids := []struct {
		key   contextKey
		value string
	}{
		{RequestIDKey, GetRequestID(ctx)},
		{TenantIDKey, GetTenantID(ctx)},
		{PaymentIDKey, GetPaymentID(ctx)},
	}
	for _, id := range ids {
		if id.value != "" {
			fields = append(fields, zap.String(string(id.key), id.value))
		}
	}
	if traceID := GetTraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	return fields
}

func isVersionGuardedUpdate(sql string) bool {
	s := strings.ToLower(strings.TrimSpace(sql))
	return strings.HasPrefix(s, "update") && strings.Contains(s, "version")
}

// GormLevel maps a zap level name to the gorm level that yields comparable
// output. debug and info both log every statement.
func GormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
