package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// defaultMaxBodySize applies when http.max_body_size is unset
const defaultMaxBodySize int64 = 1 << 20

// EngineConfig carries what the HTTP engine needs beyond the handlers
type EngineConfig struct {
	Mode          string
	HTTP          config.HTTPConfig
	Swagger       config.SwaggerConfig
	Tracing       middleware.TracingConfig
	MeterProvider *telemetry.MeterProvider
	Logger        *zap.Logger
}

// NewEngine builds the gin engine with the middleware chain, health and
// swagger endpoints, and the versioned ledger API.
func NewEngine(cfg EngineConfig, h LedgerHandlers) (*gin.Engine, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}
	zl := cfg.Logger
	if zl == nil {
		zl = zap.NewNop()
	}

	maxBody := cfg.HTTP.MaxBodySize
	if maxBody <= 0 {
		maxBody = defaultMaxBodySize
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	// Request id first so every later layer can log it; the enricher must
	// follow otelgin so the server span exists.
	engine.Use(
		middleware.RequestID(),
		logger.Recovery(zl),
		logger.GinMiddleware(zl),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSFromConfig(cfg.HTTP)),
		middleware.BodyLimit(maxBody),
		middleware.TracingWithConfig(cfg.Tracing),
		middleware.SpanEnricher(),
		middleware.ProfilingLabels(),
		middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
			MeterProvider: cfg.MeterProvider,
			Enabled:       cfg.MeterProvider != nil,
		}),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(cfg.Swagger),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := NewRouter(engine)
	for _, g := range LedgerGroups(h) {
		r.Register(g)
	}
	r.Setup()
	return engine, nil
}
