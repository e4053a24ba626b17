package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/bootstrap"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"github.com/rentdesk/backend/internal/interfaces/http/handler"
	"github.com/rentdesk/backend/internal/interfaces/http/middleware"
	"github.com/rentdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/rentdesk/backend/docs"
)

//	@title			Rentdesk Ledger API
//	@version		1.0
//	@description	Rent ledger and payment allocation service

//	@BasePath	/api/v1

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.FromAppConfig(cfg.Log)
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting rent ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	tp, err := telemetry.NewTracerProvider(ctx, telemetry.FromAppConfig(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsFromAppConfig(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsFromAppConfig(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to initialize log export", zap.Error(err))
	}
	log = telemetry.BridgeLogger(log, lp, cfg.Telemetry.ServiceName, logCfg.ZapLevel())

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerFromAppConfig(cfg.Telemetry), log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Telemetry.Profiling.SpanProfiles {
		tp.EnableSpanProfiles()
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
		_ = mp.Shutdown(shutdownCtx)
		_ = tp.Shutdown(shutdownCtx)
		_ = lp.Shutdown(shutdownCtx)
	}()

	app, err := bootstrap.Open(ctx, cfg, log, bootstrap.Options{Migrate: true, MeterProvider: mp})
	if err != nil {
		log.Fatal("Failed to initialize ledger", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("Error closing ledger resources", zap.Error(err))
		}
	}()

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	mode := gin.DebugMode
	if cfg.App.Env == "production" {
		mode = gin.ReleaseMode
	}

	engine, err := router.NewEngine(router.EngineConfig{
		Mode:    mode,
		HTTP:    cfg.HTTP,
		Swagger: cfg.Swagger,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tp.IsEnabled(),
		},
		MeterProvider: mp,
		Logger:        log,
	}, router.LedgerHandlers{
		Leases:   handler.NewLeaseHandler(app.Service, handler.UTCClock),
		Payments: handler.NewPaymentHandler(app.Service, handler.UTCClock),
		Reports:  handler.NewReportHandler(app.Service, handler.UTCClock),
		System:   handler.NewSystemHandler("Rentdesk Ledger API", version, app.DB),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
