// Package server exposes the HTTP API: job ingestion, the query and
// aggregation endpoints, the reference directory and the liveness probe.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kmurdhar/PrinterManagementSystem/internal/clock"
	"github.com/kmurdhar/PrinterManagementSystem/internal/config"
	directorydomain "github.com/kmurdhar/PrinterManagementSystem/internal/directory/domain"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/logger"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/metrics"
	"github.com/kmurdhar/PrinterManagementSystem/internal/observability/tracing"
	printjobdomain "github.com/kmurdhar/PrinterManagementSystem/internal/printjob/domain"
	statsdomain "github.com/kmurdhar/PrinterManagementSystem/internal/stats/domain"
)

// Module provides the HTTP server and starts it.
var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterAPIRoutes() }),
	fx.Invoke(RunHTTP),
)

type ServerParam struct {
	fx.In

	Config       config.Config
	Log          *zap.Logger
	DB           *gorm.DB
	Clock        clock.Clock
	Engine       *gin.Engine
	JobSvc       printjobdomain.Service
	StatsSvc     statsdomain.Service
	DirectorySvc directorydomain.Service
}

// Server holds the handler dependencies.
type Server struct {
	cfg    config.Config
	log    *zap.Logger
	db     *gorm.DB
	clock  clock.Clock
	engine *gin.Engine

	jobSvc       printjobdomain.Service
	statsSvc     statsdomain.Service
	directorySvc directorydomain.Service

	ingestLimiter *rateLimiter
}

// NewServer builds the Server from its fx dependencies.
func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:    p.Config,
		log:    p.Log.Named("server"),
		db:     p.DB,
		clock:  p.Clock,
		engine: p.Engine,

		jobSvc:       p.JobSvc,
		statsSvc:     p.StatsSvc,
		directorySvc: p.DirectorySvc,

		ingestLimiter: newRateLimiter(p.Config.Ingest.RateLimit, p.Config.Ingest.RateWindow),
	}
}

// NewEngine builds the gin engine with the shared middleware stack.
func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/api/health", "/metrics"},
	}))
	engine.Use(tracing.GinMiddleware(cfg.Telemetry.ServiceName))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	engine.Use(requestTimeout(cfg.HTTP.RequestTimeout))
	return engine
}

// RegisterAPIRoutes attaches all handlers.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")
	api.GET("/health", s.Health)
	api.POST("/print-jobs", s.CreatePrintJob)
	api.GET("/print-jobs", s.ListPrintJobs)
	api.GET("/stats", s.GetStats)
	api.GET("/users", s.ListUsers)
	api.GET("/printers", s.ListPrinters)

	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

// requestTimeout bounds every request; a hung store operation surfaces as a
// classified failure instead of an indefinite stall.
func requestTimeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
