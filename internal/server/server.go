package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mackml1997/reserves-rarities/internal/clock"
	"github.com/mackml1997/reserves-rarities/internal/config"
	"github.com/mackml1997/reserves-rarities/internal/observability/logger"
	"github.com/mackml1997/reserves-rarities/internal/observability/metrics"
	"github.com/mackml1997/reserves-rarities/internal/pipeline"
	tenantdomain "github.com/mackml1997/reserves-rarities/internal/tenant/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Tenants  tenantdomain.Service
	Pipeline pipeline.Processor
	Clock    clock.Clock
}

type Server struct {
	cfg      config.Config
	log      *zap.Logger
	tenants  tenantdomain.Service
	pipeline pipeline.Processor
	clock    clock.Clock
}

func New(p Params) *Server {
	return &Server{
		cfg:      p.Cfg,
		log:      p.Log.Named("server"),
		tenants:  p.Tenants,
		pipeline: p.Pipeline,
		clock:    p.Clock,
	}
}

func NewEngine(cfg config.Config, httpMetrics *metrics.HTTPMetrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	engine.Use(metrics.GinMiddleware(httpMetrics))
	return engine
}

func RegisterRoutes(engine *gin.Engine, s *Server, registry *prometheus.Registry) {
	engine.GET("/healthz", s.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	engine.POST("/install", s.Install)
	engine.GET("/tenants", s.ListTenants)
	engine.POST("/orders", s.CreateOrder)
	engine.POST("/webhooks/stripe", s.StripeWebhook)
}

func RunHTTP(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
