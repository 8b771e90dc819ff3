package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing"
	agentpricingdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/agentpricing/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/config"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/observability"
	obsmiddleware "github.com/arfeen-portal/arfeen-portal-sub002/internal/observability/logger"
	obsmetrics "github.com/arfeen-portal/arfeen-portal-sub002/internal/observability/metrics"
	obstracing "github.com/arfeen-portal/arfeen-portal-sub002/internal/observability/tracing"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/rate"
	ratedomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/rate/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/ratelimit"
	"github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant"
	tenantdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	tenant.Module,
	rate.Module,
	agentpricing.Module,
	ratelimit.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	tenantSvc    tenantdomain.Service
	rateSvc      ratedomain.Service
	pricingSvc   agentpricingdomain.Service
	quoteLimiter *ratelimit.QuoteLimiter
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	TenantSvc    tenantdomain.Service
	RateSvc      ratedomain.Service
	PricingSvc   agentpricingdomain.Service
	QuoteLimiter *ratelimit.QuoteLimiter `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		tenantSvc:    p.TenantSvc,
		rateSvc:      p.RateSvc,
		pricingSvc:   p.PricingSvc,
		quoteLimiter: p.QuoteLimiter,
	}

	svc.registerTenantRoutes()
	svc.registerPricingRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerTenantRoutes() {
	v1 := s.engine.Group("/v1")

	v1.GET("/tenant/context", s.GetTenantContext)
}

func (s *Server) registerPricingRoutes() {
	pricing := s.engine.Group("/v1/pricing", s.TenantRequired(), s.QuoteRateLimit())

	pricing.POST("/transport/quote", s.QuoteTransport)
	pricing.POST("/hotel/quote", s.QuoteHotel)
	pricing.POST("/flight/quote", s.QuoteFlight)

	pricing.POST("/suggest", s.SuggestAgentPricing)
	pricing.POST("/suggest/demand", s.SuggestDemandPricing)
}
