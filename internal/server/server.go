package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/productify/productify/internal/config"
	identitydomain "github.com/productify/productify/internal/identity/domain"
	obslogger "github.com/productify/productify/internal/observability/logger"
	obsmetrics "github.com/productify/productify/internal/observability/metrics"
	productdomain "github.com/productify/productify/internal/product/domain"
	"github.com/productify/productify/internal/ratelimit"
	uploaddomain "github.com/productify/productify/internal/upload/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewEngine builds the gin engine with the shared middleware chain.
func NewEngine(cfg config.Config, log *zap.Logger, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(log, obslogger.MiddlewareConfig{
		Debug:           cfg.Environment != "production",
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	// Forwarded headers are only honored for configured proxy hops;
	// host-header derivation is spoofable otherwise.
	if cfg.TrustProxies() {
		_ = r.SetTrustedProxies(cfg.TrustedProxies)
	} else {
		_ = r.SetTrustedProxies(nil)
	}

	if cfg.FrontendURL != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	log           *zap.Logger
	db            *gorm.DB
	identity      identitydomain.Provider
	productSvc    productdomain.Service
	uploadSvc     uploaddomain.Service
	uploadLimiter *ratelimit.UploadLimiter
}

type Params struct {
	fx.In

	Engine        *gin.Engine
	Cfg           config.Config
	Log           *zap.Logger
	DB            *gorm.DB
	Identity      identitydomain.Provider
	ProductSvc    productdomain.Service
	UploadSvc     uploaddomain.Service
	UploadLimiter *ratelimit.UploadLimiter
}

func NewServer(p Params) *Server {
	return &Server{
		engine:        p.Engine,
		cfg:           p.Cfg,
		log:           p.Log.Named("http.server"),
		db:            p.DB,
		identity:      p.Identity,
		productSvc:    p.ProductSvc,
		uploadSvc:     p.UploadSvc,
		uploadLimiter: p.UploadLimiter,
	}
}

// RegisterRoutes mounts the public API and the uploads directory.
func (s *Server) RegisterRoutes() {
	r := s.engine

	r.GET("/health", s.Health)
	r.Static("/uploads", s.cfg.UploadDir)

	products := r.Group("/products")
	{
		products.GET("", s.ListProducts)
		products.GET("/my", s.AuthRequired(), s.ListMyProducts)
		products.GET("/:id", s.GetProductByID)
		products.POST("", s.AuthRequired(), s.CreateProduct)
		products.POST("/upload", s.AuthRequired(), s.UploadImage)
		products.PUT("/:id", s.AuthRequired(), s.UpdateProduct)
		products.DELETE("/:id", s.AuthRequired(), s.DeleteProduct)
	}
}

func (s *Server) Health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": s.cfg.AppName,
		"version": s.cfg.AppVersion,
	})
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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

// Module wires the HTTP surface.
var Module = fx.Module("http.server",
	fx.Provide(obsmetrics.NewHTTPMetrics),
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)
