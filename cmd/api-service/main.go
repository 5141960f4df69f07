package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Varshith2802/ip-reputation-checker/api/swagger"
	"github.com/Varshith2802/ip-reputation-checker/internal/handler"
	"github.com/Varshith2802/ip-reputation-checker/internal/middleware"
	"github.com/Varshith2802/ip-reputation-checker/internal/service"
	"github.com/Varshith2802/ip-reputation-checker/pkg/cache"
	"github.com/Varshith2802/ip-reputation-checker/pkg/config"
	"github.com/Varshith2802/ip-reputation-checker/pkg/logger"
	corsmiddleware "github.com/Varshith2802/ip-reputation-checker/pkg/middleware/cors"
	reqidmiddleware "github.com/Varshith2802/ip-reputation-checker/pkg/middleware/requestid"
)

// @title API Service
// @version 1.0.0
// @description Gateway proxying IP reputation lookups, gated by bearer tokens and per-client rate limiting
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("rate limit store unreachable", "error", err)
	}
	defer redisClient.Close()

	metricsSvc := service.NewMetricsService()
	// Token verification only: this service never touches the credential
	// store, it just shares the signing secret.
	authSvc := service.NewAuthService(nil, nil, logr, service.AuthConfig{
		Secret:      cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
	})
	reputationSvc := service.NewReputationService(service.ReputationConfig{
		BaseURL: cfg.Reputation.BaseURL,
		Timeout: cfg.Reputation.Timeout,
	}, logr, metricsSvc)

	reputationHandler := handler.NewReputationHandler(reputationSvc)
	healthHandler := handler.NewHealthHandler(nil)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	authGuard := middleware.JWT(authSvc)
	rateLimit := middleware.RateLimit(redisClient, middleware.RateLimitConfig{
		Requests: cfg.RateLimit.Requests,
		Window:   cfg.RateLimit.Window,
	}, logr, metricsSvc)

	r.GET("/health", healthHandler.Health)
	r.GET("/api/health", healthHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/check-ip/:ip", authGuard, rateLimit, reputationHandler.CheckIP)
	r.GET("/api/check-ip/:ip", authGuard, rateLimit, reputationHandler.CheckIP)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.APIPort)
	logr.Sugar().Infow("api service starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
