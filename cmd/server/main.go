package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/routepulse/service-routes/internal/application"
	"github.com/routepulse/service-routes/internal/config"
	"github.com/routepulse/service-routes/internal/handler"
	"github.com/routepulse/service-routes/internal/logger"
	"github.com/routepulse/service-routes/internal/mapbox"
	"github.com/routepulse/service-routes/internal/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-routes")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-routes",
		zap.String("port", cfg.Port),
		zap.String("country", cfg.CountryCode),
		zap.Duration("upstream_timeout", cfg.UpstreamTimeout),
	)

	// Initialize the Mapbox client
	mapboxClient := mapbox.NewClient(mapbox.ClientConfig{
		AccessToken:       cfg.MapboxToken,
		CountryCode:       cfg.CountryCode,
		Timeout:           cfg.UpstreamTimeout,
		GeocodingBaseURL:  cfg.GeocodingBaseURL,
		DirectionsBaseURL: cfg.DirectionsBaseURL,
	})

	// Initialize application service
	routeService := application.NewRouteService(mapboxClient, mapboxClient, log)

	// Initialize HTTP handlers
	routeHandler := handler.NewRouteHandler(routeService, handler.PageSettings{
		MapboxToken:    cfg.MapboxToken,
		RefreshSeconds: cfg.RefreshSeconds,
	})
	healthHandler := handler.NewHealthHandler("service-routes")

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(rateLimiter.Middleware())

	// Frontend shell template
	router.LoadHTMLGlob("web/templates/*.html")

	// Register routes
	healthHandler.RegisterRoutes(&router.RouterGroup)
	routeHandler.RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		// A route query makes four sequential upstream calls, each
		// bounded by the 12s upstream timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-routes...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-routes stopped")
}
