package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vaibhavgoel0230/crux-analyzer/analyzer"
	"github.com/vaibhavgoel0230/crux-analyzer/cache"
	"github.com/vaibhavgoel0230/crux-analyzer/config"
	"github.com/vaibhavgoel0230/crux-analyzer/crux"
	_ "github.com/vaibhavgoel0230/crux-analyzer/docs" // Swagger docs
	"github.com/vaibhavgoel0230/crux-analyzer/handler"
	appLogger "github.com/vaibhavgoel0230/crux-analyzer/logger"
	"github.com/vaibhavgoel0230/crux-analyzer/middleware"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title CrUX Analyzer API
// @version 1.0
// @description Batch Core Web Vitals analyzer backed by the Chrome UX Report API. Fetches p75/p90/p99 field data for a list of URLs, classifies each metric against the Web Vitals thresholds, and aggregates a batch summary.
// @termsOfService https://github.com/vaibhavgoel0230/crux-analyzer

// @contact.name API Support
// @contact.url https://github.com/vaibhavgoel0230/crux-analyzer/issues
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @tag.name Analysis
// @tag.description Batch analysis of Core Web Vitals field data

// @tag.name System
// @tag.description Health checks and system metrics

func main() {
	// Load configuration
	cfg := config.MustLoadConfig()

	// Initialize logger
	appLogger.Initialize(cfg.Debug)
	log.Info().Msg("Configuration loaded successfully")

	// Initialize cache (if enabled)
	store, err := cache.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache")
	}
	if store == nil {
		log.Info().Msg("Cache disabled in configuration")
	}

	// Initialize CrUX API client
	cruxClient := crux.NewClient(cfg.CrUX)
	if !cruxClient.Configured() {
		log.Warn().Msg("CrUX API key not configured, analysis requests will be rejected")
	}
	log.Info().
		Bool("api_key_configured", cruxClient.Configured()).
		Int("timeout_seconds", cfg.CrUX.Timeout).
		Int("max_concurrent", cfg.CrUX.MaxConcurrent).
		Msg("CrUX client initialized")

	// Create handler with dependency injection
	service := analyzer.New(cruxClient, store, cfg)
	analysisHandler := handler.NewAnalysisHandler(service, store, cfg)

	// Set up router
	r := newRouter(cfg, analysisHandler)

	// Configure HTTP server
	serverAddress := fmt.Sprintf("%s:%s", cfg.WebServer.IP, cfg.WebServer.Port)
	server := &http.Server{
		Addr:         serverAddress,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.WebServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WebServer.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", serverAddress).
			Msg("Starting server")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.WebServer.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Close cache
	if store != nil {
		store.Close()
	}

	log.Info().Msg("Server stopped gracefully")
}

// newRouter builds the middleware chain and registers the API routes.
func newRouter(cfg config.Config, analysisHandler *handler.AnalysisHandler) *mux.Router {
	r := mux.NewRouter()

	// Apply global middleware
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	log.Info().
		Strs("allowed_origins", cfg.CORS.Origins()).
		Float64("rate_limit_rps", cfg.RateLimit.RequestsPerSecond).
		Int("rate_limit_burst", cfg.RateLimit.Burst).
		Msg("Middleware configured")

	r.Use(middleware.NewCORS(cfg.CORS, cfg.Debug))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(rateLimiter.Limit)

	// Register routes; OPTIONS is listed so preflight requests reach the
	// CORS middleware instead of mux's 405 handler
	r.HandleFunc("/api/analyze-url", analysisHandler.AnalyzeURLs).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/health", analysisHandler.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/health/", analysisHandler.HealthCheck).Methods("GET", "OPTIONS")
	r.HandleFunc("/api/cache/metrics", analysisHandler.CacheMetrics).Methods("GET", "OPTIONS")

	// Swagger UI
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	return r
}
