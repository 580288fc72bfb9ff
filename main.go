package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Lancelot03/Operion/config"
	"github.com/Lancelot03/Operion/handlers"
	"github.com/Lancelot03/Operion/logger"
	"github.com/Lancelot03/Operion/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	log.Infof("Starting AI Agent Backend")
	log.Infof("Gemini model: %s, search provider: %s", cfg.GeminiModel, cfg.SearchProvider)

	// Initialize Gemini client
	provider, err := services.NewGeminiProvider(context.Background(), cfg.GoogleAPIKey, cfg.GeminiModel, logger.Component(log, "gemini"))
	if err != nil {
		log.Fatalf("Failed to initialize Gemini: %v", err)
	}
	defer provider.Close()

	tools := services.NewToolRegistry(logger.Component(log, "tools"),
		services.NewWebSearchTool(newSearcher(cfg, log)),
	)
	chat := services.NewChatService(provider, tools, cfg.ModelTimeout, logger.Component(log, "chat"))

	// Set Gin to release mode in production
	if cfg.GinMode != gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	h := handlers.New(chat, cfg.ChatErrorStatus, logger.Component(log, "http"))
	router := handlers.NewRouter(h, logger.Component(log, "http"))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func newSearcher(cfg *config.Config, log *logrus.Logger) services.Searcher {
	entry := logger.Component(log, "search")
	switch cfg.SearchProvider {
	case config.SearchProviderSerpAPI:
		return services.NewSerpAPISearcher(cfg.SerpAPIKey, cfg.SerpAPIBaseURL, cfg.SearchResultCount, entry)
	default:
		return services.NewStubSearcher(entry)
	}
}
