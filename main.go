package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitlab/internal"
	"fitlab/internal/config"
	"fitlab/internal/playground"
	"fitlab/ui"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig.Server.GinMode != "" {
		gin.SetMode(appConfig.Server.GinMode)
	}
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel))

	opts := playground.Options{
		NumPoints:     appConfig.Playground.NumPoints,
		CurveSteps:    appConfig.Playground.CurveSteps,
		MaxComplexity: appConfig.Playground.MaxComplexity,
	}
	registry, err := playground.NewRegistry(opts, appConfig.Playground.Seed, appConfig.Playground.SessionTTL, logger)
	if err != nil {
		log.Fatalf("Failed to create session registry: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sessions idle past the TTL are dropped
	registry.StartJanitor(ctx, time.Minute)

	server, err := ui.NewServer(registry, logger)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	httpServer := &http.Server{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting fitlab playground on http://localhost:%s", appConfig.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
