package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scythe504/outsider-backend/internal/config"
	"github.com/scythe504/outsider-backend/internal/database"
	"github.com/scythe504/outsider-backend/internal/game"
	"github.com/scythe504/outsider-backend/internal/ratelimit"
	"github.com/scythe504/outsider-backend/internal/server"
	"github.com/scythe504/outsider-backend/internal/utils"
	"github.com/scythe504/outsider-backend/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	settings := game.DefaultSettings()
	settings.AllowSelfVote = cfg.AllowSelfVote
	settings.VoteTimeout = cfg.VoteTimeout
	settings.MaxNameLength = cfg.MaxNameLength
	if cfg.WordsFile != "" {
		words, err := utils.ReadCsvFile(cfg.WordsFile)
		if err != nil {
			log.Fatalf("Failed to load words: %v", err)
		}
		settings.Words = words
		log.Printf("Loaded %d words from %s", len(words), cfg.WordsFile)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Optional: outcome archive
	var db database.Service
	opts := []game.Option{game.WithSettings(settings)}
	if cfg.DatabaseURL != "" {
		db, err = database.New(startupCtx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to database: %v", err)
			log.Printf("Outcome history disabled")
			db = nil
		} else {
			defer db.Close()
			opts = append(opts, game.WithRecorder(db))
		}
	}

	// Optional: rate limiting
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = ratelimit.Connect(startupCtx, cfg.RedisAddr)
		if err != nil {
			log.Printf("Warning: %v", err)
			log.Printf("Rate limiting disabled")
		} else {
			defer redisClient.Close()
		}
	}
	limiter := ratelimit.NewLimiter(redisClient, ratelimit.DefaultLimits())

	hub := websocket.NewHub()
	coordinator := game.NewCoordinator(hub, opts...)
	wsHandler := websocket.NewHandler(coordinator, hub, limiter)

	httpServer := server.NewServer(cfg.Port, coordinator, wsHandler, db, limiter)

	go func() {
		log.Printf("Server starting on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
