package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thounda/employee-polls-be/internal/api"
	"github.com/thounda/employee-polls-be/internal/config"
	"github.com/thounda/employee-polls-be/internal/datastore"
	"github.com/thounda/employee-polls-be/internal/logger"
	"github.com/thounda/employee-polls-be/internal/monitoring"
	"github.com/thounda/employee-polls-be/internal/services"
	"github.com/thounda/employee-polls-be/internal/state"
	"github.com/thounda/employee-polls-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set up the mock data store with its seed data
	store := datastore.New(datastore.SeedUsers(), datastore.SeedQuestions(), datastore.Options{
		MinLatency: cfg.StoreMinLatency,
		MaxLatency: cfg.StoreMaxLatency,
	})

	// Set up domain state
	domainState := state.New()

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	pollService := services.NewPollService(domainState, store, hub)
	authService := services.NewAuthService(domainState)

	// Populate the state before serving. A failed load is fatal here; at
	// runtime the caller decides whether to retry, but an empty process
	// has nothing to serve.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := pollService.InitialLoad(loadCtx); err != nil {
		cancelLoad()
		log.Fatalf("Failed to load initial data: %v", err)
	}
	cancelLoad()

	// Set up and run the background engagement monitor
	monitor := monitoring.NewEngagementMonitor(domainState, cfg.MonitorInterval)
	go monitor.Run()

	// Set up and run the scheduled leaderboard broadcaster
	broadcaster := monitoring.NewLeaderboardBroadcaster(domainState, hub, cfg.LeaderboardCron)
	if err := broadcaster.Start(); err != nil {
		log.Fatalf("Failed to start leaderboard broadcaster: %v", err)
	}

	// Set up router
	router := api.NewRouter(hub, pollService, authService, cfg.AllowedOrigin, cfg.TokenTTL)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on port %d\n", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	monitor.Stop()
	broadcaster.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
