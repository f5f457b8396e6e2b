// Package main is the entry point for the idkspot daemon.
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

	"github.com/joho/godotenv"

	"github.com/idkspot/idkspot-go/internal/api"
	"github.com/idkspot/idkspot-go/internal/config"
	"github.com/idkspot/idkspot-go/internal/database"
	"github.com/idkspot/idkspot-go/internal/database/models"
	"github.com/idkspot/idkspot-go/internal/database/repositories"
	"github.com/idkspot/idkspot-go/internal/services/hotspot"
	"github.com/idkspot/idkspot-go/internal/services/pubsub"
	"github.com/idkspot/idkspot-go/internal/services/stations"
	"github.com/idkspot/idkspot-go/internal/services/version"
	"github.com/idkspot/idkspot-go/internal/services/wireless"
)

func main() {
	// Load .env file if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Configure logging before any service starts
	initLogging(cfg.LogLevel)

	// Print startup banner
	printBanner(cfg)

	// Connect to database
	db, err := database.Connect(database.Config{
		URL:         cfg.DatabaseURL,
		MaxIdleConn: 5,
		MaxOpenConn: 10,
		Debug:       cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = database.Close() }()

	// Auto-migrate database schema
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migrations complete")

	// Event bus shared by the services and the WebSocket stream
	events := pubsub.New()

	// Wireless capability detector
	wirelessService := wireless.NewService(wireless.Config{
		IWPath:         cfg.IWPath,
		CommandTimeout: cfg.CommandTimeout,
	})
	if ifaces, err := wirelessService.Detect(context.Background()); err != nil {
		log.Printf("Warning: wireless detection failed: %v", err)
		// Continue anyway - clients can rescan once hardware shows up
	} else {
		capable := 0
		for _, iface := range ifaces {
			if iface.SupportsAPManaged {
				capable++
			}
		}
		log.Printf("Detected %d wireless interface(s), %d hotspot-capable", len(ifaces), capable)
	}

	// Connected-device enumeration
	stationsService := stations.NewService(stations.Config{
		IWPath:           cfg.IWPath,
		LeaseFile:        cfg.LeaseFile,
		CommandTimeout:   cfg.CommandTimeout,
		ResolveHostnames: cfg.ResolveHostnames,
	})

	// Hotspot lifecycle controller
	sessionRepo := repositories.NewSessionRepository(db)
	hotspotService := hotspot.NewService(hotspot.Options{
		CreateAPPath:     cfg.CreateAPPath,
		ElevatePath:      cfg.ElevatePath,
		DefaultInterface: cfg.HotspotInterface,
		DefaultChannel:   cfg.HotspotChannel,
		StartTimeout:     cfg.StartTimeout,
		StopGracePeriod:  cfg.StopGracePeriod,
		CommandTimeout:   cfg.CommandTimeout,
		HistoryLimit:     cfg.SessionHistoryLimit,
	}, wirelessService, stationsService, sessionRepo, events)

	// HTTP API
	server := api.NewServer(hotspotService, wirelessService, events, api.Options{
		AllowedOrigin: cfg.CORSOrigin,
		DefaultSSID:   cfg.HotspotSSID,
		Debug:         cfg.IsDevelopment(),
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on http://localhost:%s\n", cfg.Port)
		log.Printf("API endpoint: http://localhost:%s/api\n", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Tear down the hotspot before the process exits; an orphaned
	// create_ap helper would leave the interface unusable.
	if err := hotspotService.Shutdown(ctx); err != nil {
		log.Printf("Warning: hotspot teardown failed: %v", err)
	}

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// printBanner prints the startup banner.
func printBanner(cfg *config.Config) {
	fmt.Println("============================================")
	fmt.Println("  idkspot Hotspot Daemon")
	fmt.Printf("  Version: %s\n", version.String())
	fmt.Println("============================================")
	fmt.Printf("  Environment: %s\n", cfg.Env)
	fmt.Printf("  Port:        %s\n", cfg.Port)
	fmt.Printf("  Database:    %s\n", cfg.DatabaseURL)
	fmt.Printf("  create_ap:   %s\n", cfg.CreateAPPath)
	fmt.Printf("  Elevation:   %s\n", elevateLabel(cfg.ElevatePath))
	fmt.Println("============================================")
}

func elevateLabel(path string) string {
	if path == "" {
		return "none (running privileged)"
	}
	return path
}
