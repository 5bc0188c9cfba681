package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dealscout/internal/api"
	"dealscout/internal/api/handlers"
	"dealscout/internal/diligence"
	"dealscout/internal/ingest"
	"dealscout/internal/listing"
	"dealscout/pkg/config"
	"dealscout/pkg/database"
	"dealscout/pkg/logger"
	"dealscout/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

This command:
- Starts the HTTP API server
- Serves listing search and lookup endpoints
- Serves due diligence report generation
- Exposes manual import triggers

Endpoints:
  GET  /health                        - Health check
  GET  /api/listings                  - Search listings
  GET  /api/listings/{id}             - Get a listing
  POST /api/listings/{id}/diligence   - Generate a due diligence report
  GET  /api/listings/{id}/diligence   - Report history
  POST /api/imports/{source}          - Trigger an import run

Example:
  go run ./cmd/dealscout api
  go run ./cmd/dealscout api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DealScout API Server ===")

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	log.Info("Connected to database")

	// 4. Connect to Redis (optional; search cache degrades to no-op)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "dealscout")

	// 5. Create repositories
	listingRepo := listing.NewRepository(db.Pool)
	reportRepo := diligence.NewRepository(db.Pool)

	// 6. Create services
	listingSvc := listing.NewService(listingRepo, cache, log)
	diligenceSvc := diligence.NewService(listingSvc, reportRepo, log)

	// 7. Create source adapters and ingestion coordinator
	adapters := buildAdapters(cfg, log)
	coordinator := ingest.NewCoordinator(adapters, listingRepo, log)

	// 8. Create handlers
	listingHandler := handlers.NewListingHandler(listingSvc, log)
	diligenceHandler := handlers.NewDiligenceHandler(diligenceSvc, log)
	importHandler := handlers.NewImportHandler(coordinator, log)

	// 9. Create router
	router := api.NewRouter(listingHandler, diligenceHandler, importHandler, log)

	// 10. Create server
	server := api.New(cfg, log, router)

	// 11. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/listings")
	fmt.Println("  GET  /api/listings/{id}")
	fmt.Println("  POST /api/listings/{id}/diligence")
	fmt.Println("  GET  /api/listings/{id}/diligence")
	fmt.Println("  POST /api/imports/{source}")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
