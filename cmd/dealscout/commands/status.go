package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dealscout/pkg/config"
	"dealscout/pkg/database"
	"dealscout/pkg/logger"
	"dealscout/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check infrastructure health",
	Long: `Checks connectivity to the database and Redis and prints
connection pool statistics.

Example:
  go run ./cmd/dealscout status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DealScout Status ===")
	fmt.Println()

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	// 3. Database
	fmt.Println("PostgreSQL")
	PrintSeparator()
	db, err := database.New(cfg)
	if err != nil {
		PrintError(fmt.Sprintf("connect: %v", err))
		return err
	}
	defer db.Close()

	health, err := db.HealthCheck(ctx)
	if err != nil {
		PrintError(fmt.Sprintf("health check: %v", err))
	} else {
		PrintSuccess(fmt.Sprintf("healthy (response time %s)", health.ResponseTime))
		PrintKeyValue("Total conns", fmt.Sprintf("%d", health.Stats.TotalConns), 14)
		PrintKeyValue("Idle conns", fmt.Sprintf("%d", health.Stats.IdleConns), 14)
		PrintKeyValue("Acquired", fmt.Sprintf("%d", health.Stats.AcquiredConns), 14)
	}
	fmt.Println()

	// 4. Redis
	fmt.Println("Redis")
	PrintSeparator()
	redisClient, err := redis.New(cfg)
	if err != nil {
		PrintError(fmt.Sprintf("connect: %v", err))
		log.WithError(err).Warn("Redis unavailable")
	} else {
		defer redisClient.Close()
		if !redisClient.Enabled() {
			PrintInfo("disabled (REDIS_ENABLED=false); search cache is a no-op")
		} else if err := redisClient.Ping(ctx); err != nil {
			PrintError(fmt.Sprintf("ping: %v", err))
		} else {
			PrintSuccess("healthy")
		}
	}

	return nil
}
