package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"dealscout/internal/ingest"
	"dealscout/internal/listing"
	"dealscout/internal/scheduler"
	"dealscout/internal/scheduler/jobs"
	"dealscout/pkg/config"
	"dealscout/pkg/database"
	"dealscout/pkg/logger"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage the import scheduler",
	Long: `Starts the scheduler daemon or manages its jobs.

This command:
- Starts the scheduler daemon
- Lists registered jobs
- Runs a job immediately
- Shows job execution history

Subcommands:
  start   - start the scheduler
  list    - list registered jobs
  run     - run a job now

Example:
  go run ./cmd/dealscout scheduler start
  go run ./cmd/dealscout scheduler list
  go run ./cmd/dealscout scheduler run import-all`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		Long: `Starts the scheduler and schedules all registered jobs.

Registered jobs:
- import-all: daily at 03:00 (full import from every source)

Stop the scheduler with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Run a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== DealScout Scheduler ===")

	// Initialize dependencies
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	// Start scheduler
	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s\n", jobName)
	}

	return nil
}

func runSchedulerJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]

	fmt.Printf("Running job: %s\n", jobName)

	sched, err := initScheduler()
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	if err := sched.RunJob(jobName); err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	fmt.Println("Job started (running in background)")
	return nil
}

func initScheduler() (*scheduler.Scheduler, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// 4. Create adapters and coordinator
	listingRepo := listing.NewRepository(db.Pool)
	adapters := buildAdapters(cfg, log)
	coordinator := ingest.NewCoordinator(adapters, listingRepo, log)

	// 5. Create scheduler
	sched := scheduler.New(log)

	// 6. Register jobs
	if err := sched.AddJob(jobs.NewImportAllJob(coordinator, log)); err != nil {
		return nil, fmt.Errorf("register import job: %w", err)
	}

	return sched, nil
}
