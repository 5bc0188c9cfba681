package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dealscout/internal/ingest"
	"dealscout/internal/listing"
	"dealscout/pkg/config"
	"dealscout/pkg/database"
	"dealscout/pkg/logger"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import [source|all]",
	Short: "Import listings from marketplace sources",
	Long: `Runs the ingestion pipeline for one source or for all sources.

Each record is normalized into the canonical listing shape, checked
against the catalog for duplicates, scored for quality and risk, and
persisted. Duplicates are skipped, never merged.

Sources:
  biznest    - BizNest brokerage marketplace (HTML)
  flipnest   - FlipNest online business marketplace (JSON API)
  dealboard  - DealBoard community board export (JSON)
  all        - every configured source, fetched concurrently

Example:
  go run ./cmd/dealscout import all
  go run ./cmd/dealscout import biznest --keyword restaurant --state TX
  go run ./cmd/dealscout import flipnest --max-pages 3`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	// Import flags
	importKeyword  string
	importIndustry string
	importState    string
	importMaxPages int
)

func init() {
	rootCmd.AddCommand(importCmd)

	// Flags
	importCmd.Flags().StringVar(&importKeyword, "keyword", "", "keyword filter")
	importCmd.Flags().StringVar(&importIndustry, "industry", "", "industry filter")
	importCmd.Flags().StringVar(&importState, "state", "", "state filter (two-letter code)")
	importCmd.Flags().IntVar(&importMaxPages, "max-pages", 0, "page cap per source (0 = source default)")
}

func runImport(cmd *cobra.Command, args []string) error {
	source := args[0]

	fmt.Println("=== DealScout Import ===")
	fmt.Printf("Source: %s\n\n", source)

	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Connect to database
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	// 4. Create adapters and coordinator
	listingRepo := listing.NewRepository(db.Pool)
	adapters := buildAdapters(cfg, log)
	coordinator := ingest.NewCoordinator(adapters, listingRepo, log)

	filters := ingest.Filters{
		Keyword:  importKeyword,
		Industry: importIndustry,
		State:    importState,
		MaxPages: importMaxPages,
	}

	// 5. Run
	start := time.Now()

	var results []ingest.SourceResult
	if source == "all" {
		results = coordinator.Run(cmd.Context(), filters)
	} else {
		adapter, err := coordinator.AdapterByName(source)
		if err != nil {
			return err
		}
		results = []ingest.SourceResult{coordinator.RunSource(cmd.Context(), adapter, filters)}
	}

	// 6. Print results
	printImportResults(results, time.Since(start))

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("import %s: %w", r.Source, r.Err)
		}
	}
	return nil
}

func printImportResults(results []ingest.SourceResult, elapsed time.Duration) {
	PrintTableHeader([]string{"Source", "Imported", "Skipped", "Errors", "Status"}, importTableWidths)

	totalImported, totalSkipped, totalErrors := 0, 0, 0
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = "fetch failed"
		}
		PrintTableRow([]string{
			r.Source,
			fmt.Sprintf("%d", r.Imported),
			fmt.Sprintf("%d", r.Skipped),
			fmt.Sprintf("%d", r.Errors),
			status,
		}, importTableWidths)

		totalImported += r.Imported
		totalSkipped += r.Skipped
		totalErrors += r.Errors
	}

	fmt.Println()
	PrintSuccess(fmt.Sprintf("Imported %d, skipped %d, errors %d in %.2fs",
		totalImported, totalSkipped, totalErrors, elapsed.Seconds()))
}

var importTableWidths = []int{12, 10, 10, 8, 14}
