package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dealscout/internal/diligence"
	"dealscout/internal/listing"
	"dealscout/pkg/config"
	"dealscout/pkg/database"
	"dealscout/pkg/logger"
	"dealscout/pkg/redis"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report <listing-id>",
	Short: "Generate a due diligence report",
	Long: `Generates a due diligence report for a catalog listing.

The report combines:
- Risk assessment (composite score and letter grade)
- SBA loan qualification with estimated maximum loan amount
- ROI projection with a risk-adjusted confidence interval

The investment amount defaults to the listing's asking price when the
flag is omitted or zero.

Example:
  go run ./cmd/dealscout report 3f6c... --investment 250000
  go run ./cmd/dealscout report 3f6c... --org acme-capital`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

var (
	// Report flags
	reportInvestment float64
	reportOrg        string
)

func init() {
	rootCmd.AddCommand(reportCmd)

	// Flags
	reportCmd.Flags().Float64Var(&reportInvestment, "investment", 0, "planned investment amount (default: asking price)")
	reportCmd.Flags().StringVar(&reportOrg, "org", "", "organization the report belongs to")
}

func runReport(cmd *cobra.Command, args []string) error {
	listingID := args[0]

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

	// 4. Connect to Redis
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	cache := redis.NewCache(redisClient, "dealscout")

	// 5. Create services
	listingRepo := listing.NewRepository(db.Pool)
	reportRepo := diligence.NewRepository(db.Pool)
	listingSvc := listing.NewService(listingRepo, cache, log)
	diligenceSvc := diligence.NewService(listingSvc, reportRepo, log)

	// 6. Generate
	report, err := diligenceSvc.Generate(cmd.Context(), listingID, reportOrg, reportInvestment)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	printReport(report)
	return nil
}

func printReport(r *diligence.DueDiligenceReport) {
	PrintDoubleSeparator()
	fmt.Printf("  Due Diligence Report  %s\n", r.ID)
	PrintSeparator()
	PrintKeyValue("Listing", r.ListingID, 18)
	PrintSeparator()

	fmt.Println("  Risk Assessment")
	PrintKeyValue("Grade", r.RiskAssessment.Grade, 18)
	PrintKeyValue("Composite", fmt.Sprintf("%d / 100", r.RiskAssessment.CompositeScore), 18)
	PrintKeyValue("Financial health", fmt.Sprintf("%d", r.RiskAssessment.Components.FinancialHealth), 18)
	PrintKeyValue("Legal risk", fmt.Sprintf("%d", r.RiskAssessment.Components.LegalRisk), 18)
	PrintKeyValue("Operational risk", fmt.Sprintf("%d", r.RiskAssessment.Components.OperationalRisk), 18)
	PrintKeyValue("Market risk", fmt.Sprintf("%d", r.RiskAssessment.Components.MarketRisk), 18)
	PrintSeparator()

	fmt.Println("  SBA Qualification")
	PrintKeyValue("Qualified", fmt.Sprintf("%t", r.SBAAssessment.Qualified), 18)
	PrintKeyValue("Score", fmt.Sprintf("%.2f", r.SBAAssessment.QualificationScore), 18)
	PrintKeyValue("Max loan", fmt.Sprintf("$%.0f", r.SBAAssessment.MaxLoanAmount), 18)
	PrintSeparator()

	fmt.Println("  ROI Projection")
	PrintKeyValue("Projected ROI", fmt.Sprintf("%.1f%%", r.ROIProjection.ProjectedROI), 18)
	PrintKeyValue("Risk adjusted", fmt.Sprintf("%.1f%%", r.ROIProjection.RiskAdjustedReturn), 18)
	PrintKeyValue("Break even", fmt.Sprintf("%.1f months", r.ROIProjection.BreakEvenMonths), 18)
	PrintKeyValue("Confidence", fmt.Sprintf("%.1f%% ~ %.1f%%", r.ROIProjection.ConfidenceInterval.Low, r.ROIProjection.ConfidenceInterval.High), 18)
	PrintDoubleSeparator()
}
