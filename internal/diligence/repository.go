package diligence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles due diligence report persistence. Reports are
// append-only and never deleted here.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert stores a new report and fills in its id and created_at.
func (r *Repository) Insert(ctx context.Context, report *DueDiligenceReport) error {
	riskJSON, err := json.Marshal(report.RiskAssessment)
	if err != nil {
		return fmt.Errorf("marshal risk assessment: %w", err)
	}
	roiJSON, err := json.Marshal(report.ROIProjection)
	if err != nil {
		return fmt.Errorf("marshal roi projection: %w", err)
	}
	sbaJSON, err := json.Marshal(report.SBAAssessment)
	if err != nil {
		return fmt.Errorf("marshal sba assessment: %w", err)
	}

	query := `
		INSERT INTO due_diligence_reports (
			business_listing_id, organization_id,
			risk_assessment, roi_projection, sba_assessment, created_at
		) VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		report.ListingID, report.OrganizationID,
		riskJSON, roiJSON, sbaJSON,
	).Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert due diligence report: %w", err)
	}

	return nil
}

// ListByListing returns all reports for one listing, newest first.
func (r *Repository) ListByListing(ctx context.Context, listingID string) ([]DueDiligenceReport, error) {
	query := `
		SELECT id, business_listing_id, organization_id,
		       risk_assessment, roi_projection, sba_assessment, created_at
		FROM due_diligence_reports
		WHERE business_listing_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, listingID)
	if err != nil {
		return nil, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	var reports []DueDiligenceReport
	for rows.Next() {
		var (
			report   DueDiligenceReport
			riskJSON []byte
			roiJSON  []byte
			sbaJSON  []byte
		)

		err := rows.Scan(
			&report.ID, &report.ListingID, &report.OrganizationID,
			&riskJSON, &roiJSON, &sbaJSON, &report.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}

		if err := json.Unmarshal(riskJSON, &report.RiskAssessment); err != nil {
			return nil, fmt.Errorf("unmarshal risk assessment: %w", err)
		}
		if err := json.Unmarshal(roiJSON, &report.ROIProjection); err != nil {
			return nil, fmt.Errorf("unmarshal roi projection: %w", err)
		}
		if err := json.Unmarshal(sbaJSON, &report.SBAAssessment); err != nil {
			return nil, fmt.Errorf("unmarshal sba assessment: %w", err)
		}

		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reports, nil
}
