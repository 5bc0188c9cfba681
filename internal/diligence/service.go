package diligence

import (
	"context"
	"time"

	"dealscout/internal/listing"
	"dealscout/pkg/logger"
)

// ListingGetter reads one persisted listing.
type ListingGetter interface {
	GetByID(ctx context.Context, id string) (*listing.Listing, error)
}

// Service generates and stores due diligence reports. Generation is
// synchronous read-then-compute-then-write with no shared mutable
// state; concurrent requests for the same listing race harmlessly to
// produce two reports.
type Service struct {
	listings ListingGetter
	reports  *Repository
	logger   *logger.Logger

	now func() time.Time
}

// NewService creates a new due diligence service.
func NewService(listings ListingGetter, reports *Repository, log *logger.Logger) *Service {
	return &Service{
		listings: listings,
		reports:  reports,
		logger:   log.WithField("module", "diligence"),
		now:      time.Now,
	}
}

// Generate produces and persists a report for one listing. When no
// investment amount is given, the asking price stands in for it.
// Returns listing.ErrNotFound for an unknown listing id; missing
// financial data never fails, the report degrades to zeros.
func (s *Service) Generate(ctx context.Context, listingID, organizationID string, investment float64) (*DueDiligenceReport, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if investment <= 0 && l.Financial.AskingPrice != nil {
		investment = *l.Financial.AskingPrice
	}

	assessment, roi, sba := Evaluate(*l, investment, s.now().Year())

	report := &DueDiligenceReport{
		ListingID:      l.ID,
		OrganizationID: organizationID,
		RiskAssessment: assessment,
		ROIProjection:  roi,
		SBAAssessment:  sba,
	}

	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"listing_id":      listingID,
		"organization_id": organizationID,
		"composite_score": assessment.CompositeScore,
		"grade":           assessment.Grade,
		"sba_qualified":   sba.Qualified,
	}).Info("Generated due diligence report")

	return report, nil
}

// History returns previous reports for a listing, newest first.
func (s *Service) History(ctx context.Context, listingID string) ([]DueDiligenceReport, error) {
	return s.reports.ListByListing(ctx, listingID)
}
