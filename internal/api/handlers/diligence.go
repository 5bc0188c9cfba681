package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"dealscout/internal/diligence"
	"dealscout/internal/listing"
	"dealscout/pkg/logger"
)

// DiligenceHandler handles due diligence API endpoints.
type DiligenceHandler struct {
	diligence *diligence.Service
	logger    *logger.Logger
}

// NewDiligenceHandler creates a new due diligence handler.
func NewDiligenceHandler(svc *diligence.Service, log *logger.Logger) *DiligenceHandler {
	return &DiligenceHandler{
		diligence: svc,
		logger:    log,
	}
}

// GenerateRequest is the body for report generation.
type GenerateRequest struct {
	OrganizationID   string  `json:"organization_id"`
	InvestmentAmount float64 `json:"investment_amount"`
}

// Generate creates a new due diligence report for a listing.
// POST /api/listings/{id}/diligence
func (h *DiligenceHandler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	listingID := mux.Vars(r)["id"]

	var req GenerateRequest
	if r.Body != nil {
		// An empty body is fine; the investment defaults to the
		// asking price.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	report, err := h.diligence.Generate(ctx, listingID, req.OrganizationID, req.InvestmentAmount)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Listing not found")
			return
		}
		h.logger.WithError(err).WithField("listing_id", listingID).Error("Failed to generate report")
		respondError(w, http.StatusInternalServerError, "Failed to generate report")
		return
	}

	respondJSON(w, http.StatusCreated, report)
}

// History returns previous reports for a listing.
// GET /api/listings/{id}/diligence
func (h *DiligenceHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	listingID := mux.Vars(r)["id"]

	reports, err := h.diligence.History(ctx, listingID)
	if err != nil {
		h.logger.WithError(err).WithField("listing_id", listingID).Error("Failed to list reports")
		respondError(w, http.StatusInternalServerError, "Failed to list reports")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listing_id": listingID,
		"reports":    reports,
	})
}
