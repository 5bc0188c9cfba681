package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dealscout/internal/listing"
	"dealscout/pkg/logger"
)

// ListingHandler handles listing API endpoints.
type ListingHandler struct {
	listings *listing.Service
	logger   *logger.Logger
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listings *listing.Service, log *logger.Logger) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		logger:   log,
	}
}

// Search returns listings matching the query parameters.
// GET /api/listings?q=&industry=&city=&state=&min_price=&max_price=&limit=&offset=
func (h *ListingHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()

	q := listing.SearchQuery{
		Keyword:  params.Get("q"),
		Industry: params.Get("industry"),
		City:     params.Get("city"),
		State:    params.Get("state"),
	}

	if v, ok := parseFloatParam(params.Get("min_price")); ok {
		q.MinPrice = &v
	}
	if v, ok := parseFloatParam(params.Get("max_price")); ok {
		q.MaxPrice = &v
	}
	if v, err := strconv.Atoi(params.Get("limit")); err == nil && v > 0 {
		q.Limit = v
	}
	if v, err := strconv.Atoi(params.Get("offset")); err == nil && v > 0 {
		q.Offset = v
	}

	result, err := h.listings.Search(ctx, q)
	if err != nil {
		h.logger.WithError(err).Error("Failed to search listings")
		respondError(w, http.StatusInternalServerError, "Failed to search listings")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetByID returns one listing.
// GET /api/listings/{id}
func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	l, err := h.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, listing.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Listing not found")
			return
		}
		h.logger.WithError(err).WithField("listing_id", id).Error("Failed to get listing")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve listing")
		return
	}

	respondJSON(w, http.StatusOK, l)
}

func parseFloatParam(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
