package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"dealscout/internal/ingest"
	"dealscout/pkg/logger"
)

// ImportHandler triggers ingestion runs over the API.
type ImportHandler struct {
	coordinator *ingest.Coordinator
	logger      *logger.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(coordinator *ingest.Coordinator, log *logger.Logger) *ImportHandler {
	return &ImportHandler{
		coordinator: coordinator,
		logger:      log,
	}
}

// ImportRequest narrows one import run.
type ImportRequest struct {
	Keyword  string `json:"keyword"`
	Industry string `json:"industry"`
	State    string `json:"state"`
	MaxPages int    `json:"max_pages"`
}

// Run imports one source (or "all") synchronously and returns the
// per-source counts.
// POST /api/imports/{source}
func (h *ImportHandler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	source := mux.Vars(r)["source"]

	var req ImportRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	filters := ingest.Filters{
		Keyword:  req.Keyword,
		Industry: req.Industry,
		State:    req.State,
		MaxPages: req.MaxPages,
	}

	var results []ingest.SourceResult
	if source == "all" {
		results = h.coordinator.Run(ctx, filters)
	} else {
		adapter, err := h.coordinator.AdapterByName(source)
		if err != nil {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
		results = []ingest.SourceResult{h.coordinator.RunSource(ctx, adapter, filters)}
	}

	type sourceStatus struct {
		ingest.SourceResult
		FetchError string `json:"fetch_error,omitempty"`
	}

	statuses := make([]sourceStatus, 0, len(results))
	for _, result := range results {
		status := sourceStatus{SourceResult: result}
		if result.Err != nil {
			status.FetchError = result.Err.Error()
		}
		statuses = append(statuses, status)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"results": statuses,
	})
}
