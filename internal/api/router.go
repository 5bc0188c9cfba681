package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"dealscout/internal/api/handlers"
	"dealscout/pkg/logger"
)

// NewRouter creates and configures the HTTP router. Authentication,
// tier gating and billing live in the gateway in front of this
// service; this router only parses requests and encodes responses.
func NewRouter(
	listingHandler *handlers.ListingHandler,
	diligenceHandler *handlers.DiligenceHandler,
	importHandler *handlers.ImportHandler,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Listing endpoints
	api.HandleFunc("/listings", listingHandler.Search).Methods("GET")
	api.HandleFunc("/listings/{id}", listingHandler.GetByID).Methods("GET")

	// Due diligence
	api.HandleFunc("/listings/{id}/diligence", diligenceHandler.Generate).Methods("POST")
	api.HandleFunc("/listings/{id}/diligence", diligenceHandler.History).Methods("GET")

	// Imports
	api.HandleFunc("/imports/{source}", importHandler.Run).Methods("POST")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status.
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "dealscout-api",
	})
}

// loggingMiddleware logs HTTP requests.
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics.
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
