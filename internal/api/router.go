package api

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/modlog/modlog/internal/api/middleware"

	// Import generated docs
	_ "github.com/modlog/modlog/docs"
)

// setupRouter configures all API routes.
func (s *Server) setupRouter(limiter *rate.Limiter) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoints
	mux.HandleFunc("/health", s.handleHealth)

	// Record browsing endpoints
	mux.HandleFunc("/api/records", s.handleRecords)
	mux.HandleFunc("/api/records/", s.handleRecord) // with ID
	mux.HandleFunc("/api/records/stats", s.handleStats)

	// Archive inventory
	mux.HandleFunc("/api/archives", s.handleArchives)

	// System endpoints
	mux.HandleFunc("/version", s.handleVersion)

	// Swagger UI
	mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Apply middleware
	handler := middleware.RateLimit(limiter)(mux)
	handler = middleware.RequestLogger(s.log)(handler)
	handler = middleware.Recovery(s.log)(handler)

	return handler
}
