package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes configures all API routes.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS — the dashboard UI runs on its own dev port
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// Health check
	hc := NewHealthChecker(h)
	r.Get("/health", hc.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/pricing", func(r chi.Router) {
			r.Get("/simulate", h.HandleSimulate)
			r.Get("/sweep", h.HandleSweep)
			r.Get("/scenarios", h.HandleScenarios)
		})

		r.Route("/insights", func(r chi.Router) {
			r.Get("/summary", h.HandleInsightsSummary)
			r.Get("/trends", h.HandleInsightsTrends)
			r.Get("/segments", h.HandleInsightsSegments)
			r.Get("/financial", h.HandleInsightsFinancial)
		})

		r.Route("/datasets", func(r chi.Router) {
			r.Get("/summary", h.HandleDatasetSummary)
			r.Post("/regenerate", h.HandleRegenerate)
		})

		r.Get("/brand", h.HandleBrand)
	})

	return r
}
