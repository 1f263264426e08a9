package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/username/fraudsight/src/services"
)

// NewRouter wires the dashboard routes. The limiter is shared across all
// requests; pass nil to disable rate limiting (tests do).
func NewRouter(service services.DashboardService, limiter *rate.Limiter) *chi.Mux {
	userHandler := NewUserHandler(service)
	txHandler := NewTransactionHandler(service)
	flaggedHandler := NewFlaggedHandler(service)
	analyticsHandler := NewAnalyticsHandler(service)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(ContextualLoggerMiddleware)
	r.Use(EnableCORS)
	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"message": "FraudSight backend is running"})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.HandleListUsers)
		r.Get("/users/{id}", userHandler.HandleGetUser)
		r.Get("/users/{id}/stats", userHandler.HandleGetUserStats)

		r.Get("/transactions", txHandler.HandleListTransactions)
		r.Get("/transactions/user/{userId}", txHandler.HandleListUserTransactions)
		r.Get("/transactions/stats/summary", txHandler.HandleTransactionSummary)

		r.Get("/flagged-transactions", flaggedHandler.HandleListFlagged)
		r.Get("/flagged-transactions/user/{userId}", flaggedHandler.HandleListFlaggedForUser)
		r.Get("/flagged-transactions/ip/{ipAddress}", flaggedHandler.HandleListFlaggedByIP)
		r.Get("/flagged-transactions/stats/top-ips", flaggedHandler.HandleTopReportedIPs)
		r.Get("/flagged-transactions/stats/summary", flaggedHandler.HandleFlaggedSummary)

		r.Get("/analytics/transaction-chart", analyticsHandler.HandleTransactionChart)
		r.Get("/analytics/ip-chart", analyticsHandler.HandleIPChart)
		r.Get("/analytics/dashboard-summary", analyticsHandler.HandleDashboardSummary)
		r.Get("/analytics/location-analytics", analyticsHandler.HandleLocationAnalytics)
	})

	return r
}
