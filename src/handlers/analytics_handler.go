package handlers

import (
	"net/http"

	"github.com/username/fraudsight/src/services"
)

// AnalyticsHandler serves the aggregated dashboard views.
type AnalyticsHandler struct {
	service services.DashboardService
}

func NewAnalyticsHandler(service services.DashboardService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

func (h *AnalyticsHandler) HandleTransactionChart(w http.ResponseWriter, r *http.Request) {
	points, err := h.service.TransactionChart(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, points)
}

func (h *AnalyticsHandler) HandleIPChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.service.IPChart(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, chart)
}

func (h *AnalyticsHandler) HandleDashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.DashboardSummary(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, summary)
}

func (h *AnalyticsHandler) HandleLocationAnalytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.service.LocationAnalytics(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, analytics)
}
