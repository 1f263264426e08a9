package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/fraudsight/src/services"
)

// FlaggedHandler serves the reconciled flagged-transaction routes.
type FlaggedHandler struct {
	service services.DashboardService
}

func NewFlaggedHandler(service services.DashboardService) *FlaggedHandler {
	return &FlaggedHandler{service: service}
}

func (h *FlaggedHandler) HandleListFlagged(w http.ResponseWriter, r *http.Request) {
	flagged, err := h.service.ListFlagged(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, flagged)
}

func (h *FlaggedHandler) HandleListFlaggedForUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	flagged, err := h.service.ListFlaggedForUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, flagged)
}

func (h *FlaggedHandler) HandleListFlaggedByIP(w http.ResponseWriter, r *http.Request) {
	ip := chi.URLParam(r, "ipAddress")
	flagged, err := h.service.ListFlaggedByIP(r.Context(), ip)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, flagged)
}

func (h *FlaggedHandler) HandleTopReportedIPs(w http.ResponseWriter, r *http.Request) {
	top, err := h.service.TopReportedIPs(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, top)
}

func (h *FlaggedHandler) HandleFlaggedSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.FlaggedSummary(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, summary)
}
