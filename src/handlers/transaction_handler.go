package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/fraudsight/src/services"
)

// TransactionHandler serves the flattened transaction routes.
type TransactionHandler struct {
	service services.DashboardService
}

func NewTransactionHandler(service services.DashboardService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.ListTransactions(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, txs)
}

func (h *TransactionHandler) HandleListUserTransactions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	txs, err := h.service.ListUserTransactions(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, txs)
}

func (h *TransactionHandler) HandleTransactionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.TransactionSummary(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, summary)
}
