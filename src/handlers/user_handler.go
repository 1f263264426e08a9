package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/username/fraudsight/src/services"
)

// UserHandler serves the user list and per-user detail routes.
type UserHandler struct {
	service services.DashboardService
}

func NewUserHandler(service services.DashboardService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, users)
}

func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.service.GetUser(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, user)
}

func (h *UserHandler) HandleGetUserStats(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	stats, err := h.service.GetUserStats(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, r, stats)
}
