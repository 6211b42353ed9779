package handlers

import (
	"net/http"

	"github.com/beautrip/backend/internal/application/services"
)

// FavoriteHandler handles favorite-related HTTP requests
type FavoriteHandler struct {
	service *services.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// AddFavorite handles PUT /api/users/{userId}/favorites/{treatmentId}
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	treatmentID := r.PathValue("treatmentId")

	if err := h.service.Add(r.Context(), userID, treatmentID); err != nil {
		respondWithAppError(w, err, "failed to add favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RemoveFavorite handles DELETE /api/users/{userId}/favorites/{treatmentId}
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	treatmentID := r.PathValue("treatmentId")

	if err := h.service.Remove(r.Context(), userID, treatmentID); err != nil {
		respondWithAppError(w, err, "failed to remove favorite")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListFavorites handles GET /api/users/{userId}/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	treatments, err := h.service.ListTreatments(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err, "failed to list favorites")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"treatments": treatments,
		"count":      len(treatments),
	})
}
