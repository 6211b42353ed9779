package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/beautrip/backend/internal/application/services"
	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

const defaultListLimit = 30

// TreatmentHandler handles treatment-related HTTP requests
type TreatmentHandler struct {
	service *services.TreatmentService
}

// NewTreatmentHandler creates a new treatment handler
func NewTreatmentHandler(service *services.TreatmentService) *TreatmentHandler {
	return &TreatmentHandler{service: service}
}

// ListTreatments handles GET /api/treatments
func (h *TreatmentHandler) ListTreatments(w http.ResponseWriter, r *http.Request) {
	active := true
	filter := repositories.TreatmentFilter{
		HospitalID:  r.URL.Query().Get("hospital_id"),
		CategoryMid: r.URL.Query().Get("category"),
		IsActive:    &active,
		Limit:       queryInt(r, "limit", defaultListLimit),
		Offset:      queryInt(r, "offset", 0),
	}

	treatments, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "failed to list treatments")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"treatments": treatments,
		"count":      len(treatments),
	})
}

// GetTreatment handles GET /api/treatments/{id}
func (h *TreatmentHandler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "treatment ID is required")
		return
	}

	treatment, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, "failed to get treatment")
		return
	}

	respondWithJSON(w, http.StatusOK, treatment)
}

// SearchTreatments handles GET /api/treatments/search
func (h *TreatmentHandler) SearchTreatments(w http.ResponseWriter, r *http.Request) {
	params := repositories.SearchParams{
		Query:       r.URL.Query().Get("q"),
		Category:    r.URL.Query().Get("category"),
		HospitalID:  r.URL.Query().Get("hospital_id"),
		MinPrice:    queryFloat(r, "min_price"),
		MaxPrice:    queryFloat(r, "max_price"),
		MinRating:   queryFloat(r, "min_rating"),
		Limit:       queryInt(r, "limit", defaultListLimit),
		Offset:      queryInt(r, "offset", 0),
		SortByScore: r.URL.Query().Get("sort") == "score",
	}

	treatments, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err, "failed to search treatments")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"treatments": treatments,
		"count":      len(treatments),
	})
}

// CreateTreatment handles POST /api/treatments
func (h *TreatmentHandler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	var treatment entities.Treatment
	if err := json.NewDecoder(r.Body).Decode(&treatment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.Create(r.Context(), &treatment); err != nil {
		respondWithAppError(w, err, "failed to create treatment")
		return
	}

	respondWithJSON(w, http.StatusCreated, treatment)
}

// UpdateTreatment handles PUT /api/treatments/{id}
func (h *TreatmentHandler) UpdateTreatment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "treatment ID is required")
		return
	}

	var treatment entities.Treatment
	if err := json.NewDecoder(r.Body).Decode(&treatment); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	treatment.ID = id

	if err := h.service.Update(r.Context(), &treatment); err != nil {
		respondWithAppError(w, err, "failed to update treatment")
		return
	}

	respondWithJSON(w, http.StatusOK, treatment)
}

// DeleteTreatment handles DELETE /api/treatments/{id}
func (h *TreatmentHandler) DeleteTreatment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "treatment ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err, "failed to delete treatment")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps a service error onto an HTTP status, hiding
// internal detail behind the fallback message
func respondWithAppError(w http.ResponseWriter, err error, fallback string) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		status := appErr.HTTPStatus()
		if status >= http.StatusInternalServerError {
			respondWithError(w, status, fallback)
			return
		}
		respondWithError(w, status, appErr.Message)
		return
	}
	respondWithError(w, http.StatusInternalServerError, fallback)
}

func queryInt(r *http.Request, key string, fallback int) int {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			return v
		}
	}
	return fallback
}

func queryFloat(r *http.Request, key string) *float64 {
	if raw := r.URL.Query().Get(key); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return &v
		}
	}
	return nil
}
