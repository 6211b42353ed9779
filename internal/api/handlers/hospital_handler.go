package handlers

import (
	"net/http"

	"github.com/beautrip/backend/internal/domain/repositories"
)

// HospitalHandler handles hospital-related HTTP requests
type HospitalHandler struct {
	hospitalRepo repositories.HospitalRepository
}

// NewHospitalHandler creates a new hospital handler
func NewHospitalHandler(hospitalRepo repositories.HospitalRepository) *HospitalHandler {
	return &HospitalHandler{hospitalRepo: hospitalRepo}
}

// ListHospitals handles GET /api/hospitals
func (h *HospitalHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	active := true
	filter := repositories.HospitalFilter{
		City:     r.URL.Query().Get("city"),
		Country:  r.URL.Query().Get("country"),
		IsActive: &active,
		Limit:    queryInt(r, "limit", defaultListLimit),
		Offset:   queryInt(r, "offset", 0),
	}

	hospitals, err := h.hospitalRepo.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "failed to list hospitals")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"hospitals": hospitals,
		"count":     len(hospitals),
	})
}

// GetHospital handles GET /api/hospitals/{id}
func (h *HospitalHandler) GetHospital(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "hospital ID is required")
		return
	}

	hospital, err := h.hospitalRepo.GetByID(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, "failed to get hospital")
		return
	}

	respondWithJSON(w, http.StatusOK, hospital)
}
