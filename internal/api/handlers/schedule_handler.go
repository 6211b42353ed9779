package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/beautrip/backend/internal/application/services"
	"github.com/beautrip/backend/internal/domain/entities"
)

// ScheduleHandler handles travel schedule HTTP requests
type ScheduleHandler struct {
	service *services.ScheduleService
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(service *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// CreateEntry handles POST /api/users/{userId}/schedule
func (h *ScheduleHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var entry entities.ScheduleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry.UserID = userID

	result, err := h.service.AddEntry(r.Context(), &entry)
	if err != nil {
		respondWithAppError(w, err, "failed to create schedule entry")
		return
	}

	respondWithJSON(w, http.StatusCreated, result)
}

// ListEntries handles GET /api/users/{userId}/schedule
func (h *ScheduleHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	entries, err := h.service.ListEntries(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err, "failed to list schedule entries")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// UpdateEntry handles PUT /api/users/{userId}/schedule/{entryId}
func (h *ScheduleHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	entryID := r.PathValue("entryId")
	if userID == "" || entryID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and entry ID are required")
		return
	}

	var entry entities.ScheduleEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	entry.ID = entryID
	entry.UserID = userID

	result, err := h.service.UpdateEntry(r.Context(), &entry)
	if err != nil {
		respondWithAppError(w, err, "failed to update schedule entry")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// DeleteEntry handles DELETE /api/users/{userId}/schedule/{entryId}
func (h *ScheduleHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	entryID := r.PathValue("entryId")
	if userID == "" || entryID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID and entry ID are required")
		return
	}

	if err := h.service.DeleteEntry(r.Context(), userID, entryID); err != nil {
		respondWithAppError(w, err, "failed to delete schedule entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SetTravelPeriod handles PUT /api/users/{userId}/travel-period
func (h *ScheduleHandler) SetTravelPeriod(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var period entities.TravelPeriod
	if err := json.NewDecoder(r.Body).Decode(&period); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	period.UserID = userID

	if err := h.service.SetTravelPeriod(r.Context(), &period); err != nil {
		respondWithAppError(w, err, "failed to set travel period")
		return
	}

	respondWithJSON(w, http.StatusOK, period)
}

// GetTravelPeriod handles GET /api/users/{userId}/travel-period
func (h *ScheduleHandler) GetTravelPeriod(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	period, err := h.service.GetTravelPeriod(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err, "failed to get travel period")
		return
	}
	if period == nil {
		respondWithError(w, http.StatusNotFound, "travel period is not set")
		return
	}

	respondWithJSON(w, http.StatusOK, period)
}

// DeleteTravelPeriod handles DELETE /api/users/{userId}/travel-period
func (h *ScheduleHandler) DeleteTravelPeriod(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	if err := h.service.DeleteTravelPeriod(r.Context(), userID); err != nil {
		respondWithAppError(w, err, "failed to delete travel period")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClassifyDate handles GET /api/users/{userId}/schedule/classify?date=2024-06-12
func (h *ScheduleHandler) ClassifyDate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	date, ok := queryDate(r, "date")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	classification, err := h.service.ClassifyDate(r.Context(), userID, date)
	if err != nil {
		respondWithAppError(w, err, "failed to classify date")
		return
	}

	respondWithJSON(w, http.StatusOK, classification)
}

// GetCalendar handles GET /api/users/{userId}/schedule/calendar?from=...&to=...
func (h *ScheduleHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	from, okFrom := queryDate(r, "from")
	to, okTo := queryDate(r, "to")
	if !okFrom || !okTo {
		respondWithError(w, http.StatusBadRequest, "from and to must be in YYYY-MM-DD format")
		return
	}

	days, err := h.service.Calendar(r.Context(), userID, from, to)
	if err != nil {
		respondWithAppError(w, err, "failed to build calendar")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"days":  days,
		"count": len(days),
	})
}

func queryDate(r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
