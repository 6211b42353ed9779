package handlers

import (
	"net/http"

	queryservices "github.com/beautrip/backend/internal/query/services"
)

// RankingHandler serves the ranked treatment pages
type RankingHandler struct {
	rankingService *queryservices.RankingQueryService
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(rankingService *queryservices.RankingQueryService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// GetRankings handles GET /api/rankings
func (h *RankingHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	page, err := h.rankingService.Page(r.Context(), category)
	if err != nil {
		respondWithAppError(w, err, "failed to build ranking page")
		return
	}

	respondWithJSON(w, http.StatusOK, page)
}
