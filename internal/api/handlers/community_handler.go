package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/beautrip/backend/internal/application/services"
	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
)

// CommunityHandler handles review and community post HTTP requests
type CommunityHandler struct {
	service *services.CommunityService
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(service *services.CommunityService) *CommunityHandler {
	return &CommunityHandler{service: service}
}

// AddReview handles POST /api/treatments/{id}/reviews
func (h *CommunityHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	treatmentID := r.PathValue("id")
	if treatmentID == "" {
		respondWithError(w, http.StatusBadRequest, "treatment ID is required")
		return
	}

	var review entities.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	review.TreatmentID = treatmentID

	if err := h.service.AddReview(r.Context(), &review); err != nil {
		respondWithAppError(w, err, "failed to add review")
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// ListReviews handles GET /api/treatments/{id}/reviews
func (h *CommunityHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	treatmentID := r.PathValue("id")
	if treatmentID == "" {
		respondWithError(w, http.StatusBadRequest, "treatment ID is required")
		return
	}

	reviews, err := h.service.ListReviews(r.Context(), treatmentID, queryInt(r, "limit", defaultListLimit), queryInt(r, "offset", 0))
	if err != nil {
		respondWithAppError(w, err, "failed to list reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *CommunityHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	if err := h.service.DeleteReview(r.Context(), id); err != nil {
		respondWithAppError(w, err, "failed to delete review")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreatePost handles POST /api/posts
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var post entities.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.CreatePost(r.Context(), &post); err != nil {
		respondWithAppError(w, err, "failed to create post")
		return
	}

	respondWithJSON(w, http.StatusCreated, post)
}

// GetPost handles GET /api/posts/{id}
func (h *CommunityHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err, "failed to get post")
		return
	}

	respondWithJSON(w, http.StatusOK, post)
}

// ListPosts handles GET /api/posts
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PostFilter{
		UserID:   r.URL.Query().Get("user_id"),
		Category: r.URL.Query().Get("category"),
		Limit:    queryInt(r, "limit", defaultListLimit),
		Offset:   queryInt(r, "offset", 0),
	}

	posts, err := h.service.ListPosts(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err, "failed to list posts")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"count": len(posts),
	})
}

// UpdatePost handles PUT /api/posts/{id}
func (h *CommunityHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	var post entities.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	post.ID = id

	if err := h.service.UpdatePost(r.Context(), &post); err != nil {
		respondWithAppError(w, err, "failed to update post")
		return
	}

	respondWithJSON(w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/posts/{id}
func (h *CommunityHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "post ID is required")
		return
	}

	if err := h.service.DeletePost(r.Context(), id); err != nil {
		respondWithAppError(w, err, "failed to delete post")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
