package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/providers"
	"github.com/beautrip/backend/internal/domain/repositories"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

// CommunityService handles reviews and community posts. Adding a review
// recomputes the treatment's aggregate rating so the ranking pages see it.
type CommunityService struct {
	reviewRepo    repositories.ReviewRepository
	postRepo      repositories.PostRepository
	treatmentRepo repositories.TreatmentRepository
	eventBus      providers.EventBus
}

// NewCommunityService creates a new community service
func NewCommunityService(
	reviewRepo repositories.ReviewRepository,
	postRepo repositories.PostRepository,
	treatmentRepo repositories.TreatmentRepository,
	eventBus providers.EventBus,
) *CommunityService {
	return &CommunityService{
		reviewRepo:    reviewRepo,
		postRepo:      postRepo,
		treatmentRepo: treatmentRepo,
		eventBus:      eventBus,
	}
}

// AddReview stores a review and folds it into the treatment's aggregate
// rating and review count
func (s *CommunityService) AddReview(ctx context.Context, review *entities.Review) error {
	if err := validateReview(review); err != nil {
		return err
	}

	if _, err := s.treatmentRepo.GetByID(ctx, review.TreatmentID); err != nil {
		return err
	}

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	review.CreatedAt = time.Now()

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return err
	}

	if err := s.recomputeRating(ctx, review.TreatmentID); err != nil {
		// The review is stored; the aggregate catches up on the next write
		log.Printf("Warning: Failed to recompute rating for treatment %s: %v", review.TreatmentID, err)
	}

	s.publish(ctx, entities.NewTreatmentEvent(review.TreatmentID, entities.TreatmentEventTypeReviewAdded, map[string]interface{}{
		"review_id": review.ID,
	}))

	return nil
}

// ListReviews retrieves reviews for a treatment, newest first
func (s *CommunityService) ListReviews(ctx context.Context, treatmentID string, limit, offset int) ([]*entities.Review, error) {
	if treatmentID == "" {
		return nil, apperrors.NewValidationError("treatment id is required")
	}
	return s.reviewRepo.ListByTreatment(ctx, treatmentID, limit, offset)
}

// DeleteReview removes a review and recomputes the treatment aggregate
func (s *CommunityService) DeleteReview(ctx context.Context, id string) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.recomputeRating(ctx, review.TreatmentID); err != nil {
		log.Printf("Warning: Failed to recompute rating for treatment %s: %v", review.TreatmentID, err)
	}

	return nil
}

// recomputeRating writes the review aggregate back onto the treatment and
// announces the change
func (s *CommunityService) recomputeRating(ctx context.Context, treatmentID string) error {
	avg, count, err := s.reviewRepo.AggregateByTreatment(ctx, treatmentID)
	if err != nil {
		return err
	}

	if err := s.treatmentRepo.UpdateRating(ctx, treatmentID, avg, count); err != nil {
		return err
	}

	s.publish(ctx, entities.NewTreatmentEvent(treatmentID, entities.TreatmentEventTypeRatingChanged, map[string]interface{}{
		"rating":       avg,
		"review_count": count,
	}))

	return nil
}

// CreatePost creates a community post
func (s *CommunityService) CreatePost(ctx context.Context, post *entities.Post) error {
	if post == nil || post.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if post.Title == "" {
		return apperrors.NewValidationError("post title is required")
	}

	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	return s.postRepo.Create(ctx, post)
}

// GetPost retrieves a post by ID
func (s *CommunityService) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves posts with filters
func (s *CommunityService) ListPosts(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, error) {
	return s.postRepo.List(ctx, filter)
}

// UpdatePost updates a post
func (s *CommunityService) UpdatePost(ctx context.Context, post *entities.Post) error {
	if post == nil || post.ID == "" {
		return apperrors.NewValidationError("post id is required")
	}
	if post.Title == "" {
		return apperrors.NewValidationError("post title is required")
	}
	return s.postRepo.Update(ctx, post)
}

// DeletePost deletes a post
func (s *CommunityService) DeletePost(ctx context.Context, id string) error {
	return s.postRepo.Delete(ctx, id)
}

func (s *CommunityService) publish(ctx context.Context, event *entities.TreatmentEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelTreatmentUpdates, event); err != nil {
		log.Printf("Warning: Failed to publish treatment event %s: %v", event.ID, err)
	}
}

func validateReview(review *entities.Review) error {
	if review == nil {
		return apperrors.NewValidationError("review is required")
	}
	if review.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if review.TreatmentID == "" {
		return apperrors.NewValidationError("treatment id is required")
	}
	if review.Rating < 0 || review.Rating > 10 {
		return apperrors.NewValidationError("rating must be between 0 and 10")
	}
	return nil
}
