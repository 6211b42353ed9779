package repositories

import (
	"context"

	"github.com/beautrip/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for treatment review persistence
type ReviewRepository interface {
	// Create creates a new review
	Create(ctx context.Context, review *entities.Review) error

	// GetByID retrieves a review by ID
	GetByID(ctx context.Context, id string) (*entities.Review, error)

	// ListByTreatment retrieves reviews for a treatment, newest first
	ListByTreatment(ctx context.Context, treatmentID string, limit, offset int) ([]*entities.Review, error)

	// AggregateByTreatment returns the average rating and review count for
	// a treatment
	AggregateByTreatment(ctx context.Context, treatmentID string) (avg float64, count int, err error)

	// Delete deletes a review
	Delete(ctx context.Context, id string) error
}

// PostRepository defines the interface for community post persistence
type PostRepository interface {
	// Create creates a new post
	Create(ctx context.Context, post *entities.Post) error

	// GetByID retrieves a post by ID
	GetByID(ctx context.Context, id string) (*entities.Post, error)

	// List retrieves posts with filters
	List(ctx context.Context, filter PostFilter) ([]*entities.Post, error)

	// Update updates a post
	Update(ctx context.Context, post *entities.Post) error

	// Delete deletes a post
	Delete(ctx context.Context, id string) error
}

// PostFilter defines filters for listing posts
type PostFilter struct {
	UserID   string
	Category string
	Limit    int
	Offset   int
}
