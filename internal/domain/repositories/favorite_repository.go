package repositories

import (
	"context"

	"github.com/beautrip/backend/internal/domain/entities"
)

// FavoriteRepository defines the interface for favorite persistence
type FavoriteRepository interface {
	// Add records a favorite; adding twice is not an error
	Add(ctx context.Context, userID, treatmentID string) error

	// Remove deletes a favorite
	Remove(ctx context.Context, userID, treatmentID string) error

	// ListByUser retrieves a user's favorites, newest first
	ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error)

	// Exists checks whether a favorite is recorded
	Exists(ctx context.Context, userID, treatmentID string) (bool, error)

	// CountByTreatment counts how many users favorited a treatment
	CountByTreatment(ctx context.Context, treatmentID string) (int, error)
}
