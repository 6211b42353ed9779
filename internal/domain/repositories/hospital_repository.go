package repositories

import (
	"context"

	"github.com/beautrip/backend/internal/domain/entities"
)

// HospitalRepository defines the interface for hospital data operations
type HospitalRepository interface {
	// Create creates a new hospital
	Create(ctx context.Context, hospital *entities.Hospital) error

	// GetByID retrieves a hospital by ID
	GetByID(ctx context.Context, id string) (*entities.Hospital, error)

	// GetByIDs retrieves multiple hospitals by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Hospital, error)

	// Update updates a hospital
	Update(ctx context.Context, hospital *entities.Hospital) error

	// Delete deletes a hospital
	Delete(ctx context.Context, id string) error

	// List retrieves hospitals with filters
	List(ctx context.Context, filter HospitalFilter) ([]*entities.Hospital, error)
}

// HospitalFilter defines filters for listing hospitals
type HospitalFilter struct {
	City     string
	Country  string
	IsActive *bool
	Limit    int
	Offset   int
}
