package repositories

import (
	"context"

	"github.com/beautrip/backend/internal/domain/entities"
)

// TreatmentRepository defines the interface for treatment data operations
type TreatmentRepository interface {
	// Create creates a new treatment
	Create(ctx context.Context, treatment *entities.Treatment) error

	// GetByID retrieves a treatment by ID
	GetByID(ctx context.Context, id string) (*entities.Treatment, error)

	// GetByIDs retrieves multiple treatments by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Treatment, error)

	// Update updates a treatment
	Update(ctx context.Context, treatment *entities.Treatment) error

	// Delete deletes a treatment
	Delete(ctx context.Context, id string) error

	// List retrieves treatments with filters
	List(ctx context.Context, filter TreatmentFilter) ([]*entities.Treatment, error)

	// ListForRanking retrieves every active treatment with the fields the
	// ranking pipeline needs
	ListForRanking(ctx context.Context) ([]*entities.Treatment, error)

	// UpdateRating writes a recomputed rating and review count
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
}

// TreatmentFilter defines filters for listing treatments
type TreatmentFilter struct {
	HospitalID    string
	CategoryLarge string
	CategoryMid   string
	CategorySmall string
	IsActive      *bool
	Limit         int
	Offset        int
}

// TreatmentSearchRepository defines the interface for treatment search
// operations (e.g. Typesense)
type TreatmentSearchRepository interface {
	// Search searches treatments
	Search(ctx context.Context, params SearchParams) ([]*entities.Treatment, error)

	// Index indexes a treatment
	Index(ctx context.Context, treatment *entities.Treatment) error

	// BulkIndex indexes many treatments in one call
	BulkIndex(ctx context.Context, treatments []*entities.Treatment) error

	// Delete removes a treatment from the index
	Delete(ctx context.Context, id string) error
}

// SearchParams defines parameters for treatment search
type SearchParams struct {
	Query       string
	Category    string
	HospitalID  string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	Limit       int
	Offset      int
	SortByScore bool
}
