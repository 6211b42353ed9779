package repositories

import (
	"context"
	"time"

	"github.com/beautrip/backend/internal/domain/entities"
)

// ScheduleRepository defines the interface for schedule entry and travel
// period persistence
type ScheduleRepository interface {
	// CreateEntry creates a new schedule entry
	CreateEntry(ctx context.Context, entry *entities.ScheduleEntry) error

	// GetEntryByID retrieves a schedule entry by ID
	GetEntryByID(ctx context.Context, id string) (*entities.ScheduleEntry, error)

	// ListEntriesByUser retrieves all schedule entries for a user
	ListEntriesByUser(ctx context.Context, userID string) ([]*entities.ScheduleEntry, error)

	// ListEntriesInRange retrieves a user's entries whose procedure date or
	// recovery window touches [from, to]
	ListEntriesInRange(ctx context.Context, userID string, from, to time.Time) ([]*entities.ScheduleEntry, error)

	// UpdateEntry updates a schedule entry
	UpdateEntry(ctx context.Context, entry *entities.ScheduleEntry) error

	// DeleteEntry deletes a schedule entry
	DeleteEntry(ctx context.Context, id string) error

	// GetTravelPeriod retrieves a user's travel period, nil when unset
	GetTravelPeriod(ctx context.Context, userID string) (*entities.TravelPeriod, error)

	// SetTravelPeriod creates or replaces a user's travel period
	SetTravelPeriod(ctx context.Context, period *entities.TravelPeriod) error

	// DeleteTravelPeriod removes a user's travel period
	DeleteTravelPeriod(ctx context.Context, userID string) error
}
