package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/planner"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

// maxCalendarRangeDays bounds a single calendar query
const maxCalendarRangeDays = 366

// ScheduleService handles business logic for travel schedules. Validation
// happens here at the boundary; the planner itself stays permissive.
type ScheduleService struct {
	repo repositories.ScheduleRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(repo repositories.ScheduleRepository) *ScheduleService {
	return &ScheduleService{repo: repo}
}

// AddEntryResult is the outcome of adding a schedule entry, including
// whether its recovery window runs past the travel period.
type AddEntryResult struct {
	Entry                 *entities.ScheduleEntry `json:"entry"`
	RecoveryOutsideTravel bool                    `json:"recovery_outside_travel"`
}

// AddEntry validates and stores a schedule entry, and reports upfront
// whether the recovery window extends past the user's travel period.
func (s *ScheduleService) AddEntry(ctx context.Context, entry *entities.ScheduleEntry) (*AddEntryResult, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	travel, err := s.repo.GetTravelPeriod(ctx, entry.UserID)
	if err != nil {
		return nil, err
	}

	return &AddEntryResult{
		Entry:                 entry,
		RecoveryOutsideTravel: planner.IsRecoveryOutsideTravel(entry, travel),
	}, nil
}

// GetEntry retrieves a schedule entry, scoped to its owner. Another user's
// entry is indistinguishable from a missing one.
func (s *ScheduleService) GetEntry(ctx context.Context, userID, id string) (*entities.ScheduleEntry, error) {
	return s.ownedEntry(ctx, userID, id)
}

// ownedEntry loads an entry and verifies it belongs to the user.
func (s *ScheduleService) ownedEntry(ctx context.Context, userID, id string) (*entities.ScheduleEntry, error) {
	existing, err := s.repo.GetEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.UserID != userID {
		return nil, apperrors.NewNotFoundError("schedule entry not found")
	}
	return existing, nil
}

// ListEntries retrieves all schedule entries for a user
func (s *ScheduleService) ListEntries(ctx context.Context, userID string) ([]*entities.ScheduleEntry, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	return s.repo.ListEntriesByUser(ctx, userID)
}

// UpdateEntry validates and updates a schedule entry. The entry must belong
// to the user on it; anything else reads as not found.
func (s *ScheduleService) UpdateEntry(ctx context.Context, entry *entities.ScheduleEntry) (*AddEntryResult, error) {
	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	if entry.ID == "" {
		return nil, apperrors.NewValidationError("entry id is required")
	}

	existing, err := s.ownedEntry(ctx, entry.UserID, entry.ID)
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = existing.CreatedAt
	entry.UpdatedAt = time.Now()

	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	travel, err := s.repo.GetTravelPeriod(ctx, entry.UserID)
	if err != nil {
		return nil, err
	}

	return &AddEntryResult{
		Entry:                 entry,
		RecoveryOutsideTravel: planner.IsRecoveryOutsideTravel(entry, travel),
	}, nil
}

// DeleteEntry deletes one of the user's schedule entries. Deleting another
// user's entry reads as not found.
func (s *ScheduleService) DeleteEntry(ctx context.Context, userID, id string) error {
	if _, err := s.ownedEntry(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.DeleteEntry(ctx, id)
}

// SetTravelPeriod validates and stores the user's travel window
func (s *ScheduleService) SetTravelPeriod(ctx context.Context, period *entities.TravelPeriod) error {
	if period == nil || period.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if period.Start.IsZero() || period.End.IsZero() {
		return apperrors.NewValidationError("travel start and end are required")
	}
	if planner.DayStart(period.End).Before(planner.DayStart(period.Start)) {
		return apperrors.NewValidationError("travel end cannot be before travel start")
	}

	return s.repo.SetTravelPeriod(ctx, period)
}

// GetTravelPeriod retrieves the user's travel window, nil when unset
func (s *ScheduleService) GetTravelPeriod(ctx context.Context, userID string) (*entities.TravelPeriod, error) {
	return s.repo.GetTravelPeriod(ctx, userID)
}

// DeleteTravelPeriod removes the user's travel window
func (s *ScheduleService) DeleteTravelPeriod(ctx context.Context, userID string) error {
	return s.repo.DeleteTravelPeriod(ctx, userID)
}

// ClassifyDate answers what a single calendar date means for a user
func (s *ScheduleService) ClassifyDate(ctx context.Context, userID string, date time.Time) (*entities.DateClassification, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	entries, err := s.repo.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	travel, err := s.repo.GetTravelPeriod(ctx, userID)
	if err != nil {
		return nil, err
	}

	classification := planner.Classify(date, entries, travel)
	return &classification, nil
}

// Calendar classifies every day in [from, to] for a user
func (s *ScheduleService) Calendar(ctx context.Context, userID string, from, to time.Time) ([]entities.DateClassification, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	if planner.DayStart(to).Before(planner.DayStart(from)) {
		return nil, apperrors.NewValidationError("calendar range end cannot be before start")
	}
	if planner.DayStart(to).Sub(planner.DayStart(from)) > maxCalendarRangeDays*24*time.Hour {
		return nil, apperrors.NewValidationError("calendar range too large")
	}

	entries, err := s.repo.ListEntriesInRange(ctx, userID, planner.DayStart(from), planner.DayStart(to))
	if err != nil {
		return nil, err
	}

	travel, err := s.repo.GetTravelPeriod(ctx, userID)
	if err != nil {
		return nil, err
	}

	return planner.ClassifyRange(from, to, entries, travel), nil
}

func validateEntry(entry *entities.ScheduleEntry) error {
	if entry == nil {
		return apperrors.NewValidationError("schedule entry is required")
	}
	if entry.UserID == "" {
		return apperrors.NewValidationError("user id is required")
	}
	if entry.TreatmentName == "" {
		return apperrors.NewValidationError("treatment name is required")
	}
	if entry.ProcedureDate.IsZero() {
		return apperrors.NewValidationError("procedure date is required")
	}
	if entry.RecoveryDays < 0 {
		return apperrors.NewValidationError("recovery days cannot be negative")
	}
	return nil
}
