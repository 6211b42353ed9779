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

// TreatmentService handles business logic for treatments
type TreatmentService struct {
	repo       repositories.TreatmentRepository
	searchRepo repositories.TreatmentSearchRepository
	eventBus   providers.EventBus
}

// NewTreatmentService creates a new treatment service
func NewTreatmentService(
	repo repositories.TreatmentRepository,
	searchRepo repositories.TreatmentSearchRepository,
	eventBus providers.EventBus,
) *TreatmentService {
	return &TreatmentService{
		repo:       repo,
		searchRepo: searchRepo,
		eventBus:   eventBus,
	}
}

// Create creates a new treatment, indexes it and announces it
func (s *TreatmentService) Create(ctx context.Context, treatment *entities.Treatment) error {
	if err := validateTreatment(treatment); err != nil {
		return err
	}

	if treatment.ID == "" {
		treatment.ID = uuid.NewString()
	}
	now := time.Now()
	treatment.CreatedAt = now
	treatment.UpdatedAt = now

	if err := s.repo.Create(ctx, treatment); err != nil {
		return err
	}

	// Index in search engine; eventual consistency, don't fail the request
	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, treatment); err != nil {
			log.Printf("Warning: Failed to index treatment %s: %v", treatment.ID, err)
		}
	}

	s.publish(ctx, entities.NewTreatmentEvent(treatment.ID, entities.TreatmentEventTypeCreated, nil))
	return nil
}

// GetByID retrieves a treatment by ID
func (s *TreatmentService) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a treatment and its search document
func (s *TreatmentService) Update(ctx context.Context, treatment *entities.Treatment) error {
	if err := validateTreatment(treatment); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, treatment); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Index(ctx, treatment); err != nil {
			log.Printf("Warning: Failed to update treatment index %s: %v", treatment.ID, err)
		}
	}

	s.publish(ctx, entities.NewTreatmentEvent(treatment.ID, entities.TreatmentEventTypeUpdated, nil))
	return nil
}

// Delete deactivates a treatment and removes it from the index
func (s *TreatmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Printf("Warning: Failed to delete treatment from index %s: %v", id, err)
		}
	}

	s.publish(ctx, entities.NewTreatmentEvent(id, entities.TreatmentEventTypeDeactivated, nil))
	return nil
}

// List retrieves treatments
func (s *TreatmentService) List(ctx context.Context, filter repositories.TreatmentFilter) ([]*entities.Treatment, error) {
	return s.repo.List(ctx, filter)
}

// Search searches treatments using the search engine when available,
// falling back to a database list
func (s *TreatmentService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Treatment, error) {
	if s.searchRepo != nil {
		return s.searchRepo.Search(ctx, params)
	}

	active := true
	return s.repo.List(ctx, repositories.TreatmentFilter{
		CategoryMid: params.Category,
		HospitalID:  params.HospitalID,
		IsActive:    &active,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
}

func (s *TreatmentService) publish(ctx context.Context, event *entities.TreatmentEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelTreatmentUpdates, event); err != nil {
		log.Printf("Warning: Failed to publish treatment event %s: %v", event.ID, err)
	}
}

func validateTreatment(treatment *entities.Treatment) error {
	if treatment == nil {
		return apperrors.NewValidationError("treatment is required")
	}
	if treatment.Name == "" {
		return apperrors.NewValidationError("treatment name is required")
	}
	if treatment.HospitalID == "" {
		return apperrors.NewValidationError("hospital id is required")
	}
	if treatment.Rating < 0 || treatment.Rating > 10 {
		return apperrors.NewValidationError("rating must be between 0 and 10")
	}
	if treatment.ReviewCount < 0 {
		return apperrors.NewValidationError("review count cannot be negative")
	}
	if treatment.RecoveryDays < 0 {
		return apperrors.NewValidationError("recovery days cannot be negative")
	}
	return nil
}
