package services

import (
	"context"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

// FavoriteService handles business logic for favorites
type FavoriteService struct {
	repo          repositories.FavoriteRepository
	treatmentRepo repositories.TreatmentRepository
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(repo repositories.FavoriteRepository, treatmentRepo repositories.TreatmentRepository) *FavoriteService {
	return &FavoriteService{
		repo:          repo,
		treatmentRepo: treatmentRepo,
	}
}

// Add favorites a treatment for a user. Adding an existing favorite is a
// no-op; favoriting a missing treatment is an error.
func (s *FavoriteService) Add(ctx context.Context, userID, treatmentID string) error {
	if userID == "" || treatmentID == "" {
		return apperrors.NewValidationError("user id and treatment id are required")
	}

	if _, err := s.treatmentRepo.GetByID(ctx, treatmentID); err != nil {
		return err
	}

	return s.repo.Add(ctx, userID, treatmentID)
}

// Remove unfavorites a treatment for a user
func (s *FavoriteService) Remove(ctx context.Context, userID, treatmentID string) error {
	if userID == "" || treatmentID == "" {
		return apperrors.NewValidationError("user id and treatment id are required")
	}
	return s.repo.Remove(ctx, userID, treatmentID)
}

// ListTreatments resolves a user's favorites to full treatments, keeping
// the favorites' newest-first order
func (s *FavoriteService) ListTreatments(ctx context.Context, userID string) ([]*entities.Treatment, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}

	favorites, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(favorites) == 0 {
		return []*entities.Treatment{}, nil
	}

	ids := make([]string, len(favorites))
	for i, favorite := range favorites {
		ids[i] = favorite.TreatmentID
	}

	treatments, err := s.treatmentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Treatment, len(treatments))
	for _, treatment := range treatments {
		byID[treatment.ID] = treatment
	}

	ordered := make([]*entities.Treatment, 0, len(favorites))
	for _, favorite := range favorites {
		if treatment, ok := byID[favorite.TreatmentID]; ok {
			ordered = append(ordered, treatment)
		}
	}

	return ordered, nil
}

// IsFavorite checks whether a user favorited a treatment
func (s *FavoriteService) IsFavorite(ctx context.Context, userID, treatmentID string) (bool, error) {
	return s.repo.Exists(ctx, userID, treatmentID)
}

// Count returns how many users favorited a treatment
func (s *FavoriteService) Count(ctx context.Context, treatmentID string) (int, error) {
	return s.repo.CountByTreatment(ctx, treatmentID)
}
