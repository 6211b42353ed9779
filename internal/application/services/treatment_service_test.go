package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beautrip/backend/internal/application/services"
	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/providers"
	"github.com/beautrip/backend/internal/domain/repositories"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

func validTreatment() *entities.Treatment {
	return &entities.Treatment{
		Name:        "Rhinoplasty",
		HospitalID:  "h1",
		CategoryMid: "nose",
		Price:       3200,
		Currency:    "USD",
		Rating:      8.4,
		ReviewCount: 12,
		IsActive:    true,
	}
}

func TestCreateTreatmentValidation(t *testing.T) {
	repo := new(MockTreatmentRepository)
	service := services.NewTreatmentService(repo, nil, nil)

	cases := []struct {
		name      string
		treatment *entities.Treatment
	}{
		{"nil treatment", nil},
		{"missing name", &entities.Treatment{HospitalID: "h1"}},
		{"missing hospital", &entities.Treatment{Name: "Rhinoplasty"}},
		{"rating above scale", &entities.Treatment{Name: "Rhinoplasty", HospitalID: "h1", Rating: 10.5}},
		{"negative review count", &entities.Treatment{Name: "Rhinoplasty", HospitalID: "h1", ReviewCount: -1}},
		{"negative recovery days", &entities.Treatment{Name: "Rhinoplasty", HospitalID: "h1", RecoveryDays: -2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.Create(context.Background(), tc.treatment)
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		})
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateTreatmentIndexesAndPublishes(t *testing.T) {
	repo := new(MockTreatmentRepository)
	searchRepo := new(MockTreatmentSearchRepository)
	eventBus := new(MockEventBus)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Treatment")).Return(nil)
	searchRepo.On("Index", mock.Anything, mock.AnythingOfType("*entities.Treatment")).Return(nil)
	eventBus.On("Publish", mock.Anything, providers.EventChannelTreatmentUpdates,
		mock.MatchedBy(func(event *entities.TreatmentEvent) bool {
			return event.EventType == entities.TreatmentEventTypeCreated
		})).Return(nil)

	service := services.NewTreatmentService(repo, searchRepo, eventBus)

	treatment := validTreatment()
	err := service.Create(context.Background(), treatment)
	require.NoError(t, err)
	assert.NotEmpty(t, treatment.ID)

	repo.AssertExpectations(t)
	searchRepo.AssertExpectations(t)
	eventBus.AssertExpectations(t)
}

func TestCreateTreatmentSurvivesIndexFailure(t *testing.T) {
	repo := new(MockTreatmentRepository)
	searchRepo := new(MockTreatmentSearchRepository)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	searchRepo.On("Index", mock.Anything, mock.Anything).Return(errors.New("typesense unavailable"))

	service := services.NewTreatmentService(repo, searchRepo, nil)

	// The search index is eventually consistent; a failed index write must
	// not fail the create
	err := service.Create(context.Background(), validTreatment())
	require.NoError(t, err)
}

func TestDeleteTreatmentRemovesFromIndex(t *testing.T) {
	repo := new(MockTreatmentRepository)
	searchRepo := new(MockTreatmentSearchRepository)
	eventBus := new(MockEventBus)

	repo.On("Delete", mock.Anything, "t1").Return(nil)
	searchRepo.On("Delete", mock.Anything, "t1").Return(nil)
	eventBus.On("Publish", mock.Anything, providers.EventChannelTreatmentUpdates,
		mock.MatchedBy(func(event *entities.TreatmentEvent) bool {
			return event.EventType == entities.TreatmentEventTypeDeactivated && event.TreatmentID == "t1"
		})).Return(nil)

	service := services.NewTreatmentService(repo, searchRepo, eventBus)

	require.NoError(t, service.Delete(context.Background(), "t1"))
	searchRepo.AssertExpectations(t)
	eventBus.AssertExpectations(t)
}

func TestSearchUsesSearchEngine(t *testing.T) {
	repo := new(MockTreatmentRepository)
	searchRepo := new(MockTreatmentSearchRepository)

	params := repositories.SearchParams{Query: "nose", Limit: 10}
	expected := []*entities.Treatment{validTreatment()}
	searchRepo.On("Search", mock.Anything, params).Return(expected, nil)

	service := services.NewTreatmentService(repo, searchRepo, nil)

	results, err := service.Search(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, expected, results)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestSearchFallsBackToDatabase(t *testing.T) {
	repo := new(MockTreatmentRepository)
	expected := []*entities.Treatment{validTreatment()}
	repo.On("List", mock.Anything, mock.MatchedBy(func(filter repositories.TreatmentFilter) bool {
		return filter.CategoryMid == "nose" && filter.IsActive != nil && *filter.IsActive
	})).Return(expected, nil)

	service := services.NewTreatmentService(repo, nil, nil)

	results, err := service.Search(context.Background(), repositories.SearchParams{Category: "nose"})
	require.NoError(t, err)
	assert.Equal(t, expected, results)
	repo.AssertExpectations(t)
}
