package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beautrip/backend/internal/application/services"
	"github.com/beautrip/backend/internal/domain/entities"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

func TestAddFavoriteChecksTreatmentExists(t *testing.T) {
	favoriteRepo := new(MockFavoriteRepository)
	treatmentRepo := new(MockTreatmentRepository)
	treatmentRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("treatment not found"))

	service := services.NewFavoriteService(favoriteRepo, treatmentRepo)

	err := service.Add(context.Background(), "u1", "missing")
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	favoriteRepo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddFavorite(t *testing.T) {
	favoriteRepo := new(MockFavoriteRepository)
	treatmentRepo := new(MockTreatmentRepository)
	treatmentRepo.On("GetByID", mock.Anything, "t1").Return(&entities.Treatment{ID: "t1", Name: "Rhinoplasty", HospitalID: "h1"}, nil)
	favoriteRepo.On("Add", mock.Anything, "u1", "t1").Return(nil)

	service := services.NewFavoriteService(favoriteRepo, treatmentRepo)

	require.NoError(t, service.Add(context.Background(), "u1", "t1"))
	favoriteRepo.AssertExpectations(t)
}

func TestAddFavoriteValidation(t *testing.T) {
	service := services.NewFavoriteService(new(MockFavoriteRepository), new(MockTreatmentRepository))

	err := service.Add(context.Background(), "", "t1")
	require.Error(t, err)

	err = service.Add(context.Background(), "u1", "")
	require.Error(t, err)
}

func TestListTreatmentsKeepsFavoriteOrder(t *testing.T) {
	now := time.Now()
	favorites := []*entities.Favorite{
		{UserID: "u1", TreatmentID: "t3", CreatedAt: now},
		{UserID: "u1", TreatmentID: "t1", CreatedAt: now.Add(-time.Hour)},
		{UserID: "u1", TreatmentID: "t2", CreatedAt: now.Add(-2 * time.Hour)},
	}
	// The batch fetch returns treatments in storage order, not favorite order
	treatments := []*entities.Treatment{
		{ID: "t1", Name: "Filler"},
		{ID: "t2", Name: "Botox"},
		{ID: "t3", Name: "Rhinoplasty"},
	}

	favoriteRepo := new(MockFavoriteRepository)
	treatmentRepo := new(MockTreatmentRepository)
	favoriteRepo.On("ListByUser", mock.Anything, "u1").Return(favorites, nil)
	treatmentRepo.On("GetByIDs", mock.Anything, []string{"t3", "t1", "t2"}).Return(treatments, nil)

	service := services.NewFavoriteService(favoriteRepo, treatmentRepo)

	ordered, err := service.ListTreatments(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, ordered, 3)
	assert.Equal(t, "t3", ordered[0].ID)
	assert.Equal(t, "t1", ordered[1].ID)
	assert.Equal(t, "t2", ordered[2].ID)
}

func TestListTreatmentsSkipsMissing(t *testing.T) {
	favorites := []*entities.Favorite{
		{UserID: "u1", TreatmentID: "t1"},
		{UserID: "u1", TreatmentID: "gone"},
	}
	treatments := []*entities.Treatment{{ID: "t1", Name: "Filler"}}

	favoriteRepo := new(MockFavoriteRepository)
	treatmentRepo := new(MockTreatmentRepository)
	favoriteRepo.On("ListByUser", mock.Anything, "u1").Return(favorites, nil)
	treatmentRepo.On("GetByIDs", mock.Anything, []string{"t1", "gone"}).Return(treatments, nil)

	service := services.NewFavoriteService(favoriteRepo, treatmentRepo)

	ordered, err := service.ListTreatments(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.Equal(t, "t1", ordered[0].ID)
}

func TestListTreatmentsEmpty(t *testing.T) {
	favoriteRepo := new(MockFavoriteRepository)
	treatmentRepo := new(MockTreatmentRepository)
	favoriteRepo.On("ListByUser", mock.Anything, "u1").Return([]*entities.Favorite{}, nil)

	service := services.NewFavoriteService(favoriteRepo, treatmentRepo)

	ordered, err := service.ListTreatments(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, ordered)
	treatmentRepo.AssertNotCalled(t, "GetByIDs", mock.Anything, mock.Anything)
}
