package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/beautrip/backend/internal/application/services"
	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/providers"
	apperrors "github.com/beautrip/backend/pkg/errors"
)

func TestAddReviewRecomputesRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	postRepo := new(MockPostRepository)
	treatmentRepo := new(MockTreatmentRepository)
	eventBus := new(MockEventBus)

	treatmentRepo.On("GetByID", mock.Anything, "t1").Return(&entities.Treatment{ID: "t1", Name: "Rhinoplasty", HospitalID: "h1"}, nil)
	reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Review")).Return(nil)
	reviewRepo.On("AggregateByTreatment", mock.Anything, "t1").Return(8.5, 4, nil)
	treatmentRepo.On("UpdateRating", mock.Anything, "t1", 8.5, 4).Return(nil)
	eventBus.On("Publish", mock.Anything, providers.EventChannelTreatmentUpdates,
		mock.MatchedBy(func(event *entities.TreatmentEvent) bool {
			return event.EventType == entities.TreatmentEventTypeRatingChanged
		})).Return(nil)
	eventBus.On("Publish", mock.Anything, providers.EventChannelTreatmentUpdates,
		mock.MatchedBy(func(event *entities.TreatmentEvent) bool {
			return event.EventType == entities.TreatmentEventTypeReviewAdded
		})).Return(nil)

	service := services.NewCommunityService(reviewRepo, postRepo, treatmentRepo, eventBus)

	review := &entities.Review{UserID: "u1", TreatmentID: "t1", Rating: 9, Body: "Great result"}
	err := service.AddReview(context.Background(), review)
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)

	reviewRepo.AssertExpectations(t)
	treatmentRepo.AssertExpectations(t)
	eventBus.AssertExpectations(t)
}

func TestAddReviewValidation(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	service := services.NewCommunityService(reviewRepo, new(MockPostRepository), new(MockTreatmentRepository), nil)

	cases := []struct {
		name   string
		review *entities.Review
	}{
		{"nil review", nil},
		{"missing user", &entities.Review{TreatmentID: "t1", Rating: 8}},
		{"missing treatment", &entities.Review{UserID: "u1", Rating: 8}},
		{"rating above scale", &entities.Review{UserID: "u1", TreatmentID: "t1", Rating: 11}},
		{"negative rating", &entities.Review{UserID: "u1", TreatmentID: "t1", Rating: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.AddReview(context.Background(), tc.review)
			require.Error(t, err)
			appErr, ok := apperrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
		})
	}

	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddReviewUnknownTreatment(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	treatmentRepo := new(MockTreatmentRepository)
	treatmentRepo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("treatment not found"))

	service := services.NewCommunityService(reviewRepo, new(MockPostRepository), treatmentRepo, nil)

	err := service.AddReview(context.Background(), &entities.Review{UserID: "u1", TreatmentID: "missing", Rating: 8})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeNotFound, appErr.Type)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeleteReviewRecomputesRating(t *testing.T) {
	reviewRepo := new(MockReviewRepository)
	treatmentRepo := new(MockTreatmentRepository)

	reviewRepo.On("GetByID", mock.Anything, "r1").Return(&entities.Review{ID: "r1", TreatmentID: "t1"}, nil)
	reviewRepo.On("Delete", mock.Anything, "r1").Return(nil)
	reviewRepo.On("AggregateByTreatment", mock.Anything, "t1").Return(7.0, 3, nil)
	treatmentRepo.On("UpdateRating", mock.Anything, "t1", 7.0, 3).Return(nil)

	service := services.NewCommunityService(reviewRepo, new(MockPostRepository), treatmentRepo, nil)

	require.NoError(t, service.DeleteReview(context.Background(), "r1"))
	reviewRepo.AssertExpectations(t)
	treatmentRepo.AssertExpectations(t)
}

func TestCreatePostValidation(t *testing.T) {
	postRepo := new(MockPostRepository)
	service := services.NewCommunityService(new(MockReviewRepository), postRepo, new(MockTreatmentRepository), nil)

	err := service.CreatePost(context.Background(), &entities.Post{UserID: "u1"})
	require.Error(t, err)
	postRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePostAssignsID(t *testing.T) {
	postRepo := new(MockPostRepository)
	postRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Post")).Return(nil)

	service := services.NewCommunityService(new(MockReviewRepository), postRepo, new(MockTreatmentRepository), nil)

	post := &entities.Post{UserID: "u1", Title: "Recovery tips after rhinoplasty", Body: "..."}
	require.NoError(t, service.CreatePost(context.Background(), post))
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
}
