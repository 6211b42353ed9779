package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
)

// Hand-rolled testify mocks for the repository and provider interfaces.

type MockTreatmentRepository struct{ mock.Mock }

func (m *MockTreatmentRepository) Create(ctx context.Context, treatment *entities.Treatment) error {
	return m.Called(ctx, treatment).Error(0)
}

func (m *MockTreatmentRepository) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Treatment, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) Update(ctx context.Context, treatment *entities.Treatment) error {
	return m.Called(ctx, treatment).Error(0)
}

func (m *MockTreatmentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockTreatmentRepository) List(ctx context.Context, filter repositories.TreatmentFilter) ([]*entities.Treatment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) ListForRanking(ctx context.Context) ([]*entities.Treatment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Treatment), args.Error(1)
}

func (m *MockTreatmentRepository) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	return m.Called(ctx, id, rating, reviewCount).Error(0)
}

type MockTreatmentSearchRepository struct{ mock.Mock }

func (m *MockTreatmentSearchRepository) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Treatment, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Treatment), args.Error(1)
}

func (m *MockTreatmentSearchRepository) Index(ctx context.Context, treatment *entities.Treatment) error {
	return m.Called(ctx, treatment).Error(0)
}

func (m *MockTreatmentSearchRepository) BulkIndex(ctx context.Context, treatments []*entities.Treatment) error {
	return m.Called(ctx, treatments).Error(0)
}

func (m *MockTreatmentSearchRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockScheduleRepository struct{ mock.Mock }

func (m *MockScheduleRepository) CreateEntry(ctx context.Context, entry *entities.ScheduleEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockScheduleRepository) GetEntryByID(ctx context.Context, id string) (*entities.ScheduleEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) ListEntriesByUser(ctx context.Context, userID string) ([]*entities.ScheduleEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) ListEntriesInRange(ctx context.Context, userID string, from, to time.Time) ([]*entities.ScheduleEntry, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) UpdateEntry(ctx context.Context, entry *entities.ScheduleEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockScheduleRepository) DeleteEntry(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScheduleRepository) GetTravelPeriod(ctx context.Context, userID string) (*entities.TravelPeriod, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TravelPeriod), args.Error(1)
}

func (m *MockScheduleRepository) SetTravelPeriod(ctx context.Context, period *entities.TravelPeriod) error {
	return m.Called(ctx, period).Error(0)
}

func (m *MockScheduleRepository) DeleteTravelPeriod(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockFavoriteRepository struct{ mock.Mock }

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, treatmentID string) error {
	return m.Called(ctx, userID, treatmentID).Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, treatmentID string) error {
	return m.Called(ctx, userID, treatmentID).Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, treatmentID string) (bool, error) {
	args := m.Called(ctx, userID, treatmentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) CountByTreatment(ctx context.Context, treatmentID string) (int, error) {
	args := m.Called(ctx, treatmentID)
	return args.Int(0), args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByTreatment(ctx context.Context, treatmentID string, limit, offset int) ([]*entities.Review, error) {
	args := m.Called(ctx, treatmentID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Review), args.Error(1)
}

func (m *MockReviewRepository) AggregateByTreatment(ctx context.Context, treatmentID string) (float64, int, error) {
	args := m.Called(ctx, treatmentID)
	return args.Get(0).(float64), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockPostRepository struct{ mock.Mock }

func (m *MockPostRepository) Create(ctx context.Context, post *entities.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*entities.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Post), args.Error(1)
}

func (m *MockPostRepository) List(ctx context.Context, filter repositories.PostFilter) ([]*entities.Post, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Post), args.Error(1)
}

func (m *MockPostRepository) Update(ctx context.Context, post *entities.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockEventBus struct{ mock.Mock }

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.TreatmentEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.TreatmentEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.TreatmentEvent), args.Error(1)
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *MockEventBus) Close() error {
	return m.Called().Error(0)
}

type MockCacheProvider struct{ mock.Mock }

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	return m.Called(ctx, key, value, expirationSeconds).Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheProvider) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	args := m.Called(ctx, keys)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]byte), args.Error(1)
}

func (m *MockCacheProvider) SetMulti(ctx context.Context, values map[string][]byte, expirationSeconds int) error {
	return m.Called(ctx, values, expirationSeconds).Error(0)
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) error {
	return m.Called(ctx, pattern).Error(0)
}
