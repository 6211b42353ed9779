package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/query/loaders"
	"github.com/beautrip/backend/pkg/utils"
)

type fakeTreatmentRepo struct {
	treatments []*entities.Treatment
	listCalls  int
}

func (r *fakeTreatmentRepo) Create(ctx context.Context, t *entities.Treatment) error { return nil }
func (r *fakeTreatmentRepo) GetByID(ctx context.Context, id string) (*entities.Treatment, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeTreatmentRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Treatment, error) {
	return nil, nil
}
func (r *fakeTreatmentRepo) Update(ctx context.Context, t *entities.Treatment) error { return nil }
func (r *fakeTreatmentRepo) Delete(ctx context.Context, id string) error             { return nil }
func (r *fakeTreatmentRepo) List(ctx context.Context, filter repositories.TreatmentFilter) ([]*entities.Treatment, error) {
	return nil, nil
}
func (r *fakeTreatmentRepo) ListForRanking(ctx context.Context) ([]*entities.Treatment, error) {
	r.listCalls++
	return r.treatments, nil
}
func (r *fakeTreatmentRepo) UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error {
	return nil
}

type fakeHospitalRepo struct {
	hospitals map[string]*entities.Hospital
	batches   int
}

func (r *fakeHospitalRepo) Create(ctx context.Context, h *entities.Hospital) error { return nil }
func (r *fakeHospitalRepo) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	return nil, errors.New("not implemented")
}
func (r *fakeHospitalRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Hospital, error) {
	r.batches++
	out := make([]*entities.Hospital, 0, len(ids))
	for _, id := range ids {
		if h, ok := r.hospitals[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}
func (r *fakeHospitalRepo) Update(ctx context.Context, h *entities.Hospital) error { return nil }
func (r *fakeHospitalRepo) Delete(ctx context.Context, id string) error            { return nil }
func (r *fakeHospitalRepo) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	return nil, nil
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}
func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.data[key] = value
	return nil
}
func (c *fakeCache) Delete(ctx context.Context, key string) error { delete(c.data, key); return nil }
func (c *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.data[key]
	return ok, nil
}
func (c *fakeCache) GetMulti(ctx context.Context, keys []string) (map[string][]byte, error) {
	return nil, nil
}
func (c *fakeCache) SetMulti(ctx context.Context, values map[string][]byte, expirationSeconds int) error {
	return nil
}
func (c *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }

func rankedTreatment(id, name, category, hospitalID string, rating float64, reviews int) *entities.Treatment {
	return &entities.Treatment{
		ID:          id,
		Name:        name,
		HospitalID:  hospitalID,
		CategoryMid: category,
		Rating:      rating,
		ReviewCount: reviews,
		IsActive:    true,
	}
}

func newTestService(treatmentRepo *fakeTreatmentRepo, hospitalRepo *fakeHospitalRepo, cache *fakeCache) *RankingQueryService {
	ldrs := loaders.NewLoaders(hospitalRepo, treatmentRepo)
	normalizer := utils.NewCategoryNormalizer(map[string]string{"rhino": "Nose"})
	return NewRankingQueryService(treatmentRepo, ldrs, cache, normalizer, 20, 300, nil)
}

func TestPageBuildsGroupsAndResolvesHospitals(t *testing.T) {
	treatmentRepo := &fakeTreatmentRepo{treatments: []*entities.Treatment{
		rankedTreatment("t1", "Rhinoplasty A", "Nose", "h1", 9.0, 40),
		rankedTreatment("t2", "Rhinoplasty B", "Nose", "h2", 8.5, 25),
		rankedTreatment("t3", "Botox A", "Wrinkle", "h1", 8.0, 30),
		rankedTreatment("t4", "Botox B", "Wrinkle", "h2", 7.5, 15),
	}}
	hospitalRepo := &fakeHospitalRepo{hospitals: map[string]*entities.Hospital{
		"h1": {ID: "h1", Name: "Seoul Aesthetic Center"},
		"h2": {ID: "h2", Name: "Gangnam Beauty Clinic"},
	}}
	cache := newFakeCache()

	service := newTestService(treatmentRepo, hospitalRepo, cache)

	page, err := service.Page(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Groups, 2)
	assert.Len(t, page.Hospitals, 2)
	assert.Equal(t, "Seoul Aesthetic Center", page.Hospitals["h1"].Name)
	// Both hospitals resolve through a single batched fetch
	assert.Equal(t, 1, hospitalRepo.batches)
	assert.Greater(t, page.GlobalAvg, 0.0)
}

func TestPageServesFromCache(t *testing.T) {
	treatmentRepo := &fakeTreatmentRepo{treatments: []*entities.Treatment{
		rankedTreatment("t1", "Rhinoplasty A", "Nose", "h1", 9.0, 40),
		rankedTreatment("t2", "Rhinoplasty B", "Nose", "h1", 8.5, 25),
	}}
	hospitalRepo := &fakeHospitalRepo{hospitals: map[string]*entities.Hospital{
		"h1": {ID: "h1", Name: "Seoul Aesthetic Center"},
	}}
	cache := newFakeCache()

	service := newTestService(treatmentRepo, hospitalRepo, cache)

	_, err := service.Page(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, cache.data, "ranking:page:all")

	_, err = service.Page(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, treatmentRepo.listCalls)
}

func TestPageCategoryFilter(t *testing.T) {
	treatmentRepo := &fakeTreatmentRepo{treatments: []*entities.Treatment{
		rankedTreatment("t1", "Rhinoplasty A", "Nose", "h1", 9.0, 40),
		rankedTreatment("t2", "Rhinoplasty B", "Nose", "h1", 8.5, 25),
		rankedTreatment("t3", "Botox A", "Wrinkle", "h1", 8.0, 30),
		rankedTreatment("t4", "Botox B", "Wrinkle", "h1", 7.5, 15),
	}}
	hospitalRepo := &fakeHospitalRepo{hospitals: map[string]*entities.Hospital{
		"h1": {ID: "h1", Name: "Seoul Aesthetic Center"},
	}}
	cache := newFakeCache()

	service := newTestService(treatmentRepo, hospitalRepo, cache)

	page, err := service.Page(context.Background(), "Nose")
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "Nose", page.Groups[0].GroupKey)
	assert.Contains(t, cache.data, "ranking:page:nose")
}

func TestPageCategoryAlias(t *testing.T) {
	treatmentRepo := &fakeTreatmentRepo{treatments: []*entities.Treatment{
		rankedTreatment("t1", "Rhinoplasty A", "Nose", "h1", 9.0, 40),
		rankedTreatment("t2", "Rhinoplasty B", "Nose", "h1", 8.5, 25),
	}}
	hospitalRepo := &fakeHospitalRepo{hospitals: map[string]*entities.Hospital{}}
	cache := newFakeCache()

	service := newTestService(treatmentRepo, hospitalRepo, cache)

	// "rhino" is an alias for the canonical "Nose" category
	page, err := service.Page(context.Background(), "rhino")
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "Nose", page.Groups[0].GroupKey)
}

func TestPageDropsThinGroups(t *testing.T) {
	treatmentRepo := &fakeTreatmentRepo{treatments: []*entities.Treatment{
		rankedTreatment("t1", "Rhinoplasty A", "Nose", "h1", 9.0, 40),
		rankedTreatment("t2", "Rhinoplasty B", "Nose", "h1", 8.5, 25),
		// Single item; minimum evidence filter drops the group
		rankedTreatment("t3", "Lone Treatment", "Solo", "h1", 8.0, 30),
	}}
	hospitalRepo := &fakeHospitalRepo{hospitals: map[string]*entities.Hospital{}}
	cache := newFakeCache()

	service := newTestService(treatmentRepo, hospitalRepo, cache)

	page, err := service.Page(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "Nose", page.Groups[0].GroupKey)
}
