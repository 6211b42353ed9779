package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/providers"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/infrastructure/observability"
	"github.com/beautrip/backend/internal/query/loaders"
	"github.com/beautrip/backend/internal/ranking"
	"github.com/beautrip/backend/pkg/utils"
)

// rankingPageKeyPrefix must stay aligned with the invalidation pattern
// "ranking:page:*".
const rankingPageKeyPrefix = "ranking:page:"

// RankingQueryService assembles ranking pages: it pulls the active
// treatments, groups them by normalized category, scores items and groups,
// resolves the referenced hospitals and caches the result until a treatment
// event invalidates it.
type RankingQueryService struct {
	treatmentRepo repositories.TreatmentRepository
	loaders       *loaders.Loaders
	cache         providers.CacheProvider
	normalizer    *utils.CategoryNormalizer
	priorWeight   float64
	cacheSeconds  int
	metrics       *observability.Metrics
}

// NewRankingQueryService creates a new ranking query service
func NewRankingQueryService(
	treatmentRepo repositories.TreatmentRepository,
	ldrs *loaders.Loaders,
	cache providers.CacheProvider,
	normalizer *utils.CategoryNormalizer,
	priorWeight float64,
	cacheSeconds int,
	metrics *observability.Metrics,
) *RankingQueryService {
	if priorWeight <= 0 {
		priorWeight = ranking.DefaultPriorWeight
	}
	return &RankingQueryService{
		treatmentRepo: treatmentRepo,
		loaders:       ldrs,
		cache:         cache,
		normalizer:    normalizer,
		priorWeight:   priorWeight,
		cacheSeconds:  cacheSeconds,
		metrics:       metrics,
	}
}

// Page returns the ranking page, optionally restricted to one category.
// Pages are served from cache when a previous build is still valid.
func (s *RankingQueryService) Page(ctx context.Context, category string) (*entities.RankingPage, error) {
	key := s.cacheKey(category)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var page entities.RankingPage
			if err := json.Unmarshal(data, &page); err == nil {
				if s.metrics != nil {
					observability.RecordCacheHit(ctx, s.metrics, "ranking_page")
				}
				return &page, nil
			}
		}
		if s.metrics != nil {
			observability.RecordCacheMiss(ctx, s.metrics, "ranking_page")
		}
	}

	page, err := s.build(ctx, category)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(page); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheSeconds); err != nil {
				log.Printf("Warning: Failed to cache ranking page %s: %v", key, err)
			}
		}
	}

	return page, nil
}

// build runs the full ranking pipeline against the database
func (s *RankingQueryService) build(ctx context.Context, category string) (*entities.RankingPage, error) {
	start := time.Now()

	records, err := s.treatmentRepo.ListForRanking(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load treatments for ranking: %w", err)
	}

	globalAvg := ranking.GlobalAverageRating(records)
	byGroup := s.groupByNormalizedCategory(records)

	if category != "" {
		want := utils.NormalizeIdentifier(s.normalizer.Normalize(category))
		for key := range byGroup {
			if utils.NormalizeIdentifier(key) != want {
				delete(byGroup, key)
			}
		}
	}

	groups := ranking.RankGroupsWithPrior(byGroup, globalAvg, s.priorWeight)

	page := &entities.RankingPage{
		Groups:    groups,
		Hospitals: s.resolveHospitals(ctx, groups),
		GlobalAvg: globalAvg,
	}

	if s.metrics != nil {
		observability.RecordRankingBuild(ctx, s.metrics, len(groups), time.Since(start))
	}

	return page, nil
}

// groupByNormalizedCategory buckets treatments under cleaned category names
// so encoding variants of the same category land in one group
func (s *RankingQueryService) groupByNormalizedCategory(records []*entities.Treatment) map[string][]*entities.Treatment {
	byGroup := make(map[string][]*entities.Treatment)
	for _, t := range records {
		key := s.normalizer.Normalize(t.GroupCategory())
		if key == "" {
			continue
		}
		byGroup[key] = append(byGroup[key], t)
	}
	return byGroup
}

// resolveHospitals batches the hospital lookups for every ranked item
// through the dataloader
func (s *RankingQueryService) resolveHospitals(ctx context.Context, groups []*entities.RankingGroup) map[string]*entities.Hospital {
	if s.loaders == nil {
		return map[string]*entities.Hospital{}
	}

	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, group := range groups {
		for _, item := range group.Items {
			if item.HospitalID == "" {
				continue
			}
			if _, ok := seen[item.HospitalID]; ok {
				continue
			}
			seen[item.HospitalID] = struct{}{}
			ids = append(ids, item.HospitalID)
		}
	}

	if len(ids) == 0 {
		return map[string]*entities.Hospital{}
	}
	return s.loaders.LoadHospitals(ctx, ids)
}

func (s *RankingQueryService) cacheKey(category string) string {
	if category == "" {
		return rankingPageKeyPrefix + "all"
	}
	return rankingPageKeyPrefix + utils.NormalizeIdentifier(s.normalizer.Normalize(category))
}
