package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/beautrip/backend/internal/domain/providers"
	"github.com/beautrip/backend/internal/domain/repositories"
)

// CacheWarmingService pre-populates the cache with frequently accessed data
type CacheWarmingService struct {
	treatmentRepo repositories.TreatmentRepository
	hospitalRepo  repositories.HospitalRepository
	cache         providers.CacheProvider
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(
	treatmentRepo repositories.TreatmentRepository,
	hospitalRepo repositories.HospitalRepository,
	cache providers.CacheProvider,
) *CacheWarmingService {
	return &CacheWarmingService{
		treatmentRepo: treatmentRepo,
		hospitalRepo:  hospitalRepo,
		cache:         cache,
	}
}

// WarmCache warms the cache with frequently accessed data
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	log.Println("Starting cache warming...")

	if err := s.warmTopTreatments(ctx); err != nil {
		log.Printf("Failed to warm top treatments: %v", err)
	}

	if err := s.warmHospitals(ctx); err != nil {
		log.Printf("Failed to warm hospitals: %v", err)
	}

	log.Println("Cache warming completed")
	return nil
}

// warmTopTreatments caches the first page of active treatments
func (s *CacheWarmingService) warmTopTreatments(ctx context.Context) error {
	active := true
	treatments, err := s.treatmentRepo.List(ctx, repositories.TreatmentFilter{
		IsActive: &active,
		Limit:    50,
		Offset:   0,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch top treatments: %w", err)
	}

	items := make(map[string][]byte)
	for _, treatment := range treatments {
		data, err := json.Marshal(treatment)
		if err != nil {
			log.Printf("Failed to marshal treatment %s: %v", treatment.ID, err)
			continue
		}
		items[fmt.Sprintf("treatment:%s", treatment.ID)] = data
	}

	if len(items) > 0 {
		if err := s.cache.SetMulti(ctx, items, 300); err != nil {
			return fmt.Errorf("failed to cache top treatments: %w", err)
		}
		log.Printf("Warmed cache with %d treatments", len(items))
	}

	return nil
}

// warmHospitals caches active hospitals so ranking pages resolve them
// without a database round trip
func (s *CacheWarmingService) warmHospitals(ctx context.Context) error {
	active := true
	hospitals, err := s.hospitalRepo.List(ctx, repositories.HospitalFilter{
		IsActive: &active,
		Limit:    100,
		Offset:   0,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch hospitals: %w", err)
	}

	items := make(map[string][]byte)
	for _, hospital := range hospitals {
		data, err := json.Marshal(hospital)
		if err != nil {
			log.Printf("Failed to marshal hospital %s: %v", hospital.ID, err)
			continue
		}
		items[fmt.Sprintf("hospital:%s", hospital.ID)] = data
	}

	if len(items) > 0 {
		if err := s.cache.SetMulti(ctx, items, 300); err != nil {
			return fmt.Errorf("failed to cache hospitals: %w", err)
		}
		log.Printf("Warmed cache with %d hospitals", len(items))
	}

	return nil
}
