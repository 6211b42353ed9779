package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/providers"
	"github.com/beautrip/backend/internal/domain/repositories"
)

// CachedHospitalAdapter wraps HospitalAdapter with caching
type CachedHospitalAdapter struct {
	adapter repositories.HospitalRepository
	cache   providers.CacheProvider
}

// NewCachedHospitalAdapter creates a new cached hospital adapter
func NewCachedHospitalAdapter(adapter repositories.HospitalRepository, cache providers.CacheProvider) repositories.HospitalRepository {
	return &CachedHospitalAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	hospitalByIDTTL  = 300 // 5 minutes for single hospital
	hospitalsListTTL = 180 // 3 minutes for lists
)

func hospitalCacheKey(id string) string {
	return fmt.Sprintf("hospital:%s", id)
}

func hospitalsListCacheKey(filter repositories.HospitalFilter) string {
	return fmt.Sprintf("hospitals:list:%s:%s:%d:%d", filter.City, filter.Country, filter.Limit, filter.Offset)
}

// GetByID retrieves a hospital by ID with caching
func (a *CachedHospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	cacheKey := hospitalCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var hospital entities.Hospital
		if err := json.Unmarshal(cached, &hospital); err == nil {
			return &hospital, nil
		}
		log.Printf("Failed to unmarshal cached hospital %s: %v", id, err)
	}

	hospital, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(hospital); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, hospitalByIDTTL); err != nil {
				log.Printf("Failed to cache hospital %s: %v", id, err)
			}
		}
	}()

	return hospital, nil
}

// GetByIDs retrieves multiple hospitals by IDs with batch caching
func (a *CachedHospitalAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Hospital, error) {
	if len(ids) == 0 {
		return []*entities.Hospital{}, nil
	}

	cacheKeys := make([]string, len(ids))
	for i, id := range ids {
		cacheKeys[i] = hospitalCacheKey(id)
	}

	cached, _ := a.cache.GetMulti(ctx, cacheKeys)

	var cachedHospitals []*entities.Hospital
	missingIDs := make([]string, 0)

	for i, id := range ids {
		if data, ok := cached[cacheKeys[i]]; ok {
			var hospital entities.Hospital
			if err := json.Unmarshal(data, &hospital); err == nil {
				cachedHospitals = append(cachedHospitals, &hospital)
				continue
			}
		}
		missingIDs = append(missingIDs, id)
	}

	if len(missingIDs) == 0 {
		return cachedHospitals, nil
	}

	dbHospitals, err := a.adapter.GetByIDs(ctx, missingIDs)
	if err != nil {
		return nil, err
	}

	// Cache the missing hospitals asynchronously using batch operation
	go func() {
		bgCtx := context.Background()
		items := make(map[string][]byte)
		for _, hospital := range dbHospitals {
			if data, err := json.Marshal(hospital); err == nil {
				items[hospitalCacheKey(hospital.ID)] = data
			}
		}
		if len(items) > 0 {
			if err := a.cache.SetMulti(bgCtx, items, hospitalByIDTTL); err != nil {
				log.Printf("Failed to batch cache hospitals: %v", err)
			}
		}
	}()

	return append(cachedHospitals, dbHospitals...), nil
}

// List retrieves a list of hospitals with caching
func (a *CachedHospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	cacheKey := hospitalsListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var hospitals []*entities.Hospital
		if err := json.Unmarshal(cached, &hospitals); err == nil {
			return hospitals, nil
		}
		log.Printf("Failed to unmarshal cached hospitals list: %v", err)
	}

	hospitals, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(hospitals); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, hospitalsListTTL); err != nil {
				log.Printf("Failed to cache hospitals list: %v", err)
			}
		}
	}()

	return hospitals, nil
}

// Create creates a hospital and invalidates related caches
func (a *CachedHospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.adapter.Create(ctx, hospital); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()
		if err := a.cache.DeletePattern(bgCtx, "hospitals:list:*"); err != nil {
			log.Printf("Failed to invalidate hospitals list cache: %v", err)
		}
	}()

	return nil
}

// Update updates a hospital and invalidates its cache
func (a *CachedHospitalAdapter) Update(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.adapter.Update(ctx, hospital); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()

		if err := a.cache.Delete(bgCtx, hospitalCacheKey(hospital.ID)); err != nil {
			log.Printf("Failed to invalidate hospital cache %s: %v", hospital.ID, err)
		}
		if err := a.cache.DeletePattern(bgCtx, "hospitals:list:*"); err != nil {
			log.Printf("Failed to invalidate hospitals list cache: %v", err)
		}
	}()

	return nil
}

// Delete deletes a hospital and invalidates its cache
func (a *CachedHospitalAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}

	go func() {
		bgCtx := context.Background()

		if err := a.cache.Delete(bgCtx, hospitalCacheKey(id)); err != nil {
			log.Printf("Failed to invalidate hospital cache %s: %v", id, err)
		}
		if err := a.cache.DeletePattern(bgCtx, "hospitals:list:*"); err != nil {
			log.Printf("Failed to invalidate hospitals list cache: %v", err)
		}
	}()

	return nil
}
