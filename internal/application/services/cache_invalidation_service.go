package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/beautrip/backend/internal/domain/entities"
	"github.com/beautrip/backend/internal/domain/providers"
)

// CacheInvalidationService handles cache invalidation based on events
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for treatment events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelTreatmentUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to treatment updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Println("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	log.Println("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.TreatmentEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

// handleEvent handles a single treatment event
func (s *CacheInvalidationService) handleEvent(event *entities.TreatmentEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Printf("Processing cache invalidation for event: %s (treatment: %s, type: %s)",
		event.ID, event.TreatmentID, event.EventType)

	// Invalidate the specific treatment cache for immediate consistency
	treatmentPattern := fmt.Sprintf("http:cache:*treatments/%s*", event.TreatmentID)
	if err := s.cache.DeletePattern(ctx, treatmentPattern); err != nil {
		log.Printf("Warning: Failed to invalidate treatment cache for %s: %v", event.TreatmentID, err)
	}

	// Rating changes move items and groups around, so the ranking pages
	// must rebuild; plain metadata updates can ride out the page TTL.
	switch event.EventType {
	case entities.TreatmentEventTypeRatingChanged,
		entities.TreatmentEventTypeReviewAdded,
		entities.TreatmentEventTypeCreated,
		entities.TreatmentEventTypeDeactivated:
		if err := s.cache.DeletePattern(ctx, "ranking:page:*"); err != nil {
			log.Printf("Warning: Failed to invalidate ranking pages: %v", err)
		}
	}
}

// InvalidateRankingPages invalidates every cached ranking page
func (s *CacheInvalidationService) InvalidateRankingPages(ctx context.Context) error {
	if err := s.cache.DeletePattern(ctx, "ranking:page:*"); err != nil {
		return fmt.Errorf("failed to invalidate ranking pages: %w", err)
	}
	log.Println("Invalidated ranking page caches")
	return nil
}

// InvalidateTreatmentCache invalidates cache for a specific treatment
func (s *CacheInvalidationService) InvalidateTreatmentCache(ctx context.Context, treatmentID string) error {
	pattern := fmt.Sprintf("http:cache:*treatments/%s*", treatmentID)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to invalidate treatment cache: %w", err)
	}
	log.Printf("Invalidated treatment cache for %s", treatmentID)
	return nil
}
