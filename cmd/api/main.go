package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/beautrip/backend/internal/adapters/cache"
	"github.com/beautrip/backend/internal/adapters/database"
	"github.com/beautrip/backend/internal/adapters/events"
	"github.com/beautrip/backend/internal/adapters/search"
	"github.com/beautrip/backend/internal/api/handlers"
	"github.com/beautrip/backend/internal/api/middleware"
	"github.com/beautrip/backend/internal/api/routes"
	"github.com/beautrip/backend/internal/application/services"
	"github.com/beautrip/backend/internal/domain/providers"
	"github.com/beautrip/backend/internal/domain/repositories"
	"github.com/beautrip/backend/internal/infrastructure/clients/postgres"
	"github.com/beautrip/backend/internal/infrastructure/clients/redis"
	"github.com/beautrip/backend/internal/infrastructure/clients/typesense"
	"github.com/beautrip/backend/internal/infrastructure/observability"
	"github.com/beautrip/backend/internal/query/loaders"
	queryservices "github.com/beautrip/backend/internal/query/services"
	"github.com/beautrip/backend/pkg/config"
	"github.com/beautrip/backend/pkg/utils"
)

// categoryAliases folds the spelling variants seen in upstream feeds into
// one canonical grouping key per category.
var categoryAliases = map[string]string{
	"rhino":        "Nose",
	"nose job":     "Nose",
	"anti wrinkle": "Wrinkle",
	"anti-wrinkle": "Wrinkle",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
		typesenseClient = nil
	} else {
		log.Println("Typesense client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for real-time updates
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters
	treatmentAdapter := database.NewTreatmentAdapter(pgClient)
	baseHospitalAdapter := database.NewHospitalAdapter(pgClient)

	// Wrap with caching if Redis is available (for read performance optimization)
	var hospitalAdapter repositories.HospitalRepository
	if cacheProvider != nil {
		hospitalAdapter = database.NewCachedHospitalAdapter(baseHospitalAdapter, cacheProvider)
		log.Println("Hospital adapter wrapped with caching layer")
	} else {
		hospitalAdapter = baseHospitalAdapter
	}

	scheduleAdapter := database.NewScheduleAdapter(sqlx.NewDb(pgClient.DB(), "postgres"))
	favoriteAdapter := database.NewFavoriteAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	postAdapter := database.NewPostAdapter(pgClient)

	var searchRepo repositories.TreatmentSearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)

		// Ensure schema exists
		if err := typesenseClient.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}

		searchRepo = adapter
	}

	// Initialize services
	treatmentService := services.NewTreatmentService(treatmentAdapter, searchRepo, eventBus)
	scheduleService := services.NewScheduleService(scheduleAdapter)
	favoriteService := services.NewFavoriteService(favoriteAdapter, treatmentAdapter)
	communityService := services.NewCommunityService(reviewAdapter, postAdapter, treatmentAdapter, eventBus)

	// Ranking query pipeline
	normalizer := utils.NewCategoryNormalizer(categoryAliases)
	rankingService := queryservices.NewRankingQueryService(
		treatmentAdapter,
		loaders.NewLoaders(hospitalAdapter, treatmentAdapter),
		cacheProvider,
		normalizer,
		cfg.Ranking.PriorWeight,
		cfg.Ranking.PageCacheSeconds,
		metrics,
	)

	// Initialize cache invalidation service
	var cacheInvalidationService *services.CacheInvalidationService
	if cacheProvider != nil && eventBus != nil {
		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			log.Printf("Warning: Failed to start cache invalidation service: %v", err)
		} else {
			log.Println("Cache invalidation service started successfully")
		}
	}

	// Warm the cache so first requests don't pay the cold-start cost
	if cacheProvider != nil {
		warmingService := services.NewCacheWarmingService(treatmentAdapter, hospitalAdapter, cacheProvider)
		go func() {
			if err := warmingService.WarmCache(ctx); err != nil {
				log.Printf("Warning: Cache warming failed: %v", err)
			}
		}()
	}

	// Initialize handlers
	treatmentHandler := handlers.NewTreatmentHandler(treatmentService)
	hospitalHandler := handlers.NewHospitalHandler(hospitalAdapter)
	rankingHandler := handlers.NewRankingHandler(rankingService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	communityHandler := handlers.NewCommunityHandler(communityService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		treatmentHandler,
		hospitalHandler,
		rankingHandler,
		scheduleHandler,
		favoriteHandler,
		communityHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	log.Println("Server stopped")
}
