package routes

import (
	"net/http"

	"github.com/beautrip/backend/internal/api/handlers"
	"github.com/beautrip/backend/internal/api/middleware"
	"github.com/beautrip/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	treatmentHandler *handlers.TreatmentHandler
	hospitalHandler  *handlers.HospitalHandler
	rankingHandler   *handlers.RankingHandler
	scheduleHandler  *handlers.ScheduleHandler
	favoriteHandler  *handlers.FavoriteHandler
	communityHandler *handlers.CommunityHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	treatmentHandler *handlers.TreatmentHandler,
	hospitalHandler *handlers.HospitalHandler,
	rankingHandler *handlers.RankingHandler,
	scheduleHandler *handlers.ScheduleHandler,
	favoriteHandler *handlers.FavoriteHandler,
	communityHandler *handlers.CommunityHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		treatmentHandler: treatmentHandler,
		hospitalHandler:  hospitalHandler,
		rankingHandler:   rankingHandler,
		scheduleHandler:  scheduleHandler,
		favoriteHandler:  favoriteHandler,
		communityHandler: communityHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Treatment endpoints
	r.mux.HandleFunc("GET /api/treatments", r.treatmentHandler.ListTreatments)
	r.mux.HandleFunc("GET /api/treatments/search", r.treatmentHandler.SearchTreatments)
	r.mux.HandleFunc("GET /api/treatments/{id}", r.treatmentHandler.GetTreatment)
	r.mux.HandleFunc("POST /api/treatments", r.treatmentHandler.CreateTreatment)
	r.mux.HandleFunc("PUT /api/treatments/{id}", r.treatmentHandler.UpdateTreatment)
	r.mux.HandleFunc("DELETE /api/treatments/{id}", r.treatmentHandler.DeleteTreatment)

	// Review endpoints
	r.mux.HandleFunc("POST /api/treatments/{id}/reviews", r.communityHandler.AddReview)
	r.mux.HandleFunc("GET /api/treatments/{id}/reviews", r.communityHandler.ListReviews)
	r.mux.HandleFunc("DELETE /api/reviews/{id}", r.communityHandler.DeleteReview)

	// Hospital endpoints
	r.mux.HandleFunc("GET /api/hospitals", r.hospitalHandler.ListHospitals)
	r.mux.HandleFunc("GET /api/hospitals/{id}", r.hospitalHandler.GetHospital)

	// Ranking endpoints
	r.mux.HandleFunc("GET /api/rankings", r.rankingHandler.GetRankings)

	// Schedule endpoints
	r.mux.HandleFunc("POST /api/users/{userId}/schedule", r.scheduleHandler.CreateEntry)
	r.mux.HandleFunc("GET /api/users/{userId}/schedule", r.scheduleHandler.ListEntries)
	r.mux.HandleFunc("GET /api/users/{userId}/schedule/classify", r.scheduleHandler.ClassifyDate)
	r.mux.HandleFunc("GET /api/users/{userId}/schedule/calendar", r.scheduleHandler.GetCalendar)
	r.mux.HandleFunc("PUT /api/users/{userId}/schedule/{entryId}", r.scheduleHandler.UpdateEntry)
	r.mux.HandleFunc("DELETE /api/users/{userId}/schedule/{entryId}", r.scheduleHandler.DeleteEntry)
	r.mux.HandleFunc("PUT /api/users/{userId}/travel-period", r.scheduleHandler.SetTravelPeriod)
	r.mux.HandleFunc("GET /api/users/{userId}/travel-period", r.scheduleHandler.GetTravelPeriod)
	r.mux.HandleFunc("DELETE /api/users/{userId}/travel-period", r.scheduleHandler.DeleteTravelPeriod)

	// Favorite endpoints
	r.mux.HandleFunc("PUT /api/users/{userId}/favorites/{treatmentId}", r.favoriteHandler.AddFavorite)
	r.mux.HandleFunc("DELETE /api/users/{userId}/favorites/{treatmentId}", r.favoriteHandler.RemoveFavorite)
	r.mux.HandleFunc("GET /api/users/{userId}/favorites", r.favoriteHandler.ListFavorites)

	// Community post endpoints
	r.mux.HandleFunc("POST /api/posts", r.communityHandler.CreatePost)
	r.mux.HandleFunc("GET /api/posts", r.communityHandler.ListPosts)
	r.mux.HandleFunc("GET /api/posts/{id}", r.communityHandler.GetPost)
	r.mux.HandleFunc("PUT /api/posts/{id}", r.communityHandler.UpdatePost)
	r.mux.HandleFunc("DELETE /api/posts/{id}", r.communityHandler.DeletePost)

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// HTTP performance optimizations (compression, ETag, cache headers)
	handler = middleware.ResponseOptimization(handler)

	// CORS wraps everything so headers are set even on cache HITs
	handler = middleware.CORSMiddleware(handler)

	return handler
}
