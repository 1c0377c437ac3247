package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"scambait-lab/internal/api/handlers"
	custommw "scambait-lab/internal/api/middleware"
	"scambait-lab/internal/config"
	"scambait-lab/internal/infrastructure/cache"
	"scambait-lab/pkg/logger"
)

// Router sets up the HTTP routes
type Router struct {
	config   *config.Config
	handlers *handlers.Handlers
	cache    *cache.RedisCache
	logger   *logger.Logger
}

// NewRouter creates a new Router
func NewRouter(cfg *config.Config, h *handlers.Handlers, c *cache.RedisCache, log *logger.Logger) *Router {
	return &Router{
		config:   cfg,
		handlers: h,
		cache:    c,
		logger:   log,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	r := chi.NewRouter()

	// Base middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommw.Logger(rt.logger))
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.config.CORS.AllowedOrigins,
		AllowedMethods:   rt.config.CORS.AllowedMethods,
		AllowedHeaders:   rt.config.CORS.AllowedHeaders,
		AllowCredentials: rt.config.CORS.AllowCredentials,
		MaxAge:           rt.config.CORS.MaxAge,
	}))

	// Rate limiting
	if rt.config.RateLimit.Enabled {
		r.Use(custommw.RateLimiter(rt.cache, rt.config.RateLimit))
	}

	// Health checks stay outside the versioned API
	r.Get("/health", rt.handlers.Health.Check)
	r.Get("/ready", rt.handlers.Health.Ready)

	r.Route("/api/v1", func(r chi.Router) {
		// The event stream is long-lived, so it stays outside the
		// request timeout
		r.Get("/stream", rt.handlers.Stream.Stream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/detect", rt.handlers.Detect.Analyze)
			r.Get("/stats", rt.handlers.Stats.Get)
			r.Get("/personas", rt.handlers.Sessions.ListPersonas)

			r.Route("/sessions", func(r chi.Router) {
				r.Post("/", rt.handlers.Sessions.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", rt.handlers.Sessions.Get)
					r.Post("/messages", rt.handlers.Sessions.PostMessage)
					r.Get("/profile", rt.handlers.Sessions.GetProfile)
					r.Get("/intel", rt.handlers.Sessions.GetIntel)
				})
			})
		})
	})

	// 404 and 405
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"not found"}`))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		w.Write([]byte(`{"error":"method not allowed"}`))
	})

	return r
}
