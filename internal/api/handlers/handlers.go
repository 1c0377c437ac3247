package handlers

import (
	"encoding/json"
	"net/http"

	"scambait-lab/internal/domain/services"
	"scambait-lab/internal/infrastructure/cache"
	"scambait-lab/internal/infrastructure/database/repository"
	"scambait-lab/internal/streaming"
	"scambait-lab/pkg/logger"
)

// Handlers holds all API handlers
type Handlers struct {
	Health   *HealthHandler
	Sessions *SessionsHandler
	Detect   *DetectHandler
	Stats    *StatsHandler
	Stream   *StreamHandler
}

// Dependencies holds dependencies for handlers
type Dependencies struct {
	Engine *services.Engine
	Cache  *cache.RedisCache
	Intel  *repository.IntelRepository
	Bus    *streaming.EventBus
	Logger *logger.Logger
}

// NewHandlers creates all handlers
func NewHandlers(deps Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Cache, deps.Intel, deps.Logger),
		Sessions: NewSessionsHandler(deps.Engine, deps.Logger),
		Detect:   NewDetectHandler(deps.Engine, deps.Logger),
		Stats:    NewStatsHandler(deps.Engine, deps.Intel, deps.Bus, deps.Cache, deps.Logger),
		Stream:   NewStreamHandler(deps.Bus, deps.Logger),
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
