package handlers

import (
	"net/http"
	"time"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/domain/services"
	"scambait-lab/internal/infrastructure/cache"
	"scambait-lab/internal/infrastructure/database/repository"
	"scambait-lab/internal/streaming"
	"scambait-lab/pkg/logger"
)

// StatsHandler handles statistics endpoints
type StatsHandler struct {
	engine *services.Engine
	intel  *repository.IntelRepository
	bus    *streaming.EventBus
	cache  *cache.RedisCache
	logger *logger.Logger
}

// NewStatsHandler creates a new StatsHandler
func NewStatsHandler(
	engine *services.Engine,
	intel *repository.IntelRepository,
	bus *streaming.EventBus,
	c *cache.RedisCache,
	log *logger.Logger,
) *StatsHandler {
	return &StatsHandler{
		engine: engine,
		intel:  intel,
		bus:    bus,
		cache:  c,
		logger: log.WithComponent("stats"),
	}
}

// statsCacheTTL bounds how stale a served stats snapshot can be
const statsCacheTTL = 10 * time.Second

// StatsResponse combines in-process counters with long-term intel totals
type StatsResponse struct {
	Engine            services.EngineStats           `json:"engine"`
	Intel             map[models.IntelCategory]int64 `json:"intel_by_category,omitempty"`
	StreamSubscribers int                            `json:"stream_subscribers"`
}

// Get handles GET /api/v1/stats. Snapshots are cached in Redis for a
// short TTL so the intel counts are not recomputed on every poll.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	var resp StatsResponse
	if err := h.cache.GetJSON(r.Context(), cache.KeyStats, &resp); err == nil {
		respondJSON(w, http.StatusOK, resp)
		return
	}

	resp = StatsResponse{Engine: h.engine.Stats()}

	if h.bus != nil {
		resp.StreamSubscribers = h.bus.SubscriberCount()
	}

	if h.intel != nil {
		counts, err := h.intel.CountByCategory(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("failed to count intel artifacts")
		} else {
			resp.Intel = counts
		}
	}

	if err := h.cache.SetJSON(r.Context(), cache.KeyStats, resp, statsCacheTTL); err != nil {
		h.logger.Debug().Err(err).Msg("failed to cache stats snapshot")
	}

	respondJSON(w, http.StatusOK, resp)
}
