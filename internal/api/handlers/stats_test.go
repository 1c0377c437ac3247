package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/domain/services"
	"scambait-lab/internal/domain/services/detection"
	"scambait-lab/internal/domain/services/extraction"
	"scambait-lab/internal/domain/services/profiling"
	"scambait-lab/internal/infrastructure/cache"
	"scambait-lab/internal/infrastructure/sessions"
	"scambait-lab/internal/streaming"
	"scambait-lab/pkg/logger"
)

func newStatsEnv(t *testing.T) (*StatsHandler, *services.Engine, *streaming.EventBus, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	log := logger.NewDefault()
	c := cache.NewRedisFromClient(client, "scambait-test", log)

	analyzers := []detection.Analyzer{
		detection.NewLinguisticAnalyzer(),
		detection.NewBehavioralAnalyzer(),
		detection.NewTechnicalAnalyzer(),
		detection.NewContextAnalyzer(),
	}
	runner := detection.NewRunner(analyzers, time.Second, log)
	combiner := detection.NewCombiner(detection.DefaultCombinerConfig(), log)
	profiler := profiling.NewProfiler(log)
	tracker := extraction.NewTracker(extraction.DefaultConfig(), log)
	store := sessions.NewStore(c, time.Hour, log)
	engine := services.NewEngine(runner, combiner, profiler, tracker, store, nil, nil, log)
	bus := streaming.NewEventBus(nil, log)

	return NewStatsHandler(engine, nil, bus, c, log), engine, bus, mr
}

func getStats(t *testing.T, h *StatsHandler) StatsResponse {
	t.Helper()

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest("GET", "/api/v1/stats", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var resp StatsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestStatsSnapshotCached(t *testing.T) {
	h, engine, bus, mr := newStatsEnv(t)
	ctx := context.Background()

	_, unsubscribe := bus.Subscribe(ctx, nil)
	defer unsubscribe()

	first := getStats(t, h)
	if first.Engine.MessagesProcessed != 0 {
		t.Fatalf("unexpected initial stats: %+v", first.Engine)
	}
	if first.StreamSubscribers != 1 {
		t.Fatalf("expected 1 stream subscriber, got %d", first.StreamSubscribers)
	}

	session, err := engine.CreateSession(ctx, "elderly_confused")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := engine.ProcessMessage(ctx, session.ID,
		"transfer the processing fee to fraud@ybl now", nil, models.LLMVerdict{}); err != nil {
		t.Fatalf("process: %v", err)
	}

	// Within the snapshot TTL the cached copy is served unchanged
	second := getStats(t, h)
	if second.Engine.MessagesProcessed != 0 {
		t.Fatalf("expected the cached snapshot, got %+v", second.Engine)
	}

	// Once the TTL lapses the counters refresh
	mr.FastForward(statsCacheTTL + time.Second)
	third := getStats(t, h)
	if third.Engine.MessagesProcessed != 1 {
		t.Fatalf("expected refreshed stats, got %+v", third.Engine)
	}
	if third.Engine.ArtifactsExtracted != 1 {
		t.Fatalf("artifact count missing from refresh: %+v", third.Engine)
	}
}
