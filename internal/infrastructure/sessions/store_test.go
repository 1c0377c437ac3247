package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/infrastructure/cache"
	"scambait-lab/pkg/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	c := cache.NewRedisFromClient(client, "scambait-test", logger.NewDefault())
	return NewStore(c, time.Hour, logger.NewDefault())
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := models.NewSession("sess-1")
	session.Persona = "elderly_confused"
	session.AppendMessage(models.SenderScammer, "your account is blocked")

	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	loaded, err := store.Get(ctx, "sess-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ID != "sess-1" || loaded.Persona != "elderly_confused" {
		t.Fatalf("unexpected session: %+v", loaded)
	}
	if loaded.MessageCount != 1 || len(loaded.ConversationHistory) != 1 {
		t.Fatalf("history lost in round trip: %+v", loaded)
	}
	if loaded.ConversationHistory[0].Text != "your account is blocked" {
		t.Fatalf("unexpected message: %+v", loaded.ConversationHistory[0])
	}
}

func TestStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSaveUpdates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := models.NewSession("sess-2")
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}

	session.ScamType = models.ScamTypeUPIFraud
	session.RecordTactic("need_upi:1", 4)
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Get(ctx, "sess-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.ScamType != models.ScamTypeUPIFraud {
		t.Fatalf("scam type not persisted: %+v", loaded)
	}
	if len(loaded.StrategyState.TacticHistory) != 1 || loaded.StrategyState.TacticHistory[0].TacticID != "need_upi:1" {
		t.Fatalf("tactic history not persisted: %+v", loaded.StrategyState)
	}
}

func TestStoreDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := models.NewSession("sess-3")
	if err := store.Create(ctx, session); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := store.Delete(ctx, "sess-3"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "sess-3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMergeIntelDeduplicates(t *testing.T) {
	store := newTestStore(t)

	session := models.NewSession("sess-4")
	session.MessageCount = 5

	fresh := store.MergeIntel(session, models.Intelligence{
		UPIIDs:       []string{"fraud@ybl", "fraud@ybl"},
		PhoneNumbers: []string{"9876543210"},
	})
	if len(fresh) != 2 {
		t.Fatalf("expected 2 fresh artifacts, got %d: %+v", len(fresh), fresh)
	}
	for _, a := range fresh {
		if a.SessionID != "sess-4" || a.MessageNumber != 5 {
			t.Fatalf("artifact not attributed to session/message: %+v", a)
		}
	}

	// Same values again: nothing new
	fresh = store.MergeIntel(session, models.Intelligence{
		UPIIDs: []string{"fraud@ybl"},
	})
	if len(fresh) != 0 {
		t.Fatalf("expected no fresh artifacts on repeat, got %+v", fresh)
	}
	if len(session.Intelligence.UPIIDs) != 1 {
		t.Fatalf("session intel duplicated: %v", session.Intelligence.UPIIDs)
	}
}
