package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/infrastructure/cache"
	"scambait-lab/pkg/logger"
)

// ErrNotFound is returned when a session does not exist
var ErrNotFound = errors.New("session not found")

// Store persists honeypot sessions as JSON documents in Redis,
// TTL-bounded so abandoned conversations age out on their own.
type Store struct {
	cache  *cache.RedisCache
	ttl    time.Duration
	logger *logger.Logger
}

// NewStore creates a session store
func NewStore(c *cache.RedisCache, ttl time.Duration, log *logger.Logger) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		cache:  c,
		ttl:    ttl,
		logger: log.WithComponent("session-store"),
	}
}

func sessionKey(id string) string {
	return cache.KeySessionPrefix + id
}

// Create persists a new session
func (s *Store) Create(ctx context.Context, session *models.Session) error {
	if err := s.cache.SetJSON(ctx, sessionKey(session.ID), session, s.ttl); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	s.logger.Info().Str("session_id", session.ID).Msg("session created")
	return nil
}

// Get loads a session by id
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	err := s.cache.GetJSON(ctx, sessionKey(id), &session)
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return &session, nil
}

// Save writes the session back and refreshes its TTL
func (s *Store) Save(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now()
	if err := s.cache.SetJSON(ctx, sessionKey(session.ID), session, s.ttl); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Delete removes a session
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.cache.Delete(ctx, sessionKey(id))
}

// MergeIntel folds newly extracted artifacts into the session,
// dropping values the session has already seen. The decision core
// appends raw; deduplication lives here.
func (s *Store) MergeIntel(session *models.Session, extracted models.Intelligence) []models.IntelArtifact {
	var fresh []models.IntelArtifact

	merge := func(category models.IntelCategory, values []string) {
		existing := make(map[string]struct{})
		for _, v := range session.Intelligence.Get(category) {
			existing[v] = struct{}{}
		}
		for _, v := range values {
			if _, ok := existing[v]; ok {
				continue
			}
			existing[v] = struct{}{}
			session.Intelligence.Append(category, v)
			fresh = append(fresh, models.IntelArtifact{
				SessionID:     session.ID,
				Category:      category,
				Value:         v,
				MessageNumber: session.MessageCount,
				CreatedAt:     time.Now(),
			})
		}
	}

	merge(models.IntelUPIIDs, extracted.UPIIDs)
	merge(models.IntelBankAccounts, extracted.BankAccounts)
	merge(models.IntelPhishingLinks, extracted.PhishingLinks)
	merge(models.IntelPhoneNumbers, extracted.PhoneNumbers)

	return fresh
}
