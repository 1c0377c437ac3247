package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/infrastructure/database"
	"scambait-lab/pkg/logger"
)

// IntelRepository persists extracted intel artifacts to PostgreSQL for
// long-term analysis across sessions
type IntelRepository struct {
	db     *database.PostgresDB
	logger *logger.Logger
}

// NewIntelRepository creates an intel repository
func NewIntelRepository(db *database.PostgresDB, log *logger.Logger) *IntelRepository {
	return &IntelRepository{
		db:     db,
		logger: log.WithComponent("intel-repository"),
	}
}

// Migrate creates the intel_artifacts table if it does not exist
func (r *IntelRepository) Migrate(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS intel_artifacts (
			id             UUID PRIMARY KEY,
			session_id     TEXT NOT NULL,
			category       TEXT NOT NULL,
			value          TEXT NOT NULL,
			message_number INT NOT NULL DEFAULT 0,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (session_id, category, value)
		);
		CREATE INDEX IF NOT EXISTS idx_intel_artifacts_session ON intel_artifacts (session_id);
		CREATE INDEX IF NOT EXISTS idx_intel_artifacts_category ON intel_artifacts (category);`

	if err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to migrate intel_artifacts: %w", err)
	}
	return nil
}

// SaveBatch inserts a batch of artifacts, skipping values already
// recorded for the session
func (r *IntelRepository) SaveBatch(ctx context.Context, artifacts []models.IntelArtifact) error {
	if len(artifacts) == 0 {
		return nil
	}

	const query = `
		INSERT INTO intel_artifacts (id, session_id, category, value, message_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, category, value) DO NOTHING`

	for _, a := range artifacts {
		id := a.ID
		if id == "" {
			id = uuid.New().String()
		}
		if err := r.db.Exec(ctx, query, id, a.SessionID, string(a.Category), a.Value, a.MessageNumber, a.CreatedAt); err != nil {
			return fmt.Errorf("failed to save intel artifact: %w", err)
		}
	}

	r.logger.Debug().Int("count", len(artifacts)).Msg("intel artifacts saved")
	return nil
}

// ListBySession returns all artifacts extracted in one session
func (r *IntelRepository) ListBySession(ctx context.Context, sessionID string) ([]models.IntelArtifact, error) {
	const query = `
		SELECT id, session_id, category, value, message_number, created_at
		FROM intel_artifacts
		WHERE session_id = $1
		ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list intel artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []models.IntelArtifact
	for rows.Next() {
		var a models.IntelArtifact
		var category string
		if err := rows.Scan(&a.ID, &a.SessionID, &category, &a.Value, &a.MessageNumber, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan intel artifact: %w", err)
		}
		a.Category = models.IntelCategory(category)
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// CountByCategory returns artifact counts per category across all sessions
func (r *IntelRepository) CountByCategory(ctx context.Context) (map[models.IntelCategory]int64, error) {
	const query = `SELECT category, COUNT(*) FROM intel_artifacts GROUP BY category`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count intel artifacts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.IntelCategory]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[models.IntelCategory(category)] = count
	}
	return counts, rows.Err()
}
