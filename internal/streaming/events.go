package streaming

import (
	"time"

	"github.com/google/uuid"

	"scambait-lab/internal/domain/models"
)

// EventType represents the type of honeypot event
type EventType string

const (
	EventTypeVerdict       EventType = "verdict"
	EventTypeIntelArtifact EventType = "intel_artifact"
	EventTypeSessionClosed EventType = "session_closed"
)

// VerdictEvent is emitted after every combined detection decision
type VerdictEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	SessionID     string              `json:"session_id"`
	MessageNumber int                 `json:"message_number"`
	IsScam        bool                `json:"is_scam"`
	Unknown       bool                `json:"unknown,omitempty"`
	Confidence    float64             `json:"confidence"`
	ScamType      models.ScamType     `json:"scam_type"`
	UrgencyLevel  models.UrgencyLevel `json:"urgency_level"`
	RedFlags      []string            `json:"red_flags,omitempty"`
}

// NewVerdictEvent creates a verdict event from a combined verdict
func NewVerdictEvent(sessionID string, messageNumber int, verdict *models.Verdict) *VerdictEvent {
	return &VerdictEvent{
		ID:            uuid.New().String(),
		Type:          EventTypeVerdict,
		Timestamp:     time.Now(),
		SessionID:     sessionID,
		MessageNumber: messageNumber,
		IsScam:        verdict.IsScam,
		Unknown:       verdict.Unknown,
		Confidence:    verdict.Confidence,
		ScamType:      verdict.ScamType,
		UrgencyLevel:  verdict.UrgencyLevel,
		RedFlags:      verdict.RedFlags,
	}
}

// IntelEvent is emitted for every freshly extracted intel artifact
type IntelEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`

	SessionID     string               `json:"session_id"`
	Category      models.IntelCategory `json:"category"`
	Value         string               `json:"value"`
	MessageNumber int                  `json:"message_number"`
}

// NewIntelEvent creates an intel event from an extracted artifact
func NewIntelEvent(artifact models.IntelArtifact) *IntelEvent {
	return &IntelEvent{
		ID:            uuid.New().String(),
		Type:          EventTypeIntelArtifact,
		Timestamp:     time.Now(),
		SessionID:     artifact.SessionID,
		Category:      artifact.Category,
		Value:         artifact.Value,
		MessageNumber: artifact.MessageNumber,
	}
}

// Subscription filters which verdict events a subscriber receives
type Subscription struct {
	// Filter by scam types (empty = all)
	ScamTypes []models.ScamType `json:"scam_types,omitempty"`

	// Only confirmed-scam verdicts
	ScamsOnly bool `json:"scams_only,omitempty"`

	// Minimum confidence (0 = all)
	MinConfidence float64 `json:"min_confidence,omitempty"`
}

// Matches checks if a verdict event passes the subscription filters
func (s *Subscription) Matches(event *VerdictEvent) bool {
	if s.ScamsOnly && !event.IsScam {
		return false
	}
	if event.Confidence < s.MinConfidence {
		return false
	}
	if len(s.ScamTypes) > 0 {
		found := false
		for _, t := range s.ScamTypes {
			if t == event.ScamType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
