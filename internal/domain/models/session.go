package models

import "time"

// TacticRecord remembers one use of an extraction tactic for cooldown checks
type TacticRecord struct {
	TacticID      string `json:"tactic_id"`
	MessageNumber int    `json:"msg"`
}

// StrategyState is the per-session extraction bookkeeping
type StrategyState struct {
	TacticHistory []TacticRecord `json:"tactic_history"`
}

// Session is the mutable state of one honeypot conversation.
// Callers must serialize access per session; the decision core itself is
// a set of pure functions over this state.
type Session struct {
	ID                  string        `json:"session_id"`
	Persona             string        `json:"persona,omitempty"`
	ScamType            ScamType      `json:"scam_type,omitempty"`
	ConversationHistory []Message     `json:"conversation_history"`
	Intelligence        Intelligence  `json:"intelligence"`
	StrategyState       StrategyState `json:"strategy_state"`
	MessageCount        int           `json:"message_count"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// NewSession creates an empty session
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ScammerMessages returns the scammer-side turns in order
func (s *Session) ScammerMessages() []string {
	out := make([]string, 0, len(s.ConversationHistory))
	for _, m := range s.ConversationHistory {
		if m.Sender == SenderScammer {
			out = append(out, m.Text)
		}
	}
	return out
}

// AppendMessage adds a turn and bumps the message count
func (s *Session) AppendMessage(sender Sender, text string) {
	s.ConversationHistory = append(s.ConversationHistory, Message{
		Sender:    sender,
		Text:      text,
		Timestamp: time.Now(),
	})
	s.MessageCount++
	s.UpdatedAt = time.Now()
}

// RecordTactic appends a tactic use for future cooldown checks
func (s *Session) RecordTactic(tacticID string, messageNumber int) {
	s.StrategyState.TacticHistory = append(s.StrategyState.TacticHistory, TacticRecord{
		TacticID:      tacticID,
		MessageNumber: messageNumber,
	})
}
