package models

import "time"

// Sender identifies which side of the conversation a message came from
type Sender string

const (
	SenderScammer Sender = "scammer"
	SenderVictim  Sender = "victim"
)

// Message is a single conversation turn
type Message struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}
