package detection

import (
	"context"
	"strings"

	"scambait-lab/internal/domain/models"
)

// ContextAnalyzer scores how well the message fits the conversation so
// far: unsolicited first contact and sensitive asks on casual channels.
type ContextAnalyzer struct{}

func NewContextAnalyzer() *ContextAnalyzer {
	return &ContextAnalyzer{}
}

func (a *ContextAnalyzer) Factor() models.FactorName {
	return models.FactorContext
}

func (a *ContextAnalyzer) Analyze(_ context.Context, in Input) (models.FactorAnalysis, error) {
	text := strings.ToLower(in.Message)
	sensitive := countHits(text, sensitiveRequestMarkers) > 0

	expected := a.expectedCommunicationScore(in, sensitive)
	channel := a.channelScore(in, sensitive)

	overall := clamp01((expected + channel) / 2)

	return models.FactorAnalysis{
		Factor: models.FactorContext,
		Score:  overall,
		SubScores: map[string]float64{
			"expected_communication_score": expected,
			"channel_score":                channel,
		},
	}, nil
}

func (a *ContextAnalyzer) expectedCommunicationScore(in Input, sensitive bool) float64 {
	if in.Metadata["expected"] == "true" {
		return 0.1
	}

	// Count prior scammer turns; a cold open asking for something
	// sensitive is the strongest context signal we have.
	prior := 0
	for _, m := range in.History {
		if m.Sender == models.SenderScammer {
			prior++
		}
	}
	switch {
	case prior == 0 && sensitive:
		return 0.8
	case prior == 0:
		return 0.5
	case sensitive:
		return 0.4
	default:
		return 0.2
	}
}

func (a *ContextAnalyzer) channelScore(in Input, sensitive bool) float64 {
	channel := strings.ToLower(in.Metadata["channel"])
	informal := channel == "sms" || channel == "whatsapp" || channel == "telegram"

	switch {
	case informal && sensitive:
		return 0.8
	case informal:
		return 0.3
	case sensitive:
		return 0.3
	default:
		return 0.1
	}
}
