package detection

import (
	"context"
	"strings"

	"scambait-lab/internal/domain/models"
)

// LinguisticAnalyzer scores the language of a single message: urgency,
// threats, authority impersonation, and emotional manipulation.
type LinguisticAnalyzer struct{}

func NewLinguisticAnalyzer() *LinguisticAnalyzer {
	return &LinguisticAnalyzer{}
}

func (a *LinguisticAnalyzer) Factor() models.FactorName {
	return models.FactorLinguistic
}

func (a *LinguisticAnalyzer) Analyze(_ context.Context, in Input) (models.FactorAnalysis, error) {
	text := strings.ToLower(in.Message)

	urgency := clamp01(float64(countHits(text, urgencyMarkers)) * 0.35)
	threat := clamp01(float64(countHits(text, threatMarkers)) * 0.35)
	authority := clamp01(float64(countHits(text, authorityMarkers)) * 0.35)
	manipulation := clamp01(float64(countHits(text, manipulationMarkers)) * 0.3)

	// Shouting amplifies urgency
	exclamations := strings.Count(in.Message, "!")
	if exclamations >= 2 {
		urgency = clamp01(urgency + 0.15)
	}

	overall := clamp01(0.35*urgency + 0.25*threat + 0.2*authority + 0.2*manipulation)

	return models.FactorAnalysis{
		Factor: models.FactorLinguistic,
		Score:  overall,
		SubScores: map[string]float64{
			"urgency_score":      urgency,
			"threat_score":       threat,
			"authority_score":    authority,
			"manipulation_score": manipulation,
		},
	}, nil
}
