package detection

import (
	"context"
	"strings"

	"scambait-lab/internal/domain/models"
)

// BehavioralAnalyzer scores what the message asks the victim to do:
// hand over information, pay, keep quiet, or act under time pressure.
type BehavioralAnalyzer struct{}

func NewBehavioralAnalyzer() *BehavioralAnalyzer {
	return &BehavioralAnalyzer{}
}

func (a *BehavioralAnalyzer) Factor() models.FactorName {
	return models.FactorBehavioral
}

func (a *BehavioralAnalyzer) Analyze(_ context.Context, in Input) (models.FactorAnalysis, error) {
	text := strings.ToLower(in.Message)

	infoRequest := clamp01(float64(countHits(text, infoRequestMarkers)) * 0.4)
	paymentDemand := clamp01(float64(countHits(text, paymentDemandMarkers)) * 0.4)
	secrecy := clamp01(float64(countHits(text, secrecyMarkers)) * 0.4)
	timePressure := clamp01(float64(countHits(text, timePressureMarkers)) * 0.35)

	overall := clamp01(0.3*infoRequest + 0.3*paymentDemand + 0.2*secrecy + 0.2*timePressure)

	return models.FactorAnalysis{
		Factor: models.FactorBehavioral,
		Score:  overall,
		SubScores: map[string]float64{
			"information_request_score": infoRequest,
			"payment_demand_score":      paymentDemand,
			"secrecy_score":             secrecy,
			"time_pressure_score":       timePressure,
		},
	}, nil
}
