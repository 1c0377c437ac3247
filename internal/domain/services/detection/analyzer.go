package detection

import (
	"context"
	"strings"

	"scambait-lab/internal/domain/models"
)

// Input is what every factor analyzer sees for one message
type Input struct {
	Message  string
	Metadata map[string]string
	History  []models.Message
}

// Analyzer scores one detection dimension 0.0-1.0.
// Implementations must be safe for concurrent use; the engine runs the
// local analyzers in parallel.
type Analyzer interface {
	Factor() models.FactorName
	Analyze(ctx context.Context, in Input) (models.FactorAnalysis, error)
}

func contains(text, marker string) bool {
	return strings.Contains(text, marker)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
