package detection

import (
	"context"
	"errors"
	"testing"
	"time"

	"scambait-lab/internal/domain/models"
	"scambait-lab/pkg/logger"
)

type stubAnalyzer struct {
	factor models.FactorName
	score  float64
	err    error
	panics bool
	delay  time.Duration
}

func (s *stubAnalyzer) Factor() models.FactorName { return s.factor }

func (s *stubAnalyzer) Analyze(ctx context.Context, _ Input) (models.FactorAnalysis, error) {
	if s.panics {
		panic("boom")
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return models.FactorAnalysis{}, ctx.Err()
		}
	}
	if s.err != nil {
		return models.FactorAnalysis{}, s.err
	}
	return models.FactorAnalysis{Factor: s.factor, Score: s.score}, nil
}

func TestRunAllSubstitutesNeutralOnFailure(t *testing.T) {
	analyzers := []Analyzer{
		&stubAnalyzer{factor: models.FactorLinguistic, score: 0.9},
		&stubAnalyzer{factor: models.FactorBehavioral, err: errors.New("broken")},
		&stubAnalyzer{factor: models.FactorTechnical, panics: true},
	}
	r := NewRunner(analyzers, time.Second, logger.NewDefault())

	results, failed := r.RunAll(context.Background(), Input{Message: "hello"})

	if failed != 2 {
		t.Fatalf("expected 2 failures, got %d", failed)
	}
	if len(results) != 3 {
		t.Fatalf("expected a result per analyzer, got %d", len(results))
	}
	if got := results[models.FactorLinguistic].Score; got != 0.9 {
		t.Fatalf("healthy analyzer result lost, score %.2f", got)
	}
	if got := results[models.FactorBehavioral].Score; got != 0.5 {
		t.Fatalf("failed analyzer should be neutral 0.5, got %.2f", got)
	}
	if got := results[models.FactorTechnical].Score; got != 0.5 {
		t.Fatalf("panicked analyzer should be neutral 0.5, got %.2f", got)
	}
}

func TestRunAllTimesOutSlowAnalyzer(t *testing.T) {
	analyzers := []Analyzer{
		&stubAnalyzer{factor: models.FactorLinguistic, score: 0.8},
		&stubAnalyzer{factor: models.FactorBehavioral, score: 0.8, delay: 2 * time.Second},
	}
	r := NewRunner(analyzers, 50*time.Millisecond, logger.NewDefault())

	start := time.Now()
	results, failed := r.RunAll(context.Background(), Input{Message: "hello"})

	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("slow analyzer blocked the verdict for %s", elapsed)
	}
	if failed != 1 {
		t.Fatalf("expected 1 timeout failure, got %d", failed)
	}
	if got := results[models.FactorBehavioral].Score; got != 0.5 {
		t.Fatalf("timed-out analyzer should be neutral 0.5, got %.2f", got)
	}
}
