package detection

import (
	"context"
	"sync"
	"time"

	"scambait-lab/internal/domain/models"
	"scambait-lab/pkg/logger"
)

// Runner evaluates a set of factor analyzers in parallel. A failed or
// timed-out analyzer is replaced by a neutral 0.5 score so one slow
// factor never blocks the verdict (fail-open).
type Runner struct {
	analyzers []Analyzer
	timeout   time.Duration
	logger    *logger.Logger
}

// NewRunner creates a runner over the given analyzers
func NewRunner(analyzers []Analyzer, timeout time.Duration, log *logger.Logger) *Runner {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Runner{
		analyzers: analyzers,
		timeout:   timeout,
		logger:    log.WithComponent("analyzer-runner"),
	}
}

// RunAll runs every analyzer concurrently and returns one analysis per
// factor. The error count reports how many factors were substituted.
func (r *Runner) RunAll(ctx context.Context, in Input) (map[models.FactorName]models.FactorAnalysis, int) {
	results := make(map[models.FactorName]models.FactorAnalysis, len(r.analyzers))
	var mu sync.Mutex
	var wg sync.WaitGroup
	failed := 0

	for _, analyzer := range r.analyzers {
		wg.Add(1)
		go func(a Analyzer) {
			defer wg.Done()

			runCtx, cancel := context.WithTimeout(ctx, r.timeout)
			defer cancel()

			analysis, err := r.runOne(runCtx, a, in)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				r.logger.Warn().Err(err).
					Str("factor", string(a.Factor())).
					Msg("analyzer failed, substituting neutral score")
				failed++
				results[a.Factor()] = neutralAnalysis(a.Factor())
				return
			}
			results[a.Factor()] = analysis
		}(analyzer)
	}

	wg.Wait()
	return results, failed
}

func (r *Runner) runOne(ctx context.Context, a Analyzer, in Input) (models.FactorAnalysis, error) {
	type outcome struct {
		analysis models.FactorAnalysis
		err      error
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- outcome{err: panicError{rec}}
			}
		}()
		analysis, err := a.Analyze(ctx, in)
		done <- outcome{analysis: analysis, err: err}
	}()

	select {
	case out := <-done:
		return out.analysis, out.err
	case <-ctx.Done():
		return models.FactorAnalysis{}, ctx.Err()
	}
}

func neutralAnalysis(factor models.FactorName) models.FactorAnalysis {
	return models.FactorAnalysis{Factor: factor, Score: 0.5}
}

type panicError struct {
	value any
}

func (e panicError) Error() string {
	return "analyzer panicked"
}
