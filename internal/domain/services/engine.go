package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"scambait-lab/internal/domain/models"
	"scambait-lab/internal/domain/services/detection"
	"scambait-lab/internal/domain/services/extraction"
	"scambait-lab/internal/domain/services/personas"
	"scambait-lab/internal/domain/services/profiling"
	"scambait-lab/internal/infrastructure/database/repository"
	"scambait-lab/internal/infrastructure/sessions"
	"scambait-lab/internal/streaming"
	"scambait-lab/pkg/logger"
)

// ProcessResult is everything the engine derives from one scammer message
type ProcessResult struct {
	SessionID     string                    `json:"session_id"`
	MessageNumber int                       `json:"message_number"`
	Persona       string                    `json:"persona"`
	Verdict       *models.Verdict           `json:"verdict"`
	Profile       *models.PsychProfile      `json:"profile"`
	GapAnalysis   *extraction.GapAnalysis   `json:"gap_analysis"`
	TacticText    string                    `json:"tactic_text,omitempty"`
	TacticID      string                    `json:"tactic_id,omitempty"`
	PsychHint     string                    `json:"psych_hint"`
	PromptHint    string                    `json:"prompt_hint,omitempty"`
	NewArtifacts  []models.IntelArtifact    `json:"new_artifacts,omitempty"`
}

// EngineStats tracks what the engine has processed since startup
type EngineStats struct {
	MessagesProcessed  int64                      `json:"messages_processed"`
	ScamsDetected      int64                      `json:"scams_detected"`
	NeutralFallbacks   int64                      `json:"neutral_fallbacks"`
	ArtifactsExtracted int64                      `json:"artifacts_extracted"`
	ByScamType         map[models.ScamType]int64  `json:"by_scam_type"`
}

// Engine runs the per-message honeypot pipeline: analyze, combine,
// profile, extract, and pick the next extraction tactic.
type Engine struct {
	runner   *detection.Runner
	combiner *detection.Combiner
	profiler *profiling.Profiler
	tracker  *extraction.Tracker
	store    *sessions.Store
	intel    *repository.IntelRepository // nil when postgres is unavailable
	bus      *streaming.EventBus         // nil when eventing is disabled
	logger   *logger.Logger

	statsMu sync.RWMutex
	stats   EngineStats
}

// NewEngine wires the honeypot pipeline together. The intel repository
// and event bus are optional; the engine degrades to session-only
// storage and no fan-out when they are nil.
func NewEngine(
	runner *detection.Runner,
	combiner *detection.Combiner,
	profiler *profiling.Profiler,
	tracker *extraction.Tracker,
	store *sessions.Store,
	intel *repository.IntelRepository,
	bus *streaming.EventBus,
	log *logger.Logger,
) *Engine {
	return &Engine{
		runner:   runner,
		combiner: combiner,
		profiler: profiler,
		tracker:  tracker,
		store:    store,
		intel:    intel,
		bus:      bus,
		logger:   log.WithComponent("honeypot-engine"),
		stats: EngineStats{
			ByScamType: make(map[models.ScamType]int64),
		},
	}
}

// CreateSession starts a new honeypot conversation. An empty persona
// defers selection until the first scam-typed message arrives.
func (e *Engine) CreateSession(ctx context.Context, persona string) (*models.Session, error) {
	if persona != "" && !personas.Exists(persona) {
		return nil, fmt.Errorf("unknown persona %q", persona)
	}

	session := models.NewSession(uuid.New().String())
	session.Persona = persona

	if err := e.store.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession loads a session by id
func (e *Engine) GetSession(ctx context.Context, id string) (*models.Session, error) {
	return e.store.Get(ctx, id)
}

// ProcessMessage ingests one scammer message: runs the analyzers in
// parallel, combines the verdict, profiles the scammer, extracts intel,
// and selects the next extraction tactic. The LLM verdict is supplied
// by the caller, already normalized.
func (e *Engine) ProcessMessage(
	ctx context.Context,
	sessionID string,
	message string,
	metadata map[string]string,
	llm models.LLMVerdict,
) (*ProcessResult, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	log := e.logger.WithSession(session.ID)

	history := session.ConversationHistory
	session.AppendMessage(models.SenderScammer, message)
	messageNumber := session.MessageCount

	verdict := e.Detect(ctx, message, metadata, history, llm)

	// Pin a persona once we have a scam type to match it to
	if session.Persona == "" {
		session.Persona = personas.SelectFor(verdict.ScamType)
		log.WithPersona(session.Persona).Info().Str("scam_type", string(verdict.ScamType)).Msg("persona selected")
	}
	log = log.WithPersona(session.Persona)
	if session.ScamType == "" || session.ScamType == models.ScamTypeUnknown {
		session.ScamType = verdict.ScamType
	}

	profile := e.profiler.Profile(session.ConversationHistory)

	extracted := extraction.ExtractArtifacts(message)
	fresh := e.store.MergeIntel(session, extracted)

	gapAnalysis := e.tracker.AnalyzeGaps(&session.Intelligence, messageNumber)
	tacticText, tacticID := e.tracker.GuidedTactic(session, messageNumber)
	if tacticID != "" {
		session.RecordTactic(tacticID, messageNumber)
	}

	psychHint := e.profiler.PromptHint(profile)
	promptHint := e.tracker.PromptHint(session, profile, messageNumber)

	if err := e.store.Save(ctx, session); err != nil {
		return nil, err
	}

	e.persistArtifacts(ctx, fresh, log)
	e.publishEvents(ctx, session, messageNumber, verdict, fresh)
	e.updateStats(verdict, len(fresh))

	log.Info().
		Int("message_number", messageNumber).
		Bool("is_scam", verdict.IsScam).
		Float64("confidence", verdict.Confidence).
		Int("new_artifacts", len(fresh)).
		Msg("message processed")

	return &ProcessResult{
		SessionID:     session.ID,
		MessageNumber: messageNumber,
		Persona:       session.Persona,
		Verdict:       verdict,
		Profile:       profile,
		GapAnalysis:   gapAnalysis,
		TacticText:    tacticText,
		TacticID:      tacticID,
		PsychHint:     psychHint,
		PromptHint:    promptHint,
		NewArtifacts:  fresh,
	}, nil
}

// Detect runs the stateless multi-factor decision over a single
// message. Individual analyzer failures are replaced with neutral 0.5
// scores; if every local analyzer fails the fixed neutral fallback
// verdict is returned instead of an error.
func (e *Engine) Detect(
	ctx context.Context,
	message string,
	metadata map[string]string,
	history []models.Message,
	llm models.LLMVerdict,
) *models.Verdict {
	in := detection.Input{
		Message:  message,
		Metadata: metadata,
		History:  history,
	}

	analyses, failed := e.runner.RunAll(ctx, in)
	if failed >= len(analyses) && len(analyses) > 0 {
		e.logger.Warn().Int("failed", failed).Msg("all analyzers failed, returning neutral verdict")
		e.noteFallback()
		return models.NeutralVerdict()
	}

	return e.combiner.Combine(analyses, llm, message)
}

// Profile recomputes the scammer's psychological profile for a session
func (e *Engine) Profile(ctx context.Context, sessionID string) (*models.PsychProfile, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return e.profiler.Profile(session.ConversationHistory), nil
}

// IntelReport returns the session's collected intel plus gap analysis
func (e *Engine) IntelReport(ctx context.Context, sessionID string) (*models.Intelligence, *extraction.GapAnalysis, error) {
	session, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	analysis := e.tracker.AnalyzeGaps(&session.Intelligence, session.MessageCount)
	return &session.Intelligence, analysis, nil
}

// Stats returns a copy of the engine statistics
func (e *Engine) Stats() EngineStats {
	e.statsMu.RLock()
	defer e.statsMu.RUnlock()

	byType := make(map[models.ScamType]int64, len(e.stats.ByScamType))
	for k, v := range e.stats.ByScamType {
		byType[k] = v
	}
	return EngineStats{
		MessagesProcessed:  e.stats.MessagesProcessed,
		ScamsDetected:      e.stats.ScamsDetected,
		NeutralFallbacks:   e.stats.NeutralFallbacks,
		ArtifactsExtracted: e.stats.ArtifactsExtracted,
		ByScamType:         byType,
	}
}

func (e *Engine) persistArtifacts(ctx context.Context, artifacts []models.IntelArtifact, log *logger.Logger) {
	if e.intel == nil || len(artifacts) == 0 {
		return
	}
	if err := e.intel.SaveBatch(ctx, artifacts); err != nil {
		// Session storage already has the values; long-term storage
		// catches up on the next artifact
		log.Warn().Err(err).Msg("failed to persist intel artifacts")
	}
}

func (e *Engine) publishEvents(
	ctx context.Context,
	session *models.Session,
	messageNumber int,
	verdict *models.Verdict,
	fresh []models.IntelArtifact,
) {
	if e.bus == nil {
		return
	}
	if err := e.bus.PublishVerdict(ctx, streaming.NewVerdictEvent(session.ID, messageNumber, verdict)); err != nil {
		e.logger.Warn().Err(err).Msg("failed to publish verdict event")
	}
	for _, artifact := range fresh {
		if err := e.bus.PublishIntel(ctx, streaming.NewIntelEvent(artifact)); err != nil {
			e.logger.Warn().Err(err).Msg("failed to publish intel event")
		}
	}
}

func (e *Engine) updateStats(verdict *models.Verdict, artifacts int) {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()

	e.stats.MessagesProcessed++
	e.stats.ArtifactsExtracted += int64(artifacts)
	if verdict.Unknown {
		// already counted by noteFallback when the verdict was built
		return
	}
	if verdict.IsScam {
		e.stats.ScamsDetected++
		e.stats.ByScamType[verdict.ScamType]++
	}
}

func (e *Engine) noteFallback() {
	e.statsMu.Lock()
	e.stats.NeutralFallbacks++
	e.statsMu.Unlock()
}
