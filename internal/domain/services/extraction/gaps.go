package extraction

import (
	"fmt"
	"math/rand"
	"strings"

	"scambait-lab/internal/domain/models"
	"scambait-lab/pkg/logger"
)

// Config gates and paces the guided extraction tactics
type Config struct {
	Enabled                bool
	EarlyStageLimit        int
	MidStageLimit          int
	TacticCooldownMessages int
}

// DefaultConfig returns the tuned production pacing
func DefaultConfig() Config {
	return Config{
		Enabled:                true,
		EarlyStageLimit:        3,
		MidStageLimit:          8,
		TacticCooldownMessages: 5,
	}
}

// Gap is one intelligence category with nothing collected yet
type Gap struct {
	Type     models.IntelCategory `json:"type"`
	Strategy StrategyKey          `json:"strategy"`
	Priority int                  `json:"priority"`
	Status   string               `json:"status"`
}

// Collected reports a category with at least one extracted value
type Collected struct {
	Type   models.IntelCategory `json:"type"`
	Count  int                  `json:"count"`
	Status string               `json:"status"`
}

// GapAnalysis is the prioritized view of what intel is still missing
type GapAnalysis struct {
	Gaps           []Gap                `json:"gaps"`
	Collected      []Collected          `json:"collected"`
	TotalGaps      int                  `json:"total_gaps"`
	TotalCollected int                  `json:"total_collected"`
	TopGap         models.IntelCategory `json:"top_gap,omitempty"`
	ExtractionHint string               `json:"extraction_hint,omitempty"`
}

// Tracker ranks which intelligence to pursue next and enforces a
// cooldown before repeating the same extraction tactic. All methods are
// pure over the session state passed in; recording tactic use into the
// session is the caller's job.
type Tracker struct {
	config Config
	logger *logger.Logger
}

// NewTracker creates a gap tracker
func NewTracker(config Config, log *logger.Logger) *Tracker {
	return &Tracker{
		config: config,
		logger: log.WithComponent("intel-gap-tracker"),
	}
}

// trackedCategories is the fixed priority order: payment identifiers
// first, then links, then phone numbers
var trackedCategories = []models.IntelCategory{
	models.IntelUPIIDs,
	models.IntelBankAccounts,
	models.IntelPhishingLinks,
	models.IntelPhoneNumbers,
}

// AnalyzeGaps returns the prioritized intelligence gaps for a session
func (t *Tracker) AnalyzeGaps(intel *models.Intelligence, messageNumber int) *GapAnalysis {
	analysis := &GapAnalysis{
		Gaps:      []Gap{},
		Collected: []Collected{},
	}

	for _, category := range trackedCategories {
		items := intel.Get(category)
		key := StrategyFor(category)
		if len(items) == 0 {
			analysis.Gaps = append(analysis.Gaps, Gap{
				Type:     category,
				Strategy: key,
				Priority: Strategies[key].Priority,
				Status:   "missing",
			})
		} else {
			analysis.Collected = append(analysis.Collected, Collected{
				Type:   category,
				Count:  len(items),
				Status: "collected",
			})
		}
	}

	analysis.TotalGaps = len(analysis.Gaps)
	analysis.TotalCollected = len(analysis.Collected)

	if len(analysis.Gaps) > 0 {
		top := analysis.Gaps[0]
		analysis.TopGap = top.Type
		if t.eligible(messageNumber) {
			analysis.ExtractionHint = t.buildExtractionHint(top, messageNumber)
		}
	}

	t.logger.Debug().
		Int("gaps", analysis.TotalGaps).
		Int("collected", analysis.TotalCollected).
		Str("top_gap", string(analysis.TopGap)).
		Msg("intel gap analysis")

	return analysis
}

func (t *Tracker) buildExtractionHint(gap Gap, messageNumber int) string {
	gapName := strings.ReplaceAll(string(gap.Type), "_", " ")
	if messageNumber <= t.config.MidStageLimit {
		return fmt.Sprintf("Try to naturally ask for scammer's %s (be subtle, don't push)", gapName)
	}
	return fmt.Sprintf("Actively try to extract scammer's %s (you trust them now)", gapName)
}

// GuidedTactic picks the next extraction tactic for a session, or
// ("", "") when none is appropriate. The caller records the returned
// tactic id into the session's tactic history.
func (t *Tracker) GuidedTactic(session *models.Session, messageNumber int) (string, string) {
	if !t.eligible(messageNumber) {
		return "", ""
	}

	intel := &session.Intelligence
	needUPI := len(intel.UPIIDs) == 0
	needBank := len(intel.BankAccounts) == 0
	needLink := len(intel.PhishingLinks) == 0
	needPhone := len(intel.PhoneNumbers) == 0

	// UPI before bank account when both are missing; payment
	// identifiers always outrank links and phone numbers
	var priorityOrder []StrategyKey
	if needUPI && needBank {
		priorityOrder = []StrategyKey{NeedUPI, NeedBankAccount}
	} else {
		if needUPI {
			priorityOrder = append(priorityOrder, NeedUPI)
		}
		if needBank {
			priorityOrder = append(priorityOrder, NeedBankAccount)
		}
	}
	if needLink {
		priorityOrder = append(priorityOrder, NeedLink)
	}
	if needPhone {
		priorityOrder = append(priorityOrder, NeedPhoneNumber)
	}

	for _, key := range priorityOrder {
		text, tacticID := t.chooseTactic(key, session, messageNumber)
		if text != "" {
			return t.soften(text, messageNumber), tacticID
		}
	}

	return "", ""
}

// PromptHint builds the combined extraction + psychology hint for the
// response prompt. Intended to stay under 200 chars; empty when the
// conversation is too young for extraction.
func (t *Tracker) PromptHint(session *models.Session, profile *models.PsychProfile, messageNumber int) string {
	if !t.eligible(messageNumber) {
		return ""
	}

	analysis := t.AnalyzeGaps(&session.Intelligence, messageNumber)

	var parts []string
	if analysis.ExtractionHint != "" {
		parts = append(parts, analysis.ExtractionHint)
	}

	if profile != nil {
		if profile.PatienceScore < 0.4 && profile.RecommendedTactic == models.TacticShowMoreConfusion {
			parts = append(parts, "Scammer is impatient, be extra confused when asking")
		} else if profile.RecommendedTactic == models.TacticStrategicAlmostCompliance {
			parts = append(parts, "Show willingness to help while asking for their details")
		}
	}

	return strings.Join(parts, " | ")
}

func (t *Tracker) eligible(messageNumber int) bool {
	return t.config.Enabled && messageNumber > t.config.EarlyStageLimit
}

// cooldownOK scans the most recent 10 tactic records for a prior use of
// this tactic id within the cooldown window
func (t *Tracker) cooldownOK(session *models.Session, tacticID string, messageNumber int) bool {
	history := session.StrategyState.TacticHistory
	start := len(history) - 10
	if start < 0 {
		start = 0
	}
	recent := history[start:]
	for i := len(recent) - 1; i >= 0; i-- {
		if recent[i].TacticID == tacticID {
			return messageNumber-recent[i].MessageNumber >= t.config.TacticCooldownMessages
		}
	}
	return true
}

// chooseTactic picks a tactic that hasn't been used recently, shuffling
// the candidates for variety. When everything is on cooldown the first
// tactic is reused anyway; forward progress beats strict novelty.
func (t *Tracker) chooseTactic(key StrategyKey, session *models.Session, messageNumber int) (string, string) {
	tactics := Strategies[key].Tactics
	if len(tactics) == 0 {
		return "", ""
	}

	indices := rand.Perm(len(tactics))
	for _, idx := range indices {
		tacticID := fmt.Sprintf("%s:%d", key, idx)
		if t.cooldownOK(session, tacticID, messageNumber) {
			return tactics[idx], tacticID
		}
	}

	return tactics[0], fmt.Sprintf("%s:0", key)
}

// soften appends a question mark in early-mid stages so the ask reads
// as tentative rather than demanding
func (t *Tracker) soften(text string, messageNumber int) string {
	if messageNumber <= t.config.MidStageLimit && !strings.Contains(text, "?") {
		return text + "?"
	}
	return text
}
