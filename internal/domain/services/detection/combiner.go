package detection

import (
	"fmt"
	"sort"
	"strings"

	"scambait-lab/internal/domain/models"
	"scambait-lab/pkg/logger"
)

// CombinerConfig contains the decision weights and thresholds
type CombinerConfig struct {
	// Weights per factor; by convention they sum to 1.0, not enforced
	Weights models.FactorScores

	// Weighted score at or above this is a scam
	ConfidenceThreshold float64

	// LLM confidence at or above this overrides the weighted verdict
	LLMHighConfidenceThreshold float64

	// Shared sub-score threshold for red-flag collection
	RedFlagThreshold float64
}

// DefaultCombinerConfig returns the tuned production weights
func DefaultCombinerConfig() CombinerConfig {
	return CombinerConfig{
		Weights: models.FactorScores{
			models.FactorLinguistic: 0.2,
			models.FactorBehavioral: 0.2,
			models.FactorTechnical:  0.15,
			models.FactorContext:    0.1,
			models.FactorLLM:        0.35,
		},
		ConfidenceThreshold:        0.6,
		LLMHighConfidenceThreshold: 0.85,
		RedFlagThreshold:           0.6,
	}
}

// Combiner merges per-factor scores into a final verdict
type Combiner struct {
	config CombinerConfig
	logger *logger.Logger
}

// NewCombiner creates a combiner with the given weights and thresholds
func NewCombiner(config CombinerConfig, log *logger.Logger) *Combiner {
	return &Combiner{
		config: config,
		logger: log.WithComponent("decision-combiner"),
	}
}

// LLMFactorScore converts the external LLM verdict into a 0.0-1.0
// scam-likelihood factor: confidence as-is for a scam call, inverted for
// a legitimate call, neutral 0.5 when the LLM gave no answer.
func LLMFactorScore(llm models.LLMVerdict) float64 {
	if llm.IsScam == nil {
		return 0.5
	}
	if *llm.IsScam {
		return llm.Confidence
	}
	return 1.0 - llm.Confidence
}

// Combine merges the factor analyses and the LLM verdict into a Verdict.
// The message text is only used for fallback scam-type classification.
func (c *Combiner) Combine(
	analyses map[models.FactorName]models.FactorAnalysis,
	llm models.LLMVerdict,
	message string,
) *models.Verdict {
	factorScores := models.FactorScores{
		models.FactorLinguistic: analyses[models.FactorLinguistic].Score,
		models.FactorBehavioral: analyses[models.FactorBehavioral].Score,
		models.FactorTechnical:  analyses[models.FactorTechnical].Score,
		models.FactorContext:    analyses[models.FactorContext].Score,
		models.FactorLLM:        LLMFactorScore(llm),
	}

	var overallScore float64
	for factor, weight := range c.config.Weights {
		overallScore += factorScores[factor] * weight
	}

	isScam := overallScore >= c.config.ConfidenceThreshold

	// If the LLM is very confident, trust it over the weighted blend
	if llm.Confidence >= c.config.LLMHighConfidenceThreshold && llm.IsScam != nil {
		isScam = *llm.IsScam
		if *llm.IsScam {
			overallScore = llm.Confidence
		} else {
			overallScore = 1 - llm.Confidence
		}
	}

	redFlags := c.collectRedFlags(analyses, llm)
	legitimacySignals := llm.LegitimacySignals
	if legitimacySignals == nil {
		legitimacySignals = []string{}
	}
	scamType := c.determineScamType(message, llm)
	urgency := c.determineUrgency(analyses)
	reasoning := c.buildReasoning(isScam, overallScore, factorScores, redFlags, legitimacySignals, llm)

	keyIndicators := redFlags
	if len(keyIndicators) > 5 {
		keyIndicators = keyIndicators[:5]
	}

	verdict := &models.Verdict{
		IsScam:            isScam,
		Confidence:        overallScore,
		ScamType:          scamType,
		UrgencyLevel:      urgency,
		RedFlags:          redFlags,
		LegitimacySignals: legitimacySignals,
		KeyIndicators:     keyIndicators,
		Reasoning:         reasoning,
		FactorScores:      factorScores,
	}

	c.logger.Debug().
		Bool("is_scam", verdict.IsScam).
		Float64("confidence", verdict.Confidence).
		Str("scam_type", string(verdict.ScamType)).
		Msg("verdict combined")

	return verdict
}

// collectRedFlags gathers flags from every analyzer plus the LLM.
// Per-flag thresholds are deliberately not all identical: secrecy asks
// are flagged at 0.5, direct info/payment demands at 0.7.
func (c *Combiner) collectRedFlags(
	analyses map[models.FactorName]models.FactorAnalysis,
	llm models.LLMVerdict,
) []string {
	threshold := c.config.RedFlagThreshold
	flags := []string{}

	linguistic := analyses[models.FactorLinguistic]
	linguisticChecks := []struct {
		key  string
		text string
	}{
		{"urgency_score", "High urgency language detected"},
		{"threat_score", "Threatening language detected"},
		{"authority_score", "Authority impersonation detected"},
		{"manipulation_score", "Emotional manipulation detected"},
	}
	for _, check := range linguisticChecks {
		if linguistic.SubScore(check.key) > threshold {
			flags = append(flags, check.text)
		}
	}

	behavioral := analyses[models.FactorBehavioral]
	behavioralChecks := []struct {
		key       string
		threshold float64
		text      string
	}{
		{"information_request_score", 0.7, "Requests sensitive personal information"},
		{"payment_demand_score", 0.7, "Demands payment or money transfer"},
		{"secrecy_score", 0.5, "Requests secrecy or confidentiality"},
		{"time_pressure_score", threshold, "Creates artificial time pressure"},
	}
	for _, check := range behavioralChecks {
		if behavioral.SubScore(check.key) > check.threshold {
			flags = append(flags, check.text)
		}
	}

	technical := analyses[models.FactorTechnical]
	if technical.SubScore("url_score") > threshold {
		flags = append(flags, "Suspicious URL structure detected")
	}
	if technical.SubScore("domain_score") > threshold {
		flags = append(flags, "Suspicious domain or link shortener detected")
	}

	contextA := analyses[models.FactorContext]
	if contextA.SubScore("expected_communication_score") > 0.7 {
		flags = append(flags, "Unsolicited/unexpected communication")
	}
	if contextA.SubScore("channel_score") > 0.7 {
		flags = append(flags, "Inappropriate channel for sensitive request")
	}

	flags = append(flags, llm.RedFlags...)

	return dedupeStrings(flags)
}

// determineScamType prefers the LLM classification, then falls back to
// keyword matching in table order, then "other"
func (c *Combiner) determineScamType(message string, llm models.LLMVerdict) models.ScamType {
	if llm.ScamType != "" && llm.ScamType != models.ScamTypeUnknown && llm.ScamType != "legitimate" {
		return llm.ScamType
	}

	messageLower := strings.ToLower(message)
	for _, entry := range scamTypeKeywords {
		for _, keyword := range entry.Keywords {
			if strings.Contains(messageLower, keyword) {
				return entry.Type
			}
		}
	}

	return models.ScamTypeOther
}

func (c *Combiner) determineUrgency(analyses map[models.FactorName]models.FactorAnalysis) models.UrgencyLevel {
	combined := (analyses[models.FactorLinguistic].SubScore("urgency_score") +
		analyses[models.FactorLinguistic].SubScore("threat_score") +
		analyses[models.FactorBehavioral].SubScore("time_pressure_score")) / 3

	switch {
	case combined >= 0.7:
		return models.UrgencyCritical
	case combined >= 0.5:
		return models.UrgencyHigh
	case combined >= 0.3:
		return models.UrgencyMedium
	default:
		return models.UrgencyLow
	}
}

func (c *Combiner) buildReasoning(
	isScam bool,
	confidence float64,
	factorScores models.FactorScores,
	redFlags []string,
	legitimacySignals []string,
	llm models.LLMVerdict,
) string {
	var b strings.Builder

	if isScam {
		fmt.Fprintf(&b, "Classified as SCAM with %.0f%% confidence. ", confidence*100)

		type factorScore struct {
			name  models.FactorName
			score float64
		}
		order := []models.FactorName{
			models.FactorLinguistic, models.FactorBehavioral,
			models.FactorTechnical, models.FactorContext, models.FactorLLM,
		}
		sorted := make([]factorScore, 0, len(order))
		for _, name := range order {
			sorted = append(sorted, factorScore{name, factorScores[name]})
		}
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].score > sorted[j].score })

		var top []string
		for _, fs := range sorted {
			if len(top) == 2 {
				break
			}
			if fs.score > 0.5 {
				top = append(top, string(fs.name)+" analysis")
			}
		}
		if len(top) > 0 {
			fmt.Fprintf(&b, "Primary indicators: %s. ", strings.Join(top, ", "))
		}

		if len(redFlags) > 0 {
			shown := redFlags
			if len(shown) > 3 {
				shown = shown[:3]
			}
			fmt.Fprintf(&b, "Red flags: %s.", strings.Join(shown, ", "))
		}
	} else {
		fmt.Fprintf(&b, "Classified as LEGITIMATE with %.0f%% confidence. ", (1-confidence)*100)
		if len(legitimacySignals) > 0 {
			shown := legitimacySignals
			if len(shown) > 2 {
				shown = shown[:2]
			}
			fmt.Fprintf(&b, "Legitimacy indicators: %s.", strings.Join(shown, ", "))
		} else {
			b.WriteString("No significant scam indicators detected.")
		}
	}

	if llm.Reasoning != "" {
		fmt.Fprintf(&b, " LLM: %s", llm.Reasoning)
	}

	return b.String()
}

// dedupeStrings drops duplicates, first-seen order wins
func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
