package models

// ScamType classifies the kind of fraud being attempted
type ScamType string

const (
	ScamTypeBankFraud   ScamType = "bank_fraud"
	ScamTypeUPIFraud    ScamType = "upi_fraud"
	ScamTypePhishing    ScamType = "phishing"
	ScamTypeJobScam     ScamType = "job_scam"
	ScamTypeLottery     ScamType = "lottery"
	ScamTypeInvestment  ScamType = "investment"
	ScamTypeTechSupport ScamType = "tech_support"
	ScamTypeOther       ScamType = "other"
	ScamTypeUnknown     ScamType = "unknown"
)

// UrgencyLevel grades how hard the scammer is pushing
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// FactorName identifies one detection dimension
type FactorName string

const (
	FactorLinguistic FactorName = "linguistic"
	FactorBehavioral FactorName = "behavioral"
	FactorTechnical  FactorName = "technical"
	FactorContext    FactorName = "context"
	FactorLLM        FactorName = "llm"
)

// FactorScores maps each detection factor to its 0.0-1.0 score
type FactorScores map[FactorName]float64

// FactorAnalysis carries one analyzer's overall score plus its named
// sub-scores, which drive red-flag collection and urgency grading.
type FactorAnalysis struct {
	Factor    FactorName         `json:"factor"`
	Score     float64            `json:"score"`
	SubScores map[string]float64 `json:"sub_scores,omitempty"`
}

// SubScore returns a named sub-score, 0 when absent
func (a FactorAnalysis) SubScore(name string) float64 {
	if a.SubScores == nil {
		return 0
	}
	return a.SubScores[name]
}

// LLMVerdict is the externally supplied LLM classification, already
// normalized by the caller. IsScam is nil when the LLM gave no answer.
type LLMVerdict struct {
	IsScam            *bool    `json:"is_scam"`
	Confidence        float64  `json:"confidence"`
	ScamType          ScamType `json:"scam_type,omitempty"`
	Reasoning         string   `json:"reasoning,omitempty"`
	RedFlags          []string `json:"red_flags,omitempty"`
	LegitimacySignals []string `json:"legitimacy_signals,omitempty"`
}

// Verdict is the combined multi-factor decision.
//
// Note on Confidence: it always carries the scam-likelihood score, so a
// legitimate verdict comes with a LOW number. Consumers wanting confidence
// in the legitimate call must read 1-Confidence; the reasoning text already
// does. Kept this way because downstream consumers depend on it.
type Verdict struct {
	IsScam bool `json:"is_scam"`
	// Unknown is set when analysis failed and the verdict is the neutral
	// fallback; IsScam is meaningless in that case.
	Unknown           bool         `json:"unknown,omitempty"`
	Confidence        float64      `json:"confidence"`
	ScamType          ScamType     `json:"scam_type"`
	UrgencyLevel      UrgencyLevel `json:"urgency_level"`
	RedFlags          []string     `json:"red_flags"`
	LegitimacySignals []string     `json:"legitimacy_signals"`
	KeyIndicators     []string     `json:"key_indicators"`
	Reasoning         string       `json:"reasoning"`
	FactorScores      FactorScores `json:"factor_scores,omitempty"`
}

// NeutralVerdict is the fail-open fallback used when any analyzer fails:
// uncertain classification rather than a hard failure of the conversation.
func NeutralVerdict() *Verdict {
	return &Verdict{
		Unknown:           true,
		Confidence:        0.5,
		ScamType:          ScamTypeUnknown,
		UrgencyLevel:      UrgencyMedium,
		RedFlags:          []string{},
		LegitimacySignals: []string{},
		KeyIndicators:     []string{},
		Reasoning:         "Analysis failed, uncertain classification",
	}
}
