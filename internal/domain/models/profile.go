package models

// ManipulationType names the emotional lever a scammer leans on most
type ManipulationType string

const (
	ManipulationFear      ManipulationType = "fear"
	ManipulationUrgency   ManipulationType = "urgency"
	ManipulationAuthority ManipulationType = "authority"
	ManipulationGuilt     ManipulationType = "guilt"
	ManipulationGreed     ManipulationType = "greed"
	ManipulationNone      ManipulationType = "none"
)

// Tactic is a recommended honeypot response strategy
type Tactic string

const (
	TacticShowMoreConfusion          Tactic = "show_more_confusion"
	TacticMoreRealisticPersona       Tactic = "more_realistic_persona"
	TacticStrategicAlmostCompliance  Tactic = "strategic_almost_compliance"
	TacticDangleCompliance           Tactic = "dangle_compliance"
	TacticMaintainEngagement         Tactic = "maintain_engagement"
)

// PsychProfile is the scammer's psychological profile, recomputed fresh
// from the full scammer-message history on every profiling call.
type PsychProfile struct {
	AggressionLevel       float64          `json:"aggression_level"`
	PatienceScore         float64          `json:"patience_score"`
	Sophistication        float64          `json:"sophistication"`
	EmotionalManipulation float64          `json:"emotional_manipulation"`
	DominantManipulation  ManipulationType `json:"dominant_manipulation_type"`
	PredictedWeaknesses   []string         `json:"predicted_weaknesses"`
	RecommendedTactic     Tactic           `json:"recommended_tactic"`
	MessagesAnalyzed      int              `json:"message_count_analyzed"`
}

// DefaultProfile is the assumed-neutral baseline for a scammer who
// hasn't spoken yet.
func DefaultProfile() *PsychProfile {
	return &PsychProfile{
		AggressionLevel:       0.3,
		PatienceScore:         0.7,
		Sophistication:        0.3,
		EmotionalManipulation: 0.3,
		DominantManipulation:  ManipulationNone,
		PredictedWeaknesses:   []string{"generic_engagement"},
		RecommendedTactic:     TacticMaintainEngagement,
		MessagesAnalyzed:      0,
	}
}
