package profiling

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"scambait-lab/internal/domain/models"
	"scambait-lab/pkg/logger"
)

var (
	refNumberPattern = regexp.MustCompile(`(ref|case|ticket|id)[:\s#-]*\w{4,}`)
	formalPattern    = regexp.MustCompile(
		`(dear\s+(sir|madam|customer)|we\s+regret\s+to\s+inform|as\s+per\s+(our|the)\s+records|kindly\s+note)`,
	)
)

// Profiler builds a psychological profile of the scammer from the
// conversation history. The profile drives adaptive response generation:
// an impatient scammer gets shorter, confused replies; a sophisticated
// one gets a more realistic persona; a frustrated one gets strategic
// almost-compliance to extract more intel.
type Profiler struct {
	logger *logger.Logger
}

// NewProfiler creates a profiler
func NewProfiler(log *logger.Logger) *Profiler {
	return &Profiler{
		logger: log.WithComponent("scammer-profiler"),
	}
}

// Profile analyzes the full conversation history and returns a fresh
// psychological profile. Only scammer-side turns are considered; with
// no scammer turns the fixed default profile is returned.
func (p *Profiler) Profile(history []models.Message) *models.PsychProfile {
	var scammerMessages []string
	for _, m := range history {
		if strings.EqualFold(string(m.Sender), string(models.SenderScammer)) {
			scammerMessages = append(scammerMessages, m.Text)
		}
	}

	if len(scammerMessages) == 0 {
		return models.DefaultProfile()
	}

	rawText := strings.Join(scammerMessages, " ")
	allText := strings.ToLower(rawText)

	aggression := scoreAggression(rawText, allText)
	patience := scorePatience(scammerMessages, allText)
	sophistication := scoreSophistication(allText)
	manipulation := scoreManipulation(allText)

	profile := &models.PsychProfile{
		AggressionLevel:       round2(aggression),
		PatienceScore:         round2(patience),
		Sophistication:        round2(sophistication),
		EmotionalManipulation: round2(manipulation),
		DominantManipulation:  dominantManipulationType(allText),
		PredictedWeaknesses:   predictWeaknesses(aggression, patience, sophistication, manipulation),
		RecommendedTactic:     recommendTactic(aggression, patience, sophistication, manipulation),
		MessagesAnalyzed:      len(scammerMessages),
	}

	p.logger.Debug().
		Float64("aggression", profile.AggressionLevel).
		Float64("patience", profile.PatienceScore).
		Float64("sophistication", profile.Sophistication).
		Float64("manipulation", profile.EmotionalManipulation).
		Str("tactic", string(profile.RecommendedTactic)).
		Msg("profile computed")

	return profile
}

// scoreAggression weighs threat markers, ALL CAPS shouting, and
// exclamation marks.
func scoreAggression(rawText, allText string) float64 {
	hits := countMarkers(allText, aggressionMarkers)

	capsWords := 0
	for _, word := range strings.Fields(rawText) {
		if len(word) > 2 && word == strings.ToUpper(word) && word != strings.ToLower(word) {
			capsWords++
		}
	}
	exclamations := strings.Count(allText, "!")

	raw := float64(hits)*0.08 + float64(capsWords)*0.03 + float64(exclamations)*0.04
	return math.Min(raw, 1.0)
}

// scorePatience starts from 1.0 and subtracts for impatience markers and
// near-duplicate repeats over the last 4 messages; a growing message
// length trend adds patience back, a shrinking one costs more.
func scorePatience(messages []string, allText string) float64 {
	impatienceHits := countMarkers(allText, impatienceMarkers)

	repeated := 0
	if len(messages) >= 3 {
		start := len(messages) - 4
		if start < 0 {
			start = 0
		}
		recent := make([]string, 0, 4)
		for _, m := range messages[start:] {
			recent = append(recent, strings.TrimSpace(strings.ToLower(m)))
		}
		for i := 0; i < len(recent)-1; i++ {
			first := strings.Fields(recent[i])
			overlap := tokenOverlap(first, strings.Fields(recent[i+1]))
			if float64(overlap) > math.Max(float64(len(first))*0.6, 3) {
				repeated++
			}
		}
	}

	lengthTrend := 0.0
	if len(messages) >= 3 {
		earlyAvg := float64(len(messages[0])+len(messages[1])) / 2
		lateAvg := float64(len(messages[len(messages)-2])+len(messages[len(messages)-1])) / 2
		if earlyAvg > 0 {
			ratio := lateAvg / earlyAvg
			if ratio > 1.2 {
				lengthTrend = 0.1
			} else if ratio < 0.6 {
				lengthTrend = -0.1
			}
		}
	}

	rawImpatience := float64(impatienceHits)*0.1 + float64(repeated)*0.15 - lengthTrend
	patience := math.Max(0.0, 1.0-rawImpatience)
	return math.Min(patience, 1.0)
}

// scoreSophistication weighs procedural vocabulary plus regex checks for
// reference-number patterns and formal salutations.
func scoreSophistication(allText string) float64 {
	hits := countMarkers(allText, sophisticationMarkers)

	raw := float64(hits) * 0.07
	if refNumberPattern.MatchString(allText) {
		raw += 0.15
	}
	if formalPattern.MatchString(allText) {
		raw += 0.15
	}
	return math.Min(raw, 1.0)
}

func scoreManipulation(allText string) float64 {
	total := 0
	for _, category := range manipulationMarkers {
		total += countMarkers(allText, category.Markers)
	}
	return math.Min(float64(total)*0.06, 1.0)
}

// dominantManipulationType returns the category with the strictly
// highest hit count; ties keep the earlier category, zero hits is "none"
func dominantManipulationType(allText string) models.ManipulationType {
	best := models.ManipulationNone
	bestScore := 0
	for _, category := range manipulationMarkers {
		hits := countMarkers(allText, category.Markers)
		if hits > bestScore {
			bestScore = hits
			best = category.Type
		}
	}
	return best
}

// predictWeaknesses evaluates each rule independently; rules are not
// mutually exclusive.
func predictWeaknesses(aggression, patience, sophistication, manipulation float64) []string {
	var weaknesses []string
	if patience < 0.4 {
		weaknesses = append(weaknesses, "frustration")
	}
	if aggression > 0.6 {
		weaknesses = append(weaknesses, "anger_management")
	}
	if sophistication < 0.3 {
		weaknesses = append(weaknesses, "low_adaptability")
	}
	if manipulation > 0.6 {
		weaknesses = append(weaknesses, "over_reliance_on_scripts")
	}
	if patience < 0.3 && aggression > 0.5 {
		weaknesses = append(weaknesses, "time_pressure")
	}
	if sophistication > 0.6 {
		weaknesses = append(weaknesses, "overconfidence")
	}
	if len(weaknesses) == 0 {
		return []string{"generic_engagement"}
	}
	return weaknesses
}

// recommendTactic picks the first matching rule in strict priority order
func recommendTactic(aggression, patience, sophistication, manipulation float64) models.Tactic {
	switch {
	case patience < 0.4 && aggression > 0.5:
		return models.TacticShowMoreConfusion
	case sophistication > 0.6:
		return models.TacticMoreRealisticPersona
	case manipulation > 0.6:
		return models.TacticStrategicAlmostCompliance
	case patience < 0.4:
		return models.TacticDangleCompliance
	default:
		return models.TacticMaintainEngagement
	}
}

// PromptHint generates a concise "PSYCHOLOGY: ..." hint from the profile
// for injection into the response-generation prompt. Intended to stay
// under 120 chars; callers truncate if they must.
func (p *Profiler) PromptHint(profile *models.PsychProfile) string {
	var hints []string

	switch profile.RecommendedTactic {
	case models.TacticShowMoreConfusion:
		hints = append(hints, "Scammer is impatient, act MORE confused, give shorter replies")
	case models.TacticMoreRealisticPersona:
		hints = append(hints, "Scammer is sophisticated, be very realistic, avoid any AI patterns")
	case models.TacticStrategicAlmostCompliance:
		hints = append(hints, "Scammer uses emotional tactics, almost comply, ask for THEIR details")
	case models.TacticDangleCompliance:
		hints = append(hints, "Scammer is frustrated, show willingness but create small obstacles")
	default:
		hints = append(hints, "Keep scammer engaged naturally")
	}

	if profile.DominantManipulation != models.ManipulationNone {
		hints = append(hints, fmt.Sprintf("Scammer uses %s tactics", profile.DominantManipulation))
	}

	return "PSYCHOLOGY: " + strings.Join(hints, " | ")
}

// countMarkers counts marker occurrences, not just distinct markers;
// a scammer who says "now" three times scores three hits
func countMarkers(text string, markers []string) int {
	hits := 0
	for _, m := range markers {
		hits += strings.Count(text, m)
	}
	return hits
}

func tokenOverlap(a, b []string) int {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	seen := make(map[string]struct{})
	overlap := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			if _, dup := seen[t]; !dup {
				seen[t] = struct{}{}
				overlap++
			}
		}
	}
	return overlap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
