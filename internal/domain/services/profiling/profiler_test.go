package profiling

import (
	"strings"
	"testing"

	"scambait-lab/internal/domain/models"
	"scambait-lab/pkg/logger"
)

func newTestProfiler() *Profiler {
	return NewProfiler(logger.NewDefault())
}

func scammerHistory(texts ...string) []models.Message {
	history := make([]models.Message, 0, len(texts))
	for _, text := range texts {
		history = append(history, models.Message{Sender: models.SenderScammer, Text: text})
	}
	return history
}

func TestProfileDefaultWithoutScammerTurns(t *testing.T) {
	p := newTestProfiler()

	for _, history := range [][]models.Message{
		nil,
		{{Sender: models.SenderVictim, Text: "hello?"}},
	} {
		profile := p.Profile(history)
		want := models.DefaultProfile()
		if profile.AggressionLevel != want.AggressionLevel ||
			profile.PatienceScore != want.PatienceScore ||
			profile.Sophistication != want.Sophistication ||
			profile.EmotionalManipulation != want.EmotionalManipulation {
			t.Fatalf("expected default profile, got %+v", profile)
		}
		if profile.RecommendedTactic != models.TacticMaintainEngagement {
			t.Fatalf("expected maintain_engagement, got %s", profile.RecommendedTactic)
		}
		if len(profile.PredictedWeaknesses) != 1 || profile.PredictedWeaknesses[0] != "generic_engagement" {
			t.Fatalf("expected generic_engagement, got %v", profile.PredictedWeaknesses)
		}
	}
}

func TestProfileAggressiveScammer(t *testing.T) {
	p := newTestProfiler()

	history := scammerHistory(
		"give me the money NOW!!!",
		"I SAID NOW",
		"do it immediately or face consequences",
	)
	profile := p.Profile(history)

	if profile.AggressionLevel <= 0.5 {
		t.Fatalf("expected aggression above 0.5, got %.2f", profile.AggressionLevel)
	}
	if profile.MessagesAnalyzed != 3 {
		t.Fatalf("expected 3 messages analyzed, got %d", profile.MessagesAnalyzed)
	}
}

func TestProfileAggressionMonotonic(t *testing.T) {
	p := newTestProfiler()

	calm := p.Profile(scammerHistory("hello, this is regarding your account"))
	angry := p.Profile(scammerHistory("hello, this is regarding your account, act NOW or face arrest!!"))

	if angry.AggressionLevel <= calm.AggressionLevel {
		t.Fatalf("more threats should not lower aggression: calm %.2f angry %.2f",
			calm.AggressionLevel, angry.AggressionLevel)
	}
}

func TestProfilePatienceDropsWithImpatienceMarkers(t *testing.T) {
	p := newTestProfiler()

	calm := p.Profile(scammerHistory("hello, i am calling about your account"))
	if calm.PatienceScore != 1.0 {
		t.Fatalf("calm single message should score full patience, got %.2f", calm.PatienceScore)
	}

	impatient := p.Profile(scammerHistory("hurry up, i'm waiting, why haven't you done it"))
	if impatient.PatienceScore >= calm.PatienceScore {
		t.Fatalf("impatience markers should lower patience, got %.2f", impatient.PatienceScore)
	}
}

func TestProfileRepeatedMessagesLowerPatience(t *testing.T) {
	p := newTestProfiler()

	varied := p.Profile(scammerHistory(
		"your account has a problem",
		"we noticed suspicious activity yesterday evening",
		"please cooperate with the verification steps",
	))
	repeating := p.Profile(scammerHistory(
		"send the otp to this number",
		"send the otp to this number",
		"send the otp to this number",
	))

	if repeating.PatienceScore >= varied.PatienceScore {
		t.Fatalf("near-duplicate repeats should cost patience: varied %.2f repeating %.2f",
			varied.PatienceScore, repeating.PatienceScore)
	}
}

func TestProfileSophisticatedScammer(t *testing.T) {
	p := newTestProfiler()

	history := scammerHistory(
		"Dear sir, as per our records your verification is pending.",
		"This is official procedure under regulatory compliance, reference number REF-48213.",
		"Our department follows strict protocol for two-factor authorization.",
	)
	profile := p.Profile(history)

	if profile.Sophistication <= 0.6 {
		t.Fatalf("expected sophistication above 0.6, got %.2f", profile.Sophistication)
	}
	if profile.RecommendedTactic != models.TacticMoreRealisticPersona {
		t.Fatalf("expected more_realistic_persona, got %s", profile.RecommendedTactic)
	}
	found := false
	for _, w := range profile.PredictedWeaknesses {
		if w == "overconfidence" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected overconfidence weakness, got %v", profile.PredictedWeaknesses)
	}
}

func TestDominantManipulationTieKeepsFirstCategory(t *testing.T) {
	p := newTestProfiler()

	// One fear hit and one urgency hit: fear is declared first and wins
	profile := p.Profile(scammerHistory("your account hacked, offer expires"))
	if profile.DominantManipulation != models.ManipulationFear {
		t.Fatalf("expected fear on tie, got %s", profile.DominantManipulation)
	}

	greedy := p.Profile(scammerHistory("congratulations winner, guaranteed lucky exclusive offer"))
	if greedy.DominantManipulation != models.ManipulationGreed {
		t.Fatalf("expected greed, got %s", greedy.DominantManipulation)
	}
}

func TestProfilePromptHint(t *testing.T) {
	p := newTestProfiler()

	hint := p.PromptHint(models.DefaultProfile())
	if !strings.HasPrefix(hint, "PSYCHOLOGY: ") {
		t.Fatalf("expected PSYCHOLOGY prefix, got %q", hint)
	}
	if !strings.Contains(hint, "Keep scammer engaged naturally") {
		t.Fatalf("default profile should keep engagement, got %q", hint)
	}

	profile := &models.PsychProfile{
		RecommendedTactic:    models.TacticMoreRealisticPersona,
		DominantManipulation: models.ManipulationFear,
	}
	hint = p.PromptHint(profile)
	if !strings.Contains(hint, "sophisticated") {
		t.Fatalf("expected sophistication hint, got %q", hint)
	}
	if !strings.Contains(hint, "fear tactics") {
		t.Fatalf("expected dominant manipulation hint, got %q", hint)
	}
	if !strings.Contains(hint, " | ") {
		t.Fatalf("expected pipe-joined hints, got %q", hint)
	}
}

func TestCountMarkersCountsOccurrences(t *testing.T) {
	if got := countMarkers("now now now", []string{"now"}); got != 3 {
		t.Fatalf("expected 3 occurrences, got %d", got)
	}
	if got := countMarkers("nothing here", []string{"now"}); got != 0 {
		t.Fatalf("expected 0 occurrences, got %d", got)
	}
}
