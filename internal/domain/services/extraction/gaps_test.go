package extraction

import (
	"strconv"
	"strings"
	"testing"

	"scambait-lab/internal/domain/models"
	"scambait-lab/pkg/logger"
)

func newTestTracker() *Tracker {
	return NewTracker(DefaultConfig(), logger.NewDefault())
}

func TestAnalyzeGapsEmptySession(t *testing.T) {
	tr := newTestTracker()
	intel := &models.Intelligence{}

	analysis := tr.AnalyzeGaps(intel, 5)

	if analysis.TotalGaps != 4 || analysis.TotalCollected != 0 {
		t.Fatalf("expected 4 gaps 0 collected, got %d/%d", analysis.TotalGaps, analysis.TotalCollected)
	}
	if analysis.TopGap != models.IntelUPIIDs {
		t.Fatalf("payment identifiers come first, got %s", analysis.TopGap)
	}
	want := "Try to naturally ask for scammer's upi ids (be subtle, don't push)"
	if analysis.ExtractionHint != want {
		t.Fatalf("expected hint %q, got %q", want, analysis.ExtractionHint)
	}
}

func TestAnalyzeGapsHintStages(t *testing.T) {
	tr := newTestTracker()
	intel := &models.Intelligence{}

	// Too early: the top gap is reported but no hint yet
	early := tr.AnalyzeGaps(intel, 2)
	if early.ExtractionHint != "" {
		t.Fatalf("expected no hint before the early stage limit, got %q", early.ExtractionHint)
	}
	if early.TopGap != models.IntelUPIIDs {
		t.Fatalf("top gap should still be reported, got %s", early.TopGap)
	}

	// Past the mid stage the ask gets direct
	late := tr.AnalyzeGaps(intel, 10)
	want := "Actively try to extract scammer's upi ids (you trust them now)"
	if late.ExtractionHint != want {
		t.Fatalf("expected hint %q, got %q", want, late.ExtractionHint)
	}
}

func TestAnalyzeGapsCollectedCategories(t *testing.T) {
	tr := newTestTracker()
	intel := &models.Intelligence{UPIIDs: []string{"fraud@ybl"}}

	analysis := tr.AnalyzeGaps(intel, 5)

	if analysis.TotalGaps != 3 || analysis.TotalCollected != 1 {
		t.Fatalf("expected 3 gaps 1 collected, got %d/%d", analysis.TotalGaps, analysis.TotalCollected)
	}
	if analysis.TopGap != models.IntelBankAccounts {
		t.Fatalf("with UPI collected the bank account is next, got %s", analysis.TopGap)
	}
	if analysis.Collected[0].Type != models.IntelUPIIDs || analysis.Collected[0].Count != 1 {
		t.Fatalf("unexpected collected entry: %+v", analysis.Collected[0])
	}
}

func TestGuidedTacticEligibility(t *testing.T) {
	tr := newTestTracker()
	session := models.NewSession("s1")

	// At or below the early stage limit nothing is suggested
	for _, n := range []int{1, 2, 3} {
		if text, id := tr.GuidedTactic(session, n); text != "" || id != "" {
			t.Fatalf("message %d should be too early, got %q/%q", n, text, id)
		}
	}

	text, id := tr.GuidedTactic(session, 4)
	if text == "" || id == "" {
		t.Fatal("expected a tactic once past the early stage")
	}
	if !strings.HasPrefix(id, string(NeedUPI)+":") {
		t.Fatalf("fresh session should chase the UPI ID first, got %s", id)
	}
}

func TestGuidedTacticDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	tr := NewTracker(cfg, logger.NewDefault())

	if text, id := tr.GuidedTactic(models.NewSession("s1"), 10); text != "" || id != "" {
		t.Fatalf("disabled tracker should stay silent, got %q/%q", text, id)
	}
}

func TestGuidedTacticPairAwarePriority(t *testing.T) {
	tr := newTestTracker()

	// UPI collected, bank account still missing
	session := models.NewSession("s1")
	session.Intelligence.UPIIDs = []string{"fraud@ybl"}
	_, id := tr.GuidedTactic(session, 5)
	if !strings.HasPrefix(id, string(NeedBankAccount)+":") {
		t.Fatalf("expected bank account tactic, got %s", id)
	}

	// Only the phone number is missing
	session = models.NewSession("s2")
	session.Intelligence.UPIIDs = []string{"fraud@ybl"}
	session.Intelligence.BankAccounts = []string{"123456789012"}
	session.Intelligence.PhishingLinks = []string{"http://evil.example"}
	_, id = tr.GuidedTactic(session, 5)
	if !strings.HasPrefix(id, string(NeedPhoneNumber)+":") {
		t.Fatalf("expected phone number tactic, got %s", id)
	}

	// Everything collected: nothing to chase
	session.Intelligence.PhoneNumbers = []string{"9876543210"}
	if text, id := tr.GuidedTactic(session, 5); text != "" || id != "" {
		t.Fatalf("no gaps should mean no tactic, got %q/%q", text, id)
	}
}

func TestGuidedTacticCooldownAvoidsRepeat(t *testing.T) {
	tr := newTestTracker()
	session := models.NewSession("s1")

	_, first := tr.GuidedTactic(session, 4)
	if first == "" {
		t.Fatal("expected a first tactic")
	}
	session.RecordTactic(first, 4)

	// The next message is inside the cooldown window, so a different
	// tactic from the same pool must be chosen
	_, second := tr.GuidedTactic(session, 5)
	if second == "" {
		t.Fatal("expected a second tactic")
	}
	if second == first {
		t.Fatalf("tactic %s repeated within cooldown", first)
	}
}

func TestGuidedTacticAllOnCooldownFallsBack(t *testing.T) {
	tr := newTestTracker()
	session := models.NewSession("s1")

	// Burn every UPI tactic in the same window
	for i := range Strategies[NeedUPI].Tactics {
		session.RecordTactic(string(NeedUPI)+":"+strconv.Itoa(i), 4)
	}

	_, id := tr.GuidedTactic(session, 5)
	if id != string(NeedUPI)+":0" {
		t.Fatalf("expected fallback to the first tactic, got %s", id)
	}
}

func TestGuidedTacticCooldownExpires(t *testing.T) {
	tr := newTestTracker()
	session := models.NewSession("s1")

	for i := range Strategies[NeedUPI].Tactics {
		session.RecordTactic(string(NeedUPI)+":"+strconv.Itoa(i), 4)
	}

	// Five messages later the whole pool is available again, so the
	// choice is a real one rather than the forced fallback
	_, id := tr.GuidedTactic(session, 9)
	if !strings.HasPrefix(id, string(NeedUPI)+":") {
		t.Fatalf("expected a UPI tactic, got %s", id)
	}
}

func TestGuidedTacticSoftensEarlyAsks(t *testing.T) {
	tr := newTestTracker()

	// Within the mid stage every suggested ask reads as a question
	for i := 0; i < 20; i++ {
		session := models.NewSession("s1")
		session.Intelligence.UPIIDs = []string{"fraud@ybl"}
		text, _ := tr.GuidedTactic(session, 5)
		if !strings.Contains(text, "?") {
			t.Fatalf("early-stage ask should be softened: %q", text)
		}
		if strings.HasSuffix(text, "??") {
			t.Fatalf("question mark appended twice: %q", text)
		}
	}
}

func TestPromptHintCombinesExtractionAndPsychology(t *testing.T) {
	tr := newTestTracker()
	session := models.NewSession("s1")

	if hint := tr.PromptHint(session, models.DefaultProfile(), 2); hint != "" {
		t.Fatalf("expected empty hint before eligibility, got %q", hint)
	}

	profile := &models.PsychProfile{
		PatienceScore:     0.2,
		RecommendedTactic: models.TacticShowMoreConfusion,
	}
	hint := tr.PromptHint(session, profile, 5)
	if !strings.Contains(hint, "upi ids") {
		t.Fatalf("expected extraction hint, got %q", hint)
	}
	if !strings.Contains(hint, "Scammer is impatient, be extra confused when asking") {
		t.Fatalf("expected impatience modifier, got %q", hint)
	}
	if !strings.Contains(hint, " | ") {
		t.Fatalf("expected pipe-joined parts, got %q", hint)
	}

	almost := &models.PsychProfile{
		PatienceScore:     0.8,
		RecommendedTactic: models.TacticStrategicAlmostCompliance,
	}
	hint = tr.PromptHint(session, almost, 5)
	if !strings.Contains(hint, "Show willingness to help while asking for their details") {
		t.Fatalf("expected almost-compliance modifier, got %q", hint)
	}
}
