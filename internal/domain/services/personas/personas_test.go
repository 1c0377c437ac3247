package personas

import (
	"testing"

	"scambait-lab/internal/domain/models"
)

func TestGetFallsBackToDefault(t *testing.T) {
	p := Get("no_such_persona")
	if p.Name != TechNaiveParent {
		t.Fatalf("expected fallback to %s, got %s", TechNaiveParent, p.Name)
	}

	p = Get(ElderlyConfused)
	if p.Name != ElderlyConfused || p.SystemPrompt == "" {
		t.Fatalf("unexpected persona: %+v", p)
	}
}

func TestExists(t *testing.T) {
	for _, name := range All() {
		if !Exists(name) {
			t.Fatalf("persona %s should exist", name)
		}
	}
	if Exists("nobody") {
		t.Fatal("unknown persona should not exist")
	}
}

func TestSelectForReturnsSuitedPersona(t *testing.T) {
	candidates := map[string]bool{
		DesperateJobSeeker: true,
		CuriousStudent:     true,
	}
	for i := 0; i < 50; i++ {
		name := SelectFor(models.ScamTypeJobScam)
		if !candidates[name] {
			t.Fatalf("job scam should pick a job-adjacent persona, got %s", name)
		}
	}

	if name := SelectFor(models.ScamTypeUnknown); name != TechNaiveParent {
		t.Fatalf("unknown scam type should fall back, got %s", name)
	}
}

func TestAllPersonasHavePrompts(t *testing.T) {
	if len(All()) != 5 {
		t.Fatalf("expected 5 personas, got %d", len(All()))
	}
	for _, name := range All() {
		p := Get(name)
		if p.SystemPrompt == "" || p.Age == 0 || len(p.Quirks) == 0 {
			t.Fatalf("persona %s is incomplete: %+v", name, p)
		}
	}
}
