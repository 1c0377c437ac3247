package profiling

import "scambait-lab/internal/domain/models"

// Marker lists are matched by plain substring containment against
// lower-cased text, no word boundaries. That over-matches on purpose
// ("fast" inside "breakfast"); the scoring weights below were tuned
// against this behavior, so do not switch to word-boundary matching.

var aggressionMarkers = []string{
	"immediately", "now", "urgent", "right now", "hurry",
	"legal action", "police", "arrest", "court", "jail",
	"freeze", "block", "suspend", "terminate", "cancel",
	"consequences", "penalty", "fine", "warning", "last chance",
	"don't waste", "stop wasting", "listen to me", "do as i say",
	"you will regret", "final notice", "no choice",
}

var impatienceMarkers = []string{
	"why haven't you", "i already told you", "how many times",
	"are you stupid", "can't you understand", "hurry up",
	"i'm waiting", "still waiting", "do it now", "what's taking so long",
	"just do it", "quickly", "fast", "asap", "come on", "hello?", "??",
	"respond", "reply", "are you there",
}

var sophisticationMarkers = []string{
	"protocol", "procedure", "verification", "compliance",
	"regulatory", "reserve bank", "rbi", "sebi", "government",
	"official", "authorized", "certified", "department",
	"reference number", "case id", "ticket number",
	"encrypted", "secure portal", "two-factor", "biometric",
}

// manipulationMarkers is ordered; dominant-type ties keep the first
// category encountered here.
var manipulationMarkers = []struct {
	Type    models.ManipulationType
	Markers []string
}{
	{models.ManipulationFear, []string{
		"lose everything", "all your money", "account hacked",
		"someone accessed", "unauthorized transaction", "stolen",
		"danger", "risk", "at stake", "compromised",
	}},
	{models.ManipulationUrgency, []string{
		"only today", "expires", "deadline", "limited time",
		"last chance", "within 24 hours", "closing soon",
		"running out", "window closing",
	}},
	{models.ManipulationAuthority, []string{
		"bank manager", "officer", "senior executive", "government",
		"cyber cell", "fraud department", "investigation team",
		"reserve bank", "head office",
	}},
	{models.ManipulationGuilt, []string{
		"help me", "i trusted you", "cooperate", "don't you care",
		"your family", "think about", "for your safety",
		"we're trying to help", "protect you",
	}},
	{models.ManipulationGreed, []string{
		"guaranteed", "double your money", "100% return",
		"risk free", "selected", "winner", "congratulations",
		"lucky", "exclusive offer", "million", "lakh", "crore",
	}},
}
