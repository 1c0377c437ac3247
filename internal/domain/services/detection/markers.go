package detection

import "scambait-lab/internal/domain/models"

// Marker tables for the local factor analyzers. All matching is plain
// substring containment against lower-cased text, no word boundaries;
// the scoring thresholds were tuned against that behavior, so keep it.

var urgencyMarkers = []string{
	"urgent", "immediately", "right now", "hurry", "asap",
	"within 24 hours", "expires", "deadline", "last chance",
	"limited time", "act now", "don't delay", "final notice",
}

var threatMarkers = []string{
	"legal action", "police", "arrest", "court", "jail",
	"freeze", "blocked", "suspended", "terminate",
	"consequences", "penalty", "fine", "you will regret",
}

var authorityMarkers = []string{
	"bank manager", "officer", "senior executive", "government",
	"cyber cell", "fraud department", "investigation team",
	"reserve bank", "rbi", "head office", "official", "authorized",
}

var manipulationMarkers = []string{
	"lose everything", "all your money", "account hacked",
	"unauthorized transaction", "compromised", "at stake",
	"for your safety", "we're trying to help", "protect you",
	"i trusted you", "your family", "congratulations", "winner",
	"guaranteed", "risk free",
}

var infoRequestMarkers = []string{
	"otp", "password", "pin", "cvv", "aadhaar", "pan card",
	"account number", "card number", "verify your", "confirm your",
	"share your", "send your details", "date of birth",
}

var paymentDemandMarkers = []string{
	"send money", "transfer", "pay now", "payment", "deposit",
	"processing fee", "registration fee", "advance fee", "recharge",
	"send rs", "send ₹", "upi", "paytm", "google pay", "phonepe",
}

var secrecyMarkers = []string{
	"don't tell", "do not tell", "keep this secret", "keep it secret",
	"confidential", "between us", "don't share this", "tell no one",
	"don't inform", "keep this private",
}

var timePressureMarkers = []string{
	"immediately", "right now", "within", "expires", "deadline",
	"hurry", "quickly", "before it's too late", "only today",
	"closing soon", "running out",
}

var sensitiveRequestMarkers = []string{
	"otp", "password", "pin", "cvv", "account", "verify",
	"payment", "transfer", "card",
}

// scamTypeKeywords maps keywords to a scam type for fallback
// classification, checked in declaration order; first match wins.
var scamTypeKeywords = []struct {
	Type     models.ScamType
	Keywords []string
}{
	{models.ScamTypeBankFraud, []string{"bank", "kyc", "blocked", "suspended"}},
	{models.ScamTypeUPIFraud, []string{"upi", "paytm", "phonepe", "googlepay", "@"}},
	{models.ScamTypePhishing, []string{"http", "www", "link"}},
	{models.ScamTypeJobScam, []string{"job", "hiring", "selected", "position", "work from home"}},
	{models.ScamTypeLottery, []string{"won", "prize", "winner", "lottery", "lucky draw"}},
	{models.ScamTypeInvestment, []string{"invest", "profit", "return", "trading", "crypto"}},
	{models.ScamTypeTechSupport, []string{"virus", "hacked", "microsoft", "apple", "tech support"}},
}

// countHits counts how many markers appear in the text (substring match)
func countHits(text string, markers []string) int {
	hits := 0
	for _, m := range markers {
		if contains(text, m) {
			hits++
		}
	}
	return hits
}
