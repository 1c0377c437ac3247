package extraction

import (
	"regexp"
	"strings"

	"scambait-lab/internal/domain/models"
)

var (
	upiPattern     = regexp.MustCompile(`[\w.\-]+@\w+`)
	phonePattern   = regexp.MustCompile(`[6-9]\d{9}`)
	accountPattern = regexp.MustCompile(`\b\d{12,18}\b`)
	linkPattern    = regexp.MustCompile(`https?://\S+`)
)

// email providers that look like UPI handles but aren't
var emailProviders = []string{"gmail", "yahoo", "outlook", "hotmail", "protonmail"}

// ExtractArtifacts pulls fraud artifacts out of a scammer message:
// UPI IDs (x@bank), 10-digit phones starting 6-9, 12+ digit account
// numbers, and http(s) links. Values are returned raw; deduplication
// against the session is the store's concern.
func ExtractArtifacts(message string) models.Intelligence {
	intel := models.Intelligence{
		UPIIDs:        []string{},
		BankAccounts:  []string{},
		PhishingLinks: []string{},
		PhoneNumbers:  []string{},
	}

	for _, candidate := range upiPattern.FindAllString(message, -1) {
		if isEmailAddress(candidate) {
			continue
		}
		intel.UPIIDs = append(intel.UPIIDs, candidate)
	}

	intel.PhoneNumbers = append(intel.PhoneNumbers, phonePattern.FindAllString(message, -1)...)
	intel.BankAccounts = append(intel.BankAccounts, accountPattern.FindAllString(message, -1)...)
	intel.PhishingLinks = append(intel.PhishingLinks, linkPattern.FindAllString(message, -1)...)

	return intel
}

func isEmailAddress(candidate string) bool {
	lower := strings.ToLower(candidate)
	for _, provider := range emailProviders {
		if strings.Contains(lower, provider) {
			return true
		}
	}
	return false
}
