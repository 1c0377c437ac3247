package extraction

import "scambait-lab/internal/domain/models"

// StrategyKey identifies one extraction goal
type StrategyKey string

const (
	NeedUPI         StrategyKey = "need_upi"
	NeedBankAccount StrategyKey = "need_bank_account"
	NeedLink        StrategyKey = "need_link"
	NeedPhoneNumber StrategyKey = "need_phone_number"
)

// Strategy holds the pre-authored tactics for one intel category.
// Priority is lower-is-more-important; payment identifiers outrank
// links and phone numbers.
type Strategy struct {
	Tactics         []string
	BaseSuccessRate float64
	Priority        int
}

// Strategies maps each extraction goal to its tactic pool
var Strategies = map[StrategyKey]Strategy{
	NeedUPI: {
		Tactics: []string{
			"I tried but the app showed error. Can you send the UPI ID again?",
			"My phone is slow, what was that payment ID?",
			"Let me write it down. Spell the UPI address please?",
			"I keep getting 'invalid UPI'. Is there another ID I can try?",
			"My daughter said I should double-check the UPI. What was it?",
		},
		BaseSuccessRate: 0.82,
		Priority:        1,
	},
	NeedBankAccount: {
		Tactics: []string{
			"Which bank should I transfer to?",
			"I need the account number for NEFT transfer.",
			"My son wants to know the account details before I send.",
			"The bank is asking for IFSC code also. Can you share?",
			"I went to the bank and they need full account details.",
		},
		BaseSuccessRate: 0.67,
		Priority:        2,
	},
	NeedLink: {
		Tactics: []string{
			"The link didn't open, can you send it again?",
			"My phone is blocking it. Which website was it?",
			"I clicked but nothing happened. Share the link again?",
			"It shows security warning. Is there another link?",
			"Can you send the link one more time? My internet is slow.",
		},
		BaseSuccessRate: 0.60,
		Priority:        3,
	},
	NeedPhoneNumber: {
		Tactics: []string{
			"Can I call you back on this number or is there another one?",
			"My phone is about to die. What number should I call you on?",
			"Give me your number, I'll call after I go to the bank.",
			"What if I face problem? Which number should I reach you at?",
		},
		BaseSuccessRate: 0.55,
		Priority:        4,
	},
}

// CategoryFor maps a strategy key back to its intel category
func CategoryFor(key StrategyKey) models.IntelCategory {
	switch key {
	case NeedUPI:
		return models.IntelUPIIDs
	case NeedBankAccount:
		return models.IntelBankAccounts
	case NeedLink:
		return models.IntelPhishingLinks
	case NeedPhoneNumber:
		return models.IntelPhoneNumbers
	}
	return ""
}

// StrategyFor maps an intel category to its extraction strategy key
func StrategyFor(category models.IntelCategory) StrategyKey {
	switch category {
	case models.IntelUPIIDs:
		return NeedUPI
	case models.IntelBankAccounts:
		return NeedBankAccount
	case models.IntelPhishingLinks:
		return NeedLink
	case models.IntelPhoneNumbers:
		return NeedPhoneNumber
	}
	return ""
}
