package models

import "time"

// IntelCategory names one tracked class of extracted fraud artifact
type IntelCategory string

const (
	IntelUPIIDs        IntelCategory = "upi_ids"
	IntelBankAccounts  IntelCategory = "bank_accounts"
	IntelPhishingLinks IntelCategory = "phishing_links"
	IntelPhoneNumbers  IntelCategory = "phone_numbers"
)

// Intelligence is the per-session store of extracted artifacts.
// Values are append-only; deduplication is the session store's concern.
type Intelligence struct {
	UPIIDs        []string `json:"upi_ids"`
	BankAccounts  []string `json:"bank_accounts"`
	PhishingLinks []string `json:"phishing_links"`
	PhoneNumbers  []string `json:"phone_numbers"`
}

// Get returns the values collected for a category
func (i *Intelligence) Get(category IntelCategory) []string {
	switch category {
	case IntelUPIIDs:
		return i.UPIIDs
	case IntelBankAccounts:
		return i.BankAccounts
	case IntelPhishingLinks:
		return i.PhishingLinks
	case IntelPhoneNumbers:
		return i.PhoneNumbers
	}
	return nil
}

// Append adds values to a category
func (i *Intelligence) Append(category IntelCategory, values ...string) {
	switch category {
	case IntelUPIIDs:
		i.UPIIDs = append(i.UPIIDs, values...)
	case IntelBankAccounts:
		i.BankAccounts = append(i.BankAccounts, values...)
	case IntelPhishingLinks:
		i.PhishingLinks = append(i.PhishingLinks, values...)
	case IntelPhoneNumbers:
		i.PhoneNumbers = append(i.PhoneNumbers, values...)
	}
}

// TotalArtifacts counts all collected values across categories
func (i *Intelligence) TotalArtifacts() int {
	return len(i.UPIIDs) + len(i.BankAccounts) + len(i.PhishingLinks) + len(i.PhoneNumbers)
}

// IntelArtifact is one extracted value persisted to long-term storage
type IntelArtifact struct {
	ID            string        `json:"id"`
	SessionID     string        `json:"session_id"`
	Category      IntelCategory `json:"category"`
	Value         string        `json:"value"`
	MessageNumber int           `json:"message_number"`
	CreatedAt     time.Time     `json:"created_at"`
}
