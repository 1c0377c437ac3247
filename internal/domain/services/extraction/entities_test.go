package extraction

import (
	"testing"
)

func TestExtractArtifacts(t *testing.T) {
	message := "Send to fraudster@ybl or account 112233445566, " +
		"call 9876543210, or pay at http://evil.example/upi"

	intel := ExtractArtifacts(message)

	if len(intel.UPIIDs) != 1 || intel.UPIIDs[0] != "fraudster@ybl" {
		t.Fatalf("unexpected UPI IDs: %v", intel.UPIIDs)
	}
	if len(intel.BankAccounts) != 1 || intel.BankAccounts[0] != "112233445566" {
		t.Fatalf("unexpected bank accounts: %v", intel.BankAccounts)
	}
	if len(intel.PhoneNumbers) != 1 || intel.PhoneNumbers[0] != "9876543210" {
		t.Fatalf("unexpected phone numbers: %v", intel.PhoneNumbers)
	}
	if len(intel.PhishingLinks) != 1 || intel.PhishingLinks[0] != "http://evil.example/upi" {
		t.Fatalf("unexpected links: %v", intel.PhishingLinks)
	}
}

func TestExtractArtifactsSkipsEmailAddresses(t *testing.T) {
	intel := ExtractArtifacts("write to support@gmail.com or pay victim@okhdfc")

	if len(intel.UPIIDs) != 1 || intel.UPIIDs[0] != "victim@okhdfc" {
		t.Fatalf("email providers should be filtered out: %v", intel.UPIIDs)
	}
}

func TestExtractArtifactsEmptyMessage(t *testing.T) {
	intel := ExtractArtifacts("nothing interesting here")

	if intel.TotalArtifacts() != 0 {
		t.Fatalf("expected no artifacts, got %+v", intel)
	}
	// Slices are initialized, not nil, so JSON renders [] instead of null
	if intel.UPIIDs == nil || intel.PhoneNumbers == nil {
		t.Fatal("expected empty slices, got nil")
	}
}
