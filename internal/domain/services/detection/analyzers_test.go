package detection

import (
	"context"
	"testing"

	"scambait-lab/internal/domain/models"
)

func TestLinguisticAnalyzer(t *testing.T) {
	a := NewLinguisticAnalyzer()

	// "urgent" and "act now" hit, two exclamations amplify urgency:
	// 2*0.35 + 0.15 = 0.85
	got, err := a.Analyze(context.Background(), Input{Message: "URGENT! Act now! your account is suspended"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !almostEqual(got.SubScore("urgency_score"), 0.85) {
		t.Fatalf("expected urgency 0.85, got %.3f", got.SubScore("urgency_score"))
	}
	if !almostEqual(got.SubScore("threat_score"), 0.35) {
		t.Fatalf("expected threat 0.35, got %.3f", got.SubScore("threat_score"))
	}
	if got.Score <= 0 || got.Score > 1 {
		t.Fatalf("overall score out of range: %.3f", got.Score)
	}

	neutral, err := a.Analyze(context.Background(), Input{Message: "see you at lunch tomorrow"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if neutral.Score != 0 {
		t.Fatalf("benign message should score 0, got %.3f", neutral.Score)
	}
}

func TestBehavioralAnalyzer(t *testing.T) {
	a := NewBehavioralAnalyzer()

	// Three info-request markers clamp to 1.0; deadline + expires give
	// time pressure 0.7
	got, err := a.Analyze(context.Background(), Input{Message: "share your otp and pin before the deadline expires"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !almostEqual(got.SubScore("information_request_score"), 1.0) {
		t.Fatalf("expected info request 1.0, got %.3f", got.SubScore("information_request_score"))
	}
	if !almostEqual(got.SubScore("time_pressure_score"), 0.7) {
		t.Fatalf("expected time pressure 0.7, got %.3f", got.SubScore("time_pressure_score"))
	}
	if !almostEqual(got.Score, 0.44) {
		t.Fatalf("expected overall 0.44, got %.3f", got.Score)
	}
}

func TestTechnicalAnalyzer(t *testing.T) {
	a := NewTechnicalAnalyzer()

	cases := []struct {
		message string
		url     float64
		domain  float64
	}{
		// plain http to a raw IP: 0.2 base + 0.2 http + 0.5 IP
		{"pay here http://203.0.113.7/verify", 0.9, 0},
		// link shortener over https
		{"click https://bit.ly/3xy", 0.2, 0.7},
		// suspicious TLD with a brand in a hyphenated host
		{"login at https://sbi-verify.example.tk/kyc", 0.2, 1.0},
		{"no links in this message", 0, 0},
	}
	for _, tc := range cases {
		got, err := a.Analyze(context.Background(), Input{Message: tc.message})
		if err != nil {
			t.Fatalf("analyze %q: %v", tc.message, err)
		}
		if !almostEqual(got.SubScore("url_score"), tc.url) {
			t.Fatalf("%q: expected url score %.2f, got %.3f", tc.message, tc.url, got.SubScore("url_score"))
		}
		if !almostEqual(got.SubScore("domain_score"), tc.domain) {
			t.Fatalf("%q: expected domain score %.2f, got %.3f", tc.message, tc.domain, got.SubScore("domain_score"))
		}
	}
}

func TestContextAnalyzer(t *testing.T) {
	a := NewContextAnalyzer()

	// Cold open asking for an OTP is the strongest context signal
	got, err := a.Analyze(context.Background(), Input{Message: "share your otp"})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !almostEqual(got.SubScore("expected_communication_score"), 0.8) {
		t.Fatalf("expected cold-open sensitive 0.8, got %.3f", got.SubScore("expected_communication_score"))
	}

	// Caller marked the conversation as expected
	got, err = a.Analyze(context.Background(), Input{
		Message:  "share your otp",
		Metadata: map[string]string{"expected": "true"},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !almostEqual(got.SubScore("expected_communication_score"), 0.1) {
		t.Fatalf("expected communication 0.1, got %.3f", got.SubScore("expected_communication_score"))
	}

	// Sensitive ask over an informal channel
	got, err = a.Analyze(context.Background(), Input{
		Message:  "send your card number",
		Metadata: map[string]string{"channel": "whatsapp"},
	})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !almostEqual(got.SubScore("channel_score"), 0.8) {
		t.Fatalf("expected channel 0.8, got %.3f", got.SubScore("channel_score"))
	}

	// Prior scammer turns soften the cold-open signal
	history := []models.Message{{Sender: models.SenderScammer, Text: "hello"}}
	got, err = a.Analyze(context.Background(), Input{Message: "share your otp", History: history})
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if !almostEqual(got.SubScore("expected_communication_score"), 0.4) {
		t.Fatalf("expected 0.4 with prior turns, got %.3f", got.SubScore("expected_communication_score"))
	}
}
