package detection

import (
	"context"
	"net"
	"net/url"
	"regexp"
	"strings"

	"scambait-lab/internal/domain/models"
)

var urlPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

var shortenerDomains = []string{
	"bit.ly", "tinyurl.com", "t.co", "goo.gl", "cutt.ly",
	"rb.gy", "is.gd", "ow.ly", "rebrand.ly",
}

var suspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", ".xyz", ".top", ".buzz", ".icu",
}

var impersonatedBrands = []string{
	"sbi", "hdfc", "icici", "paytm", "phonepe", "paypal",
	"amazon", "microsoft", "apple", "netflix",
}

// TechnicalAnalyzer scores URLs embedded in the message: shorteners,
// raw-IP hosts, lookalike TLDs, brand names buried in hyphenated hosts.
type TechnicalAnalyzer struct{}

func NewTechnicalAnalyzer() *TechnicalAnalyzer {
	return &TechnicalAnalyzer{}
}

func (a *TechnicalAnalyzer) Factor() models.FactorName {
	return models.FactorTechnical
}

func (a *TechnicalAnalyzer) Analyze(_ context.Context, in Input) (models.FactorAnalysis, error) {
	urls := urlPattern.FindAllString(in.Message, -1)

	var urlScore, domainScore float64
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil {
			urlScore = max64(urlScore, 0.5)
			continue
		}
		urlScore = max64(urlScore, scoreURL(u))
		domainScore = max64(domainScore, scoreDomain(u.Hostname()))
	}

	overall := max64(urlScore, domainScore)

	return models.FactorAnalysis{
		Factor: models.FactorTechnical,
		Score:  overall,
		SubScores: map[string]float64{
			"url_score":    urlScore,
			"domain_score": domainScore,
		},
	}, nil
}

func scoreURL(u *url.URL) float64 {
	score := 0.2 // any embedded link is mildly interesting

	if u.Scheme == "http" {
		score += 0.2
	}
	if u.User != nil {
		// credentials in the URL, classic obfuscation
		score += 0.4
	}
	if net.ParseIP(u.Hostname()) != nil {
		score += 0.5
	}
	if len(u.String()) > 100 {
		score += 0.2
	}
	return clamp01(score)
}

func scoreDomain(host string) float64 {
	if host == "" {
		return 0
	}
	host = strings.ToLower(host)

	var score float64
	for _, s := range shortenerDomains {
		if host == s || strings.HasSuffix(host, "."+s) {
			score += 0.7
			break
		}
	}
	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(host, tld) {
			score += 0.5
			break
		}
	}
	if strings.HasPrefix(host, "xn--") || strings.Contains(host, ".xn--") {
		score += 0.5
	}
	// Brand name inside a hyphenated or nested host that isn't the
	// brand's own domain, e.g. sbi-verify.example.tk
	if strings.Contains(host, "-") || strings.Count(host, ".") > 1 {
		for _, brand := range impersonatedBrands {
			if strings.Contains(host, brand) {
				score += 0.5
				break
			}
		}
	}
	return clamp01(score)
}

func max64(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
