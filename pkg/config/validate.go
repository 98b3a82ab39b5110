package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

// Browser-like identity sent on every store-facing request.
const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultAcceptLanguage = "it-IT,it;q=0.9,en;q=0.8"
)

// MaxScore is the upper bound of the lead score scale.
const MaxScore = 5

func defaultJunkWords() []string {
	return []string{
		"shop", "store", "official", "online", "acquista", "buy",
		"spedizione", "free shipping", "sale", "sconto",
		"collezione", "collection", "scarpe", "uomo", "donna",
		"home", "homepage",
	}
}

func defaultCatalogSelectors() []string {
	return []string{
		`a[href*="/products/"]`,
		".product-item",
		".product-card",
		".grid-item",
		"[data-product-id]",
	}
}

func defaultDiscoveryKeywords() []string {
	return []string{
		"contatti", "contatto", "contact", "assistenza", "supporto",
		"help", "resi", "sped", "shipping",
		"privacy", "termini", "condizioni", "impressum", "chi-siamo", "about",
		"note legali", "legal",
	}
}

func defaultStaticPaths() []string {
	return []string{
		"/pages/contatti",
		"/pages/contatto",
		"/pages/contattaci",
		"/pages/contact",
		"/pages/contact-us",
		"/pages/assistenza",
		"/pages/supporto",
		"/pages/servizio-clienti",
		"/pages/chi-siamo",
		"/pages/about-us",
		"/policies/privacy-policy",
		"/policies/terms-of-service",
		"/policies/refund-policy",
		"/policies/shipping-policy",
	}
}

func defaultEmailBlocklist() []string {
	return []string{"example.com", "sentry", "google", "shopify"}
}

func defaultRevenueKeywords() []string {
	return []string{"fatturato", "ricavi", "revenue", "turnover"}
}

// defaultTierBreakpoints are EUR lower bounds for MICRO, SMALL, MEDIUM,
// LARGE, ENTERPRISE, following the EU turnover thresholds for SME classes.
func defaultTierBreakpoints() []float64 {
	return []float64{0, 2_000_000, 10_000_000, 50_000_000, 250_000_000}
}

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
	if c.AcceptLanguage == "" {
		c.AcceptLanguage = defaultAcceptLanguage
	}
	if c.PrimaryTimeout <= 0 {
		c.PrimaryTimeout = 15 * time.Second
	}
	if c.SecondaryTimeout <= 0 {
		c.SecondaryTimeout = 12 * time.Second
	}
	if c.StorePacing < 0 {
		warnings = append(warnings, "store_pacing cannot be negative, defaulting to 1.5s")
		c.StorePacing = 0
	}
	if c.StorePacing == 0 {
		c.StorePacing = 1500 * time.Millisecond
	}
	if c.MaxConcurrentRequests <= 0 {
		warnings = append(warnings, "max_concurrent_requests should be > 0, defaulting to 4")
		c.MaxConcurrentRequests = 4
	}
	if c.Platform == "" {
		c.Platform = "Shopify"
	}

	// Brand
	if len(c.Brand.JunkWords) == 0 {
		c.Brand.JunkWords = defaultJunkWords()
	}
	if c.Brand.MinSegmentLen <= 0 {
		c.Brand.MinSegmentLen = 2
	}
	if c.Brand.MaxSegmentLen <= 0 {
		c.Brand.MaxSegmentLen = 60
	}
	if c.Brand.MinSegmentLen > c.Brand.MaxSegmentLen {
		return warnings, fmt.Errorf("%w: brand min_segment_len (%d) > max_segment_len (%d)",
			utils.ErrConfigValidation, c.Brand.MinSegmentLen, c.Brand.MaxSegmentLen)
	}

	// Catalog
	if c.Catalog.CollectionPath == "" {
		c.Catalog.CollectionPath = "/collections/all"
	}
	if len(c.Catalog.Selectors) == 0 {
		c.Catalog.Selectors = defaultCatalogSelectors()
	}
	if c.Catalog.PageMultiplier <= 0 {
		c.Catalog.PageMultiplier = 3
	}
	if c.Catalog.MaxEstimate <= 0 {
		c.Catalog.MaxEstimate = 1000
	}
	if c.Catalog.HomepageCap <= 0 {
		c.Catalog.HomepageCap = 500
	}

	// Contacts
	if c.Contacts.MaxPages <= 0 {
		c.Contacts.MaxPages = 10
	}
	if c.Contacts.PageDelay <= 0 {
		c.Contacts.PageDelay = 600 * time.Millisecond
	}
	if len(c.Contacts.EmailBlocklist) == 0 {
		c.Contacts.EmailBlocklist = defaultEmailBlocklist()
	}
	if c.Contacts.MinPhoneDigits <= 0 {
		c.Contacts.MinPhoneDigits = 8
	}

	// Discovery
	if len(c.Discovery.Keywords) == 0 {
		c.Discovery.Keywords = defaultDiscoveryKeywords()
	}
	if len(c.Discovery.StaticPaths) == 0 {
		c.Discovery.StaticPaths = defaultStaticPaths()
	}

	// VAT
	if c.VAT.MaxPages <= 0 {
		c.VAT.MaxPages = 8
	}
	if c.VAT.PageDelay <= 0 {
		c.VAT.PageDelay = 400 * time.Millisecond
	}

	// Revenue
	if len(c.Revenue.Keywords) == 0 {
		c.Revenue.Keywords = defaultRevenueKeywords()
	}
	if len(c.Revenue.TierBreakpoints) == 0 {
		c.Revenue.TierBreakpoints = defaultTierBreakpoints()
	}
	if len(c.Revenue.TierBreakpoints) != 5 {
		return warnings, fmt.Errorf("%w: revenue tier_breakpoints needs exactly 5 values (got %d)",
			utils.ErrConfigValidation, len(c.Revenue.TierBreakpoints))
	}
	if !sort.Float64sAreSorted(c.Revenue.TierBreakpoints) {
		return warnings, fmt.Errorf("%w: revenue tier_breakpoints must be ascending",
			utils.ErrConfigValidation)
	}

	// Scoring
	if c.Scoring.Weights == (ScoreWeights{}) {
		c.Scoring.Weights = ScoreWeights{Catalog: 1, Search: 1, UX: 1, Legal: 1, Tier: 1}
	}
	if s := c.Scoring.Weights.Sum(); s <= 0 || s > MaxScore {
		return warnings, fmt.Errorf("%w: scoring weights must sum to (0,%d], got %d",
			utils.ErrConfigValidation, MaxScore, s)
	}
	if c.Scoring.CatalogMinSKU <= 0 {
		c.Scoring.CatalogMinSKU = 200
	}
	if c.Scoring.TierFloor == "" {
		c.Scoring.TierFloor = string(models.TierSmall)
	}
	if !models.SizeTier(c.Scoring.TierFloor).IsValid() {
		return warnings, fmt.Errorf("%w: scoring tier_floor '%s' is not a known size tier",
			utils.ErrConfigValidation, c.Scoring.TierFloor)
	}
	if c.Scoring.HighPriorityAbove == nil {
		midpoint := 2
		c.Scoring.HighPriorityAbove = &midpoint
	} else if *c.Scoring.HighPriorityAbove < 0 || *c.Scoring.HighPriorityAbove > MaxScore {
		warnings = append(warnings, fmt.Sprintf(
			"scoring high_priority_above %d is outside [0,%d], defaulting to 2",
			*c.Scoring.HighPriorityAbove, MaxScore))
		*c.Scoring.HighPriorityAbove = 2
	}

	// Serp
	if c.Serp.Endpoint == "" {
		c.Serp.Endpoint = "https://serpapi.com/search.json"
	}
	if c.Serp.GoogleDomain == "" {
		c.Serp.GoogleDomain = "google.it"
	}
	if c.Serp.Location == "" {
		c.Serp.Location = "Italy"
	}
	if c.Serp.HL == "" {
		c.Serp.HL = "it"
	}
	if c.Serp.GL == "" {
		c.Serp.GL = "it"
	}
	if c.Serp.Num <= 0 {
		c.Serp.Num = 10
	}

	// HTTP client settings
	if c.HTTPClientSettings.MaxIdleConns <= 0 {
		c.HTTPClientSettings.MaxIdleConns = 100
	}
	if c.HTTPClientSettings.MaxIdleConnsPerHost <= 0 {
		c.HTTPClientSettings.MaxIdleConnsPerHost = 4
	}
	if c.HTTPClientSettings.IdleConnTimeout <= 0 {
		c.HTTPClientSettings.IdleConnTimeout = 90 * time.Second
	}
	if c.HTTPClientSettings.TLSHandshakeTimeout <= 0 {
		c.HTTPClientSettings.TLSHandshakeTimeout = 10 * time.Second
	}
	if c.HTTPClientSettings.ExpectContinueTimeout <= 0 {
		c.HTTPClientSettings.ExpectContinueTimeout = 1 * time.Second
	}
	if c.HTTPClientSettings.DialerTimeout <= 0 {
		c.HTTPClientSettings.DialerTimeout = 10 * time.Second
	}
	if c.HTTPClientSettings.DialerKeepAlive <= 0 {
		c.HTTPClientSettings.DialerKeepAlive = 30 * time.Second
	}

	return warnings, nil
}
