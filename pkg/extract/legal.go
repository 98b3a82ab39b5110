package extract

import (
	"context"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/crawl"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

var (
	// Company-suffix tokens: Italian forms (s.r.l., s.p.a., s.a.s., s.n.c.,
	// unipersonale, cooperative) plus generic corporate suffixes.
	legalStructureRe = regexp.MustCompile(`(?i)\b(` +
		`s\.?\s*r\.?\s*l\.?|` +
		`s\.?\s*p\.?\s*a\.?|` +
		`s\.?\s*a\.?\s*s\.?|` +
		`s\.?\s*n\.?\s*c\.?|` +
		`unipersonale|` +
		`societ[aà]\s+cooperativa|coop\.?|` +
		`ltd|limited|llc|inc\.?|incorporated|corp\.?|gmbh|pty` +
		`)\b`)

	// Partita IVA: 11 digits, optionally prefixed with the IT country code.
	vatRe = regexp.MustCompile(`(?i)\b(?:IT\s*)?(\d{11})\b`)
)

// LegalStructureDetected reports whether the visible text names a company
// legal form.
func LegalStructureDetected(text string) bool {
	if text == "" {
		return false
	}
	return legalStructureRe.MatchString(text)
}

// VATNumbers returns every distinct 11-digit VAT id in the text, in order of
// first appearance, country prefix stripped.
func VATNumbers(text string) []string {
	if text == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, m := range vatRe.FindAllStringSubmatch(text, -1) {
		v := m[1]
		if len(v) != 11 {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// FirstVAT returns the first VAT id in the text, or "".
func FirstVAT(text string) string {
	if vats := VATNumbers(text); len(vats) > 0 {
		return vats[0]
	}
	return ""
}

// VATExtractor finds a store's tax id: homepage first, then the discovery
// queue. Single-value contract: first 11-digit match wins, the crawl stops
// immediately, and nothing is merged across pages.
type VATExtractor struct {
	crawler   *crawl.Crawler
	discovery config.DiscoveryConfig
	cfg       config.VATConfig
	log       *logrus.Logger
}

// NewVATExtractor creates a VATExtractor
func NewVATExtractor(crawler *crawl.Crawler, discovery config.DiscoveryConfig, cfg config.VATConfig, log *logrus.Logger) *VATExtractor {
	return &VATExtractor{crawler: crawler, discovery: discovery, cfg: cfg, log: log}
}

// Extract returns the store's VAT id or "".
func (e *VATExtractor) Extract(ctx context.Context, homepage *parse.ParsedPage) string {
	if vat := FirstVAT(homepage.Text); vat != "" {
		return vat
	}

	queue := DiscoverQueue(homepage, homepage.BaseURL, e.discovery, e.cfg.MaxPages)
	e.log.WithFields(logrus.Fields{
		"base_url": homepage.BaseURL, "queue_len": len(queue),
	}).Debug("VAT not on homepage, crawling secondary pages")

	found := ""
	e.crawler.Crawl(ctx, queue, e.cfg.PageDelay, func(page *parse.ParsedPage) bool {
		if vat := FirstVAT(page.Text); vat != "" {
			found = vat
			return true
		}
		return false
	})
	return found
}
