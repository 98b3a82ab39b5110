package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/crawl"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Tuned for Italian numbering: optional +39/0039 prefix, then a
	// 0-prefixed area code or 3-4 digit mobile prefix, then grouped digits.
	phoneRe = regexp.MustCompile(
		`(?:(?:\+|00)\s?39\s?)?` +
			`(?:0\d{1,3}|\d{3,4})` +
			`[\s./-]?\d{2,4}` +
			`(?:[\s./-]?\d{2,4}){1,3}`)

	// "user (at) domain (dot) tld" style obfuscation, loose and strict variants.
	obfuscatedEmailRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)([A-Za-z0-9._%+-]+)\s*\[?\(?\s*at\s*\)?\]?\s*([A-Za-z0-9.-]+)\s*\[?\(?\s*dot\s*\)?\]?\s*([A-Za-z]{2,})`),
		regexp.MustCompile(`(?i)([A-Za-z0-9._%+-]+)\s*\(at\)\s*([A-Za-z0-9.-]+)\s*\(dot\)\s*([A-Za-z]{2,})`),
	}

	nonDigitRe = regexp.MustCompile(`\D`)
	wsRunRe    = regexp.MustCompile(`\s+`)
)

// NormalizePhone collapses whitespace and strips trailing punctuation.
// Idempotent: normalizing a normalized value yields itself.
func NormalizePhone(p string) string {
	p = strings.TrimSpace(wsRunRe.ReplaceAllString(p, " "))
	return strings.TrimRight(p, ".,;:")
}

// ContactStrategies builds the four extraction strategies in their fixed
// precedence: structured links, free text, JSON-LD blocks, de-obfuscation.
type ContactStrategies struct {
	cfg config.ContactConfig
}

// NewContactStrategies creates the strategy set for the given tuning.
func NewContactStrategies(cfg config.ContactConfig) *ContactStrategies {
	return &ContactStrategies{cfg: cfg}
}

// All returns the strategies in precedence order.
func (s *ContactStrategies) All() []Strategy {
	return []Strategy{s.mailtoTel, s.freeText, s.jsonLD, s.obfuscated}
}

// mailtoTel scans anchors with mailto:/tel: schemes. Highest-confidence
// source: the merchant published the channel explicitly. Scheme match is
// case-insensitive; address case is preserved.
func (s *ContactStrategies) mailtoTel(page *parse.ParsedPage) models.ContactBundle {
	bundle := models.NewContactBundle()
	page.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		lower := strings.ToLower(href)
		switch {
		case strings.HasPrefix(lower, "mailto:"):
			addr := href[len("mailto:"):]
			if q := strings.IndexByte(addr, '?'); q >= 0 {
				addr = addr[:q]
			}
			bundle.Emails.Add(strings.TrimSpace(addr))
		case strings.HasPrefix(lower, "tel:"):
			bundle.Phones.Add(NormalizePhone(href[len("tel:"):]))
		}
	})
	return bundle
}

// freeText applies the email and phone patterns to the visible text. Emails
// matching the platform/analytics blocklist are dropped; phone candidates
// need the configured minimum digit count.
func (s *ContactStrategies) freeText(page *parse.ParsedPage) models.ContactBundle {
	bundle := models.NewContactBundle()

	for _, e := range emailRe.FindAllString(page.Text, -1) {
		if s.blocked(e) {
			continue
		}
		bundle.Emails.Add(e)
	}

	for _, p := range phoneRe.FindAllString(page.Text, -1) {
		normalized := NormalizePhone(p)
		if len(nonDigitRe.ReplaceAllString(normalized, "")) >= s.cfg.MinPhoneDigits {
			bundle.Phones.Add(normalized)
		}
	}

	return bundle
}

// jsonLD regex-scans embedded structured-data script blocks. Merchants often
// publish contact points only in schema.org Organization markup.
func (s *ContactStrategies) jsonLD(page *parse.ParsedPage) models.ContactBundle {
	bundle := models.NewContactBundle()
	page.Doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		raw := strings.TrimSpace(script.Text())
		if raw == "" {
			return
		}
		for _, e := range emailRe.FindAllString(raw, -1) {
			bundle.Emails.Add(e)
		}
		for _, p := range phoneRe.FindAllString(raw, -1) {
			bundle.Phones.Add(NormalizePhone(p))
		}
	})
	return bundle
}

// obfuscated reconstructs "user (at) domain (dot) tld" spellings from the
// raw HTML.
func (s *ContactStrategies) obfuscated(page *parse.ParsedPage) models.ContactBundle {
	bundle := models.NewContactBundle()
	for _, re := range obfuscatedEmailRes {
		for _, m := range re.FindAllStringSubmatch(page.HTML, -1) {
			bundle.Emails.Add(m[1] + "@" + m[2] + "." + m[3])
		}
	}
	return bundle
}

func (s *ContactStrategies) blocked(email string) bool {
	lower := strings.ToLower(email)
	for _, b := range s.cfg.EmailBlocklist {
		if strings.Contains(lower, b) {
			return true
		}
	}
	return false
}

// ContactExtractor recovers contact channels for one store: the four
// strategies over the homepage, then a bounded secondary-page crawl to fill
// whichever channel is still empty.
type ContactExtractor struct {
	strategies []Strategy
	crawler    *crawl.Crawler
	discovery  config.DiscoveryConfig
	cfg        config.ContactConfig
	log        *logrus.Logger
}

// NewContactExtractor creates a ContactExtractor
func NewContactExtractor(
	strategies []Strategy,
	crawler *crawl.Crawler,
	discovery config.DiscoveryConfig,
	cfg config.ContactConfig,
	log *logrus.Logger,
) *ContactExtractor {
	return &ContactExtractor{
		strategies: strategies,
		crawler:    crawler,
		discovery:  discovery,
		cfg:        cfg,
		log:        log,
	}
}

// Extract runs the homepage pass, and when either channel is still empty,
// crawls the discovery queue sequentially, stopping as soon as both channels
// are non-empty. The bundle may come back partially populated.
func (e *ContactExtractor) Extract(ctx context.Context, homepage *parse.ParsedPage) models.ContactBundle {
	bundle := models.NewContactBundle()
	RunStrategies(homepage, e.strategies, bundle)
	if bundle.Complete() {
		return bundle
	}

	queue := DiscoverQueue(homepage, homepage.BaseURL, e.discovery, e.cfg.MaxPages)
	e.log.WithFields(logrus.Fields{
		"base_url": homepage.BaseURL, "queue_len": len(queue),
		"emails": len(bundle.Emails), "phones": len(bundle.Phones),
	}).Debug("Homepage pass incomplete, crawling secondary pages")

	e.crawler.Crawl(ctx, queue, e.cfg.PageDelay, func(page *parse.ParsedPage) bool {
		RunStrategies(page, e.strategies, bundle)
		return bundle.Complete()
	})
	return bundle
}
