// Package revenue resolves a store's annual revenue through the search
// collaborator and classifies it into a coarse size tier.
package revenue

import (
	"context"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/serp"
)

var digitsOnlyRe = regexp.MustCompile(`\D`)

// Resolver looks up revenue by tax id: one SERP query combining the VAT
// digits with the revenue keywords, then a snippet scan for the first
// positive amount.
type Resolver struct {
	provider serp.Provider
	cfg      config.RevenueConfig
	log      *logrus.Logger
}

// NewResolver creates a Resolver. A nil provider disables lookup entirely
// (every store resolves to unknown).
func NewResolver(provider serp.Provider, cfg config.RevenueConfig, log *logrus.Logger) *Resolver {
	return &Resolver{provider: provider, cfg: cfg, log: log}
}

// Resolve returns the first positive revenue figure parsed from the result
// snippets, or nil when the collaborator is unavailable or nothing parses.
// Never returns an error: a degraded collaborator means "unknown", not
// failure.
func (r *Resolver) Resolve(ctx context.Context, vatID string) *float64 {
	if r == nil || r.provider == nil {
		return nil
	}
	digits := digitsOnlyRe.ReplaceAllString(vatID, "")
	if digits == "" {
		return nil
	}

	query := digits + " " + strings.Join(r.cfg.Keywords, " OR ")
	results, err := r.provider.Search(ctx, query)
	if err != nil {
		r.log.WithField("vat", digits).Debugf("Revenue lookup unavailable: %v", err)
		return nil
	}

	for _, result := range results {
		if v, ok := r.scanSnippet(result.Snippet); ok {
			r.log.WithFields(logrus.Fields{"vat": digits, "revenue_eur": v}).
				Debug("Revenue resolved from snippet")
			return &v
		}
	}
	return nil
}

// scanSnippet looks for a revenue keyword and parses the first positive
// amount that follows it.
func (r *Resolver) scanSnippet(snippet string) (float64, bool) {
	if snippet == "" {
		return 0, false
	}
	// Search and slice the same lowercased string: lowercasing can change a
	// rune's byte length, so an index into lower is not valid in snippet.
	lower := strings.ToLower(snippet)

	for _, keyword := range r.cfg.Keywords {
		lowerKeyword := strings.ToLower(keyword)
		idx := strings.Index(lower, lowerKeyword)
		if idx < 0 {
			continue
		}
		rest := lower[idx+len(lowerKeyword):]
		for _, m := range amountRe.FindAllStringSubmatch(rest, -1) {
			if m[1] == "" {
				continue
			}
			if yearLike(m[1], m[2]) {
				continue
			}
			if v, ok := ParseAmount(m[0]); ok && v > 0 {
				return v, true
			}
		}
	}
	return 0, false
}

// yearLike filters bare 4-digit tokens in the plausible-year range, which
// snippets like "fatturato 2023: ..." put before the actual figure.
func yearLike(number, suffix string) bool {
	if suffix != "" {
		return false
	}
	if len(number) != 4 || strings.ContainsAny(number, ".,") {
		return false
	}
	return number >= "1900" && number <= "2100"
}

// TierFor maps a revenue figure onto the configured breakpoints: the highest
// breakpoint not exceeding the figure decides the tier. Unknown revenue is
// TierUnknown.
func TierFor(revenueEUR *float64, breakpoints []float64) models.SizeTier {
	if revenueEUR == nil || len(breakpoints) != 5 {
		return models.TierUnknown
	}
	tiers := []models.SizeTier{
		models.TierMicro, models.TierSmall, models.TierMedium,
		models.TierLarge, models.TierEnterprise,
	}
	tier := models.TierMicro
	for i, bp := range breakpoints {
		if *revenueEUR >= bp {
			tier = tiers[i]
		}
	}
	return tier
}
