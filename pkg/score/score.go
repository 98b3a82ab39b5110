// Package score turns extracted business signals into a bounded ordinal
// lead score. Pure arithmetic over the configured weight table; extractors
// are never consulted, so weight tables swap without touching them.
package score

import (
	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
)

// Scorer applies one weight table. Contributions are binary: a signal earns
// its full weight or nothing.
type Scorer struct {
	cfg config.ScoringConfig
}

// NewScorer creates a Scorer
func NewScorer(cfg config.ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the weighted sum for the signals. The result is always in
// [0, MaxScore]: Validate rejects weight tables summing past the bound.
func (s *Scorer) Score(sig models.BusinessSignals) int {
	w := s.cfg.Weights
	total := 0
	if sig.SKUEstimate >= s.cfg.CatalogMinSKU {
		total += w.Catalog
	}
	if sig.HasTextSearch {
		total += w.Search
	}
	if sig.HasRefinedUX {
		total += w.UX
	}
	if sig.LegalStructure {
		total += w.Legal
	}
	if sig.SizeTier.AtLeast(models.SizeTier(s.cfg.TierFloor)) {
		total += w.Tier
	}
	return total
}

// PriorityFor maps a score to its label: HIGH iff the score strictly exceeds
// the configured midpoint. An unset midpoint falls back to 2, matching the
// config default.
func (s *Scorer) PriorityFor(score int) models.Priority {
	midpoint := 2
	if s.cfg.HighPriorityAbove != nil {
		midpoint = *s.cfg.HighPriorityAbove
	}
	if score > midpoint {
		return models.PriorityHigh
	}
	return models.PriorityLow
}
