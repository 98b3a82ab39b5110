package score

import (
	"testing"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
)

func defaultScoring(t *testing.T) config.ScoringConfig {
	t.Helper()
	cfg := &config.AppConfig{}
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("config validation: %v", err)
	}
	return cfg.Scoring
}

func TestScoreBounds(t *testing.T) {
	scorer := NewScorer(defaultScoring(t))

	if got := scorer.Score(models.BusinessSignals{}); got != 0 {
		t.Errorf("empty signals score = %d, want 0", got)
	}

	all := models.BusinessSignals{
		SKUEstimate:    1000,
		HasTextSearch:  true,
		HasRefinedUX:   true,
		LegalStructure: true,
		SizeTier:       models.TierEnterprise,
	}
	if got := scorer.Score(all); got != config.MaxScore {
		t.Errorf("all signals score = %d, want %d", got, config.MaxScore)
	}
}

func TestScoreBinaryContributions(t *testing.T) {
	scorer := NewScorer(defaultScoring(t))
	tests := []struct {
		name string
		sig  models.BusinessSignals
		want int
	}{
		{"catalog at threshold", models.BusinessSignals{SKUEstimate: 200}, 1},
		{"catalog below threshold", models.BusinessSignals{SKUEstimate: 199}, 0},
		{"tier at floor", models.BusinessSignals{SizeTier: models.TierSmall}, 1},
		{"tier below floor", models.BusinessSignals{SizeTier: models.TierMicro}, 0},
		{"unknown tier earns nothing", models.BusinessSignals{SizeTier: models.TierUnknown}, 0},
		{"search and ux", models.BusinessSignals{HasTextSearch: true, HasRefinedUX: true}, 2},
		{"legal only", models.BusinessSignals{LegalStructure: true}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := scorer.Score(tc.sig); got != tc.want {
				t.Errorf("Score = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPriorityStrictlyAboveMidpoint(t *testing.T) {
	scorer := NewScorer(defaultScoring(t))
	wants := map[int]models.Priority{
		0: models.PriorityLow,
		1: models.PriorityLow,
		2: models.PriorityLow, // equal to the midpoint stays LOW
		3: models.PriorityHigh,
		4: models.PriorityHigh,
		5: models.PriorityHigh,
	}
	for score, want := range wants {
		if got := scorer.PriorityFor(score); got != want {
			t.Errorf("PriorityFor(%d) = %v, want %v", score, got, want)
		}
	}
}

func TestPriorityZeroMidpoint(t *testing.T) {
	midpoint := 0
	cfg := defaultScoring(t)
	cfg.HighPriorityAbove = &midpoint
	scorer := NewScorer(cfg)

	if got := scorer.PriorityFor(0); got != models.PriorityLow {
		t.Errorf("PriorityFor(0) = %v, want LOW", got)
	}
	if got := scorer.PriorityFor(1); got != models.PriorityHigh {
		t.Errorf("PriorityFor(1) = %v, want HIGH with a zero midpoint", got)
	}
}

func TestScoreCustomWeights(t *testing.T) {
	cfg := defaultScoring(t)
	cfg.Weights = config.ScoreWeights{Catalog: 2, Search: 1, UX: 1, Legal: 1, Tier: 0}
	scorer := NewScorer(cfg)

	sig := models.BusinessSignals{SKUEstimate: 500, SizeTier: models.TierEnterprise}
	if got := scorer.Score(sig); got != 2 {
		t.Errorf("Score = %d, want catalog weight only", got)
	}
}
