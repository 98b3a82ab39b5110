package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

func TestValidateAppliesDefaults(t *testing.T) {
	cfg := &AppConfig{}
	warnings, err := cfg.Validate()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.UserAgent)
	assert.Equal(t, "it-IT,it;q=0.9,en;q=0.8", cfg.AcceptLanguage)
	assert.Equal(t, 15*time.Second, cfg.PrimaryTimeout)
	assert.Equal(t, 12*time.Second, cfg.SecondaryTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.StorePacing)
	assert.Equal(t, "Shopify", cfg.Platform)
	assert.Equal(t, "/collections/all", cfg.Catalog.CollectionPath)
	assert.Equal(t, 3, cfg.Catalog.PageMultiplier)
	assert.Equal(t, 1000, cfg.Catalog.MaxEstimate)
	assert.Equal(t, 500, cfg.Catalog.HomepageCap)
	assert.Equal(t, 10, cfg.Contacts.MaxPages)
	assert.Equal(t, 8, cfg.VAT.MaxPages)
	assert.Equal(t, 200, cfg.Scoring.CatalogMinSKU)
	require.NotNil(t, cfg.Scoring.HighPriorityAbove)
	assert.Equal(t, 2, *cfg.Scoring.HighPriorityAbove)
	assert.Equal(t, ScoreWeights{Catalog: 1, Search: 1, UX: 1, Legal: 1, Tier: 1}, cfg.Scoring.Weights)
	assert.Len(t, cfg.Revenue.TierBreakpoints, 5)
	assert.NotEmpty(t, cfg.Discovery.Keywords)
	assert.NotEmpty(t, cfg.Discovery.StaticPaths)

	// MaxConcurrentRequests default comes with a warning
	assert.Equal(t, 4, cfg.MaxConcurrentRequests)
	assert.NotEmpty(t, warnings)
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	cfg := &AppConfig{
		PrimaryTimeout:        20 * time.Second,
		MaxConcurrentRequests: 2,
		Platform:              "WooCommerce",
	}
	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 20*time.Second, cfg.PrimaryTimeout)
	assert.Equal(t, 2, cfg.MaxConcurrentRequests)
	assert.Equal(t, "WooCommerce", cfg.Platform)
}

func TestValidateKeepsZeroPriorityMidpoint(t *testing.T) {
	midpoint := 0
	cfg := &AppConfig{MaxConcurrentRequests: 2}
	cfg.Scoring.HighPriorityAbove = &midpoint

	warnings, err := cfg.Validate()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.NotNil(t, cfg.Scoring.HighPriorityAbove)
	assert.Equal(t, 0, *cfg.Scoring.HighPriorityAbove, "an explicit zero midpoint is a real setting, not unset")
}

func TestValidateRejectsBadBreakpoints(t *testing.T) {
	t.Run("wrong count", func(t *testing.T) {
		cfg := &AppConfig{}
		cfg.Revenue.TierBreakpoints = []float64{0, 1e6}
		_, err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrConfigValidation))
	})

	t.Run("not ascending", func(t *testing.T) {
		cfg := &AppConfig{}
		cfg.Revenue.TierBreakpoints = []float64{0, 1e7, 2e6, 5e7, 2.5e8}
		_, err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, utils.ErrConfigValidation))
	})
}

func TestValidateRejectsBadWeights(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Scoring.Weights = ScoreWeights{Catalog: 3, Search: 3}
	_, err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrConfigValidation))
}

func TestValidateRejectsUnknownTierFloor(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Scoring.TierFloor = "GIGANTIC"
	_, err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrConfigValidation))
}

func TestValidateRejectsInvertedSegmentLengths(t *testing.T) {
	cfg := &AppConfig{}
	cfg.Brand.MinSegmentLen = 80
	cfg.Brand.MaxSegmentLen = 10
	_, err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrConfigValidation))
}
