package serp

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
)

// CandidateSource turns configured discovery queries (typically
// site:myshopify.com category probes) into StoreCandidates.
type CandidateSource struct {
	provider Provider
	queries  []config.DiscoveryQuery
	log      *logrus.Logger
}

// NewCandidateSource creates a CandidateSource
func NewCandidateSource(provider Provider, queries []config.DiscoveryQuery, log *logrus.Logger) *CandidateSource {
	return &CandidateSource{provider: provider, queries: queries, log: log}
}

// Discover runs every configured query and maps result links to candidates,
// tagged with the query's category. Links are deduplicated across queries; a
// failed query is logged and skipped, the remaining queries still run.
func (s *CandidateSource) Discover(ctx context.Context) []models.StoreCandidate {
	var candidates []models.StoreCandidate
	seen := make(map[string]struct{})

	for _, q := range s.queries {
		category := q.Category
		if category == "" {
			category = "other"
		}

		results, err := s.provider.Search(ctx, q.Query)
		if err != nil {
			s.log.WithField("query", q.Query).Warnf("Discovery query failed: %v", err)
			continue
		}

		added := 0
		for _, r := range results {
			if r.Link == "" {
				continue
			}
			if _, dup := seen[r.Link]; dup {
				continue
			}
			seen[r.Link] = struct{}{}
			candidates = append(candidates, models.StoreCandidate{RawURL: r.Link, Category: category})
			added++
		}
		s.log.WithFields(logrus.Fields{
			"query": q.Query, "category": category, "added": added,
		}).Info("Discovery query completed")
	}

	return candidates
}
