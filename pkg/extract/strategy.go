package extract

import (
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

// Strategy is one contact-extraction heuristic: a pure function from a
// parsed page to a partial ContactBundle. Strategies are cheap and
// complementary, so every strategy runs on every page regardless of earlier
// hits; the orchestrating extractor unions the results.
type Strategy func(page *parse.ParsedPage) models.ContactBundle

// RunStrategies applies every strategy to the page and unions the partial
// results into bundle.
func RunStrategies(page *parse.ParsedPage, strategies []Strategy, bundle models.ContactBundle) {
	for _, strategy := range strategies {
		bundle.Merge(strategy(page))
	}
}
