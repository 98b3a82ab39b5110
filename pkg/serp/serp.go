// Package serp defines the search-engine collaborator boundary: candidate
// discovery and revenue lookup both consume it, and tests substitute fakes.
package serp

import "context"

// Result is one organic search result. The core consumes only snippet (and
// link, for discovery); everything else is carried for logging.
type Result struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

// Provider abstracts a search engine that returns ordered organic results
// for a query. Implementations may use an API, scraping, or fixtures.
type Provider interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
