package models

import (
	"sort"
	"time"
)

// StoreCandidate is one input row: a raw storefront URL plus the category the
// discovery query that produced it was targeting. Immutable.
type StoreCandidate struct {
	RawURL   string
	Category string
}

// ResolvedStore is the canonical identity of a store after following
// redirects once. Domain is empty only when BaseURL is empty.
type ResolvedStore struct {
	Domain   string // host without a leading "www.", lower-cased
	BaseURL  string // scheme://host of the authoritative URL, no path
	FinalURL string // full post-redirect URL (or scheme-normalized input on failure)
}

// StringSet is a deduplicating set of normalized strings. Dedup is exact-match
// only; no fuzzy merging.
type StringSet map[string]struct{}

// NewStringSet creates a StringSet from the given values.
func NewStringSet(values ...string) StringSet {
	s := make(StringSet, len(values))
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value; empty strings are ignored.
func (s StringSet) Add(v string) {
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

// AddAll merges another set into this one.
func (s StringSet) AddAll(other StringSet) {
	for v := range other {
		s[v] = struct{}{}
	}
}

// Has reports whether the value is present.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// First returns the lexicographically smallest member, or "" when empty.
// Used as the deterministic tie-break when a single value must be chosen.
func (s StringSet) First() string {
	first := ""
	for v := range s {
		if first == "" || v < first {
			first = v
		}
	}
	return first
}

// ContactBundle accumulates contact channels discovered across the homepage
// and any crawled secondary pages.
type ContactBundle struct {
	Emails StringSet
	Phones StringSet
}

// NewContactBundle returns an empty bundle ready for accumulation.
func NewContactBundle() ContactBundle {
	return ContactBundle{Emails: make(StringSet), Phones: make(StringSet)}
}

// Merge unions another bundle into this one.
func (b ContactBundle) Merge(other ContactBundle) {
	b.Emails.AddAll(other.Emails)
	b.Phones.AddAll(other.Phones)
}

// Complete reports whether both channels have at least one entry. This is the
// sufficiency condition that stops secondary-page crawling.
func (b ContactBundle) Complete() bool {
	return len(b.Emails) > 0 && len(b.Phones) > 0
}

// Email returns the chosen email: lexicographically smallest, or "".
func (b ContactBundle) Email() string { return b.Emails.First() }

// Phone returns the chosen phone: lexicographically smallest, or "".
func (b ContactBundle) Phone() string { return b.Phones.First() }

// BusinessSignals holds the signals extracted for one store.
type BusinessSignals struct {
	Brand          string
	SKUEstimate    int
	HasTextSearch  bool
	HasRefinedUX   bool
	LegalStructure bool
	VATID          string   // 11-digit tax id, "" when not found
	RevenueEUR     *float64 // nil when the revenue collaborator found nothing
	SizeTier       SizeTier
}

// ScoredLead is the final output record for one store. Created once after all
// extractors complete; immutable thereafter.
type ScoredLead struct {
	BusinessSignals

	Domain      string    `json:"domain"`
	BaseURL     string    `json:"base_url"`
	Category    string    `json:"category"`
	Platform    string    `json:"platform"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Score       int       `json:"score"`
	Priority    Priority  `json:"priority"`
	RunID       string    `json:"run_id,omitempty"`
	ProcessedAt time.Time `json:"processed_at"`
}

// LeadDBEntry stores the result of processing a domain in the database.
type LeadDBEntry struct {
	Status      DomainStatus `json:"status"`                 // "success" or "failure"
	Domain      string       `json:"domain"`                 // Canonical store domain
	RunID       string       `json:"run_id,omitempty"`       // Batch run that produced this entry
	ProcessedAt time.Time    `json:"processed_at,omitempty"` // Timestamp of successful processing
	LastAttempt time.Time    `json:"last_attempt"`           // Timestamp of the last processing attempt
	Lead        *ScoredLead  `json:"lead,omitempty"`         // Full record (on success)
}
