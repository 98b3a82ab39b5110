package storage

import (
	"context"
	"time"

	"github.com/LOOKALIKE-AI/Leads/pkg/models"
)

// DomainStore handles per-domain processing state across runs
type DomainStore interface {
	// MarkDomainPending marks a domain as claimed for processing (pending state)
	// Returns true if the domain was newly added, false if it already existed
	MarkDomainPending(domain string) (bool, error)

	// CheckDomain retrieves the status and details of a domain
	// Returns status (DomainStatusSuccess, DomainStatusFailure, DomainStatusPending,
	// DomainStatusNotFound, DomainStatusDBError), the LeadDBEntry if found and
	// parsed, and any error
	CheckDomain(domain string) (status models.DomainStatus, entry *models.LeadDBEntry, err error)

	// UpdateDomain records the outcome of processing a domain
	UpdateDomain(domain string, entry *models.LeadDBEntry) error
}

// StoreAdmin handles lifecycle and administrative operations
type StoreAdmin interface {
	// ProcessedCount returns an approximate count of all domains in the store
	ProcessedCount() (int, error)

	// CollectLeads scans the DB and returns every successfully scored lead.
	// Should be called only when exporting results from prior runs
	CollectLeads(ctx context.Context) ([]models.ScoredLead, error)

	// RunGC runs periodic garbage collection. Should be run in a goroutine
	RunGC(ctx context.Context, interval time.Duration)

	// Close cleanly closes the database connection
	Close() error
}

// LeadStore combines all store interfaces for components that need full access
type LeadStore interface {
	DomainStore
	StoreAdmin
}
