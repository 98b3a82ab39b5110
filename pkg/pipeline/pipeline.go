// Package pipeline drives the per-store scan: resolve, dedup, extract,
// score, persist. Stores are processed sequentially with a fixed pause
// between them; a store that fails leaves no output record but stays
// claimed so later input rows cannot retry it.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/extract"
	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
	"github.com/LOOKALIKE-AI/Leads/pkg/revenue"
	"github.com/LOOKALIKE-AI/Leads/pkg/score"
	"github.com/LOOKALIKE-AI/Leads/pkg/serp"
	"github.com/LOOKALIKE-AI/Leads/pkg/storage"
)

// RunSummary contains the result of scanning one batch of candidates
type RunSummary struct {
	RunID     string
	Total     int
	Processed int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// Pipeline owns the shared collaborators and walks candidates through the
// scan stages. One Pipeline per run; not safe for concurrent Run calls.
type Pipeline struct {
	cfg *config.AppConfig
	log *logrus.Logger

	fetcher  *fetch.Fetcher
	limiter  *fetch.RateLimiter
	resolver *parse.Resolver
	catalog  *extract.CatalogEstimator
	contacts *extract.ContactExtractor
	vat      *extract.VATExtractor
	revenue  *revenue.Resolver
	scorer   *score.Scorer

	registry *DomainRegistry
	store    storage.LeadStore // nil disables cross-run persistence
	runID    string
}

// NewPipeline wires a Pipeline from pre-built collaborators. The store may
// be nil; revenueResolver handles its own nil-provider degradation.
func NewPipeline(
	cfg *config.AppConfig,
	fetcher *fetch.Fetcher,
	limiter *fetch.RateLimiter,
	resolver *parse.Resolver,
	catalog *extract.CatalogEstimator,
	contacts *extract.ContactExtractor,
	vat *extract.VATExtractor,
	revenueResolver *revenue.Resolver,
	scorer *score.Scorer,
	store storage.LeadStore,
	log *logrus.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		log:      log,
		fetcher:  fetcher,
		limiter:  limiter,
		resolver: resolver,
		catalog:  catalog,
		contacts: contacts,
		vat:      vat,
		revenue:  revenueResolver,
		scorer:   scorer,
		registry: NewDomainRegistry(),
		store:    store,
		runID:    uuid.NewString(),
	}
}

// Run scans every candidate in order and returns the scored leads. Exactly
// one record per distinct resolved domain; candidates that re-resolve to a
// claimed domain are skipped silently. Cancellation stops between stores,
// never mid-store.
func (p *Pipeline) Run(ctx context.Context, candidates []models.StoreCandidate) ([]models.ScoredLead, RunSummary) {
	startTime := time.Now()
	summary := RunSummary{RunID: p.runID, Total: len(candidates)}
	leads := make([]models.ScoredLead, 0, len(candidates))

	p.log.WithFields(logrus.Fields{
		"run_id": p.runID, "candidates": len(candidates),
	}).Info("Starting lead scan")

	for i, candidate := range candidates {
		if ctx.Err() != nil {
			p.log.Warnf("Run cancelled after %d/%d candidates: %v", i, len(candidates), ctx.Err())
			break
		}
		if candidate.RawURL == "" {
			summary.Skipped++
			continue
		}

		// Pause between stores, not before the first one.
		if i > 0 {
			select {
			case <-time.After(p.cfg.StorePacing):
			case <-ctx.Done():
			}
			if ctx.Err() != nil {
				continue
			}
		}

		lead, processed := p.scanCandidate(ctx, candidate)
		switch {
		case !processed:
			summary.Skipped++
		case lead == nil:
			summary.Failed++
		default:
			summary.Processed++
			leads = append(leads, *lead)
		}
	}

	summary.Duration = time.Since(startTime)
	p.log.WithFields(logrus.Fields{
		"run_id":    p.runID,
		"processed": summary.Processed,
		"skipped":   summary.Skipped,
		"failed":    summary.Failed,
		"duration":  summary.Duration.Round(time.Millisecond),
	}).Info("Lead scan finished")
	return leads, summary
}

// scanCandidate resolves one input row and processes its store unless the
// domain is already claimed. processed is false for skips (duplicate domain,
// prior-run record); a nil lead with processed true means the store failed.
func (p *Pipeline) scanCandidate(ctx context.Context, candidate models.StoreCandidate) (lead *models.ScoredLead, processed bool) {
	resolved := p.resolver.Resolve(ctx, candidate.RawURL)
	domain := resolved.Domain
	if domain == "" {
		// Resolution failed outright; fall back to the input's host so the
		// raw URL still cannot be retried within this run.
		domain = parse.Domain(parse.EnsureScheme(candidate.RawURL))
	}
	storeLog := p.log.WithFields(logrus.Fields{"domain": domain, "input_url": candidate.RawURL})

	if !p.registry.MarkSeen(domain) {
		storeLog.Debug("Domain already claimed this run, skipping")
		return nil, false
	}

	if p.store != nil {
		status, _, err := p.store.CheckDomain(domain)
		if err != nil {
			storeLog.Warnf("Domain status check failed, treating as unseen: %v", err)
		} else if status == models.DomainStatusSuccess {
			storeLog.Info("Domain already processed in a previous run, skipping")
			return nil, false
		}
		if _, err := p.store.MarkDomainPending(domain); err != nil {
			storeLog.Warnf("Failed to mark domain pending: %v", err)
		}
	}

	lead = p.processStore(ctx, candidate, resolved, domain, storeLog)
	p.persist(domain, lead, storeLog)
	return lead, true
}

// processStore runs every extractor against one store and assembles the
// record. Returns nil only when the homepage itself is unreachable; any
// individual extractor coming back empty still yields a record.
func (p *Pipeline) processStore(
	ctx context.Context,
	candidate models.StoreCandidate,
	resolved models.ResolvedStore,
	domain string,
	storeLog *logrus.Entry,
) *models.ScoredLead {
	baseURL := resolved.BaseURL
	if baseURL == "" {
		baseURL = parse.BaseURL(parse.EnsureScheme(candidate.RawURL))
	}

	host := parse.Domain(baseURL)
	p.limiter.ApplyDelay(host, 0)
	res := p.fetcher.Get(ctx, resolved.FinalURL, fetch.ClassPrimary)
	p.limiter.UpdateLastRequestTime(host)
	if !res.OK() {
		storeLog.Warnf("Homepage unreachable, store dropped: %v", res.Err)
		return nil
	}

	homepage, err := parse.ParsePage(res.Body, baseURL)
	if err != nil {
		storeLog.Warnf("Homepage parse failed, store dropped: %v", err)
		return nil
	}

	signals := models.BusinessSignals{
		Brand:          extract.Brand(homepage, baseURL, p.cfg.Brand),
		SKUEstimate:    p.catalog.Estimate(ctx, baseURL, homepage),
		HasTextSearch:  extract.HasTextSearch(homepage),
		HasRefinedUX:   extract.HasRefinedUX(homepage),
		LegalStructure: extract.LegalStructureDetected(homepage.Text),
	}

	contacts := p.contacts.Extract(ctx, homepage)
	signals.VATID = p.vat.Extract(ctx, homepage)
	if signals.VATID != "" {
		signals.RevenueEUR = p.revenue.Resolve(ctx, signals.VATID)
	}
	signals.SizeTier = revenue.TierFor(signals.RevenueEUR, p.cfg.Revenue.TierBreakpoints)

	leadScore := p.scorer.Score(signals)
	lead := &models.ScoredLead{
		BusinessSignals: signals,
		Domain:          domain,
		BaseURL:         baseURL,
		Category:        candidate.Category,
		Platform:        p.cfg.Platform,
		Email:           contacts.Email(),
		Phone:           contacts.Phone(),
		Score:           leadScore,
		Priority:        p.scorer.PriorityFor(leadScore),
		RunID:           p.runID,
		ProcessedAt:     time.Now().UTC(),
	}

	storeLog.WithFields(logrus.Fields{
		"brand": lead.Brand, "sku_estimate": lead.SKUEstimate,
		"vat": lead.VATID, "tier": lead.SizeTier,
		"score": lead.Score, "priority": lead.Priority,
	}).Info("Store processed")
	return lead
}

// persist records the outcome in the lead store, when one is attached.
func (p *Pipeline) persist(domain string, lead *models.ScoredLead, storeLog *logrus.Entry) {
	if p.store == nil || domain == "" {
		return
	}

	entry := &models.LeadDBEntry{
		Domain:      domain,
		RunID:       p.runID,
		LastAttempt: time.Now().UTC(),
	}
	if lead != nil {
		entry.Status = models.DomainStatusSuccess
		entry.ProcessedAt = lead.ProcessedAt
		entry.Lead = lead
	} else {
		entry.Status = models.DomainStatusFailure
	}

	if err := p.store.UpdateDomain(domain, entry); err != nil {
		storeLog.Errorf("Failed to persist domain outcome: %v", err)
	}
}

// DiscoverCandidates runs configured SERP discovery queries and returns the
// candidates they surface. Separate from Run so callers can mix discovered
// and file-sourced candidates before scanning.
func DiscoverCandidates(ctx context.Context, provider serp.Provider, cfg config.SerpConfig, log *logrus.Logger) []models.StoreCandidate {
	source := serp.NewCandidateSource(provider, cfg.DiscoveryQueries, log)
	return source.Discover(ctx)
}
