package pipeline

import "sync"

// DomainRegistry tracks which store domains have been claimed during a run.
// A domain is claimed exactly once no matter how many input rows resolve to
// it; later rows are skipped without any network traffic.
type DomainRegistry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDomainRegistry creates an empty registry.
func NewDomainRegistry() *DomainRegistry {
	return &DomainRegistry{seen: make(map[string]struct{})}
}

// MarkSeen claims a domain. Returns true if the domain was newly claimed,
// false if it was already present. Empty domains are never claimed.
func (r *DomainRegistry) MarkSeen(domain string) bool {
	if domain == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[domain]; ok {
		return false
	}
	r.seen[domain] = struct{}{}
	return true
}

// Seen reports whether a domain has been claimed.
func (r *DomainRegistry) Seen(domain string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.seen[domain]
	return ok
}

// Len returns the number of claimed domains.
func (r *DomainRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.seen)
}
