package models

// SizeTier is the coarse revenue-derived size classification of a store.
type SizeTier string

const (
	TierUnknown    SizeTier = "UNKNOWN"
	TierMicro      SizeTier = "MICRO"
	TierSmall      SizeTier = "SMALL"
	TierMedium     SizeTier = "MEDIUM"
	TierLarge      SizeTier = "LARGE"
	TierEnterprise SizeTier = "ENTERPRISE"
)

// String implements fmt.Stringer for logging
func (t SizeTier) String() string {
	if t == "" {
		return string(TierUnknown)
	}
	return string(t)
}

// Rank returns the ordinal position of the tier, with UNKNOWN below every
// known tier. Used for floor comparisons in scoring.
func (t SizeTier) Rank() int {
	switch t {
	case TierMicro:
		return 1
	case TierSmall:
		return 2
	case TierMedium:
		return 3
	case TierLarge:
		return 4
	case TierEnterprise:
		return 5
	}
	return 0
}

// AtLeast reports whether this tier is at or above the given floor.
func (t SizeTier) AtLeast(floor SizeTier) bool {
	return t.Rank() >= floor.Rank() && floor.Rank() > 0
}

// IsValid returns true if the tier is a known value
func (t SizeTier) IsValid() bool {
	switch t {
	case TierUnknown, TierMicro, TierSmall, TierMedium, TierLarge, TierEnterprise:
		return true
	}
	return false
}

// Priority is the binary lead-priority label derived from the score.
type Priority string

const (
	PriorityLow  Priority = "LOW"
	PriorityHigh Priority = "HIGH"
)

// String implements fmt.Stringer for logging
func (p Priority) String() string {
	if p == "" {
		return string(PriorityLow)
	}
	return string(p)
}

// DomainStatus represents the processing status of a store domain in the database
type DomainStatus string

const (
	DomainStatusUnset    DomainStatus = ""          // Zero value = unset/unknown
	DomainStatusPending  DomainStatus = "pending"   // Domain marked but not processed
	DomainStatusSuccess  DomainStatus = "success"   // Lead record produced
	DomainStatusFailure  DomainStatus = "failure"   // Homepage fetch failed, store dropped
	DomainStatusNotFound DomainStatus = "not_found" // Domain not in database
	DomainStatusDBError  DomainStatus = "db_error"  // Database error occurred
)

// String implements fmt.Stringer for logging
func (s DomainStatus) String() string {
	if s == "" {
		return "unset"
	}
	return string(s)
}

// IsValid returns true if the status is a known operational value
func (s DomainStatus) IsValid() bool {
	switch s {
	case DomainStatusPending, DomainStatusSuccess, DomainStatusFailure:
		return true
	}
	return false
}
