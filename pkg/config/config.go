package config

import "time"

// AppConfig holds the global application configuration
type AppConfig struct {
	UserAgent             string        `yaml:"user_agent,omitempty"`
	AcceptLanguage        string        `yaml:"accept_language,omitempty"`
	PrimaryTimeout        time.Duration `yaml:"primary_timeout,omitempty"`         // homepage resolution + homepage fetch
	SecondaryTimeout      time.Duration `yaml:"secondary_timeout,omitempty"`       // collection/contact/legal page fetches
	StorePacing           time.Duration `yaml:"store_pacing,omitempty"`            // sleep between stores
	MaxConcurrentRequests int           `yaml:"max_concurrent_requests,omitempty"` // global cap on outbound requests
	RespectRobots         bool          `yaml:"respect_robots,omitempty"`          // consult robots.txt before secondary crawls
	Platform              string        `yaml:"platform,omitempty"`                // platform label stamped on output records
	StateDir              string        `yaml:"state_dir,omitempty"`               // badger state dir; empty disables persistence

	Brand     BrandConfig      `yaml:"brand,omitempty"`
	Catalog   CatalogConfig    `yaml:"catalog,omitempty"`
	Contacts  ContactConfig    `yaml:"contacts,omitempty"`
	Discovery DiscoveryConfig  `yaml:"discovery,omitempty"`
	VAT       VATConfig        `yaml:"vat,omitempty"`
	Revenue   RevenueConfig    `yaml:"revenue,omitempty"`
	Scoring   ScoringConfig    `yaml:"scoring,omitempty"`
	Serp      SerpConfig       `yaml:"serp,omitempty"`
	HTTPClientSettings HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// BrandConfig tunes title-based brand extraction
type BrandConfig struct {
	JunkWords     []string `yaml:"junk_words,omitempty"`      // boilerplate terms that disqualify a title segment
	MinSegmentLen int      `yaml:"min_segment_len,omitempty"` // segments shorter than this are discarded
	MaxSegmentLen int      `yaml:"max_segment_len,omitempty"` // segments longer than this are discarded
}

// CatalogConfig tunes the catalog-size estimate
type CatalogConfig struct {
	CollectionPath string   `yaml:"collection_path,omitempty"` // conventional "all products" path
	Selectors      []string `yaml:"selectors,omitempty"`       // structural product selectors; max count wins
	PageMultiplier int      `yaml:"page_multiplier,omitempty"` // pagination correction applied to the max count
	MaxEstimate    int      `yaml:"max_estimate,omitempty"`    // cap on the corrected estimate
	HomepageCap    int      `yaml:"homepage_cap,omitempty"`    // cap on the homepage-anchor fallback count
}

// ContactConfig tunes contact extraction and its fallback crawl
type ContactConfig struct {
	MaxPages       int           `yaml:"max_pages,omitempty"`        // secondary-page crawl cap
	PageDelay      time.Duration `yaml:"page_delay,omitempty"`       // pause before each secondary fetch
	EmailBlocklist []string      `yaml:"email_blocklist,omitempty"`  // substrings disqualifying free-text email matches
	MinPhoneDigits int           `yaml:"min_phone_digits,omitempty"` // minimum digits for a phone candidate
}

// DiscoveryConfig drives secondary-page discovery shared by contact and VAT
// extraction: in-page links matching Keywords come first (page order), then
// StaticPaths resolved against the store base URL.
type DiscoveryConfig struct {
	Keywords    []string `yaml:"keywords,omitempty"`
	StaticPaths []string `yaml:"static_paths,omitempty"`
}

// VATConfig tunes the tax-id fallback crawl
type VATConfig struct {
	MaxPages  int           `yaml:"max_pages,omitempty"`
	PageDelay time.Duration `yaml:"page_delay,omitempty"`
}

// RevenueConfig tunes the revenue resolver and size-tier classification
type RevenueConfig struct {
	Keywords        []string  `yaml:"keywords,omitempty"`         // revenue terms searched for in snippets
	TierBreakpoints []float64 `yaml:"tier_breakpoints,omitempty"` // five ascending EUR breakpoints: MICRO|SMALL|MEDIUM|LARGE|ENTERPRISE
}

// ScoreWeights is the weight table for the lead score. Contributions are
// binary: a signal contributes its full weight or nothing.
type ScoreWeights struct {
	Catalog int `yaml:"catalog,omitempty"`
	Search  int `yaml:"search,omitempty"`
	UX      int `yaml:"ux,omitempty"`
	Legal   int `yaml:"legal,omitempty"`
	Tier    int `yaml:"tier,omitempty"`
}

// Sum returns the maximum attainable score under this table.
func (w ScoreWeights) Sum() int {
	return w.Catalog + w.Search + w.UX + w.Legal + w.Tier
}

// ScoringConfig holds the weight table and its thresholds. Different pipeline
// generations ran different tables; swapping them is a config edit.
type ScoringConfig struct {
	Weights           ScoreWeights `yaml:"weights,omitempty"`
	CatalogMinSKU     int          `yaml:"catalog_min_sku,omitempty"`     // SKU estimate at or above this earns the catalog weight
	TierFloor         string       `yaml:"tier_floor,omitempty"`          // size tier at or above this earns the tier weight
	HighPriorityAbove *int         `yaml:"high_priority_above,omitempty"` // priority is HIGH iff score strictly exceeds this; nil=default
}

// SerpConfig holds search-collaborator settings (SerpAPI)
type SerpConfig struct {
	Endpoint     string `yaml:"endpoint,omitempty"`
	GoogleDomain string `yaml:"google_domain,omitempty"`
	Location     string `yaml:"location,omitempty"`
	HL           string `yaml:"hl,omitempty"`
	GL           string `yaml:"gl,omitempty"`
	Num          int    `yaml:"num,omitempty"`

	DiscoveryQueries []DiscoveryQuery `yaml:"discovery_queries,omitempty"`
}

// DiscoveryQuery is one candidate-discovery search, tagged with the category
// assigned to stores it surfaces.
type DiscoveryQuery struct {
	Query    string `yaml:"query"`
	Category string `yaml:"category,omitempty"`
}

// HTTPClientConfig holds settings for the shared HTTP client
type HTTPClientConfig struct {
	MaxIdleConns          int           `yaml:"max_idle_conns,omitempty"`          // Max total idle connections
	MaxIdleConnsPerHost   int           `yaml:"max_idle_conns_per_host,omitempty"` // Max idle connections per host
	IdleConnTimeout       time.Duration `yaml:"idle_conn_timeout,omitempty"`       // Timeout for idle connections
	TLSHandshakeTimeout   time.Duration `yaml:"tls_handshake_timeout,omitempty"`   // Timeout for TLS handshake
	ExpectContinueTimeout time.Duration `yaml:"expect_continue_timeout,omitempty"` // Timeout for 100-continue
	ForceAttemptHTTP2     *bool         `yaml:"force_attempt_http2,omitempty"`     // nil=default, true=force, false=disable
	DialerTimeout         time.Duration `yaml:"dialer_timeout,omitempty"`          // Connection dial timeout
	DialerKeepAlive       time.Duration `yaml:"dialer_keep_alive,omitempty"`       // TCP keep-alive interval
}
