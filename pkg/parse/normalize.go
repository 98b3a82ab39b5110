package parse

import (
	"context"
	"net"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
)

// EnsureScheme prepends "https://" when the raw URL carries no scheme.
// Returns "" for blank input.
func EnsureScheme(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}

// BaseURL reduces a URL to scheme://host, discarding path, query and
// fragment. Input without a parseable scheme+host is returned trimmed but
// otherwise unchanged (best-effort degradation, no error).
func BaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return raw
	}
	return u.Scheme + "://" + u.Host
}

// Domain extracts the canonical domain from a URL: lower-cased host with a
// leading "www." label stripped. Returns "" for unparseable input.
func Domain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Host)
	if h, _, splitErr := net.SplitHostPort(host); splitErr == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "www.")
	return host
}

// NormalizeURL standardizes a URL for dedup during secondary-page discovery:
// lower-cased scheme and host, default ports removed, trailing slash removed
// (unless root), fragment and query dropped.
func NormalizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	normalized := *u // work on a copy

	normalized.Scheme = strings.ToLower(normalized.Scheme)
	normalized.Host = strings.ToLower(normalized.Host)

	if host, port, err := net.SplitHostPort(normalized.Host); err == nil {
		if (normalized.Scheme == "http" && port == "80") ||
			(normalized.Scheme == "https" && port == "443") {
			normalized.Host = host
		}
	}

	if normalized.Path == "" {
		normalized.Path = "/"
	} else if len(normalized.Path) > 1 && strings.HasSuffix(normalized.Path, "/") {
		normalized.Path = normalized.Path[:len(normalized.Path)-1]
	}

	normalized.Fragment = ""
	normalized.RawQuery = ""

	return normalized.String()
}

// Resolver canonicalizes raw store URLs to their real merchant homepage by
// following redirects once (e.g. *.myshopify.com -> the merchant's domain).
type Resolver struct {
	fetcher *fetch.Fetcher
	log     *logrus.Logger
}

// NewResolver creates a Resolver
func NewResolver(fetcher *fetch.Fetcher, log *logrus.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, log: log}
}

// Resolve turns a raw input URL into a ResolvedStore. One redirect-following
// GET decides the authoritative URL; when the request fails the scheme-
// normalized input is used as-is. No error escapes: the worst outcome is a
// zero-valued ResolvedStore for blank input.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) models.ResolvedStore {
	withScheme := EnsureScheme(rawURL)
	if withScheme == "" {
		return models.ResolvedStore{}
	}

	res := r.fetcher.Get(ctx, withScheme, fetch.ClassPrimary)
	finalURL := res.FinalURL
	if finalURL == "" {
		finalURL = withScheme
	}

	base := BaseURL(finalURL)
	resolved := models.ResolvedStore{
		Domain:   Domain(base),
		BaseURL:  base,
		FinalURL: finalURL,
	}
	r.log.WithFields(logrus.Fields{
		"input": rawURL, "domain": resolved.Domain, "base_url": resolved.BaseURL,
	}).Debug("Resolved store URL")
	return resolved
}
