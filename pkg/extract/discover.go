package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

// DiscoverQueue builds the ordered list of secondary-page candidates for one
// store: in-page links whose URL or anchor text matches a discovery keyword
// (in page order), followed by the static path guesses for the platform.
// First-seen wins under dedup; the queue is truncated to limit.
func DiscoverQueue(page *parse.ParsedPage, baseURL string, cfg config.DiscoveryConfig, limit int) []string {
	if limit <= 0 {
		return nil
	}

	queue := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	push := func(u string) {
		if len(queue) >= limit {
			return
		}
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		queue = append(queue, u)
	}

	for _, link := range discoverLinks(page, baseURL, cfg.Keywords, limit) {
		push(link)
	}
	for _, guess := range staticPaths(baseURL, cfg.StaticPaths) {
		push(guess)
	}
	return queue
}

// discoverLinks walks the page's anchors in document order and keeps
// same-host links whose href or anchor text contains a keyword.
func discoverLinks(page *parse.ParsedPage, baseURL string, keywords []string, limit int) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil
	}

	links := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)

	page.Doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" {
			return true
		}
		blob := strings.ToLower(href + " " + strings.TrimSpace(a.Text()))

		if containsAny(blob, keywords) {
			resolved, parseErr := base.Parse(href)
			if parseErr == nil && resolved.Host == base.Host {
				normalized := parse.NormalizeURL(resolved)
				if _, dup := seen[normalized]; !dup {
					seen[normalized] = struct{}{}
					links = append(links, normalized)
				}
			}
		}
		return len(links) < limit
	})
	return links
}

// staticPaths resolves the conventional path guesses against the store base.
func staticPaths(baseURL string, paths []string) []string {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		resolved, parseErr := base.Parse(p)
		if parseErr != nil {
			continue
		}
		out = append(out, parse.NormalizeURL(resolved))
	}
	return out
}

func containsAny(blob string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(blob, k) {
			return true
		}
	}
	return false
}
