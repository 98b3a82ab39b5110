// Package crawl walks a bounded queue of secondary pages for one store,
// sequentially and politely, until the caller has sufficient evidence.
package crawl

import (
	"context"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

// Visit is called for each successfully fetched and parsed page. Returning
// true stops the crawl: sufficient evidence has been found.
type Visit func(page *parse.ParsedPage) (done bool)

// Crawler fetches queue pages one at a time. A failed fetch is skipped, never
// retried; URLs are never revisited (the queue is already deduplicated).
type Crawler struct {
	fetcher *fetch.Fetcher
	robots  *fetch.RobotsHandler // nil disables robots checks
	limiter *fetch.RateLimiter
	log     *logrus.Logger
}

// NewCrawler creates a Crawler
func NewCrawler(fetcher *fetch.Fetcher, robots *fetch.RobotsHandler, limiter *fetch.RateLimiter, log *logrus.Logger) *Crawler {
	return &Crawler{fetcher: fetcher, robots: robots, limiter: limiter, log: log}
}

// Crawl visits pages in order, pausing delay between outbound requests to the
// same host. Stops when visit reports done, the queue is exhausted, or ctx is
// cancelled.
func (c *Crawler) Crawl(ctx context.Context, pages []string, delay time.Duration, visit Visit) {
	for _, pageURL := range pages {
		if ctx.Err() != nil {
			c.log.Debugf("Crawl cancelled: %v", ctx.Err())
			return
		}

		pageLog := c.log.WithField("url", pageURL)

		if c.robots != nil && !c.robots.Allowed(ctx, pageURL) {
			pageLog.Debug("Skipping page disallowed by robots.txt")
			continue
		}

		host := hostOf(pageURL)
		c.limiter.ApplyDelay(host, delay)
		res := c.fetcher.Get(ctx, pageURL, fetch.ClassSecondary)
		c.limiter.UpdateLastRequestTime(host)

		if !res.OK() {
			pageLog.Debug("Secondary page unavailable, skipping")
			continue
		}

		page, err := parse.ParsePage(res.Body, parse.BaseURL(res.FinalURL))
		if err != nil {
			pageLog.Debugf("Secondary page parse failed: %v", err)
			continue
		}

		if visit(page) {
			pageLog.Debug("Crawl satisfied, stopping early")
			return
		}
	}
}

func hostOf(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		return u.Hostname()
	}
	return rawURL
}
