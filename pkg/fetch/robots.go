package fetch

import (
	"context"
	"net/url"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
)

// RobotsHandler manages fetching, parsing, caching, and checking robots.txt
// data. Consulted before secondary-page crawls; the homepage fetch itself is
// not gated (stores advertise their homepage).
type RobotsHandler struct {
	fetcher       *Fetcher
	userAgent     string
	robotsCache   map[string]*robotstxt.RobotsData // hostname -> parsed data (nil on fetch/parse failure)
	robotsCacheMu sync.Mutex
	log           *logrus.Entry
}

// NewRobotsHandler creates a RobotsHandler
func NewRobotsHandler(fetcher *Fetcher, userAgent string, log *logrus.Entry) *RobotsHandler {
	return &RobotsHandler{
		fetcher:     fetcher,
		userAgent:   userAgent,
		robotsCache: make(map[string]*robotstxt.RobotsData),
		log:         log,
	}
}

// Allowed reports whether the configured agent may fetch targetURL.
// Assumes allowed when robots.txt cannot be obtained or parsed.
func (rh *RobotsHandler) Allowed(ctx context.Context, targetURL string) bool {
	u, err := url.Parse(targetURL)
	if err != nil || u.Hostname() == "" {
		return true
	}

	data := rh.robotsData(ctx, u)
	if data == nil {
		return true
	}
	return data.TestAgent(u.RequestURI(), rh.userAgent)
}

// robotsData returns cached robots data for the host, fetching on first use.
func (rh *RobotsHandler) robotsData(ctx context.Context, target *url.URL) *robotstxt.RobotsData {
	host := target.Hostname()

	rh.robotsCacheMu.Lock()
	data, found := rh.robotsCache[host]
	rh.robotsCacheMu.Unlock()
	if found {
		return data // may be nil: failures are cached too
	}

	scheme := target.Scheme
	if scheme != "http" && scheme != "https" {
		scheme = "https"
	}
	robotsURL := (&url.URL{Scheme: scheme, Host: target.Host, Path: "/robots.txt"}).String()
	hostLog := rh.log.WithFields(logrus.Fields{"host": host, "robots_url": robotsURL})

	var parsed *robotstxt.RobotsData
	res := rh.fetcher.Get(ctx, robotsURL, ClassSecondary)
	if res.OK() {
		if d, err := robotstxt.FromBytes([]byte(res.Body)); err == nil {
			parsed = d
			hostLog.Debug("Fetched and parsed robots.txt")
		} else {
			hostLog.Debugf("robots.txt parse failed: %v", err)
		}
	} else {
		hostLog.Debug("robots.txt unavailable, assuming allowed")
	}

	rh.robotsCacheMu.Lock()
	rh.robotsCache[host] = parsed
	rh.robotsCacheMu.Unlock()
	return parsed
}
