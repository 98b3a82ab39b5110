package crawl

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

func newTestCrawler(t *testing.T) *Crawler {
	t.Helper()
	cfg := &config.AppConfig{}
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("config validation: %v", err)
	}
	cfg.SecondaryTimeout = 5 * time.Second
	log := logrus.New()
	log.SetOutput(io.Discard)
	fetcher := fetch.NewFetcher(fetch.NewClient(cfg.HTTPClientSettings, log), cfg, log)
	return NewCrawler(fetcher, nil, fetch.NewRateLimiter(0, log), log)
}

func TestCrawlEarlyExitLeavesQueueUnfetched(t *testing.T) {
	var hits [3]atomic.Int32
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()
	for i := range hits {
		i := i
		mux.HandleFunc("/page"+strings.Repeat("x", i+1), func(w http.ResponseWriter, r *http.Request) {
			hits[i].Add(1)
			w.Write([]byte("<html><body>pagina</body></html>"))
		})
	}

	pages := []string{server.URL + "/pagex", server.URL + "/pagexx", server.URL + "/pagexxx"}
	visited := 0
	newTestCrawler(t).Crawl(context.Background(), pages, 0, func(page *parse.ParsedPage) bool {
		visited++
		return visited == 2 // evidence found on the second page
	})

	if visited != 2 {
		t.Fatalf("visited %d pages, want 2", visited)
	}
	if hits[2].Load() != 0 {
		t.Errorf("third page fetched %d times, want 0 after early exit", hits[2].Load())
	}
}

func TestCrawlSkipsFailedPages(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>disponibile</body></html>"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	var seen []string
	newTestCrawler(t).Crawl(context.Background(),
		[]string{server.URL + "/missing", server.URL + "/ok"}, 0,
		func(page *parse.ParsedPage) bool {
			seen = append(seen, page.BaseURL)
			return false
		})

	if len(seen) != 1 {
		t.Fatalf("visited %d pages, want only the reachable one", len(seen))
	}
}

func TestCrawlStopsOnCancelledContext(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	newTestCrawler(t).Crawl(ctx, []string{server.URL + "/a"}, 0, func(page *parse.ParsedPage) bool {
		return false
	})

	if hits.Load() != 0 {
		t.Errorf("cancelled crawl still fetched %d pages", hits.Load())
	}
}
