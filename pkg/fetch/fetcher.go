package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

// Class selects the timeout applied to a fetch.
type Class int

const (
	// ClassPrimary is used for homepage resolution and the homepage fetch.
	ClassPrimary Class = iota
	// ClassSecondary is used for collection, contact and legal pages.
	ClassSecondary
)

// Outcome classifies a fetch result. Absence of a body is an expected,
// first-class state for every caller, not an error to propagate.
type Outcome int

const (
	// OutcomeOK: status 200, body read successfully.
	OutcomeOK Outcome = iota
	// OutcomeBadStatus: an HTTP response arrived with a non-200 status.
	OutcomeBadStatus
	// OutcomeTransport: no usable HTTP response (DNS, TCP, TLS, timeout,
	// body read failure, or a malformed URL).
	OutcomeTransport
)

// Result is the outcome of a single fetch attempt.
type Result struct {
	Outcome    Outcome
	Body       string // page body; set only when Outcome == OutcomeOK
	StatusCode int    // set whenever an HTTP response arrived
	FinalURL   string // post-redirect URL, or the requested URL when unavailable
	Err        error  // underlying cause for telemetry; never surfaced to callers as a failure
}

// OK reports whether a usable body was obtained.
func (r Result) OK() bool { return r.Outcome == OutcomeOK }

// Fetcher performs single-attempt HTTP GETs with a fixed browser-like
// identity. It is the single point where all network fragility is absorbed:
// every failure path degrades to a Result with no body. A global weighted
// semaphore caps concurrent outbound requests.
type Fetcher struct {
	client    *http.Client
	cfg       *config.AppConfig
	semaphore *semaphore.Weighted
	log       *logrus.Logger
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, cfg *config.AppConfig, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client:    client,
		cfg:       cfg,
		semaphore: semaphore.NewWeighted(int64(cfg.MaxConcurrentRequests)),
		log:       log,
	}
}

func (f *Fetcher) timeoutFor(class Class) time.Duration {
	if class == ClassSecondary {
		return f.cfg.SecondaryTimeout
	}
	return f.cfg.PrimaryTimeout
}

// Get performs one GET against rawURL. Redirects are followed; only status
// 200 yields a body. There are no retries: every URL is attempted exactly
// once per batch.
func (f *Fetcher) Get(ctx context.Context, rawURL string, class Class) Result {
	reqLog := f.log.WithField("url", rawURL)

	reqCtx, cancel := context.WithTimeout(ctx, f.timeoutFor(class))
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		reqLog.Debugf("Request creation failed: %v", err)
		return Result{
			Outcome:  OutcomeTransport,
			FinalURL: rawURL,
			Err:      fmt.Errorf("%w: %w", utils.ErrRequestCreation, err),
		}
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Language", f.cfg.AcceptLanguage)

	if err := f.semaphore.Acquire(reqCtx, 1); err != nil {
		reqLog.Debugf("Global request semaphore not acquired: %v", err)
		return Result{
			Outcome:  OutcomeTransport,
			FinalURL: rawURL,
			Err:      fmt.Errorf("%w: %w", utils.ErrTransport, err),
		}
	}
	defer f.semaphore.Release(1)

	resp, err := f.client.Do(req)
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", utils.ErrTransport, err)
		reqLog.WithField("category", utils.CategorizeError(wrapped)).Debugf("Fetch failed: %v", err)
		return Result{Outcome: OutcomeTransport, FinalURL: rawURL, Err: wrapped}
	}
	defer resp.Body.Close()

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		reqLog.WithFields(logrus.Fields{
			"status_code": resp.StatusCode, "final_url": finalURL,
		}).Debug("Non-200 status, treating as no data")
		return Result{
			Outcome:    OutcomeBadStatus,
			StatusCode: resp.StatusCode,
			FinalURL:   finalURL,
			Err:        statusError(resp),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		wrapped := fmt.Errorf("%w: reading body: %w", utils.ErrTransport, err)
		reqLog.Debugf("Body read failed: %v", err)
		return Result{
			Outcome:    OutcomeTransport,
			StatusCode: resp.StatusCode,
			FinalURL:   finalURL,
			Err:        wrapped,
		}
	}

	reqLog.WithFields(logrus.Fields{
		"final_url": finalURL, "bytes": len(body),
	}).Debug("Fetched")
	return Result{
		Outcome:    OutcomeOK,
		Body:       string(body),
		StatusCode: resp.StatusCode,
		FinalURL:   finalURL,
	}
}

// statusError wraps a non-200 status with the matching sentinel so telemetry
// can distinguish 4xx from 5xx later.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d %s", utils.ErrServerHTTPError, resp.StatusCode, resp.Status)
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: status %d %s", utils.ErrClientHTTPError, resp.StatusCode, resp.Status)
	default:
		return fmt.Errorf("%w: status %d %s", utils.ErrOtherHTTPError, resp.StatusCode, resp.Status)
	}
}
