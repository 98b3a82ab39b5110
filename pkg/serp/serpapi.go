package serp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

// SerpAPIClient implements Provider against the SerpAPI Google endpoint.
type SerpAPIClient struct {
	httpClient *http.Client
	apiKey     string
	cfg        config.SerpConfig
	log        *logrus.Logger
}

// NewSerpAPIClient creates a SerpAPIClient. The API key comes from the
// environment, not from config files.
func NewSerpAPIClient(httpClient *http.Client, apiKey string, cfg config.SerpConfig, log *logrus.Logger) *SerpAPIClient {
	return &SerpAPIClient{httpClient: httpClient, apiKey: apiKey, cfg: cfg, log: log}
}

type serpAPIResponse struct {
	OrganicResults []Result `json:"organic_results"`
}

// Search issues one query and returns the organic results in order.
func (c *SerpAPIClient) Search(ctx context.Context, query string) ([]Result, error) {
	if c.apiKey == "" {
		return nil, utils.ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("google_domain", c.cfg.GoogleDomain)
	params.Set("location", c.cfg.Location)
	params.Set("hl", c.cfg.HL)
	params.Set("gl", c.cfg.GL)
	params.Set("num", strconv.Itoa(c.cfg.Num))

	reqURL := c.cfg.Endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrRequestCreation, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", utils.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: serpapi status %d", utils.ErrOtherHTTPError, resp.StatusCode)
	}

	var payload serpAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: JSON: %w", utils.ErrParsing, err)
	}

	c.log.WithFields(logrus.Fields{
		"query": query, "results": len(payload.OrganicResults),
	}).Debug("SERP query completed")
	return payload.OrganicResults, nil
}
