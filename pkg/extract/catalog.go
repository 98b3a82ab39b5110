package extract

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

var productHrefRe = regexp.MustCompile(`/products?/`)

// CatalogEstimator estimates a store's SKU count from its conventional
// "all products" collection page, falling back to the homepage.
type CatalogEstimator struct {
	fetcher *fetch.Fetcher
	cfg     config.CatalogConfig
	log     *logrus.Logger
}

// NewCatalogEstimator creates a CatalogEstimator
func NewCatalogEstimator(fetcher *fetch.Fetcher, cfg config.CatalogConfig, log *logrus.Logger) *CatalogEstimator {
	return &CatalogEstimator{fetcher: fetcher, cfg: cfg, log: log}
}

// Estimate fetches the collection page and counts matches for each structural
// selector, keeping the maximum: themes expose different markup, and max
// avoids undercounting. The count is multiplied by the pagination correction
// and capped. When the collection page is unreachable the homepage's product
// anchors are counted instead, under a lower cap. Any failure yields 0.
func (e *CatalogEstimator) Estimate(ctx context.Context, baseURL string, homepage *parse.ParsedPage) int {
	if doc := e.fetchCollection(ctx, baseURL); doc != nil {
		maxCount := 0
		for _, selector := range e.cfg.Selectors {
			if n := doc.Find(selector).Length(); n > maxCount {
				maxCount = n
			}
		}
		if maxCount > 0 {
			estimate := maxCount * e.cfg.PageMultiplier
			if estimate > e.cfg.MaxEstimate {
				estimate = e.cfg.MaxEstimate
			}
			e.log.WithFields(logrus.Fields{
				"base_url": baseURL, "max_count": maxCount, "estimate": estimate,
			}).Debug("Catalog estimate from collection page")
			return estimate
		}
	}

	if homepage == nil {
		return 0
	}
	count := 0
	homepage.Doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		if productHrefRe.MatchString(a.AttrOr("href", "")) {
			count++
		}
	})
	if count > e.cfg.HomepageCap {
		count = e.cfg.HomepageCap
	}
	e.log.WithFields(logrus.Fields{"base_url": baseURL, "estimate": count}).
		Debug("Catalog estimate from homepage anchors")
	return count
}

func (e *CatalogEstimator) fetchCollection(ctx context.Context, baseURL string) *goquery.Document {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil
	}
	collection, err := base.Parse(e.cfg.CollectionPath)
	if err != nil {
		return nil
	}

	res := e.fetcher.Get(ctx, collection.String(), fetch.ClassSecondary)
	if !res.OK() {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.Body))
	if err != nil {
		return nil
	}
	return doc
}
