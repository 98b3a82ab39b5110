package extract

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/crawl"
	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
)

func TestLegalStructureDetected(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Acme S.r.l. - Tutti i diritti riservati", true},
		{"ACME SRL", true},
		{"Acme S.p.A.", true},
		{"Acme s.a.s. di Mario Rossi", true},
		{"Società Cooperativa Acme", true},
		{"Acme Ltd", true},
		{"Acme GmbH", true},
		{"Acme Boutique Milano", false},
		{"", false},
	}
	for _, tc := range tests {
		if got := LegalStructureDetected(tc.text); got != tc.want {
			t.Errorf("LegalStructureDetected(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestVATNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"with country prefix", "P.IVA IT12345678901", []string{"12345678901"}},
		{"bare digits", "Partita IVA: 12345678901", []string{"12345678901"}},
		{"spaced prefix", "VAT IT 12345678901", []string{"12345678901"}},
		{"dedup keeps first order", "IVA 11111111111 e 22222222222 e 11111111111", []string{"11111111111", "22222222222"}},
		{"ten digits rejected", "codice 1234567890", nil},
		{"twelve digits rejected", "codice 123456789012", nil},
		{"empty", "", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := VATNumbers(tc.text); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("VATNumbers(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestFirstVAT(t *testing.T) {
	if got := FirstVAT("P.IVA IT12345678901 e 98765432109"); got != "12345678901" {
		t.Errorf("FirstVAT = %q", got)
	}
	if got := FirstVAT("nessuna partita iva"); got != "" {
		t.Errorf("FirstVAT = %q, want empty", got)
	}
}

func TestVATExtractorStopsAtFirstHit(t *testing.T) {
	var legalHits, termsHits atomic.Int32
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()
	mux.HandleFunc("/pages/legal", func(w http.ResponseWriter, r *http.Request) {
		legalHits.Add(1)
		w.Write([]byte(`<html><body>P.IVA IT12345678901</body></html>`))
	})
	mux.HandleFunc("/pages/terms", func(w http.ResponseWriter, r *http.Request) {
		termsHits.Add(1)
		w.Write([]byte(`<html><body>altre condizioni</body></html>`))
	})

	cfg := &config.AppConfig{}
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("config validation: %v", err)
	}
	cfg.SecondaryTimeout = 5 * time.Second
	cfg.VAT.PageDelay = time.Millisecond
	cfg.Discovery.Keywords = []string{"legal", "terms"}
	cfg.Discovery.StaticPaths = nil

	log := logrus.New()
	log.SetOutput(io.Discard)
	fetcher := fetch.NewFetcher(fetch.NewClient(cfg.HTTPClientSettings, log), cfg, log)
	crawler := crawl.NewCrawler(fetcher, nil, fetch.NewRateLimiter(0, log), log)
	extractor := NewVATExtractor(crawler, cfg.Discovery, cfg.VAT, log)

	homepage, err := parsePageForTest(server.URL, `<html><body>
		<a href="/pages/legal">Note legali</a>
		<a href="/pages/terms">Terms</a>
	</body></html>`)
	if err != nil {
		t.Fatalf("parse homepage: %v", err)
	}

	got := extractor.Extract(context.Background(), homepage)

	if got != "12345678901" {
		t.Errorf("Extract = %q, want 12345678901", got)
	}
	if legalHits.Load() != 1 {
		t.Errorf("legal page fetched %d times, want 1", legalHits.Load())
	}
	if termsHits.Load() != 0 {
		t.Errorf("terms page fetched %d times, want 0 (crawl should stop at first hit)", termsHits.Load())
	}
}

func TestVATExtractorPrefersHomepage(t *testing.T) {
	cfg := &config.AppConfig{}
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("config validation: %v", err)
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	fetcher := fetch.NewFetcher(fetch.NewClient(cfg.HTTPClientSettings, log), cfg, log)
	crawler := crawl.NewCrawler(fetcher, nil, fetch.NewRateLimiter(0, log), log)
	extractor := NewVATExtractor(crawler, cfg.Discovery, cfg.VAT, log)

	homepage, err := parsePageForTest("https://acme.it", `<html><body>P.IVA 12345678901</body></html>`)
	if err != nil {
		t.Fatalf("parse homepage: %v", err)
	}

	// No server is running; a crawl attempt would find nothing.
	if got := extractor.Extract(context.Background(), homepage); got != "12345678901" {
		t.Errorf("Extract = %q, want homepage VAT", got)
	}
}
