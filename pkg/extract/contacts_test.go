package extract

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/crawl"
	"github.com/LOOKALIKE-AI/Leads/pkg/fetch"
	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

func parsePageForTest(baseURL, html string) (*parse.ParsedPage, error) {
	return parse.ParsePage(html, baseURL)
}

func testContactConfig(t *testing.T) config.ContactConfig {
	t.Helper()
	cfg := &config.AppConfig{}
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("config validation: %v", err)
	}
	return cfg.Contacts
}

func runAll(t *testing.T, html string) models.ContactBundle {
	t.Helper()
	page := mustParse(t, html)
	bundle := models.NewContactBundle()
	RunStrategies(page, NewContactStrategies(testContactConfig(t)).All(), bundle)
	return bundle
}

func TestMailtoRecoveredVerbatim(t *testing.T) {
	bundle := runAll(t, `<html><body>
		<a href="mailto:Info@Acme.it?subject=ciao">scrivici</a>
		<a href="MAILTO:sales@acme.it">vendite</a>
		<a href="tel:+39 02 1234 5678">chiamaci</a>
	</body></html>`)

	if !bundle.Emails.Has("Info@Acme.it") {
		t.Errorf("mailto address not recovered verbatim: %v", bundle.Emails.Sorted())
	}
	if !bundle.Emails.Has("sales@acme.it") {
		t.Errorf("uppercase-scheme mailto missed: %v", bundle.Emails.Sorted())
	}
	if !bundle.Phones.Has("+39 02 1234 5678") {
		t.Errorf("tel link missed: %v", bundle.Phones.Sorted())
	}
}

func TestFreeTextBlocklist(t *testing.T) {
	bundle := runAll(t, `<html><body>
		<p>Scrivi a servizio@acme.it</p>
		<p>debug: crash@sentry.example crash2@shopify.com</p>
	</body></html>`)

	if !bundle.Emails.Has("servizio@acme.it") {
		t.Errorf("free-text email missed: %v", bundle.Emails.Sorted())
	}
	for _, blocked := range []string{"crash@sentry.example", "crash2@shopify.com"} {
		if bundle.Emails.Has(blocked) {
			t.Errorf("blocklisted email %q kept", blocked)
		}
	}
}

func TestFreeTextPhoneMinDigits(t *testing.T) {
	bundle := runAll(t, `<html><body>
		<p>Telefono: +39 02 8736 4521</p>
		<p>interno 12 34</p>
	</body></html>`)

	if !bundle.Phones.Has("+39 02 8736 4521") {
		t.Errorf("phone missed: %v", bundle.Phones.Sorted())
	}
	if bundle.Phones.Has("12 34") {
		t.Error("short digit run should not qualify as a phone")
	}
}

func TestJSONLDContacts(t *testing.T) {
	bundle := runAll(t, `<html><head>
		<script type="application/ld+json">
		{"@type":"Organization","email":"org@acme.it","telephone":"+390212345678"}
		</script></head><body></body></html>`)

	if !bundle.Emails.Has("org@acme.it") {
		t.Errorf("JSON-LD email missed: %v", bundle.Emails.Sorted())
	}
	if !bundle.Phones.Has("+390212345678") {
		t.Errorf("JSON-LD phone missed: %v", bundle.Phones.Sorted())
	}
}

func TestObfuscatedEmailReconstructed(t *testing.T) {
	bundle := runAll(t, `<html><body><p>info (at) acme (dot) it</p></body></html>`)
	if !bundle.Emails.Has("info@acme.it") {
		t.Errorf("obfuscated email not reconstructed: %v", bundle.Emails.Sorted())
	}
}

func TestExtractionDeterministic(t *testing.T) {
	html := `<html><body>
		<a href="mailto:a@acme.it">a</a>
		<p>b@acme.it scrivici, tel +39 02 1111 2222 oppure +39 333 123 4567</p>
	</body></html>`

	first := runAll(t, html)
	second := runAll(t, html)

	if !reflect.DeepEqual(first.Emails.Sorted(), second.Emails.Sorted()) ||
		!reflect.DeepEqual(first.Phones.Sorted(), second.Phones.Sorted()) {
		t.Errorf("same input produced different bundles: %v vs %v", first, second)
	}
	if first.Email() != second.Email() || first.Phone() != second.Phone() {
		t.Error("chosen contact differs between identical runs")
	}
}

func TestNormalizePhoneIdempotent(t *testing.T) {
	in := "  +39  02  1234 5678 . "
	once := NormalizePhone(in)
	if NormalizePhone(once) != once {
		t.Errorf("NormalizePhone not idempotent: %q -> %q", once, NormalizePhone(once))
	}
}

func newTestExtractor(t *testing.T, cfg *config.AppConfig) *ContactExtractor {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	fetcher := fetch.NewFetcher(fetch.NewClient(cfg.HTTPClientSettings, log), cfg, log)
	limiter := fetch.NewRateLimiter(0, log)
	crawler := crawl.NewCrawler(fetcher, nil, limiter, log)
	return NewContactExtractor(
		NewContactStrategies(cfg.Contacts).All(), crawler, cfg.Discovery, cfg.Contacts, log)
}

func TestExtractCrawlsSecondaryPagesUntilComplete(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()
	mux.HandleFunc("/pages/contatti", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><a href="tel:+39 02 999 8877">tel</a></body></html>`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	cfg := &config.AppConfig{}
	if _, err := cfg.Validate(); err != nil {
		t.Fatalf("config validation: %v", err)
	}
	cfg.SecondaryTimeout = 5 * time.Second
	cfg.Contacts.PageDelay = time.Millisecond
	extractor := newTestExtractor(t, cfg)

	homepage, err := parsePageForTest(server.URL, `<html><body>
		<a href="mailto:info@acme.it">mail</a>
		<a href="/pages/contatti">Contatti</a>
	</body></html>`)
	if err != nil {
		t.Fatalf("parse homepage: %v", err)
	}

	bundle := extractor.Extract(context.Background(), homepage)

	if !bundle.Emails.Has("info@acme.it") {
		t.Errorf("homepage email lost: %v", bundle.Emails.Sorted())
	}
	if !bundle.Phones.Has("+39 02 999 8877") {
		t.Errorf("secondary-page phone not found: %v", bundle.Phones.Sorted())
	}
}
