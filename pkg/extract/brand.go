package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/LOOKALIKE-AI/Leads/pkg/config"
	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

// titleSeparators splits a page title into segments. Covers the separator
// characters storefront themes put between brand and tagline.
var titleSeparators = regexp.MustCompile(`\s*[|–—•·:-]\s*`)

// Brand recovers the store's brand name from the homepage title. Title
// segments are filtered by length and a junk-word list, and the shortest
// survivor wins: brand names are typically terser than descriptive taglines.
// Falls back to the shortest raw segment, then to the first label of the
// resolved domain. Returns "" only when the title tag is absent.
func Brand(page *parse.ParsedPage, fallbackURL string, cfg config.BrandConfig) string {
	title := page.Doc.Find("title").First()
	if title.Length() == 0 {
		return ""
	}

	rawTitle := strings.Join(strings.Fields(title.Text()), " ")
	segments := titleSeparators.Split(rawTitle, -1)

	var candidates []string
	for _, segment := range segments {
		clean := strings.TrimSpace(segment)
		n := utf8.RuneCountInString(clean)
		if n < cfg.MinSegmentLen || n > cfg.MaxSegmentLen {
			continue
		}
		if containsAny(strings.ToLower(clean), cfg.JunkWords) {
			continue
		}
		candidates = append(candidates, clean)
	}

	if best := shortest(candidates); best != "" {
		return best
	}

	// No segment survived the junk filter; accept the shortest raw segment
	// if it is plausibly a name.
	trimmed := make([]string, 0, len(segments))
	for _, segment := range segments {
		trimmed = append(trimmed, strings.TrimSpace(segment))
	}
	if fallback := shortest(trimmed); fallback != "" {
		n := utf8.RuneCountInString(fallback)
		if n >= cfg.MinSegmentLen && n <= cfg.MaxSegmentLen {
			return fallback
		}
	}

	if fallbackURL != "" {
		if domain := parse.Domain(fallbackURL); domain != "" {
			label, _, _ := strings.Cut(domain, ".")
			return titleCaseLabel(label)
		}
	}

	return ""
}

// shortest returns the first of the shortest non-empty values (stable
// tie-break), or "".
func shortest(values []string) string {
	best := ""
	bestLen := -1
	for _, v := range values {
		if v == "" {
			continue
		}
		if n := utf8.RuneCountInString(v); bestLen < 0 || n < bestLen {
			best = v
			bestLen = n
		}
	}
	return best
}

func titleCaseLabel(label string) string {
	r, size := utf8.DecodeRuneInString(label)
	if r == utf8.RuneError {
		return label
	}
	return string(unicode.ToUpper(r)) + label[size:]
}
