package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/LOOKALIKE-AI/Leads/pkg/parse"
)

// Fixed signal vocabularies (Italian + English storefront boilerplate).
var (
	searchWords = []string{"search", "cerca", "ricerca", "trova"}

	ecommerceIndicators = []string{
		"/products/", "add to cart", "aggiungi al carrello",
		"price", "prezzo", "buy now", "acquista",
	}

	searchInputNameRe        = regexp.MustCompile(`(?i)q|search|query`)
	searchInputPlaceholderRe = regexp.MustCompile(`(?i)search|cerca|find`)
	searchInputIDRe          = regexp.MustCompile(`(?i)search|query`)

	productContainerClassRe = regexp.MustCompile(`(?i)product|grid|collection`)
	navListClassRe          = regexp.MustCompile(`(?i)menu|nav`)
)

// HasTextSearch reports whether the store offers text search on an actual
// shop. Both conditions are necessary: a search affordance (input element or
// search word in the visible text) AND an e-commerce indicator phrase. A
// generic site-search box alone does not qualify.
func HasTextSearch(page *parse.ParsedPage) bool {
	lowerText := strings.ToLower(page.Text)

	hasSearch := hasSearchInput(page.Doc)
	if !hasSearch {
		for _, w := range searchWords {
			if strings.Contains(lowerText, w) {
				hasSearch = true
				break
			}
		}
	}
	if !hasSearch {
		return false
	}

	for _, indicator := range ecommerceIndicators {
		if strings.Contains(lowerText, indicator) {
			return true
		}
	}
	return false
}

func hasSearchInput(doc *goquery.Document) bool {
	found := false
	doc.Find("input").EachWithBreak(func(_ int, input *goquery.Selection) bool {
		if strings.EqualFold(input.AttrOr("type", ""), "search") ||
			searchInputNameRe.MatchString(input.AttrOr("name", "")) ||
			searchInputPlaceholderRe.MatchString(input.AttrOr("placeholder", "")) ||
			searchInputIDRe.MatchString(input.AttrOr("id", "")) {
			found = true
			return false
		}
		return true
	})
	return found
}

// HasRefinedUX runs the 4-point layout checklist: nav/header landmark,
// footer landmark, a product/grid/collection-styled container, and a primary
// navigation list with more than 3 links. "Refined" means at least 2 pass.
func HasRefinedUX(page *parse.ParsedPage) bool {
	doc := page.Doc
	checks := 0

	if doc.Find("nav, header").Length() > 0 {
		checks++
	}
	if doc.Find("footer").Length() > 0 {
		checks++
	}
	if hasClassMatch(doc, "section[class], div[class]", productContainerClassRe) {
		checks++
	}
	if nav := primaryNav(doc); nav != nil && nav.Find("a").Length() > 3 {
		checks++
	}

	return checks >= 2
}

func hasClassMatch(doc *goquery.Document, selector string, re *regexp.Regexp) bool {
	found := false
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if re.MatchString(s.AttrOr("class", "")) {
			found = true
			return false
		}
		return true
	})
	return found
}

// primaryNav returns the first nav element, or the first ul whose class looks
// like a menu, or nil.
func primaryNav(doc *goquery.Document) *goquery.Selection {
	if nav := doc.Find("nav").First(); nav.Length() > 0 {
		return nav
	}
	var menu *goquery.Selection
	doc.Find("ul[class]").EachWithBreak(func(_ int, ul *goquery.Selection) bool {
		if navListClassRe.MatchString(ul.AttrOr("class", "")) {
			menu = ul
			return false
		}
		return true
	})
	return menu
}
