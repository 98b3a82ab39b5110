package parse

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

// ParsedPage bundles the representations the extractors work over for one
// fetched page. Owned transiently by the extraction pipeline; not persisted.
type ParsedPage struct {
	HTML    string            // raw page body
	Doc     *goquery.Document // structured document
	Text    string            // visible-text projection, whitespace collapsed
	BaseURL string            // scheme://host the page belongs to
}

// ParsePage parses a fetched body into a ParsedPage.
func ParsePage(htmlBody, baseURL string) (*ParsedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil, fmt.Errorf("%w: HTML: %w", utils.ErrParsing, err)
	}
	return &ParsedPage{
		HTML:    htmlBody,
		Doc:     doc,
		Text:    VisibleText(doc),
		BaseURL: baseURL,
	}, nil
}

// VisibleText projects a document to its visible text: script, style and
// noscript subtrees dropped, whitespace runs collapsed to single spaces.
func VisibleText(doc *goquery.Document) string {
	clone := goquery.CloneDocument(doc)
	clone.Find("script, style, noscript").Remove()
	return strings.Join(strings.Fields(clone.Text()), " ")
}
