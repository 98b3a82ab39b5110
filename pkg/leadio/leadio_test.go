package leadio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

func discardLog() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestReadCandidatesSniffsColumns(t *testing.T) {
	csv := "id,Store URL,Product Category\n" +
		"1,https://acme.it,dresses\n" +
		"2,shoes.example.it,\n" +
		"3,,shoes\n"

	candidates, err := readCandidates(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, candidates, 2, "rows without a URL are skipped")

	assert.Equal(t, "https://acme.it", candidates[0].RawURL)
	assert.Equal(t, "dresses", candidates[0].Category)
	assert.Equal(t, "shoes.example.it", candidates[1].RawURL)
	assert.Equal(t, "unknown", candidates[1].Category, "blank category defaults")
}

func TestReadCandidatesCategoryColumnVariants(t *testing.T) {
	csv := "website_url,cat\nhttps://acme.it,bags\n"
	candidates, err := readCandidates(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "bags", candidates[0].Category)
}

func TestReadCandidatesBOMHeader(t *testing.T) {
	csv := "\ufeffurl\nhttps://acme.it\n"
	candidates, err := readCandidates(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, candidates, 1)
}

func TestReadCandidatesMissingURLColumnIsFatal(t *testing.T) {
	csv := "name,category\nAcme,dresses\n"
	_, err := readCandidates(strings.NewReader(csv))
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInputContract))
}

func TestReadCandidatesEmptyFile(t *testing.T) {
	_, err := readCandidates(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInputContract))
}

func sampleLeads() []models.ScoredLead {
	revenue := 269674.00
	return []models.ScoredLead{
		{
			BusinessSignals: models.BusinessSignals{
				Brand:          "Acme",
				SKUEstimate:    240,
				HasTextSearch:  true,
				HasRefinedUX:   true,
				LegalStructure: true,
				VATID:          "12345678901",
				RevenueEUR:     &revenue,
				SizeTier:       models.TierMicro,
			},
			Domain:   "acme.it",
			BaseURL:  "https://acme.it",
			Category: "dresses",
			Platform: "Shopify",
			Email:    "info@acme.it",
			Phone:    "+39 02 1234 5678",
			Score:    5,
			Priority: models.PriorityHigh,
		},
		{
			BusinessSignals: models.BusinessSignals{Brand: "Borse Milano", SizeTier: models.TierUnknown},
			Domain:          "borse.example.it",
			BaseURL:         "https://borse.example.it",
			Category:        "bags",
			Platform:        "Shopify",
			Score:           0,
			Priority:        models.PriorityLow,
		},
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, sampleLeads()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3, "header plus one line per lead")

	assert.Equal(t, strings.Join(reportHeader, ","), lines[0])
	assert.Contains(t, lines[1], "Acme")
	assert.Contains(t, lines[1], "269674.00")
	assert.Contains(t, lines[1], "HIGH")
	assert.Contains(t, lines[2], "Borse Milano")
	assert.Contains(t, lines[2], "UNKNOWN")
	assert.Contains(t, lines[2], "LOW")
}

func TestReportRowMatchesHeaderWidth(t *testing.T) {
	for _, lead := range sampleLeads() {
		assert.Len(t, reportRow(lead), len(reportHeader))
		assert.Len(t, rowValues(lead), len(reportHeader))
	}
}

func TestWriteReadFiles(t *testing.T) {
	dir := t.TempDir()
	log := discardLog()

	csvPath := dir + "/leads.csv"
	require.NoError(t, WriteCSV(csvPath, sampleLeads(), log))

	xlsxPath := dir + "/leads.xlsx"
	require.NoError(t, WriteXLSX(xlsxPath, sampleLeads(), log))
}
