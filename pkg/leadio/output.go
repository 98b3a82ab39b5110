package leadio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/models"
)

// reportHeader is the column order shared by the CSV and XLSX writers.
var reportHeader = []string{
	"brand", "domain", "base_url", "category", "platform",
	"sku_estimate", "has_text_search", "has_refined_ux",
	"legal_structure", "vat_id", "revenue_eur", "size_tier",
	"score", "priority", "email", "phone",
}

// reportRow flattens one lead into the shared column order.
func reportRow(lead models.ScoredLead) []string {
	revenue := ""
	if lead.RevenueEUR != nil {
		revenue = strconv.FormatFloat(*lead.RevenueEUR, 'f', 2, 64)
	}
	return []string{
		lead.Brand,
		lead.Domain,
		lead.BaseURL,
		lead.Category,
		lead.Platform,
		strconv.Itoa(lead.SKUEstimate),
		strconv.FormatBool(lead.HasTextSearch),
		strconv.FormatBool(lead.HasRefinedUX),
		strconv.FormatBool(lead.LegalStructure),
		lead.VATID,
		revenue,
		lead.SizeTier.String(),
		strconv.Itoa(lead.Score),
		string(lead.Priority),
		lead.Email,
		lead.Phone,
	}
}

// WriteCSV writes the scored leads to a CSV file, header first.
func WriteCSV(path string, leads []models.ScoredLead, log *logrus.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file %s: %w", path, err)
	}
	defer f.Close()

	if err := writeCSV(f, leads); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"file": path, "leads": len(leads)}).Info("Wrote CSV report")
	return nil
}

func writeCSV(w io.Writer, leads []models.ScoredLead) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(reportHeader); err != nil {
		return err
	}
	for _, lead := range leads {
		if err := writer.Write(reportRow(lead)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
