package leadio

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/LOOKALIKE-AI/Leads/pkg/models"
)

const leadsSheet = "Leads"

// WriteXLSX writes the scored leads to an Excel workbook with one "Leads"
// sheet, same columns as the CSV report.
func WriteXLSX(path string, leads []models.ScoredLead, log *logrus.Logger) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(leadsSheet)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		log.Debugf("Could not drop default sheet: %v", err)
	}

	header := make([]interface{}, len(reportHeader))
	for i, h := range reportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(leadsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	for i, lead := range leads {
		row := rowValues(lead)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(leadsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("cannot save workbook %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"file": path, "leads": len(leads)}).Info("Wrote XLSX report")
	return nil
}

// rowValues mirrors reportRow but keeps numeric fields typed so Excel treats
// them as numbers.
func rowValues(lead models.ScoredLead) []interface{} {
	var revenue interface{}
	if lead.RevenueEUR != nil {
		revenue = *lead.RevenueEUR
	} else {
		revenue = ""
	}
	return []interface{}{
		lead.Brand,
		lead.Domain,
		lead.BaseURL,
		lead.Category,
		lead.Platform,
		lead.SKUEstimate,
		lead.HasTextSearch,
		lead.HasRefinedUX,
		lead.LegalStructure,
		lead.VATID,
		revenue,
		lead.SizeTier.String(),
		lead.Score,
		string(lead.Priority),
		lead.Email,
		lead.Phone,
	}
}
