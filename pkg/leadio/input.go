// Package leadio reads candidate batches and writes scored-lead reports.
package leadio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/LOOKALIKE-AI/Leads/pkg/models"
	"github.com/LOOKALIKE-AI/Leads/pkg/utils"
)

// ReadCandidates loads store candidates from a CSV file. The URL column is
// the first header containing "url" (case-insensitive); the category column
// is the first containing "category" or "cat". A file without a URL column
// violates the input contract and fails before any processing.
func ReadCandidates(path string, log *logrus.Logger) ([]models.StoreCandidate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open input file %s: %w", path, err)
	}
	defer f.Close()

	candidates, err := readCandidates(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.WithFields(logrus.Fields{"file": path, "candidates": len(candidates)}).
		Info("Loaded input candidates")
	return candidates, nil
}

func readCandidates(r io.Reader) ([]models.StoreCandidate, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Tolerate ragged rows; columns are sniffed by header
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: input file is empty", utils.ErrInputContract)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading header: %w", utils.ErrInputContract, err)
	}

	urlCol, catCol := sniffColumns(header)
	if urlCol < 0 {
		return nil, fmt.Errorf("%w: no column header contains 'url' (headers: %v)", utils.ErrInputContract, header)
	}

	var candidates []models.StoreCandidate
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading row: %w", utils.ErrInputContract, err)
		}
		if urlCol >= len(record) {
			continue
		}
		rawURL := strings.TrimSpace(record[urlCol])
		if rawURL == "" {
			continue
		}

		category := "unknown"
		if catCol >= 0 && catCol < len(record) {
			if c := strings.TrimSpace(record[catCol]); c != "" {
				category = c
			}
		}
		candidates = append(candidates, models.StoreCandidate{RawURL: rawURL, Category: category})
	}
	return candidates, nil
}

// sniffColumns locates the URL and category columns by header substring.
// Returns -1 for a column that is not present. Excel exports prefix the
// first header with a UTF-8 BOM.
func sniffColumns(header []string) (urlCol, catCol int) {
	urlCol, catCol = -1, -1
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if urlCol < 0 && strings.Contains(name, "url") {
			urlCol = i
		}
		if catCol < 0 && (strings.Contains(name, "category") || strings.Contains(name, "cat")) {
			catCol = i
		}
	}
	return urlCol, catCol
}
