package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"estatcli/pkg/contracts/domain"
)

// ReadCSVDataset reads a comma-separated Eurostat export into a Dataset.
// Column 0 holds the composite metadata key; columns 1..N are period labels.
func ReadCSVDataset(path string) (domain.Dataset, error) {
	return readDelimited(path, ',')
}

// ReadTSVDataset reads a tab-separated Eurostat export into a Dataset.
func ReadTSVDataset(path string) (domain.Dataset, error) {
	return readDelimited(path, '\t')
}

// ReadDataset picks the reader from the file extension (.csv, .tsv or .xlsx).
func ReadDataset(path string) (domain.Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ReadCSVDataset(path)
	case ".tsv":
		return ReadTSVDataset(path)
	case ".xlsx":
		return ReadXLSXDataset(path)
	default:
		return domain.Dataset{}, fmt.Errorf("unsupported dataset extension: %s", filepath.Ext(path))
	}
}

func readDelimited(path string, comma rune) (domain.Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = comma
	// Eurostat rows can be ragged; missing cells classify as unavailable later.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to read dataset: %w", err)
	}
	if len(records) == 0 {
		return domain.Dataset{}, fmt.Errorf("dataset %s is empty", path)
	}

	return datasetFromRecords(datasetName(path), records)
}

// datasetFromRecords maps a materialized two-dimensional table onto a Dataset.
// The first record is the header; its first column is the key column label.
func datasetFromRecords(name string, records [][]string) (domain.Dataset, error) {
	header := records[0]
	if len(header) < 2 {
		return domain.Dataset{}, fmt.Errorf("dataset header has %d columns, need a key column plus at least one period", len(header))
	}

	ds := domain.Dataset{
		Name:    name,
		Periods: make([]string, 0, len(header)-1),
		Rows:    make([]domain.WideRow, 0, len(records)-1),
	}
	for _, label := range header[1:] {
		ds.Periods = append(ds.Periods, strings.TrimSpace(label))
	}

	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		row := domain.WideRow{Key: record[0]}
		if len(record) > 1 {
			row.Cells = record[1:]
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, nil
}

func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
