package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Inventory"

// Store holds the inventory in memory and persists it to the file it was
// loaded from. The extension picks the format: .xlsx uses a workbook,
// anything else comma-separated text.
type Store struct {
	path    string
	records []SourceRecord
}

// NewStore creates a store bound to path without touching the file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the inventory file. A missing file yields an empty inventory.
func (s *Store) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.records = nil
		return nil
	}

	var rows [][]string
	var err error
	if isWorkbook(s.path) {
		rows, err = readWorkbook(s.path)
	} else {
		rows, err = readCSVFile(s.path)
	}
	if err != nil {
		return fmt.Errorf("failed to load inventory: %w", err)
	}

	s.records = s.records[:0]
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}
		s.records = append(s.records, recordFromValues(row))
	}
	return nil
}

// Save writes the inventory back to its file.
func (s *Store) Save() error {
	rows := make([][]string, 0, len(s.records)+1)
	rows = append(rows, Headers)
	for _, r := range s.records {
		rows = append(rows, r.values())
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create inventory directory: %w", err)
	}
	if isWorkbook(s.path) {
		return writeWorkbook(s.path, rows)
	}
	return writeCSVFile(s.path, rows)
}

// Count returns the number of records.
func (s *Store) Count() int {
	return len(s.records)
}

// Add appends a record after validation and enum coercion. A record with the
// same Source ID is replaced only when overwrite is set.
func (s *Store) Add(record SourceRecord, overwrite bool) error {
	record.Normalize()
	if record.DateAccessed == "" {
		record.DateAccessed = time.Now().Format("2006-01-02")
	}
	if err := record.Validate(); err != nil {
		return err
	}

	for i, existing := range s.records {
		if existing.SourceID == record.SourceID {
			if !overwrite {
				return fmt.Errorf("source ID %s already exists", record.SourceID)
			}
			s.records[i] = record
			return nil
		}
	}
	s.records = append(s.records, record)
	return nil
}

// List returns the records, optionally filtered by topic substring,
// case-insensitively.
func (s *Store) List(topic string) []SourceRecord {
	if topic == "" {
		out := make([]SourceRecord, len(s.records))
		copy(out, s.records)
		return out
	}
	var out []SourceRecord
	needle := strings.ToLower(topic)
	for _, r := range s.records {
		if strings.Contains(strings.ToLower(r.Topic), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Show returns the record with the given Source ID.
func (s *Store) Show(sourceID string) (SourceRecord, bool) {
	for _, r := range s.records {
		if r.SourceID == sourceID {
			return r, true
		}
	}
	return SourceRecord{}, false
}

// Delete removes the record with the given Source ID.
func (s *Store) Delete(sourceID string) bool {
	for i, r := range s.records {
		if r.SourceID == sourceID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Search returns records where any field contains the keyword,
// case-insensitively.
func (s *Store) Search(keyword string) []SourceRecord {
	needle := strings.ToLower(keyword)
	var out []SourceRecord
	for _, r := range s.records {
		for _, v := range r.values() {
			if strings.Contains(strings.ToLower(v), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// templateRecord is the example row shipped with an empty template.
func templateRecord() SourceRecord {
	return SourceRecord{
		SourceID:        "EXAMPLE_001",
		Topic:           "Transport",
		SourceName:      "Example Data Source",
		URL:             "https://example.com/data",
		DateAccessed:    time.Now().Format("2006-01-02"),
		DataYears:       "2020-2023",
		GeographicScope: "BE",
		FileLocation:    "data/example.csv",
		DataFormat:      "CSV",
		KeyVariables:    "variable1, variable2, variable3",
		DataQuality:     "4 stars - Reliable with minor gaps",
		Limitations:     "Annual data only, no sub-regional breakdown",
		UpdateFrequency: "Annual",
		ContactInfo:     "data@example.org",
		Notes:           "This is an example entry. Delete this row.",
	}
}

// WriteTemplate writes a template file with the headers and one example row.
func WriteTemplate(path string) error {
	tmpl := templateRecord()
	rows := [][]string{Headers, tmpl.values()}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create template directory: %w", err)
	}
	if isWorkbook(path) {
		return writeWorkbook(path, rows)
	}
	return writeCSVFile(path, rows)
}

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func writeCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create inventory file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	return nil
}

func readWorkbook(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return f.GetRows(f.GetSheetName(0))
}

func writeWorkbook(path string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save inventory workbook: %w", err)
	}
	return nil
}
