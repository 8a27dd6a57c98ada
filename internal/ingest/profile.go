package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ColumnProfile summarizes one column of a delimited file.
type ColumnProfile struct {
	Name    string  `json:"name"`
	Empty   int     `json:"empty"`
	Numeric int     `json:"numeric"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
}

// Profile summarizes the shape and fill of a delimited file, used to inspect
// a conversion result before cleaning.
type Profile struct {
	Path    string          `json:"path"`
	Rows    int             `json:"rows"`
	Columns []ColumnProfile `json:"columns"`
}

// ProfileCSV scans a comma-separated file and reports per-column empty-cell
// counts and basic numeric statistics. Cells that do not parse as floats
// (flagged Eurostat cells included) simply do not contribute to the numeric
// stats.
func ProfileCSV(path string) (Profile, error) {
	file, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read file: %w", err)
	}
	if len(records) == 0 {
		return Profile{Path: path}, nil
	}

	header := records[0]
	profile := Profile{
		Path:    path,
		Rows:    len(records) - 1,
		Columns: make([]ColumnProfile, len(header)),
	}
	sums := make([]float64, len(header))
	for i, name := range header {
		profile.Columns[i].Name = strings.TrimSpace(name)
	}

	for _, record := range records[1:] {
		for i := range profile.Columns {
			var cell string
			if i < len(record) {
				cell = strings.TrimSpace(record[i])
			}
			if cell == "" {
				profile.Columns[i].Empty++
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			col := &profile.Columns[i]
			if col.Numeric == 0 || v < col.Min {
				col.Min = v
			}
			if col.Numeric == 0 || v > col.Max {
				col.Max = v
			}
			col.Numeric++
			sums[i] += v
		}
	}

	for i := range profile.Columns {
		if n := profile.Columns[i].Numeric; n > 0 {
			profile.Columns[i].Mean = sums[i] / float64(n)
		}
	}
	return profile, nil
}
