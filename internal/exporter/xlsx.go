package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"estatcli/pkg/contracts/domain"
)

// WriteWideXLSX exports cleaned rows in wide format to an Excel workbook.
// Unavailable cells are left blank.
func (w *CSVWriter) WriteWideXLSX(filePath string, periods []string, rows []domain.CleanedRow) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, 0, 4+len(periods))
	for _, h := range wideHeaders(periods) {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		record := []interface{}{
			row.Dimensions.Frequency,
			row.Dimensions.Unit,
			row.Dimensions.TransportMode,
			row.Dimensions.Geography,
		}
		for _, obs := range row.Observations {
			if obs.Valid {
				record = append(record, obs.Value)
			} else {
				record = append(record, nil)
			}
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return w.saveWorkbook(f, filePath)
}

// WriteLongXLSX exports long-format observations to an Excel workbook.
func (w *CSVWriter) WriteLongXLSX(filePath string, obs []domain.LongObservation) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, 0, len(longHeaders))
	for _, h := range longHeaders {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, o := range obs {
		record := []interface{}{
			o.Dimensions.Frequency,
			o.Dimensions.Unit,
			o.Dimensions.TransportMode,
			o.Dimensions.Geography,
			o.Period,
			o.Value,
		}
		cell := "A" + strconv.Itoa(i+2)
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	return w.saveWorkbook(f, filePath)
}

func (w *CSVWriter) saveWorkbook(f *excelize.File, filePath string) error {
	fullPath := w.resolvePath(filePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
