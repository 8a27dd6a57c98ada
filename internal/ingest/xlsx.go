package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"estatcli/pkg/contracts/domain"
)

// ReadXLSXDataset reads an Excel workbook into a Dataset. The first sheet is
// used; its layout must match the wide-format convention (key column followed
// by period columns).
func ReadXLSXDataset(path string) (domain.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return domain.Dataset{}, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return domain.Dataset{}, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return domain.Dataset{}, fmt.Errorf("sheet %q is empty", sheet)
	}

	return datasetFromRecords(datasetName(path), rows)
}
