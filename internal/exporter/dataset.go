package exporter

import (
	"strconv"

	"estatcli/pkg/contracts/domain"
)

// longHeaders is the column layout of the long-format export.
var longHeaders = []string{"frequency", "unit", "transport_mode", "geography", "period", "value"}

// wideHeaders returns the column layout of the cleaned wide export: the four
// dimension columns followed by one column per period.
func wideHeaders(periods []string) []string {
	headers := make([]string, 0, 4+len(periods))
	headers = append(headers, "frequency", "unit", "transport_mode", "geography")
	headers = append(headers, periods...)
	return headers
}

// WriteWide exports cleaned rows in wide format: same layout as the input,
// cell values replaced by cleaned floats or empty for unavailable cells.
func (w *CSVWriter) WriteWide(filePath string, periods []string, rows []domain.CleanedRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		record := make([]string, 0, 4+len(periods))
		record = append(record,
			row.Dimensions.Frequency,
			row.Dimensions.Unit,
			row.Dimensions.TransportMode,
			row.Dimensions.Geography)
		for _, obs := range row.Observations {
			if obs.Valid {
				record = append(record, formatValue(obs.Value))
			} else {
				record = append(record, "")
			}
		}
		records = append(records, record)
	}

	return w.WriteSimpleCSV(filePath, wideHeaders(periods), records)
}

// WriteLong exports long-format observations, one row per non-missing cell,
// in the order produced by the reshaper.
func (w *CSVWriter) WriteLong(filePath string, obs []domain.LongObservation) error {
	records := make([][]string, 0, len(obs))
	for _, o := range obs {
		records = append(records, []string{
			o.Dimensions.Frequency,
			o.Dimensions.Unit,
			o.Dimensions.TransportMode,
			o.Dimensions.Geography,
			strconv.Itoa(o.Period),
			formatValue(o.Value),
		})
	}

	return w.WriteSimpleCSV(filePath, longHeaders, records)
}

// WriteAggregates exports aggregate records. The stddev column is emitted
// only when the first record carries one (period-grouped aggregation).
func (w *CSVWriter) WriteAggregates(filePath string, records []domain.AggregateRecord) error {
	headers := []string{"group_key", "count", "mean", "median", "min", "max"}
	withStdDev := len(records) > 0 && records[0].StdDev != nil
	if withStdDev {
		headers = append(headers, "stddev")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{
			r.GroupKey,
			formatInt(r.Count),
			formatStat(r.Mean),
			formatStat(r.Median),
			formatStat(r.Min),
			formatStat(r.Max),
		}
		if withStdDev {
			if r.StdDev != nil {
				row = append(row, formatStat(*r.StdDev))
			} else {
				row = append(row, "")
			}
		}
		rows = append(rows, row)
	}

	return w.WriteSimpleCSV(filePath, headers, rows)
}
