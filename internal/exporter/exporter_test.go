package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"estatcli/internal/config"
	"estatcli/pkg/contracts/domain"
)

func testWriter(t *testing.T) (*CSVWriter, *config.Paths) {
	t.Helper()
	paths, err := config.NewPaths(t.TempDir(), config.PathsConfig{
		DataDir: "data", ReportsDir: "reports", LogsDir: "logs",
	})
	require.NoError(t, err)
	return NewCSVWriter(paths), paths
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Strip the UTF-8 BOM written for Excel compatibility.
	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	require.NoError(t, err)
	return records
}

func sampleCleanedRows() []domain.CleanedRow {
	return []domain.CleanedRow{{
		Dimensions: domain.Dimensions{Frequency: "A", Unit: "PC", TransportMode: "IWW", Geography: "BE"},
		Observations: []domain.Observation{
			{Period: "2020", Value: 10, Valid: true},
			{Period: "2021", Value: 10, Valid: true, Flags: []domain.FlagCode{domain.FlagEstimated}},
			{Period: "2022"},
		},
	}}
}

func TestWriteWide(t *testing.T) {
	writer, paths := testWriter(t)

	err := writer.WriteWide("wide.csv", []string{"2020", "2021", "2022"}, sampleCleanedRows())
	require.NoError(t, err)

	records := readCSV(t, paths.GetReportPath("wide.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"frequency", "unit", "transport_mode", "geography", "2020", "2021", "2022"}, records[0])
	assert.Equal(t, []string{"A", "PC", "IWW", "BE", "10", "10", ""}, records[1])
}

func TestWriteLong(t *testing.T) {
	writer, paths := testWriter(t)

	obs := []domain.LongObservation{
		{Dimensions: domain.Dimensions{Frequency: "A", Unit: "PC", TransportMode: "IWW", Geography: "BE"}, Period: 2020, Value: 44.5},
	}
	require.NoError(t, writer.WriteLong("long.csv", obs))

	records := readCSV(t, paths.GetReportPath("long.csv"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"frequency", "unit", "transport_mode", "geography", "period", "value"}, records[0])
	assert.Equal(t, []string{"A", "PC", "IWW", "BE", "2020", "44.5"}, records[1])
}

func TestWriteAggregatesWithoutStdDev(t *testing.T) {
	writer, paths := testWriter(t)

	records := []domain.AggregateRecord{
		{GroupKey: "BE", Count: 2, Mean: 10, Median: 10, Min: 10, Max: 10},
	}
	require.NoError(t, writer.WriteAggregates("by_geo.csv", records))

	got := readCSV(t, paths.GetReportPath("by_geo.csv"))
	assert.Equal(t, []string{"group_key", "count", "mean", "median", "min", "max"}, got[0])
	assert.Equal(t, []string{"BE", "2", "10.00", "10.00", "10.00", "10.00"}, got[1])
}

func TestWriteAggregatesWithStdDev(t *testing.T) {
	writer, paths := testWriter(t)

	sd := 5.0
	records := []domain.AggregateRecord{
		{GroupKey: "2020", Count: 2, Mean: 15, Median: 15, Min: 10, Max: 20, StdDev: &sd},
	}
	require.NoError(t, writer.WriteAggregates("by_period.csv", records))

	got := readCSV(t, paths.GetReportPath("by_period.csv"))
	assert.Equal(t, []string{"group_key", "count", "mean", "median", "min", "max", "stddev"}, got[0])
	assert.Equal(t, []string{"2020", "2", "15.00", "15.00", "10.00", "20.00", "5.00"}, got[1])
}

func TestStreamWriter(t *testing.T) {
	writer, paths := testWriter(t)

	stream, err := writer.CreateStreamWriter("stream.csv", []string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, stream.WriteRecord([]string{"1", "2"}))
	require.NoError(t, stream.Close())

	got := readCSV(t, paths.GetReportPath("stream.csv"))
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}}, got)
}

func TestWriteWideXLSX(t *testing.T) {
	writer, paths := testWriter(t)

	err := writer.WriteWideXLSX(filepath.Join("xlsx", "wide.xlsx"), []string{"2020", "2021", "2022"}, sampleCleanedRows())
	require.NoError(t, err)

	f, err := excelize.OpenFile(paths.GetReportPath(filepath.Join("xlsx", "wide.xlsx")))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "BE", rows[1][3])
	assert.Equal(t, "10", rows[1][4])
}
