package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleTSV = "freq,unit,tra_mode,geo\\TIME_PERIOD\t2020 \t2021 \t2022 \n" +
	"A,PC,IWW,BE\t10\t10 e\t:\n" +
	"A,PC,IWW,NL\t44.5\t45.1 b\t46.0\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadTSVDataset(t *testing.T) {
	path := writeFile(t, t.TempDir(), "estat_tran_hv_frmod.tsv", sampleTSV)

	ds, err := ReadTSVDataset(path)
	require.NoError(t, err)

	assert.Equal(t, "estat_tran_hv_frmod", ds.Name)
	assert.Equal(t, []string{"2020", "2021", "2022"}, ds.Periods, "period labels are trimmed")
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "A,PC,IWW,BE", ds.Rows[0].Key)
	assert.Equal(t, []string{"10", "10 e", ":"}, ds.Rows[0].Cells)
}

func TestReadCSVDataset(t *testing.T) {
	content := "key,2020,2021\n\"A,PC,IWW,BE\",10,20\n"
	path := writeFile(t, t.TempDir(), "data.csv", content)

	ds, err := ReadCSVDataset(path)
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, "A,PC,IWW,BE", ds.Rows[0].Key)
}

func TestReadDatasetUnsupportedExtension(t *testing.T) {
	_, err := ReadDataset("data.parquet")
	assert.Error(t, err)
}

func TestReadDatasetHeaderTooNarrow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.csv", "key\nA\n")
	_, err := ReadCSVDataset(path)
	assert.Error(t, err)
}

func TestConvertTSVToCSV(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "data.tsv", "a\tb\n1\t2\n")
	dst := filepath.Join(dir, "out", "data.csv")

	require.NoError(t, ConvertTSVToCSV(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(got))
}

func TestConvertDirTSVToCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.tsv", "a\tb\n")
	writeFile(t, dir, "two.tsv", "c\td\n")
	writeFile(t, dir, "skip.txt", "x")

	out := t.TempDir()
	converted, err := ConvertDirTSVToCSV(dir, out)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(out, "one.csv"),
		filepath.Join(out, "two.csv"),
	}, converted)
}

func TestReadXLSXDataset(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"key", "2020", "2021"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{`A,PC,IWW,BE\TIME`, "10", "10 e"}))

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := ReadXLSXDataset(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2020", "2021"}, ds.Periods)
	require.Len(t, ds.Rows, 1)
	assert.Equal(t, `A,PC,IWW,BE\TIME`, ds.Rows[0].Key)
}

func TestProfileCSV(t *testing.T) {
	content := "key,2020,2021\nrow1,10,\nrow2,20,5 e\n"
	path := writeFile(t, t.TempDir(), "data.csv", content)

	profile, err := ProfileCSV(path)
	require.NoError(t, err)

	assert.Equal(t, 2, profile.Rows)
	require.Len(t, profile.Columns, 3)

	y2020 := profile.Columns[1]
	assert.Equal(t, "2020", y2020.Name)
	assert.Equal(t, 2, y2020.Numeric)
	assert.Equal(t, 10.0, y2020.Min)
	assert.Equal(t, 20.0, y2020.Max)
	assert.Equal(t, 15.0, y2020.Mean)

	y2021 := profile.Columns[2]
	assert.Equal(t, 1, y2021.Empty)
	assert.Equal(t, 0, y2021.Numeric, "flagged cell does not parse as numeric")
}
