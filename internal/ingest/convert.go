package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ConvertTSVToCSV rewrites a tab-separated file as comma-separated. Rows pass
// through untouched; this is pure delimiter conversion, no cleaning.
func ConvertTSVToCSV(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}
	defer dst.Close()

	reader := csv.NewReader(src)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	writer := csv.NewWriter(dst)
	defer writer.Flush()

	rows := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read row %d: %w", rows+1, err)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", rows+1, err)
		}
		rows++
	}

	if err := writer.Error(); err != nil {
		return err
	}
	slog.Info("converted TSV to CSV",
		slog.String("source", srcPath),
		slog.String("destination", dstPath),
		slog.Int("rows", rows))
	return nil
}

// ConvertDirTSVToCSV converts every .tsv file in srcDir, writing <stem>.csv
// files to dstDir (srcDir itself when dstDir is empty). Returns the paths of
// the files written, sorted.
func ConvertDirTSVToCSV(srcDir, dstDir string) ([]string, error) {
	if dstDir == "" {
		dstDir = srcDir
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", srcDir, err)
	}

	var converted []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".tsv") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		dstPath := filepath.Join(dstDir, stem+".csv")
		if err := ConvertTSVToCSV(filepath.Join(srcDir, entry.Name()), dstPath); err != nil {
			return converted, fmt.Errorf("failed to convert %s: %w", entry.Name(), err)
		}
		converted = append(converted, dstPath)
	}

	sort.Strings(converted)
	return converted, nil
}
