package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"estatcli/internal/ingest"
)

func main() {
	out := flag.String("out", "", "output file or directory (defaults next to the input)")
	profile := flag.Bool("profile", false, "print a column profile of each converted file")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tsv2csv [-out path] [-profile] <file.tsv | directory>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	info, err := os.Stat(input)
	if err != nil {
		slog.Error("Failed to stat input", "path", input, "error", err)
		os.Exit(1)
	}

	var converted []string
	if info.IsDir() {
		converted, err = ingest.ConvertDirTSVToCSV(input, *out)
		if err != nil {
			slog.Error("Directory conversion failed", "dir", input, "error", err)
			os.Exit(1)
		}
	} else {
		dst := *out
		if dst == "" {
			dst = strings.TrimSuffix(input, filepath.Ext(input)) + ".csv"
		}
		if err := ingest.ConvertTSVToCSV(input, dst); err != nil {
			slog.Error("Conversion failed", "file", input, "error", err)
			os.Exit(1)
		}
		converted = []string{dst}
	}

	for _, path := range converted {
		fmt.Printf("converted %s\n", path)
		if *profile {
			printProfile(path)
		}
	}
}

func printProfile(path string) {
	p, err := ingest.ProfileCSV(path)
	if err != nil {
		slog.Error("Profiling failed", "file", path, "error", err)
		return
	}
	fmt.Printf("  rows: %d, columns: %d\n", p.Rows, len(p.Columns))
	for _, col := range p.Columns {
		if col.Numeric > 0 {
			fmt.Printf("  %-30s empty=%-5d numeric=%-5d min=%.2f max=%.2f mean=%.2f\n",
				col.Name, col.Empty, col.Numeric, col.Min, col.Max, col.Mean)
		} else {
			fmt.Printf("  %-30s empty=%-5d numeric=0\n", col.Name, col.Empty)
		}
	}
}
