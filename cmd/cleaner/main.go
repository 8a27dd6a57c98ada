package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"estatcli/internal/config"
	"estatcli/internal/exporter"
	"estatcli/internal/operations"
	"estatcli/pkg/contracts/domain"
)

func main() {
	input := flag.String("in", "", "dataset file to clean (.tsv, .csv or .xlsx)")
	outDir := flag.String("o", "reports", "output directory for cleaned files")
	geo := flag.String("geo", "", "comma-separated geography codes to keep (e.g. BE,NL,DE)")
	mode := flag.String("mode", "", "comma-separated transport mode codes to keep")
	long := flag.Bool("long", false, "also export the long-format table")
	excel := flag.Bool("xlsx", false, "also export an Excel workbook")
	stats := flag.Bool("stats", true, "print cleaning statistics")
	trends := flag.Bool("trends", false, "print the first-to-last period trend")
	workers := flag.Int("workers", 0, "concurrent row cleaners (0 = one per CPU)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if *input == "" {
		if flag.NArg() > 0 {
			*input = flag.Arg(0)
		} else {
			fmt.Fprintln(os.Stderr, "usage: cleaner [-geo BE,NL] [-mode IWW] [-long] [-trends] [-o dir] <dataset>")
			flag.PrintDefaults()
			os.Exit(2)
		}
	}

	paths, err := config.NewPaths(*outDir, config.PathsConfig{DataDir: ".", ReportsDir: ".", LogsDir: "."})
	if err != nil {
		slog.Error("Failed to resolve output directory", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(paths.ReportsDir, 0o755); err != nil {
		slog.Error("Failed to create output directory", "error", err)
		os.Exit(1)
	}

	steps := []operations.Step{
		operations.NewLoadStep(logger),
		operations.NewCleanStep(logger, *workers),
		operations.NewReshapeStep(logger),
		operations.NewAggregateStep(logger),
		operations.NewExportStep(logger, exporter.NewCSVWriter(paths)),
	}
	manager := operations.NewManager(logger, nil, nil, steps)

	state, err := manager.Run(context.Background(), operations.Request{
		DatasetPath:    *input,
		Geographies:    splitList(*geo),
		TransportModes: splitList(*mode),
		ExportLong:     *long,
		ExportExcel:    *excel,
		Workers:        *workers,
	})
	if err != nil {
		slog.Error("Cleaning failed", "dataset", *input, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Cleaned %s\n", filepath.Base(*input))
	if *stats {
		printStats(state.Cleaned.Stats, len(state.Long))
	}
	if *trends && state.Trend != nil {
		printTrend(*state.Trend)
	}
	fmt.Println("\nOutput files:")
	for _, name := range state.OutputFiles {
		fmt.Printf("  %s\n", paths.GetReportPath(name))
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func printStats(stats domain.CleanStats, observations int) {
	fmt.Println("\nCleaning statistics:")
	fmt.Printf("  rows parsed:      %d\n", stats.RowsParsed)
	fmt.Printf("  rows skipped:     %d\n", stats.RowsSkipped)
	fmt.Printf("  cells total:      %d\n", stats.CellsTotal)
	fmt.Printf("  cells valid:      %d\n", stats.CellsValid)
	fmt.Printf("  cells missing:    %d\n", stats.CellsMissing)
	fmt.Printf("  cells estimated:  %d\n", stats.CellsEstimated)
	fmt.Printf("  cells break:      %d\n", stats.CellsBreak)
	fmt.Printf("  cells flagged:    %d\n", stats.CellsFlagged)
	fmt.Printf("  completeness:     %.1f%%\n", stats.Completeness())
	fmt.Printf("  observations:     %d\n", observations)
}

func printTrend(t domain.TrendResult) {
	fmt.Printf("\nTrend %s -> %s:\n", t.FirstPeriod, t.LastPeriod)
	fmt.Printf("  mean %s:  %.2f\n", t.FirstPeriod, t.MeanFirst)
	fmt.Printf("  mean %s:  %.2f\n", t.LastPeriod, t.MeanLast)
	fmt.Printf("  change:     %+.2f\n", t.Change)
	if t.PercentDefined {
		fmt.Printf("  change %%:   %+.1f%%\n", t.PercentChange)
	} else {
		fmt.Println("  change %:   undefined (zero baseline)")
	}
}
