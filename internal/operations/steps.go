package operations

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"estatcli/internal/dataprocessing"
	"estatcli/internal/exporter"
	"estatcli/internal/ingest"
	"estatcli/pkg/contracts/domain"
)

// LoadStep reads the dataset file into the run state.
type LoadStep struct {
	logger *slog.Logger
}

func NewLoadStep(logger *slog.Logger) *LoadStep {
	return &LoadStep{logger: logger}
}

func (s *LoadStep) ID() string   { return StepIDLoad }
func (s *LoadStep) Name() string { return StepNameLoad }

func (s *LoadStep) Execute(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ds, err := ingest.ReadDataset(state.Request.DatasetPath)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	state.Dataset = ds
	s.logger.InfoContext(ctx, "dataset loaded",
		"dataset", ds.Name,
		"rows", len(ds.Rows),
		"periods", len(ds.Periods))
	return nil
}

// CleanStep parses keys and cells and applies the requested dimension filters.
type CleanStep struct {
	logger  *slog.Logger
	cleaner *dataprocessing.Cleaner
}

func NewCleanStep(logger *slog.Logger, workers int) *CleanStep {
	return &CleanStep{
		logger:  logger,
		cleaner: dataprocessing.NewCleaner(logger, workers),
	}
}

func (s *CleanStep) ID() string   { return StepIDClean }
func (s *CleanStep) Name() string { return StepNameClean }

func (s *CleanStep) Execute(ctx context.Context, state *State) error {
	result, err := s.cleaner.Clean(ctx, state.Dataset)
	if err != nil {
		return fmt.Errorf("failed to clean dataset: %w", err)
	}
	if len(state.Request.Geographies) > 0 {
		result.Rows = dataprocessing.FilterGeographies(result.Rows, state.Request.Geographies)
	}
	if len(state.Request.TransportModes) > 0 {
		result.Rows = dataprocessing.FilterTransportModes(result.Rows, state.Request.TransportModes)
	}
	state.Cleaned = result
	s.logger.InfoContext(ctx, "dataset cleaned",
		"rows", len(result.Rows),
		"completeness", result.Stats.Completeness())
	return nil
}

// ReshapeStep converts cleaned rows to the long representation.
type ReshapeStep struct {
	logger *slog.Logger
}

func NewReshapeStep(logger *slog.Logger) *ReshapeStep {
	return &ReshapeStep{logger: logger}
}

func (s *ReshapeStep) ID() string   { return StepIDReshape }
func (s *ReshapeStep) Name() string { return StepNameReshape }

func (s *ReshapeStep) Execute(ctx context.Context, state *State) error {
	long, err := dataprocessing.ToLong(state.Cleaned.Rows)
	if err != nil {
		return fmt.Errorf("failed to reshape dataset: %w", err)
	}
	state.Long = long
	s.logger.InfoContext(ctx, "dataset reshaped", "observations", len(long))
	return nil
}

// AggregateStep computes the summary statistics and the period trend.
type AggregateStep struct {
	logger *slog.Logger
}

func NewAggregateStep(logger *slog.Logger) *AggregateStep {
	return &AggregateStep{logger: logger}
}

func (s *AggregateStep) ID() string   { return StepIDAggregate }
func (s *AggregateStep) Name() string { return StepNameAggregate }

func (s *AggregateStep) Execute(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state.ByGeography = dataprocessing.AggregateByDimension(state.Long, domain.DimGeography)
	state.ByMode = dataprocessing.AggregateByDimension(state.Long, domain.DimTransportMode)
	state.ByPeriod = dataprocessing.AggregateByPeriod(state.Long)

	periods := state.Dataset.Periods
	if len(periods) >= 2 && len(state.Cleaned.Rows) > 0 {
		trend, err := dataprocessing.Trend(state.Cleaned.Rows, periods[0], periods[len(periods)-1])
		if err != nil {
			s.logger.WarnContext(ctx, "trend unavailable", "error", err)
		} else {
			state.Trend = &trend
		}
	}
	s.logger.InfoContext(ctx, "statistics computed",
		"geographies", len(state.ByGeography),
		"modes", len(state.ByMode),
		"periods", len(state.ByPeriod))
	return nil
}

// ExportStep writes the cleaned dataset and aggregate reports.
type ExportStep struct {
	logger *slog.Logger
	writer *exporter.CSVWriter
}

func NewExportStep(logger *slog.Logger, writer *exporter.CSVWriter) *ExportStep {
	return &ExportStep{logger: logger, writer: writer}
}

func (s *ExportStep) ID() string   { return StepIDExport }
func (s *ExportStep) Name() string { return StepNameExport }

func (s *ExportStep) Execute(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	base := reportBaseName(state)

	wide := base + "_clean.csv"
	if err := s.writer.WriteWide(wide, state.Dataset.Periods, state.Cleaned.Rows); err != nil {
		return fmt.Errorf("failed to write wide report: %w", err)
	}
	state.AddOutputFile(wide)

	if state.Request.ExportLong {
		long := base + "_long.csv"
		if err := s.writer.WriteLong(long, state.Long); err != nil {
			return fmt.Errorf("failed to write long report: %w", err)
		}
		state.AddOutputFile(long)
	}

	for name, records := range map[string][]domain.AggregateRecord{
		base + "_by_geography.csv": state.ByGeography,
		base + "_by_mode.csv":      state.ByMode,
		base + "_by_period.csv":    state.ByPeriod,
	} {
		if err := s.writer.WriteAggregates(name, records); err != nil {
			return fmt.Errorf("failed to write aggregate report: %w", err)
		}
		state.AddOutputFile(name)
	}

	if state.Request.ExportExcel {
		xlsx := base + "_clean.xlsx"
		if err := s.writer.WriteWideXLSX(xlsx, state.Dataset.Periods, state.Cleaned.Rows); err != nil {
			return fmt.Errorf("failed to write workbook: %w", err)
		}
		state.AddOutputFile(xlsx)
	}

	s.logger.InfoContext(ctx, "reports written", "files", len(state.OutputFiles))
	return nil
}

func reportBaseName(state *State) string {
	name := state.Dataset.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(state.Request.DatasetPath), filepath.Ext(state.Request.DatasetPath))
	}
	if name == "" {
		name = "dataset"
	}
	return name
}
