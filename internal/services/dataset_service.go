package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"estatcli/internal/config"
	"estatcli/internal/exporter"
	"estatcli/internal/files"
	"estatcli/internal/operations"
	"estatcli/pkg/contracts/domain"
)

// DatasetService exposes the cleaning pipeline to transport handlers. One
// instance serves all requests; the per-run state lives in the operations
// package.
type DatasetService struct {
	cfg         *config.Config
	paths       *config.Paths
	logger      *slog.Logger
	discovery   *files.Discovery
	broadcaster operations.Broadcaster
	tracer      *operations.PipelineTracer
}

// NewDatasetService creates the service. broadcaster may be nil when no
// WebSocket hub is running; tracer may be nil to disable telemetry.
func NewDatasetService(cfg *config.Config, paths *config.Paths, logger *slog.Logger, broadcaster operations.Broadcaster, tracer *operations.PipelineTracer) *DatasetService {
	return &DatasetService{
		cfg:         cfg,
		paths:       paths,
		logger:      logger,
		discovery:   files.NewDiscovery(paths.BaseDir),
		broadcaster: broadcaster,
		tracer:      tracer,
	}
}

// DatasetInfo describes one dataset file found in the data directory.
type DatasetInfo struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// ListDatasets returns every readable dataset file in the data directory.
func (s *DatasetService) ListDatasets(ctx context.Context) ([]DatasetInfo, error) {
	found, err := s.discovery.FindDatasetFiles(s.paths.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list datasets: %w", err)
	}

	infos := make([]DatasetInfo, 0, len(found))
	for _, f := range found {
		infos = append(infos, DatasetInfo{
			Name:    f.Name,
			Path:    f.Path,
			Size:    f.Size,
			ModTime: f.ModTime,
		})
	}
	s.logger.DebugContext(ctx, "datasets listed", "count", len(infos))
	return infos, nil
}

// CleanRequest describes one cleaning run requested by a client. Dataset
// names the file inside the data directory.
type CleanRequest struct {
	Dataset        string   `json:"dataset" validate:"required"`
	Geographies    []string `json:"geographies,omitempty"`
	TransportModes []string `json:"transport_modes,omitempty"`
	ExportLong     bool     `json:"export_long"`
	ExportExcel    bool     `json:"export_excel"`
}

// CleanResponse reports the outcome of a cleaning run.
type CleanResponse struct {
	OperationID  string                   `json:"operation_id"`
	Dataset      string                   `json:"dataset"`
	Stats        domain.CleanStats        `json:"stats"`
	Completeness float64                  `json:"completeness"`
	Observations int                      `json:"observations"`
	ByGeography  []domain.AggregateRecord `json:"by_geography"`
	ByMode       []domain.AggregateRecord `json:"by_mode"`
	ByPeriod     []domain.AggregateRecord `json:"by_period"`
	Trend        *domain.TrendResult      `json:"trend,omitempty"`
	Steps        []operations.StepState   `json:"steps"`
	OutputFiles  []string                 `json:"output_files"`
}

// ResolveDataset maps a dataset name onto its file in the data directory and
// verifies it exists. Path separators are rejected so clients cannot escape
// the data directory.
func (s *DatasetService) ResolveDataset(name string) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid dataset name: %q", name)
	}
	path := s.paths.GetDataPath(name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("dataset %s not found: %w", name, err)
	}
	return path, nil
}

// Clean runs the full pipeline over the named dataset and returns the
// resulting statistics and report paths.
func (s *DatasetService) Clean(ctx context.Context, req CleanRequest) (*CleanResponse, error) {
	path, err := s.ResolveDataset(req.Dataset)
	if err != nil {
		return nil, err
	}

	opReq := operations.Request{
		DatasetPath:    path,
		Geographies:    req.Geographies,
		TransportModes: req.TransportModes,
		ExportLong:     req.ExportLong,
		ExportExcel:    req.ExportExcel,
		Workers:        s.cfg.Pipeline.Workers,
	}
	if len(opReq.Geographies) == 0 {
		opReq.Geographies = s.cfg.Pipeline.Geographies
	}
	if len(opReq.TransportModes) == 0 {
		opReq.TransportModes = s.cfg.Pipeline.TransportModes
	}

	manager := operations.NewManager(s.logger, s.broadcaster, s.tracer, s.pipelineSteps())
	state, err := manager.Run(ctx, opReq)
	if err != nil {
		return nil, err
	}

	return &CleanResponse{
		OperationID:  state.ID,
		Dataset:      req.Dataset,
		Stats:        state.Cleaned.Stats,
		Completeness: state.Cleaned.Stats.Completeness(),
		Observations: len(state.Long),
		ByGeography:  state.ByGeography,
		ByMode:       state.ByMode,
		ByPeriod:     state.ByPeriod,
		Trend:        state.Trend,
		Steps:        state.Snapshot(),
		OutputFiles:  state.OutputFiles,
	}, nil
}

// AggregateResponse carries just the statistics of a run, without reports.
type AggregateResponse struct {
	Dataset      string                   `json:"dataset"`
	Stats        domain.CleanStats        `json:"stats"`
	Completeness float64                  `json:"completeness"`
	ByGeography  []domain.AggregateRecord `json:"by_geography"`
	ByMode       []domain.AggregateRecord `json:"by_mode"`
	ByPeriod     []domain.AggregateRecord `json:"by_period"`
	Trend        *domain.TrendResult      `json:"trend,omitempty"`
}

// Aggregate runs the pipeline without the export step and returns the
// statistics for the named dataset.
func (s *DatasetService) Aggregate(ctx context.Context, dataset string) (*AggregateResponse, error) {
	path, err := s.ResolveDataset(dataset)
	if err != nil {
		return nil, err
	}

	steps := s.pipelineSteps()
	manager := operations.NewManager(s.logger, s.broadcaster, s.tracer, steps[:len(steps)-1])
	state, err := manager.Run(ctx, operations.Request{
		DatasetPath:    path,
		Geographies:    s.cfg.Pipeline.Geographies,
		TransportModes: s.cfg.Pipeline.TransportModes,
		Workers:        s.cfg.Pipeline.Workers,
	})
	if err != nil {
		return nil, err
	}

	return &AggregateResponse{
		Dataset:      dataset,
		Stats:        state.Cleaned.Stats,
		Completeness: state.Cleaned.Stats.Completeness(),
		ByGeography:  state.ByGeography,
		ByMode:       state.ByMode,
		ByPeriod:     state.ByPeriod,
		Trend:        state.Trend,
	}, nil
}

func (s *DatasetService) pipelineSteps() []operations.Step {
	return []operations.Step{
		operations.NewLoadStep(s.logger),
		operations.NewCleanStep(s.logger, s.cfg.Pipeline.Workers),
		operations.NewReshapeStep(s.logger),
		operations.NewAggregateStep(s.logger),
		operations.NewExportStep(s.logger, exporter.NewCSVWriter(s.paths)),
	}
}

// FlagInfo describes one quality flag for the reference endpoint.
type FlagInfo struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Flags returns the known quality flags with their labels, ordered by code.
func (s *DatasetService) Flags() []FlagInfo {
	table := domain.KnownFlags()
	infos := make([]FlagInfo, 0, len(table))
	for code, label := range table {
		infos = append(infos, FlagInfo{Code: string(code), Label: label})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}
