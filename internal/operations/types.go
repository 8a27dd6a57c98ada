package operations

import "time"

// Step identifiers.
const (
	StepIDLoad      = "load"
	StepIDClean     = "clean"
	StepIDReshape   = "reshape"
	StepIDAggregate = "aggregate"
	StepIDExport    = "export"
)

// Step names shown to clients.
const (
	StepNameLoad      = "Dataset Loading"
	StepNameClean     = "Flag Cleaning"
	StepNameReshape   = "Long Reshaping"
	StepNameAggregate = "Statistics"
	StepNameExport    = "Report Export"
)

// StepStatus represents the current status of a step.
type StepStatus string

const (
	StepStatusPending   StepStatus = "pending"
	StepStatusActive    StepStatus = "active"
	StepStatusCompleted StepStatus = "completed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
)

// StepState represents the runtime state of one step.
type StepState struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Status    StepStatus `json:"status"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Message   string     `json:"message,omitempty"`
	Error     string     `json:"error,omitempty"`
}

// Request describes one pipeline run over a dataset file.
type Request struct {
	DatasetPath    string   `json:"dataset_path"`
	Geographies    []string `json:"geographies,omitempty"`
	TransportModes []string `json:"transport_modes,omitempty"`
	ExportLong     bool     `json:"export_long"`
	ExportExcel    bool     `json:"export_excel"`
	Workers        int      `json:"workers,omitempty"`
}

// DefaultStepTimeout bounds a single step execution.
const DefaultStepTimeout = 5 * time.Minute
