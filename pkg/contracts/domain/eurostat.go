package domain

// DimensionName identifies one of the four metadata dimensions carried by the
// composite key column of a Eurostat wide-format export.
type DimensionName string

const (
	DimFrequency     DimensionName = "frequency"
	DimUnit          DimensionName = "unit"
	DimTransportMode DimensionName = "transport_mode"
	DimGeography     DimensionName = "geography"
)

// Dimensions holds the four metadata fields decomposed from the composite key
// (format "FREQ,UNIT,MODE,GEO\PERIODSUFFIX").
type Dimensions struct {
	Frequency     string `json:"frequency"`
	Unit          string `json:"unit"`
	TransportMode string `json:"transport_mode"`
	Geography     string `json:"geography"`
}

// Value returns the field selected by dim, or "" for an unknown dimension.
func (d Dimensions) Value(dim DimensionName) string {
	switch dim {
	case DimFrequency:
		return d.Frequency
	case DimUnit:
		return d.Unit
	case DimTransportMode:
		return d.TransportMode
	case DimGeography:
		return d.Geography
	}
	return ""
}

// WideRow is one raw record of a wide-format export: the decomposed key plus
// one raw cell per period column, aligned with Dataset.Periods.
type WideRow struct {
	Key   string   `json:"key"`
	Cells []string `json:"cells"`
}

// Dataset is the in-memory representation of one wide-format export. Periods
// keeps the source header order, which is the chronological order; it is never
// re-sorted during cleaning.
type Dataset struct {
	Name    string    `json:"name"`
	Periods []string  `json:"periods"`
	Rows    []WideRow `json:"rows"`
}

// Observation is one cleaned cell: the numeric value (when available) plus the
// quality flags observed on the raw cell. Valid is false iff the cell denoted
// unavailability; flags may be non-empty either way.
type Observation struct {
	Period string     `json:"period"`
	Value  float64    `json:"value"`
	Valid  bool       `json:"valid"`
	Flags  []FlagCode `json:"flags,omitempty"`
}

// CleanedRow is one cleaned record: decomposed dimensions plus one observation
// per period column.
type CleanedRow struct {
	Dimensions   Dimensions    `json:"dimensions"`
	Observations []Observation `json:"observations"`
}

// LongObservation is one row of the long (tidy) projection: dimensions, an
// integer period and a definite value. Unavailable observations are excluded
// by construction.
type LongObservation struct {
	Dimensions Dimensions `json:"dimensions"`
	Period     int        `json:"period"`
	Value      float64    `json:"value"`
}

// AggregateRecord holds descriptive statistics for one group of observations.
// StdDev is populated only for period-grouped aggregation.
type AggregateRecord struct {
	GroupKey string   `json:"group_key"`
	Count    int      `json:"count"`
	Mean     float64  `json:"mean"`
	Median   float64  `json:"median"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	StdDev   *float64 `json:"stddev,omitempty"`
}

// TrendResult compares mean values of the first and last period of a dataset.
// PercentDefined is false when the baseline mean is exactly zero, in which
// case PercentChange carries no meaning and must not be rendered as 0%.
type TrendResult struct {
	FirstPeriod    string  `json:"first_period"`
	LastPeriod     string  `json:"last_period"`
	MeanFirst      float64 `json:"mean_first"`
	MeanLast       float64 `json:"mean_last"`
	Change         float64 `json:"change"`
	PercentChange  float64 `json:"percent_change"`
	PercentDefined bool    `json:"percent_defined"`
}

// CleanStats are the run-level diagnostic counters accumulated by one clean
// run. They are returned as a value alongside the cleaned rows so callers can
// judge data quality without re-scanning the source.
type CleanStats struct {
	RowsParsed     int `json:"rows_parsed"`
	RowsSkipped    int `json:"rows_skipped"`
	CellsTotal     int `json:"cells_total"`
	CellsValid     int `json:"cells_valid"`
	CellsMissing   int `json:"cells_missing"`
	CellsEstimated int `json:"cells_estimated"`
	CellsBreak     int `json:"cells_break"`
	CellsFlagged   int `json:"cells_flagged"`
}

// Completeness returns the share of cells carrying a definite value, in
// percent. Zero-cell runs report 0.
func (s CleanStats) Completeness() float64 {
	if s.CellsTotal == 0 {
		return 0
	}
	return float64(s.CellsValid) / float64(s.CellsTotal) * 100
}
