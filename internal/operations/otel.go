package operations

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"estatcli/internal/infrastructure"
	"estatcli/pkg/contracts/domain"
)

const tracerName = "estatcli.operation"

// PipelineTracer instruments pipeline runs: one span per run, one per step,
// and the cleaning counters recorded on completion.
type PipelineTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
}

// NewPipelineTracer creates the tracer over the initialized providers and
// the shared instrument set.
func NewPipelineTracer(providers *infrastructure.OTelProviders, metrics *infrastructure.BusinessMetrics) *PipelineTracer {
	tracer := providers.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &PipelineTracer{tracer: tracer, metrics: metrics}
}

// StartRun opens the span covering a whole pipeline run.
func (pt *PipelineTracer) StartRun(ctx context.Context, operationID, datasetPath string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("operation.dataset", datasetPath),
		),
	)
}

// StartStep opens the span covering one step execution.
func (pt *PipelineTracer) StartStep(ctx context.Context, stepID, stepName string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "pipeline.step."+stepID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("step.id", stepID),
			attribute.String("step.name", stepName),
		),
	)
}

// RecordRun records the cleaning counters for one completed run.
func (pt *PipelineTracer) RecordRun(ctx context.Context, span trace.Span, stats domain.CleanStats, duration time.Duration) {
	pt.metrics.DatasetsProcessed.Add(ctx, 1)
	pt.metrics.RowsCleaned.Add(ctx, int64(stats.RowsParsed))
	pt.metrics.RowsSkipped.Add(ctx, int64(stats.RowsSkipped))
	pt.metrics.CleanDuration.Record(ctx, duration.Seconds())

	for label, count := range map[string]int{
		"valid":     stats.CellsValid,
		"missing":   stats.CellsMissing,
		"estimated": stats.CellsEstimated,
		"break":     stats.CellsBreak,
		"flagged":   stats.CellsFlagged,
	} {
		if count > 0 {
			pt.metrics.CellsClassified.Add(ctx, int64(count),
				metric.WithAttributes(attribute.String("classification", label)))
		}
	}

	span.SetAttributes(
		attribute.Int("clean.rows_parsed", stats.RowsParsed),
		attribute.Int("clean.rows_skipped", stats.RowsSkipped),
		attribute.Float64("clean.completeness", stats.Completeness()),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
	)
}

// RecordFailure marks the run span as failed.
func (pt *PipelineTracer) RecordFailure(span trace.Span, stepID string, err error) {
	span.SetAttributes(attribute.String("step.failed", stepID))
	span.SetStatus(codes.Error, err.Error())
}
