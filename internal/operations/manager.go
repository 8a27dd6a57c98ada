package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"estatcli/pkg/contracts/events"
)

// Broadcaster pushes pipeline progress to connected WebSocket clients. The
// hub satisfies it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastEvent(event events.Event)
}

// noopBroadcaster is used when no hub is attached, e.g. in the CLI.
type noopBroadcaster struct{}

func (noopBroadcaster) BroadcastEvent(events.Event) {}

// Manager runs the pipeline steps in order, tracking per-step state and
// broadcasting progress after every transition.
type Manager struct {
	logger      *slog.Logger
	broadcaster Broadcaster
	tracer      *PipelineTracer
	steps       []Step
	stepTimeout time.Duration
}

// NewManager creates a manager over the given steps. A nil broadcaster
// disables progress events; a nil tracer disables telemetry.
func NewManager(logger *slog.Logger, broadcaster Broadcaster, tracer *PipelineTracer, steps []Step) *Manager {
	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	return &Manager{
		logger:      logger,
		broadcaster: broadcaster,
		tracer:      tracer,
		steps:       steps,
		stepTimeout: DefaultStepTimeout,
	}
}

// Run executes every step against a fresh state. It stops at the first
// failing step and returns the state accumulated so far alongside the error.
func (m *Manager) Run(ctx context.Context, req Request) (*State, error) {
	state := NewState(uuid.New().String(), req, m.steps)
	start := time.Now()

	var runSpan trace.Span
	if m.tracer != nil {
		ctx, runSpan = m.tracer.StartRun(ctx, state.ID, req.DatasetPath)
		defer runSpan.End()
	}

	m.logger.InfoContext(ctx, "operation started",
		"operation_id", state.ID,
		"dataset", req.DatasetPath)
	m.broadcast(events.EventOperationStatus, events.ProgressPayload{
		OperationID: state.ID,
		Status:      string(StepStatusActive),
		Message:     "operation started",
	})

	for i, step := range m.steps {
		if err := m.runStep(ctx, state, step, i); err != nil {
			if m.tracer != nil {
				m.tracer.RecordFailure(runSpan, step.ID(), err)
			}
			m.broadcast(events.EventOperationError, events.ProgressPayload{
				OperationID: state.ID,
				Step:        step.ID(),
				Status:      string(StepStatusFailed),
				Message:     err.Error(),
			})
			return state, fmt.Errorf("step %s failed: %w", step.ID(), err)
		}
	}

	if m.tracer != nil {
		m.tracer.RecordRun(ctx, runSpan, state.Cleaned.Stats, time.Since(start))
	}
	m.logger.InfoContext(ctx, "operation completed", "operation_id", state.ID)
	m.broadcast(events.EventOperationComplete, events.ProgressPayload{
		OperationID: state.ID,
		Status:      string(StepStatusCompleted),
		Progress:    100,
		Message:     "operation completed",
	})
	return state, nil
}

func (m *Manager) runStep(ctx context.Context, state *State, step Step, index int) error {
	stepCtx, cancel := context.WithTimeout(ctx, m.stepTimeout)
	defer cancel()

	if m.tracer != nil {
		var span trace.Span
		stepCtx, span = m.tracer.StartStep(stepCtx, step.ID(), step.Name())
		defer span.End()
	}

	now := time.Now()
	state.UpdateStep(step.ID(), func(st *StepState) {
		st.Status = StepStatusActive
		st.StartTime = &now
	})
	m.broadcast(events.EventOperationProgress, events.ProgressPayload{
		OperationID: state.ID,
		Step:        step.ID(),
		Status:      string(StepStatusActive),
		Progress:    m.progressAt(index),
		Message:     step.Name(),
	})

	err := step.Execute(stepCtx, state)
	done := time.Now()
	if err != nil {
		state.UpdateStep(step.ID(), func(st *StepState) {
			st.Status = StepStatusFailed
			st.EndTime = &done
			st.Error = err.Error()
		})
		m.logger.ErrorContext(ctx, "step failed",
			"operation_id", state.ID,
			"step", step.ID(),
			"error", err)
		return err
	}

	state.UpdateStep(step.ID(), func(st *StepState) {
		st.Status = StepStatusCompleted
		st.EndTime = &done
	})
	m.broadcast(events.EventOperationProgress, events.ProgressPayload{
		OperationID: state.ID,
		Step:        step.ID(),
		Status:      string(StepStatusCompleted),
		Progress:    m.progressAt(index + 1),
		Message:     step.Name(),
	})
	return nil
}

func (m *Manager) progressAt(completed int) float64 {
	if len(m.steps) == 0 {
		return 100
	}
	return float64(completed) / float64(len(m.steps)) * 100
}

func (m *Manager) broadcast(eventType string, payload events.ProgressPayload) {
	m.broadcaster.BroadcastEvent(events.NewEvent(eventType, payload))
}
