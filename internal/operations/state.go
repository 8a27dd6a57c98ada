package operations

import (
	"sync"

	"estatcli/internal/dataprocessing"
	"estatcli/pkg/contracts/domain"
)

// State carries the artifacts of a pipeline run between steps. Steps run
// sequentially, but the WebSocket status reporter reads step states
// concurrently, so access goes through the mutex.
type State struct {
	mu sync.RWMutex

	ID      string
	Request Request

	Dataset domain.Dataset
	Cleaned dataprocessing.CleanResult
	Long    []domain.LongObservation

	ByGeography []domain.AggregateRecord
	ByMode      []domain.AggregateRecord
	ByPeriod    []domain.AggregateRecord
	Trend       *domain.TrendResult

	OutputFiles []string

	steps map[string]*StepState
	order []string
}

// NewState creates a run state with pending entries for the given steps.
func NewState(id string, req Request, steps []Step) *State {
	s := &State{
		ID:      id,
		Request: req,
		steps:   make(map[string]*StepState, len(steps)),
	}
	for _, step := range steps {
		s.steps[step.ID()] = &StepState{
			ID:     step.ID(),
			Name:   step.Name(),
			Status: StepStatusPending,
		}
		s.order = append(s.order, step.ID())
	}
	return s
}

// UpdateStep applies fn to the named step state under the lock.
func (s *State) UpdateStep(id string, fn func(st *StepState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.steps[id]; ok {
		fn(st)
	}
}

// StepSnapshot returns a copy of the named step state.
func (s *State) StepSnapshot(id string) (StepState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.steps[id]
	if !ok {
		return StepState{}, false
	}
	return *st, true
}

// Snapshot returns copies of all step states in execution order.
func (s *State) Snapshot() []StepState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]StepState, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.steps[id])
	}
	return out
}

// AddOutputFile records a report written by the export step.
func (s *State) AddOutputFile(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.OutputFiles = append(s.OutputFiles, path)
}
