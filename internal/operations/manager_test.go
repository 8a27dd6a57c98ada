package operations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatcli/internal/config"
	"estatcli/internal/exporter"
	"estatcli/pkg/contracts/events"
)

type recordingBroadcaster struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recordingBroadcaster) BroadcastEvent(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingBroadcaster) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type stubStep struct {
	id   string
	err  error
	runs int
}

func (s *stubStep) ID() string   { return s.id }
func (s *stubStep) Name() string { return s.id }
func (s *stubStep) Execute(ctx context.Context, state *State) error {
	s.runs++
	return s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestManagerRunsStepsInOrder(t *testing.T) {
	first := &stubStep{id: "first"}
	second := &stubStep{id: "second"}
	rec := &recordingBroadcaster{}

	m := NewManager(testLogger(), rec, nil, []Step{first, second})
	state, err := m.Run(context.Background(), Request{DatasetPath: "x.csv"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.runs)
	assert.Equal(t, 1, second.runs)

	snaps := state.Snapshot()
	require.Len(t, snaps, 2)
	for _, snap := range snaps {
		assert.Equal(t, StepStatusCompleted, snap.Status)
		assert.NotNil(t, snap.StartTime)
		assert.NotNil(t, snap.EndTime)
	}

	types := rec.types()
	assert.Equal(t, events.EventOperationStatus, types[0])
	assert.Equal(t, events.EventOperationComplete, types[len(types)-1])
}

func TestManagerStopsOnFailure(t *testing.T) {
	boom := errors.New("boom")
	first := &stubStep{id: "first", err: boom}
	second := &stubStep{id: "second"}
	rec := &recordingBroadcaster{}

	m := NewManager(testLogger(), rec, nil, []Step{first, second})
	state, err := m.Run(context.Background(), Request{DatasetPath: "x.csv"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 0, second.runs)

	snap, ok := state.StepSnapshot("first")
	require.True(t, ok)
	assert.Equal(t, StepStatusFailed, snap.Status)
	assert.Equal(t, "boom", snap.Error)

	snap, ok = state.StepSnapshot("second")
	require.True(t, ok)
	assert.Equal(t, StepStatusPending, snap.Status)

	types := rec.types()
	assert.Equal(t, events.EventOperationError, types[len(types)-1])
}

func TestManagerNilBroadcaster(t *testing.T) {
	m := NewManager(testLogger(), nil, nil, []Step{&stubStep{id: "only"}})
	_, err := m.Run(context.Background(), Request{})
	require.NoError(t, err)
}

func writePipelineCSV(t *testing.T, dir string) string {
	t.Helper()
	content := "freq,unit,tra_mode,geo\\TIME_PERIOD\t2020 \t2021 \t2022 \n" +
		"A,PC,IWW,BE\\\t10\t10 e\t:\n" +
		"A,PC,IWW,NL\\\t44.5\t45.1 b\t46.0\n" +
		"A,PC,RAIL,DE\\\t: m\t18.2 p\t19\n"
	path := filepath.Join(dir, "iww_go_atygo.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPipelineSteps(t *testing.T) {
	base := t.TempDir()
	paths, err := config.NewPaths(base, config.PathsConfig{})
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirs())

	dataset := writePipelineCSV(t, paths.DataDir)
	logger := testLogger()
	steps := []Step{
		NewLoadStep(logger),
		NewCleanStep(logger, 2),
		NewReshapeStep(logger),
		NewAggregateStep(logger),
		NewExportStep(logger, exporter.NewCSVWriter(paths)),
	}

	m := NewManager(logger, nil, nil, steps)
	state, err := m.Run(context.Background(), Request{
		DatasetPath: dataset,
		ExportLong:  true,
	})
	require.NoError(t, err)

	assert.Len(t, state.Cleaned.Rows, 3)
	assert.Len(t, state.Long, 7)
	require.NotNil(t, state.Trend)
	assert.Equal(t, "2020", state.Trend.FirstPeriod)
	assert.Equal(t, "2022", state.Trend.LastPeriod)

	// wide, long, three aggregates
	assert.Len(t, state.OutputFiles, 5)
	for _, name := range state.OutputFiles {
		_, err := os.Stat(paths.GetReportPath(name))
		assert.NoError(t, err, name)
	}
}

func TestPipelineStepsGeographyFilter(t *testing.T) {
	base := t.TempDir()
	paths, err := config.NewPaths(base, config.PathsConfig{})
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirs())

	dataset := writePipelineCSV(t, paths.DataDir)
	logger := testLogger()
	steps := []Step{
		NewLoadStep(logger),
		NewCleanStep(logger, 1),
		NewReshapeStep(logger),
		NewAggregateStep(logger),
		NewExportStep(logger, exporter.NewCSVWriter(paths)),
	}

	m := NewManager(logger, nil, nil, steps)
	state, err := m.Run(context.Background(), Request{
		DatasetPath: dataset,
		Geographies: []string{"be"},
	})
	require.NoError(t, err)

	require.Len(t, state.Cleaned.Rows, 1)
	assert.Equal(t, "BE", state.Cleaned.Rows[0].Dimensions.Geography)
}
