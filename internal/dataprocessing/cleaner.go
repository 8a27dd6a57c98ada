package dataprocessing

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"estatcli/pkg/contracts/domain"
)

// Cleaner orchestrates key decomposition and flag stripping over every
// row and period column of a dataset.
type Cleaner struct {
	logger  *slog.Logger
	workers int
}

// NewCleaner creates a cleaner. workers bounds the number of rows cleaned
// concurrently; values below 1 fall back to the CPU count.
func NewCleaner(logger *slog.Logger, workers int) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Cleaner{logger: logger, workers: workers}
}

// CleanResult is the output of one clean run: the cleaned rows in source
// order plus the run-level diagnostic counters.
type CleanResult struct {
	Rows  []domain.CleanedRow
	Stats domain.CleanStats
}

// rowOutcome is the per-row result of the parallel phase, reduced into
// CleanResult afterwards so the counters never need cross-goroutine locking.
type rowOutcome struct {
	row     domain.CleanedRow
	stats   domain.CleanStats
	skipped bool
}

// Clean decomposes the key of every row and applies CleanCell to every period
// cell independently; a flag in one period never affects another. Rows whose
// key fails decomposition are dropped and counted, not fatal. Counters are
// fresh per invocation.
//
// Rows are independent, so the work is sharded across workers and the stats
// are reduced after the parallel phase.
func (c *Cleaner) Clean(ctx context.Context, ds domain.Dataset) (CleanResult, error) {
	outcomes := make([]rowOutcome, len(ds.Rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range ds.Rows {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = cleanRow(ds.Periods, ds.Rows[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return CleanResult{}, err
	}

	result := CleanResult{Rows: make([]domain.CleanedRow, 0, len(ds.Rows))}
	for _, out := range outcomes {
		if out.skipped {
			result.Stats.RowsSkipped++
			continue
		}
		result.Stats.RowsParsed++
		result.Stats.CellsTotal += out.stats.CellsTotal
		result.Stats.CellsValid += out.stats.CellsValid
		result.Stats.CellsMissing += out.stats.CellsMissing
		result.Stats.CellsEstimated += out.stats.CellsEstimated
		result.Stats.CellsBreak += out.stats.CellsBreak
		result.Stats.CellsFlagged += out.stats.CellsFlagged
		result.Rows = append(result.Rows, out.row)
	}

	c.logger.InfoContext(ctx, "dataset cleaned",
		slog.String("dataset", ds.Name),
		slog.Int("rows_parsed", result.Stats.RowsParsed),
		slog.Int("rows_skipped", result.Stats.RowsSkipped),
		slog.Int("cells_valid", result.Stats.CellsValid),
		slog.Int("cells_missing", result.Stats.CellsMissing))

	return result, nil
}

// cleanRow decomposes one row's key and cleans each of its period cells.
// Rows shorter than the period header are padded with blank cells, which
// classify as missing.
func cleanRow(periods []string, row domain.WideRow) rowOutcome {
	dims, err := ParseDimensions(row.Key)
	if err != nil {
		return rowOutcome{skipped: true}
	}

	out := rowOutcome{row: domain.CleanedRow{
		Dimensions:   dims,
		Observations: make([]domain.Observation, len(periods)),
	}}

	for i, period := range periods {
		var raw string
		if i < len(row.Cells) {
			raw = row.Cells[i]
		}

		value, ok, flags := CleanCell(raw)
		out.row.Observations[i] = domain.Observation{
			Period: period,
			Value:  value,
			Valid:  ok,
			Flags:  flags,
		}

		out.stats.CellsTotal++
		if ok {
			out.stats.CellsValid++
		} else {
			out.stats.CellsMissing++
		}
		var other bool
		for _, f := range flags {
			switch f {
			case domain.FlagEstimated:
				out.stats.CellsEstimated++
			case domain.FlagBreakInSeries:
				out.stats.CellsBreak++
			default:
				other = true
			}
		}
		if other {
			out.stats.CellsFlagged++
		}
	}

	return out
}
