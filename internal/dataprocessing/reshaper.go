package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"estatcli/pkg/contracts/domain"
)

// PeriodFormatError reports a period column label that is not integer-like.
// Unlike a bad row key this is dataset-fatal: it indicates a structurally
// wrong header, not a data-quality issue.
type PeriodFormatError struct {
	Label string
}

func (e *PeriodFormatError) Error() string {
	return fmt.Sprintf("period label %q is not an integer year", e.Label)
}

// ToLong melts cleaned wide rows into one LongObservation per non-missing
// cell. Observations without a value are dropped by construction; this is a
// deliberate lossy projection for statistical consumption.
//
// The output is sorted by geography, then transport mode, then period
// ascending. Downstream trend computations rely on monotonic period order
// within a group, so this ordering is part of the contract.
func ToLong(rows []domain.CleanedRow) ([]domain.LongObservation, error) {
	var out []domain.LongObservation
	for _, row := range rows {
		for _, obs := range row.Observations {
			period, err := strconv.Atoi(strings.TrimSpace(obs.Period))
			if err != nil {
				return nil, &PeriodFormatError{Label: obs.Period}
			}
			if !obs.Valid {
				continue
			}
			out = append(out, domain.LongObservation{
				Dimensions: row.Dimensions,
				Period:     period,
				Value:      obs.Value,
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Dimensions.Geography != b.Dimensions.Geography {
			return a.Dimensions.Geography < b.Dimensions.Geography
		}
		if a.Dimensions.TransportMode != b.Dimensions.TransportMode {
			return a.Dimensions.TransportMode < b.Dimensions.TransportMode
		}
		return a.Period < b.Period
	})

	return out, nil
}
