package dataprocessing

import (
	"strings"

	"estatcli/pkg/contracts/domain"
)

// FilterByDimension narrows cleaned rows to those whose value for dim is a
// member of allowed, matched case-insensitively. A new slice is returned; the
// input is never mutated. An empty allowed set yields an empty result, not a
// no-op: strict-intersection semantics avoid accidental "no filter" behavior.
func FilterByDimension(rows []domain.CleanedRow, dim domain.DimensionName, allowed []string) []domain.CleanedRow {
	want := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		want[strings.ToUpper(strings.TrimSpace(v))] = true
	}

	out := make([]domain.CleanedRow, 0, len(rows))
	for _, row := range rows {
		if want[strings.ToUpper(row.Dimensions.Value(dim))] {
			out = append(out, row)
		}
	}
	return out
}

// FilterGeographies narrows cleaned rows to the given countries.
func FilterGeographies(rows []domain.CleanedRow, countries []string) []domain.CleanedRow {
	return FilterByDimension(rows, domain.DimGeography, countries)
}

// FilterTransportModes narrows cleaned rows to the given transport modes.
func FilterTransportModes(rows []domain.CleanedRow, modes []string) []domain.CleanedRow {
	return FilterByDimension(rows, domain.DimTransportMode, modes)
}
