package dataprocessing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatcli/pkg/contracts/domain"
)

func cleanedFixture(t *testing.T) []domain.CleanedRow {
	t.Helper()
	result, err := NewCleaner(nil, 1).Clean(context.Background(), testDataset())
	require.NoError(t, err)
	return result.Rows
}

func geographies(rows []domain.CleanedRow) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Dimensions.Geography)
	}
	return out
}

func TestFilterByDimension(t *testing.T) {
	rows := cleanedFixture(t)

	kept := FilterByDimension(rows, domain.DimGeography, []string{"BE", "NL"})
	assert.Equal(t, []string{"BE", "NL"}, geographies(kept))
}

func TestFilterCaseInsensitive(t *testing.T) {
	rows := cleanedFixture(t)

	upper := FilterByDimension(rows, domain.DimGeography, []string{"BE", "NL"})
	lower := FilterByDimension(rows, domain.DimGeography, []string{"be", "nl"})
	assert.Equal(t, upper, lower)
}

func TestFilterEmptyAllowedSet(t *testing.T) {
	rows := cleanedFixture(t)

	kept := FilterByDimension(rows, domain.DimGeography, nil)
	assert.Empty(t, kept, "empty allowed set is a strict intersection, not a no-op")
}

func TestFilterNoMatches(t *testing.T) {
	rows := cleanedFixture(t)

	kept := FilterByDimension(rows, domain.DimGeography, []string{"XX"})
	assert.Empty(t, kept)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	rows := cleanedFixture(t)
	before := geographies(rows)

	FilterByDimension(rows, domain.DimGeography, []string{"NL"})
	assert.Equal(t, before, geographies(rows))
}

func TestFilterTransportModes(t *testing.T) {
	rows := cleanedFixture(t)

	kept := FilterTransportModes(rows, []string{"rail"})
	require.Len(t, kept, 1)
	assert.Equal(t, "DE", kept[0].Dimensions.Geography)
}
