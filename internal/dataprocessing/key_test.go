package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatcli/pkg/contracts/domain"
)

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want domain.Dimensions
	}{
		{
			name: "period suffix discarded",
			key:  `A,B,C,GEO\2023`,
			want: domain.Dimensions{Frequency: "A", Unit: "B", TransportMode: "C", Geography: "GEO"},
		},
		{
			name: "typical eurostat key",
			key:  `A,PC,IWW,BE\TIME_PERIOD`,
			want: domain.Dimensions{Frequency: "A", Unit: "PC", TransportMode: "IWW", Geography: "BE"},
		},
		{
			name: "fields trimmed",
			key:  ` A , PC , RAIL , NL `,
			want: domain.Dimensions{Frequency: "A", Unit: "PC", TransportMode: "RAIL", Geography: "NL"},
		},
		{
			name: "extra parts ignored",
			key:  "A,PC,ROAD,DE,EXTRA",
			want: domain.Dimensions{Frequency: "A", Unit: "PC", TransportMode: "ROAD", Geography: "DE"},
		},
		{
			name: "no suffix",
			key:  "A,PC,RAIL_IWW_AVD,FR",
			want: domain.Dimensions{Frequency: "A", Unit: "PC", TransportMode: "RAIL_IWW_AVD", Geography: "FR"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDimensions(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDimensionsTooFewParts(t *testing.T) {
	for _, key := range []string{"A,B,C", "A", ""} {
		_, err := ParseDimensions(key)
		require.Error(t, err, "key %q", key)

		var keyErr *KeyFormatError
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, key, keyErr.Key)
	}
}

func TestDimensionsValue(t *testing.T) {
	dims := domain.Dimensions{Frequency: "A", Unit: "PC", TransportMode: "IWW", Geography: "BE"}
	assert.Equal(t, "A", dims.Value(domain.DimFrequency))
	assert.Equal(t, "PC", dims.Value(domain.DimUnit))
	assert.Equal(t, "IWW", dims.Value(domain.DimTransportMode))
	assert.Equal(t, "BE", dims.Value(domain.DimGeography))
	assert.Equal(t, "", dims.Value("bogus"))
}
