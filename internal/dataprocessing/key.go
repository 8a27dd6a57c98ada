package dataprocessing

import (
	"fmt"
	"strings"

	"estatcli/pkg/contracts/domain"
)

// geoSuffixDelimiter separates the geography field from the period suffix in
// the last part of a composite key ("GEO\TIME_PERIOD").
const geoSuffixDelimiter = `\`

// KeyFormatError reports a composite key that does not split into the four
// required comma-separated parts. Callers skip the affected row and count it;
// one bad key never aborts the batch.
type KeyFormatError struct {
	Key   string
	Parts int
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("composite key %q has %d comma-separated parts, need at least 4", e.Key, e.Parts)
}

// ParseDimensions decomposes a composite metadata key
// ("FREQ,UNIT,MODE,GEO\SUFFIX") into its four named dimensions. The key must
// split into at least four comma-separated parts; the first four are taken and
// any sub-delimited suffix on the fourth is discarded. All fields are trimmed.
func ParseDimensions(key string) (domain.Dimensions, error) {
	parts := strings.Split(key, ",")
	if len(parts) < 4 {
		return domain.Dimensions{}, &KeyFormatError{Key: key, Parts: len(parts)}
	}

	geo := parts[3]
	if i := strings.Index(geo, geoSuffixDelimiter); i >= 0 {
		geo = geo[:i]
	}

	return domain.Dimensions{
		Frequency:     strings.TrimSpace(parts[0]),
		Unit:          strings.TrimSpace(parts[1]),
		TransportMode: strings.TrimSpace(parts[2]),
		Geography:     strings.TrimSpace(geo),
	}, nil
}
