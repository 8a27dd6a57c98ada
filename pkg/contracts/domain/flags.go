package domain

// FlagCode is a single-letter Eurostat data quality flag attached to a cell
// value (e.g. "12.3 e" for an estimated value). The code is orthogonal to the
// numeric value itself.
type FlagCode string

// Known Eurostat quality flags. Codes outside this table are still captured
// during cleaning, they are just not describable.
const (
	FlagEstimated         FlagCode = "e"
	FlagProvisional       FlagCode = "p"
	FlagBreakInSeries     FlagCode = "b"
	FlagNotSignificant    FlagCode = "n"
	FlagConfidential      FlagCode = "c"
	FlagDefinitionDiffers FlagCode = "d"
	FlagLowReliability    FlagCode = "u"
	FlagEurostatEstimate  FlagCode = "s"
	FlagSeeMetadata       FlagCode = "i"
	FlagRevised           FlagCode = "r"
	FlagNotApplicable     FlagCode = "z"
	FlagMissing           FlagCode = "m"
)

// UnavailableMarker is the token Eurostat uses for "no value reported". It is
// distinct from a flagged-but-present value.
const UnavailableMarker = ":"

// flagLabels maps every known flag to its human-readable meaning. Shared by
// the cleaning engine and the reporting layer so both print the same wording.
var flagLabels = map[FlagCode]string{
	FlagEstimated:         "estimated",
	FlagProvisional:       "provisional",
	FlagBreakInSeries:     "break in time series",
	FlagNotSignificant:    "not significant",
	FlagConfidential:      "confidential",
	FlagDefinitionDiffers: "definition differs",
	FlagLowReliability:    "low reliability",
	FlagEurostatEstimate:  "Eurostat estimate",
	FlagSeeMetadata:       "see metadata",
	FlagRevised:           "revised",
	FlagNotApplicable:     "not applicable",
	FlagMissing:           "missing",
}

// KnownFlag reports whether code is part of the fixed Eurostat flag table.
// Unknown codes are preserved through cleaning but callers may want to
// distinguish them when reporting.
func KnownFlag(code FlagCode) bool {
	_, ok := flagLabels[code]
	return ok
}

// FlagLabel returns the human-readable meaning of a flag code, or "unknown"
// for codes outside the fixed table.
func FlagLabel(code FlagCode) string {
	if label, ok := flagLabels[code]; ok {
		return label
	}
	return "unknown"
}

// KnownFlags returns the fixed flag table as a copy, keyed by code.
func KnownFlags() map[FlagCode]string {
	out := make(map[FlagCode]string, len(flagLabels))
	for code, label := range flagLabels {
		out[code] = label
	}
	return out
}

// HasFlag reports whether code is present in flags.
func HasFlag(flags []FlagCode, code FlagCode) bool {
	for _, f := range flags {
		if f == code {
			return true
		}
	}
	return false
}
