package inventory

import (
	"net/url"
	"strings"
)

// CoerceEnum maps a free-form value onto its canonical spelling in allowed,
// compared case-insensitively. Returns "" when the value matches nothing.
func CoerceEnum(value string, allowed []string) string {
	s := strings.TrimSpace(value)
	if s == "" {
		return ""
	}
	for _, opt := range allowed {
		if strings.EqualFold(s, opt) {
			return opt
		}
	}
	return ""
}

// Normalize coerces the record's enum fields in place. Unmatched values are
// kept as entered so no information is lost.
func (r *SourceRecord) Normalize() {
	if v := CoerceEnum(r.Topic, Topics); v != "" {
		r.Topic = v
	}
	if v := CoerceEnum(r.DataFormat, DataFormats); v != "" {
		r.DataFormat = v
	}
	if v := CoerceEnum(r.UpdateFrequency, UpdateFrequencies); v != "" {
		r.UpdateFrequency = v
	}
}

// QualityScores are the seven per-dimension ratings, each 0 to 3.
type QualityScores struct {
	Completeness  int `json:"completeness"`
	Accuracy      int `json:"accuracy"`
	Consistency   int `json:"consistency"`
	Comparability int `json:"comparability"`
	Granularity   int `json:"granularity"`
	Timeliness    int `json:"timeliness"`
	Accessibility int `json:"accessibility"`
}

// Total sums the dimension scores onto the 0-21 scale. Out-of-range
// dimensions contribute nothing.
func (q QualityScores) Total() int {
	total := 0
	for _, v := range []int{
		q.Completeness, q.Accuracy, q.Consistency, q.Comparability,
		q.Granularity, q.Timeliness, q.Accessibility,
	} {
		if v >= 0 && v <= 3 {
			total += v
		}
	}
	return total
}

var officialHosts = []string{"statbel", "bestat", "economie.fgov", "eurostat", "oecd", "worldbank", "data.gov"}
var sectorHosts = []string{"itb", "sector", "binnenvaart", "inlandwaterway", "barge", "rederij", "bevrachting"}

// GuessSourceType classifies a source URL as "official" or "sector" from its
// hostname, or "" when neither applies.
func GuessSourceType(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := strings.ToLower(u.Hostname())
	for _, k := range officialHosts {
		if strings.Contains(host, k) {
			return "official"
		}
	}
	for _, k := range sectorHosts {
		if strings.Contains(host, k) {
			return "sector"
		}
	}
	return ""
}
