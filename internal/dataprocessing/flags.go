package dataprocessing

import (
	"sort"
	"strconv"
	"strings"

	"estatcli/pkg/contracts/domain"
)

// CleanCell strips Eurostat quality flags from one raw cell value.
//
// Classification never fails: every input maps to either a definite value
// (possibly flagged), or unavailable. A cell is unavailable when it is blank,
// contains the ":" marker (including compound forms like ": m"), or when
// nothing numeric remains after stripping flag letters. Flags present on an
// unavailable cell are still captured.
//
// Re-applying CleanCell to the string form of an already-cleaned value returns
// the same value with no flags.
func CleanCell(raw string) (value float64, ok bool, flags []domain.FlagCode) {
	trimmed := strings.TrimSpace(raw)
	flags = extractFlags(trimmed)

	if trimmed == "" || strings.Contains(trimmed, domain.UnavailableMarker) {
		return 0, false, flags
	}

	stripped := stripFlagText(trimmed)
	if stripped == "" {
		return 0, false, flags
	}

	value, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false, flags
	}
	return value, true, flags
}

// extractFlags collects every lowercase letter in the cell as a flag code,
// deduplicated and sorted. Unknown letters are captured too, never rejected.
func extractFlags(s string) []domain.FlagCode {
	seen := make(map[domain.FlagCode]bool)
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			seen[domain.FlagCode(r)] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	flags := make([]domain.FlagCode, 0, len(seen))
	for code := range seen {
		flags = append(flags, code)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })
	return flags
}

// stripFlagText removes letters and whitespace, leaving the numeric literal.
func stripFlagText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == ' ', r == '\t':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
