package exporter

import (
	"fmt"
	"strconv"
)

// formatValue formats a cell value for CSV output without forcing trailing
// zeros, so 10 stays "10" and 44.5 stays "44.5".
func formatValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatStat formats an aggregate statistic with two decimal places.
func formatStat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer for CSV output.
func formatInt(i int) string {
	return strconv.Itoa(i)
}
