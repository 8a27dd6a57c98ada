package dataprocessing

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"estatcli/pkg/contracts/domain"
)

// AggregateByDimension computes count, mean, median, min and max of the
// observation values grouped by one dimension. Groups with zero observations
// are never emitted. Records are sorted by group key.
//
// Standard deviation is deliberately omitted here; only period-grouped
// aggregation reports it.
func AggregateByDimension(obs []domain.LongObservation, dim domain.DimensionName) []domain.AggregateRecord {
	groups := make(map[string][]float64)
	for _, o := range obs {
		key := o.Dimensions.Value(dim)
		groups[key] = append(groups[key], o.Value)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	records := make([]domain.AggregateRecord, 0, len(keys))
	for _, key := range keys {
		records = append(records, summarize(key, groups[key], false))
	}
	return records
}

// AggregateByPeriod computes count, mean, median, min, max and population
// standard deviation of the observation values grouped by period. Records are
// sorted by period ascending.
func AggregateByPeriod(obs []domain.LongObservation) []domain.AggregateRecord {
	groups := make(map[int][]float64)
	for _, o := range obs {
		groups[o.Period] = append(groups[o.Period], o.Value)
	}

	periods := make([]int, 0, len(groups))
	for period := range groups {
		periods = append(periods, period)
	}
	sort.Ints(periods)

	records := make([]domain.AggregateRecord, 0, len(periods))
	for _, period := range periods {
		records = append(records, summarize(strconv.Itoa(period), groups[period], true))
	}
	return records
}

// Trend compares the mean of all available values in two period columns of a
// cleaned table. The two period subsets may have different row membership: a
// row missing a value in one period still contributes to the other.
//
// When the baseline mean is exactly zero the percent change is undefined and
// reported as such, never as 0% or infinity.
func Trend(rows []domain.CleanedRow, firstPeriod, lastPeriod string) (domain.TrendResult, error) {
	first := periodValues(rows, firstPeriod)
	last := periodValues(rows, lastPeriod)
	if len(first) == 0 {
		return domain.TrendResult{}, fmt.Errorf("no observations for period %q", firstPeriod)
	}
	if len(last) == 0 {
		return domain.TrendResult{}, fmt.Errorf("no observations for period %q", lastPeriod)
	}

	meanFirst := mean(first)
	meanLast := mean(last)

	result := domain.TrendResult{
		FirstPeriod: firstPeriod,
		LastPeriod:  lastPeriod,
		MeanFirst:   meanFirst,
		MeanLast:    meanLast,
		Change:      meanLast - meanFirst,
	}
	if meanFirst != 0 {
		result.PercentChange = result.Change / meanFirst * 100
		result.PercentDefined = true
	}
	return result, nil
}

// periodValues collects every available value in one period column.
func periodValues(rows []domain.CleanedRow, period string) []float64 {
	var values []float64
	for _, row := range rows {
		for _, obs := range row.Observations {
			if obs.Period == period && obs.Valid {
				values = append(values, obs.Value)
			}
		}
	}
	return values
}

// summarize computes the descriptive statistics for one non-empty group.
func summarize(key string, values []float64, withStdDev bool) domain.AggregateRecord {
	record := domain.AggregateRecord{
		GroupKey: key,
		Count:    len(values),
		Mean:     mean(values),
		Median:   median(values),
		Min:      values[0],
		Max:      values[0],
	}
	for _, v := range values {
		if v < record.Min {
			record.Min = v
		}
		if v > record.Max {
			record.Max = v
		}
	}
	if withStdDev {
		sd := stdDev(values, record.Mean)
		record.StdDev = &sd
	}
	return record
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median returns the middle value, or the mean of the two middle values for
// an even count. The input is not mutated.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// stdDev returns the population standard deviation.
func stdDev(values []float64, mean float64) float64 {
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
