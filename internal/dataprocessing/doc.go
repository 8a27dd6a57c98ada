// Package dataprocessing implements the cleaning and reshaping engine for
// Eurostat wide-format exports: decomposing the composite metadata key,
// stripping inline quality flags from cell values, filtering by dimension
// values, melting wide rows into long-format observations, and computing
// descriptive statistics over the cleaned data.
//
// Every stage is a pure transformation: it consumes its input as a value and
// produces a new value, never mutating in place. The only run-level state is
// the diagnostic counter set returned by Cleaner.Clean alongside the cleaned
// rows.
package dataprocessing
