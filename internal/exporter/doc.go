// Package exporter writes cleaned datasets, long-format tables and aggregate
// statistics to CSV and Excel files. It consumes the cleaning engine's return
// values; the engine itself never touches the filesystem.
package exporter
