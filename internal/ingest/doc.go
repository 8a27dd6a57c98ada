// Package ingest materializes Eurostat exports into in-memory datasets and
// handles the tab-to-comma delimiter conversion for raw bulk downloads. The
// cleaning engine never touches files; it consumes the datasets produced here.
package ingest
